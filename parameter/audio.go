package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	// AudioBufferDuration sets speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Chime Sound
// Sine pair with a fast attack and exponential-ish release, pitched per palette color
const (
	ChimeDuration = 260 * time.Millisecond
	ChimeAttack   = 4 * time.Millisecond
	ChimeRelease  = 220 * time.Millisecond
	// ChimeBaseFreq is the fundamental of palette color 0 (Hz)
	ChimeBaseFreq = 880.0
	// ChimeOvertone multiplies the fundamental for the shimmer partial
	ChimeOvertone = 2.76
	// ChimeOvertoneGain relative to the fundamental
	ChimeOvertoneGain = 0.35
	// ChimeVolume is the peak amplitude at full intensity
	ChimeVolume = 0.25
	// MinChimeGap drops chimes triggered closer together than this
	MinChimeGap = 40 * time.Millisecond
)

// ChimeScale holds frequency ratios per palette color (pentatonic)
var ChimeScale = [...]float64{1.0, 9.0 / 8.0, 5.0 / 4.0, 3.0 / 2.0, 5.0 / 3.0}
