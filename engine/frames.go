package engine

// FrameSource is the host's display-refresh hook
// Request asks for one frame callback; repeated requests before delivery coalesce
// Cancel drops a pending request
type FrameSource interface {
	Request()
	Cancel()
}

// ManualFrames is a FrameSource recording requests for hosts that poll, and for tests
type ManualFrames struct {
	pending  bool
	requests int
	cancels  int
}

func (f *ManualFrames) Request() {
	f.pending = true
	f.requests++
}

func (f *ManualFrames) Cancel() {
	f.pending = false
	f.cancels++
}

// Pending reports whether a frame is requested and not yet taken
func (f *ManualFrames) Pending() bool {
	return f.pending
}

// Take consumes the pending request, reporting whether there was one
func (f *ManualFrames) Take() bool {
	p := f.pending
	f.pending = false
	return p
}

// Requests returns the total number of Request calls
func (f *ManualFrames) Requests() int {
	return f.requests
}

// Cancels returns the total number of Cancel calls
func (f *ManualFrames) Cancels() int {
	return f.cancels
}
