package parameter

import "time"

// Spark burst shape
const (
	// SparkCountMin/Max bound sparks per burst, upper bound exclusive
	SparkCountMin = 24
	SparkCountMax = 34
	// SparkRapidScale shrinks bursts triggered within SparkRapidWindow of the previous one
	SparkRapidScale  = 0.6
	SparkRapidWindow = 90 * time.Millisecond
	// SparkCountFloor is the smallest burst after rapid scaling
	SparkCountFloor = 12

	// SparkTravelMin/Max bound the distance a spark eases out to (px)
	SparkTravelMin = 12.0
	SparkTravelMax = 36.0

	SparkLifeMin = 720 * time.Millisecond
	SparkLifeMax = 1700 * time.Millisecond

	SparkSizeMin = 4.0
	SparkSizeMax = 12.0

	SparkGlowMin = 12.0
	SparkGlowMax = 32.0

	// SparkMaxBursts caps concurrently live bursts, the oldest is pruned first
	SparkMaxBursts = 14
)
