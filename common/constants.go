package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TicksPerSecond is the logical simulation rate.
	TicksPerSecond = 60
	// TimeStep is the duration of one logical tick in milliseconds.
	TimeStep = 1000.0 / TicksPerSecond

	// MaxFrameTime caps the real time fed into the accumulator per frame.
	MaxFrameTime = 250.0
)
