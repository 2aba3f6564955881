package common

// Stepper turns variable frame times into a whole number of fixed ticks.
// Time is measured in milliseconds.
type Stepper struct {
	Step        float64
	accumulator float64
}

func NewStepper(step float64) *Stepper {
	if step <= 0 {
		step = TimeStep
	}
	return &Stepper{Step: step}
}

// Advance adds elapsed real time and calls tick once per whole step that
// fits in the accumulator. It returns the number of ticks run.
func (s *Stepper) Advance(elapsed float64, tick func(dt float64)) int {
	if s == nil || tick == nil {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxFrameTime {
		elapsed = MaxFrameTime
	}

	s.accumulator += elapsed
	ticks := 0
	for s.accumulator >= s.Step {
		tick(s.Step)
		s.accumulator -= s.Step
		ticks++
	}
	return ticks
}

// Pending returns the time left in the accumulator.
func (s *Stepper) Pending() float64 {
	if s == nil {
		return 0
	}
	return s.accumulator
}
