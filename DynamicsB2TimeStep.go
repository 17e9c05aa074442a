package box2d

/// Profiling data. Times are in milliseconds.
type B2Profile struct {
	Step       float64
	Collide    float64
	Solve      float64
	SolveTOI   float64
	Broadphase float64
}

func MakeB2Profile() B2Profile {
	return B2Profile{}
}

/// This is an internal structure.
type B2TimeStep struct {
	Dt                 float64 // time step
	Inv_dt             float64 // inverse time step (0 if dt == 0).
	DtRatio            float64 // dt * inv_dt0
	VelocityIterations int
	PositionIterations int
	WarmStarting       bool
}

func MakeB2TimeStep() B2TimeStep {
	return B2TimeStep{}
}

func MakeB2TimeStepFromDt(dt float64, velocityIterations, positionIterations int, inv_dt0 float64, warmStarting bool) B2TimeStep {
	step := B2TimeStep{
		Dt:                 dt,
		VelocityIterations: velocityIterations,
		PositionIterations: positionIterations,
		WarmStarting:       warmStarting,
	}

	if dt > 0.0 {
		step.Inv_dt = 1.0 / dt
	}

	step.DtRatio = inv_dt0 * dt
	return step
}
