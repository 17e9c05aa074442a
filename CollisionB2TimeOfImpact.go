package box2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2TimeOfImpact.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

var B2_toiCalls, B2_toiIters, B2_toiMaxIters int

const b2_toiMaxIterations = 20

/// Compute the time when two shapes begin to touch or touch at a closer distance.
/// This uses conservative advancement on the core shapes, so the result is a
/// lower bound and the shapes keep a small positive margin at the returned time.
/// The sweeps must share the same initial time Alpha0.
/// @warning the sweeps must have the same time interval.
/// @return the fraction between [0,1] in which the shapes first touch.
/// fraction=0 means the shapes begin touching/overlapped, and fraction=1 means the shapes don't touch.
func B2TimeOfImpact(shape1 B2ShapeInterface, sweep1 B2Sweep, shape2 B2ShapeInterface, sweep2 B2Sweep) float64 {
	B2_toiCalls++

	r1 := shape1.GetSweepRadius()
	r2 := shape2.GetSweepRadius()

	B2Assert(sweep1.Alpha0 == sweep2.Alpha0)
	B2Assert(1.0-sweep1.Alpha0 > B2_epsilon)

	t0 := sweep1.Alpha0
	v1 := B2Vec2Sub(sweep1.C, sweep1.C0)
	v2 := B2Vec2Sub(sweep2.C, sweep2.C0)
	omega1 := sweep1.A - sweep1.A0
	omega2 := sweep2.A - sweep2.A0

	alpha := 0.0

	var p1, p2 B2Vec2
	iter := 0
	targetDistance := 0.0

	for {
		t := (1.0-alpha)*t0 + alpha
		var xf1, xf2 B2Transform
		sweep1.GetTransform(&xf1, t)
		sweep2.GetTransform(&xf2, t)

		// Get the distance between shapes.
		distance := B2Distance(&p1, &p2, shape1, xf1, shape2, xf2)

		if iter == 0 {
			// Compute a reasonable target distance to give some breathing room
			// for conservative advancement.
			if distance > 2.0*B2_toiSlop {
				targetDistance = 1.5 * B2_toiSlop
			} else {
				targetDistance = math.Max(0.05*B2_toiSlop, distance-0.5*B2_toiSlop)
			}
		}

		if distance-targetDistance < 0.05*B2_toiSlop || iter == b2_toiMaxIterations {
			break
		}

		normal := B2Vec2Sub(p2, p1)
		normal.Normalize()

		// Compute upper bound on remaining movement.
		approachVelocityBound := B2Vec2Dot(normal, B2Vec2Sub(v1, v2)) + math.Abs(omega1)*r1 + math.Abs(omega2)*r2
		if math.Abs(approachVelocityBound) < B2_epsilon {
			alpha = 1.0
			break
		}

		// Get the conservative time increment. Don't advance all the way.
		dAlpha := (distance - targetDistance) / approachVelocityBound
		newAlpha := alpha + dAlpha

		// The shapes may be moving apart.
		if newAlpha < 0.0 || 1.0 < newAlpha {
			alpha = 1.0
			break
		}

		// Ensure significant advancement.
		if newAlpha < (1.0+100.0*B2_epsilon)*alpha {
			break
		}

		alpha = newAlpha

		iter++
	}

	B2_toiIters = iter
	if iter > B2_toiMaxIters {
		B2_toiMaxIters = iter
	}

	return alpha
}
