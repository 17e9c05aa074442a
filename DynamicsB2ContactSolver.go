package box2d

import (
	"math"
)

type B2ContactConstraintPoint struct {
	LocalAnchor1    B2Vec2
	LocalAnchor2    B2Vec2
	R1              B2Vec2
	R2              B2Vec2
	NormalImpulse   float64
	TangentImpulse  float64
	PositionImpulse float64
	NormalMass      float64
	TangentMass     float64
	EqualizedMass   float64
	Separation      float64
	VelocityBias    float64
}

type B2ContactConstraint struct {
	Points      [B2_maxManifoldPoints]B2ContactConstraintPoint
	Normal      B2Vec2
	Manifold    *B2Manifold
	Body1       *B2Body
	Body2       *B2Body
	Friction    float64
	Restitution float64
	PointCount  int
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2ContactSolver
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// Sequential impulse solver for the contacts of one island. The constraint
/// storage is kept between islands.
type B2ContactSolver struct {
	M_step        B2TimeStep
	M_constraints []B2ContactConstraint
}

func MakeB2ContactSolver() B2ContactSolver {
	return B2ContactSolver{
		M_constraints: make([]B2ContactConstraint, 0),
	}
}

/// Build one constraint per manifold of the given solid contacts.
func (solver *B2ContactSolver) Initialize(step B2TimeStep, contacts []B2ContactInterface) {
	solver.M_step = step
	solver.M_constraints = solver.M_constraints[:0]

	for _, contact := range contacts {
		B2Assert(contact.IsSolid())

		if contact.GetManifoldCount() == 0 {
			continue
		}

		b1 := contact.GetFixtureA().GetBody()
		b2 := contact.GetFixtureB().GetBody()
		manifold := contact.GetManifold()

		v1 := b1.M_linearVelocity
		v2 := b2.M_linearVelocity
		w1 := b1.M_angularVelocity
		w2 := b2.M_angularVelocity

		B2Assert(manifold.PointCount > 0)

		solver.M_constraints = append(solver.M_constraints, B2ContactConstraint{})
		c := &solver.M_constraints[len(solver.M_constraints)-1]

		c.Body1 = b1
		c.Body2 = b2
		c.Manifold = manifold
		c.Normal = manifold.Normal
		c.PointCount = manifold.PointCount
		c.Friction = contact.GetFriction()
		c.Restitution = contact.GetRestitution()

		normal := c.Normal
		tangent := B2Vec2CrossVectorScalar(normal, 1.0)

		for k := 0; k < c.PointCount; k++ {
			cp := &manifold.Points[k]
			ccp := &c.Points[k]

			ccp.NormalImpulse = cp.NormalImpulse
			ccp.TangentImpulse = cp.TangentImpulse
			ccp.Separation = cp.Separation
			ccp.PositionImpulse = 0.0

			ccp.LocalAnchor1 = cp.LocalPoint1
			ccp.LocalAnchor2 = cp.LocalPoint2
			ccp.R1 = B2Vec2Mat22Mul(b1.M_xf.R, B2Vec2Sub(cp.LocalPoint1, b1.M_sweep.LocalCenter))
			ccp.R2 = B2Vec2Mat22Mul(b2.M_xf.R, B2Vec2Sub(cp.LocalPoint2, b2.M_sweep.LocalCenter))

			rn1 := B2Vec2Cross(ccp.R1, normal)
			rn2 := B2Vec2Cross(ccp.R2, normal)
			rn1 *= rn1
			rn2 *= rn2

			kNormal := b1.M_invMass + b2.M_invMass + b1.M_invI*rn1 + b2.M_invI*rn2
			ccp.NormalMass = b2SafeInverse(kNormal)

			kEqualized := b1.M_mass*b1.M_invMass + b2.M_mass*b2.M_invMass
			kEqualized += b1.M_mass*b1.M_invI*rn1 + b2.M_mass*b2.M_invI*rn2
			ccp.EqualizedMass = b2SafeInverse(kEqualized)

			rt1 := B2Vec2Cross(ccp.R1, tangent)
			rt2 := B2Vec2Cross(ccp.R2, tangent)
			rt1 *= rt1
			rt2 *= rt2

			kTangent := b1.M_invMass + b2.M_invMass + b1.M_invI*rt1 + b2.M_invI*rt2
			ccp.TangentMass = b2SafeInverse(kTangent)

			// Setup a velocity bias for restitution.
			ccp.VelocityBias = 0.0
			if ccp.Separation > 0.0 {
				ccp.VelocityBias = -step.Inv_dt * ccp.Separation
			}

			dv := B2Vec2Sub(
				B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, ccp.R2)),
				B2Vec2Add(v1, B2Vec2CrossScalarVector(w1, ccp.R1)),
			)
			vRel := B2Vec2Dot(c.Normal, dv)
			if vRel < -B2_velocityThreshold {
				ccp.VelocityBias += -c.Restitution * vRel
			}
		}
	}
}

// Effective masses of constraints between two static bodies are zero.
func b2SafeInverse(k float64) float64 {
	if k > B2_epsilon {
		return 1.0 / k
	}

	return 0.0
}

func (solver *B2ContactSolver) InitVelocityConstraints(step B2TimeStep) {
	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]

		b1 := c.Body1
		b2 := c.Body2
		invMass1 := b1.M_invMass
		invI1 := b1.M_invI
		invMass2 := b2.M_invMass
		invI2 := b2.M_invI
		normal := c.Normal
		tangent := B2Vec2CrossVectorScalar(normal, 1.0)

		if step.WarmStarting {
			for j := 0; j < c.PointCount; j++ {
				ccp := &c.Points[j]
				ccp.NormalImpulse *= step.DtRatio
				ccp.TangentImpulse *= step.DtRatio
				P := B2Vec2Add(B2Vec2MulScalar(ccp.NormalImpulse, normal), B2Vec2MulScalar(ccp.TangentImpulse, tangent))
				b1.M_angularVelocity -= invI1 * B2Vec2Cross(ccp.R1, P)
				b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(invMass1, P))
				b2.M_angularVelocity += invI2 * B2Vec2Cross(ccp.R2, P)
				b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(invMass2, P))
			}
		} else {
			for j := 0; j < c.PointCount; j++ {
				ccp := &c.Points[j]
				ccp.NormalImpulse = 0.0
				ccp.TangentImpulse = 0.0
			}
		}
	}
}

func (solver *B2ContactSolver) SolveVelocityConstraints() {
	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		b1 := c.Body1
		b2 := c.Body2
		w1 := b1.M_angularVelocity
		w2 := b2.M_angularVelocity
		v1 := b1.M_linearVelocity
		v2 := b2.M_linearVelocity
		invMass1 := b1.M_invMass
		invI1 := b1.M_invI
		invMass2 := b2.M_invMass
		invI2 := b2.M_invI
		normal := c.Normal
		tangent := B2Vec2CrossVectorScalar(normal, 1.0)
		friction := c.Friction

		// Solve normal constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			// Relative velocity at contact
			dv := B2Vec2Sub(
				B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, ccp.R2)),
				B2Vec2Add(v1, B2Vec2CrossScalarVector(w1, ccp.R1)),
			)

			// Compute normal impulse
			vn := B2Vec2Dot(dv, normal)
			lambda := -ccp.NormalMass * (vn - ccp.VelocityBias)

			// Clamp the accumulated impulse
			newImpulse := math.Max(ccp.NormalImpulse+lambda, 0.0)
			lambda = newImpulse - ccp.NormalImpulse

			// Apply contact impulse
			P := B2Vec2MulScalar(lambda, normal)

			v1.OperatorMinusInplace(B2Vec2MulScalar(invMass1, P))
			w1 -= invI1 * B2Vec2Cross(ccp.R1, P)

			v2.OperatorPlusInplace(B2Vec2MulScalar(invMass2, P))
			w2 += invI2 * B2Vec2Cross(ccp.R2, P)

			ccp.NormalImpulse = newImpulse
		}

		// Solve tangent constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			// Relative velocity at contact
			dv := B2Vec2Sub(
				B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, ccp.R2)),
				B2Vec2Add(v1, B2Vec2CrossScalarVector(w1, ccp.R1)),
			)

			// Compute tangent force
			vt := B2Vec2Dot(dv, tangent)
			lambda := ccp.TangentMass * (-vt)

			// Clamp the accumulated force
			maxFriction := friction * ccp.NormalImpulse
			newImpulse := B2FloatClamp(ccp.TangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - ccp.TangentImpulse

			// Apply contact impulse
			P := B2Vec2MulScalar(lambda, tangent)

			v1.OperatorMinusInplace(B2Vec2MulScalar(invMass1, P))
			w1 -= invI1 * B2Vec2Cross(ccp.R1, P)

			v2.OperatorPlusInplace(B2Vec2MulScalar(invMass2, P))
			w2 += invI2 * B2Vec2Cross(ccp.R2, P)

			ccp.TangentImpulse = newImpulse
		}

		b1.M_linearVelocity = v1
		b1.M_angularVelocity = w1
		b2.M_linearVelocity = v2
		b2.M_angularVelocity = w2
	}
}

/// Store the impulses in the manifolds for warm starting the next step.
func (solver *B2ContactSolver) FinalizeVelocityConstraints() {
	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		m := c.Manifold

		for j := 0; j < c.PointCount; j++ {
			m.Points[j].NormalImpulse = c.Points[j].NormalImpulse
			m.Points[j].TangentImpulse = c.Points[j].TangentImpulse
		}
	}
}

/// Push the bodies apart along the contact normals using equalized masses.
/// Returns true when the largest penetration is within tolerance.
func (solver *B2ContactSolver) SolvePositionConstraints(baumgarte float64) bool {
	minSeparation := 0.0

	for i := range solver.M_constraints {
		c := &solver.M_constraints[i]
		b1 := c.Body1
		b2 := c.Body2
		invMass1 := b1.M_mass * b1.M_invMass
		invI1 := b1.M_mass * b1.M_invI
		invMass2 := b2.M_mass * b2.M_invMass
		invI2 := b2.M_mass * b2.M_invI

		normal := c.Normal

		// Solver normal constraints
		for j := 0; j < c.PointCount; j++ {
			ccp := &c.Points[j]

			r1 := B2Vec2Mat22Mul(b1.M_xf.R, B2Vec2Sub(ccp.LocalAnchor1, b1.M_sweep.LocalCenter))
			r2 := B2Vec2Mat22Mul(b2.M_xf.R, B2Vec2Sub(ccp.LocalAnchor2, b2.M_sweep.LocalCenter))

			p1 := B2Vec2Add(b1.M_sweep.C, r1)
			p2 := B2Vec2Add(b2.M_sweep.C, r2)
			dp := B2Vec2Sub(p2, p1)

			// Approximate the current separation.
			separation := B2Vec2Dot(dp, normal) + ccp.Separation

			// Track max constraint error.
			minSeparation = math.Min(minSeparation, separation)

			// Prevent large corrections and allow slop.
			C := baumgarte * B2FloatClamp(separation+B2_linearSlop, -B2_maxLinearCorrection, 0.0)

			// Compute normal impulse
			dImpulse := -ccp.EqualizedMass * C

			// Clamp the accumulated impulse
			impulse0 := ccp.PositionImpulse
			ccp.PositionImpulse = math.Max(impulse0+dImpulse, 0.0)
			dImpulse = ccp.PositionImpulse - impulse0

			impulse := B2Vec2MulScalar(dImpulse, normal)

			b1.M_sweep.C.OperatorMinusInplace(B2Vec2MulScalar(invMass1, impulse))
			b1.M_sweep.A -= invI1 * B2Vec2Cross(r1, impulse)
			b1.SynchronizeTransform()

			b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(invMass2, impulse))
			b2.M_sweep.A += invI2 * B2Vec2Cross(r2, impulse)
			b2.SynchronizeTransform()
		}
	}

	// We can't expect minSpeparation >= -b2_linearSlop because we don't
	// push the separation above -b2_linearSlop.
	return minSeparation >= -1.5*B2_linearSlop
}
