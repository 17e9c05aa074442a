package box2d

import (
	"math"
)

/// A connected group of awake bodies with the contacts and joints between
/// them. The world reuses one island for every group found in a step.
type B2Island struct {
	M_listener B2ContactListenerInterface

	M_bodies   []*B2Body
	M_contacts []B2ContactInterface // has to be backed by pointers
	M_joints   []B2JointInterface   // has to be backed by pointers

	M_bodyCount    int
	M_jointCount   int
	M_contactCount int

	M_bodyCapacity    int
	M_contactCapacity int
	M_jointCapacity   int

	m_contactSolver B2ContactSolver
	m_result        B2ContactResult
}

func (island *B2Island) Clear() {
	island.M_bodyCount = 0
	island.M_contactCount = 0
	island.M_jointCount = 0
}

func (island *B2Island) AddBody(body *B2Body) {
	B2Assert(island.M_bodyCount < island.M_bodyCapacity)
	body.M_islandIndex = island.M_bodyCount
	island.M_bodies[island.M_bodyCount] = body
	island.M_bodyCount++
}

func (island *B2Island) AddContact(contact B2ContactInterface) { // contact has to be a pointer
	B2Assert(island.M_contactCount < island.M_contactCapacity)
	island.M_contacts[island.M_contactCount] = contact
	island.M_contactCount++
}

func (island *B2Island) AddJoint(joint B2JointInterface) { // joint has to be a pointer
	B2Assert(island.M_jointCount < island.M_jointCapacity)
	island.M_joints[island.M_jointCount] = joint
	island.M_jointCount++
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Island.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func MakeB2Island(bodyCapacity int, contactCapacity int, jointCapacity int, listener B2ContactListenerInterface) B2Island {

	island := B2Island{}

	island.M_listener = listener
	island.m_contactSolver = MakeB2ContactSolver()
	island.Reserve(bodyCapacity, contactCapacity, jointCapacity)

	return island
}

/// Grow the scratch storage to at least the given capacities and clear it.
func (island *B2Island) Reserve(bodyCapacity int, contactCapacity int, jointCapacity int) {
	if bodyCapacity > len(island.M_bodies) {
		island.M_bodies = make([]*B2Body, bodyCapacity)
	}
	if contactCapacity > len(island.M_contacts) {
		island.M_contacts = make([]B2ContactInterface, contactCapacity)
	}
	if jointCapacity > len(island.M_joints) {
		island.M_joints = make([]B2JointInterface, jointCapacity)
	}

	island.M_bodyCapacity = bodyCapacity
	island.M_contactCapacity = contactCapacity
	island.M_jointCapacity = jointCapacity

	island.Clear()
}

func (island *B2Island) Solve(step B2TimeStep, gravity B2Vec2, allowSleep bool) {

	dt := step.Dt

	// Integrate velocities and apply damping.
	for i := 0; i < island.M_bodyCount; i++ {
		b := island.M_bodies[i]

		if b.IsStatic() {
			continue
		}

		// Integrate velocities.
		b.M_linearVelocity.OperatorPlusInplace(
			B2Vec2MulScalar(
				dt,
				B2Vec2Add(gravity, B2Vec2MulScalar(b.M_invMass, b.M_force)),
			),
		)
		b.M_angularVelocity += dt * b.M_invI * b.M_torque

		// Reset forces.
		b.M_force.SetZero()
		b.M_torque = 0.0

		// Apply damping.
		// ODE: dv/dt + c * v = 0
		// Solution: v(t) = v0 * exp(-c * t)
		// Time step: v(t + dt) = v0 * exp(-c * (t + dt)) = v0 * exp(-c * t) * exp(-c * dt) = v * exp(-c * dt)
		// v2 = exp(-c * dt) * v1
		// Taylor expansion:
		// v2 = (1.0f - c * dt) * v1
		b.M_linearVelocity.OperatorScalarMulInplace(B2FloatClamp(1.0-dt*b.M_linearDamping, 0.0, 1.0))
		b.M_angularVelocity *= B2FloatClamp(1.0-dt*b.M_angularDamping, 0.0, 1.0)

		// Check for large velocities.
		if B2Vec2Dot(b.M_linearVelocity, b.M_linearVelocity) > B2_maxLinearVelocitySquared {
			b.M_linearVelocity.Normalize()
			b.M_linearVelocity.OperatorScalarMulInplace(B2_maxLinearVelocity)
		}

		if b.M_angularVelocity*b.M_angularVelocity > B2_maxAngularVelocitySquared {
			if b.M_angularVelocity < 0.0 {
				b.M_angularVelocity = -B2_maxAngularVelocity
			} else {
				b.M_angularVelocity = B2_maxAngularVelocity
			}
		}
	}

	contactSolver := &island.m_contactSolver
	contactSolver.Initialize(step, island.M_contacts[:island.M_contactCount])

	// Initialize velocity constraints.
	contactSolver.InitVelocityConstraints(step)

	for i := 0; i < island.M_jointCount; i++ {
		island.M_joints[i].InitVelocityConstraints(step)
	}

	// Solve velocity constraints.
	for i := 0; i < step.VelocityIterations; i++ {
		contactSolver.SolveVelocityConstraints()

		for j := 0; j < island.M_jointCount; j++ {
			island.M_joints[j].SolveVelocityConstraints(step)
		}
	}

	// Post-solve (store impulses for warm starting).
	contactSolver.FinalizeVelocityConstraints()

	// Integrate positions.
	for i := 0; i < island.M_bodyCount; i++ {
		b := island.M_bodies[i]

		if b.IsStatic() {
			continue
		}

		// Store positions for continuous collision.
		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		// Integrate
		b.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(dt, b.M_linearVelocity))
		b.M_sweep.A += dt * b.M_angularVelocity

		// Compute new transform
		b.SynchronizeTransform()

		// Note: shapes are synchronized later.
	}

	// Iterate over constraints.
	for i := 0; i < step.PositionIterations; i++ {
		contactsOkay := contactSolver.SolvePositionConstraints(B2_contactBaumgarte)

		jointsOkay := true
		for j := 0; j < island.M_jointCount; j++ {
			jointOkay := island.M_joints[j].SolvePositionConstraints(B2_contactBaumgarte)
			jointsOkay = jointsOkay && jointOkay
		}

		if contactsOkay && jointsOkay {
			// Exit early if the position errors are small.
			break
		}
	}

	island.Report(contactSolver.M_constraints)

	if allowSleep {
		minSleepTime := B2_maxFloat

		linTolSqr := B2_linearSleepTolerance * B2_linearSleepTolerance
		angTolSqr := B2_angularSleepTolerance * B2_angularSleepTolerance

		for i := 0; i < island.M_bodyCount; i++ {
			b := island.M_bodies[i]
			if b.M_invMass == 0.0 {
				continue
			}

			if (b.M_flags&B2Body_Flags.E_autoSleepFlag) == 0 || b.M_angularVelocity*b.M_angularVelocity > angTolSqr || B2Vec2Dot(b.M_linearVelocity, b.M_linearVelocity) > linTolSqr {
				b.M_sleepTime = 0.0
				minSleepTime = 0.0
			} else {
				b.M_sleepTime += dt
				minSleepTime = math.Min(minSleepTime, b.M_sleepTime)
			}
		}

		if minSleepTime >= B2_timeToSleep {
			for i := 0; i < island.M_bodyCount; i++ {
				b := island.M_bodies[i]
				b.M_flags &= ^B2Body_Flags.E_awakeFlag
				b.M_linearVelocity.SetZero()
				b.M_angularVelocity = 0.0
			}
		}
	}
}

/// Resolve the contacts of a time of impact sub-step. Joints are not solved
/// and the impulses are not kept for warm starting.
func (island *B2Island) SolveTOI(subStep B2TimeStep) {
	contactSolver := &island.m_contactSolver
	contactSolver.Initialize(subStep, island.M_contacts[:island.M_contactCount])

	// No warm starting needed for TOI contact events.

	// Solve velocity constraints.
	for i := 0; i < subStep.VelocityIterations; i++ {
		contactSolver.SolveVelocityConstraints()
	}

	// Don't store the TOI contact forces for warm starting
	// because they can be quite large.

	dt := subStep.Dt

	// Integrate positions.
	for i := 0; i < island.M_bodyCount; i++ {
		b := island.M_bodies[i]

		if b.IsStatic() {
			continue
		}

		// Store positions for continuous collision.
		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		// Integrate
		b.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(dt, b.M_linearVelocity))
		b.M_sweep.A += dt * b.M_angularVelocity

		// Compute new transform
		b.SynchronizeTransform()
	}

	// Solve position constraints.
	for i := 0; i < subStep.PositionIterations; i++ {
		contactsOkay := contactSolver.SolvePositionConstraints(B2_toiBaumgarte)
		if contactsOkay {
			break
		}
	}

	island.Report(contactSolver.M_constraints)
}

/// Hand the solved impulses of every contact point to the listener.
func (island *B2Island) Report(constraints []B2ContactConstraint) {
	if island.M_listener == nil {
		return
	}

	// One constraint was built for each island contact, in order.
	B2Assert(len(constraints) <= island.M_contactCount)

	cr := &island.m_result

	for i := range constraints {
		c := island.M_contacts[i]
		cc := &constraints[i]

		cr.Fixture1 = c.GetFixtureA()
		cr.Fixture2 = c.GetFixtureB()
		b1 := cr.Fixture1.GetBody()
		manifold := c.GetManifold()

		cr.Normal = manifold.Normal

		for k := 0; k < manifold.PointCount; k++ {
			point := &manifold.Points[k]
			ccp := &cc.Points[k]
			cr.Position = b1.GetWorldPoint(point.LocalPoint1)

			// TOI constraint results are not stored, so get
			// the result from the constraint.
			cr.NormalImpulse = ccp.NormalImpulse
			cr.TangentImpulse = ccp.TangentImpulse
			cr.Id = point.Id

			island.M_listener.Result(cr)
		}
	}
}
