package box2d

import (
	"fmt"
)

/// Mouse joint definition. This requires a world target point,
/// tuning parameters, and the time step.
type B2MouseJointDef struct {
	B2JointDef

	/// The initial world target point. This is assumed
	/// to coincide with the body anchor initially.
	Target B2Vec2

	/// The maximum constraint force that can be exerted
	/// to move the candidate body. Usually you will express
	/// as some multiple of the weight (multiplier * mass * gravity).
	MaxForce float64

	/// The response speed.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2MouseJointDef() B2MouseJointDef {
	res := B2MouseJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_mouseJoint
	res.Target.Set(0.0, 0.0)
	res.MaxForce = 0.0
	res.FrequencyHz = 5.0
	res.DampingRatio = 0.7

	return res
}

/// A mouse joint is used to make a point on a body track a
/// specified world point. This a soft constraint with a maximum
/// force. This allows the constraint to stretch and without
/// applying huge forces.
/// NOTE: this joint is not documented in the manual because it was
/// developed to be used in the testbed. If you want to learn how to
/// use the mouse joint, look at the testbed.
type B2MouseJoint struct {
	*B2Joint

	M_localAnchor  B2Vec2
	M_target       B2Vec2
	M_impulse      B2Vec2
	M_mass         B2Mat22 // effective mass for point-to-point constraint.
	M_C            B2Vec2  // position error
	M_maxForce     float64
	M_frequencyHz  float64
	M_dampingRatio float64
	M_beta         float64
	M_gamma        float64
}

/// The mouse joint does not support dumping.
func (joint *B2MouseJoint) Dump() {
	fmt.Printf("  // mouse joint %d is not dumped\n", joint.M_index)
}

// p = attached point, m = mouse point
// C = p - m
// Cdot = v
//      = v + cross(w, r)
// J = [I r_skew]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

func MakeB2MouseJoint(def *B2MouseJointDef) *B2MouseJoint {
	res := B2MouseJoint{
		B2Joint: MakeB2Joint(def),
	}

	B2Assert(def.Target.IsValid())
	B2Assert(B2IsValid(def.MaxForce) && def.MaxForce >= 0.0)
	B2Assert(B2IsValid(def.FrequencyHz) && def.FrequencyHz >= 0.0)
	B2Assert(B2IsValid(def.DampingRatio) && def.DampingRatio >= 0.0)

	res.M_target = def.Target
	res.M_localAnchor = B2TransformVec2MulT(res.M_bodyB.GetTransform(), res.M_target)

	res.M_maxForce = def.MaxForce
	res.M_impulse.SetZero()

	res.M_frequencyHz = def.FrequencyHz
	res.M_dampingRatio = def.DampingRatio

	res.M_beta = 0.0
	res.M_gamma = 0.0

	return &res
}

func (joint *B2MouseJoint) SetTarget(target B2Vec2) {
	if !joint.M_bodyB.IsAwake() {
		joint.M_bodyB.SetAwake(true)
	}
	joint.M_target = target
}

func (joint B2MouseJoint) GetTarget() B2Vec2 {
	return joint.M_target
}

func (joint *B2MouseJoint) SetMaxForce(force float64) {
	joint.M_maxForce = force
}

func (joint B2MouseJoint) GetMaxForce() float64 {
	return joint.M_maxForce
}

func (joint *B2MouseJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2MouseJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

func (joint *B2MouseJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2MouseJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

func (joint *B2MouseJoint) InitVelocityConstraints(step B2TimeStep) {
	b := joint.M_bodyB

	mass := b.GetMass()

	// Frequency
	omega := 2.0 * B2_pi * joint.M_frequencyHz

	// Damping coefficient
	d := 2.0 * mass * joint.M_dampingRatio * omega

	// Spring stiffness
	k := mass * (omega * omega)

	// magic formulas
	// gamma has units of inverse mass.
	// beta has units of inverse time.
	h := step.Dt
	joint.M_gamma = h * (d + h*k)
	if joint.M_gamma > B2_epsilon {
		joint.M_gamma = 1.0 / joint.M_gamma
	} else {
		joint.M_gamma = 0.0
	}
	joint.M_beta = h * k * joint.M_gamma

	// Compute the effective mass matrix.
	r := b2JointArm(b, joint.M_localAnchor)

	// K    = [(1/m1 + 1/m2) * eye(2) - skew(r1) * invI1 * skew(r1) - skew(r2) * invI2 * skew(r2)]
	//      = [1/m1+1/m2     0    ] + invI1 * [r1.y*r1.y -r1.x*r1.y] + invI2 * [r1.y*r1.y -r1.x*r1.y]
	//        [    0     1/m1+1/m2]           [-r1.x*r1.y r1.x*r1.x]           [-r1.x*r1.y r1.x*r1.x]
	invMass := b.M_invMass
	invI := b.M_invI

	K1 := MakeB2Mat22FromScalars(
		invMass, 0.0,
		0.0, invMass,
	)

	K2 := MakeB2Mat22FromScalars(
		invI*r.Y*r.Y, -invI*r.X*r.Y,
		-invI*r.X*r.Y, invI*r.X*r.X,
	)

	K := B2Mat22Add(K1, K2)
	K.Col1.X += joint.M_gamma
	K.Col2.Y += joint.M_gamma

	joint.M_mass = K.GetInverse()

	joint.M_C = B2Vec2Sub(B2Vec2Add(b.M_sweep.C, r), joint.M_target)

	// Cheat with some damping
	b.M_angularVelocity *= 0.98

	if step.WarmStarting {
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		b.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(invMass, joint.M_impulse))
		b.M_angularVelocity += invI * B2Vec2Cross(r, joint.M_impulse)
	} else {
		joint.M_impulse.SetZero()
	}
}

func (joint *B2MouseJoint) SolveVelocityConstraints(step B2TimeStep) {
	b := joint.M_bodyB

	r := b2JointArm(b, joint.M_localAnchor)

	// Cdot = v + cross(w, r)
	Cdot := B2Vec2Add(b.M_linearVelocity, B2Vec2CrossScalarVector(b.M_angularVelocity, r))
	impulse := B2Vec2Mat22Mul(
		joint.M_mass,
		B2Vec2Add(
			B2Vec2Add(Cdot, B2Vec2MulScalar(joint.M_beta, joint.M_C)),
			B2Vec2MulScalar(joint.M_gamma, joint.M_impulse),
		).OperatorNegate(),
	)

	oldImpulse := joint.M_impulse
	joint.M_impulse.OperatorPlusInplace(impulse)
	maxImpulse := step.Dt * joint.M_maxForce
	if joint.M_impulse.LengthSquared() > maxImpulse*maxImpulse {
		joint.M_impulse.OperatorScalarMulInplace(maxImpulse / joint.M_impulse.Length())
	}
	impulse = B2Vec2Sub(joint.M_impulse, oldImpulse)

	b.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b.M_invMass, impulse))
	b.M_angularVelocity += b.M_invI * B2Vec2Cross(r, impulse)
}

func (joint *B2MouseJoint) SolvePositionConstraints(baumgarte float64) bool {
	return true
}

func (joint B2MouseJoint) GetAnchorA() B2Vec2 {
	return joint.M_target
}

func (joint B2MouseJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor)
}

func (joint B2MouseJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, joint.M_impulse)
}

func (joint B2MouseJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * 0.0
}
