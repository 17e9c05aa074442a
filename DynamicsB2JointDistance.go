package box2d

import (
	"fmt"
	"math"
)

/// Distance joint definition. This requires defining an
/// anchor point on both bodies and the non-zero length of the
/// distance joint. The definition uses local anchor points
/// so that the initial configuration can violate the constraint
/// slightly. This helps when saving and loading a game.
/// @warning Do not use a zero or short length.
type B2DistanceJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The natural length between the anchor points.
	Length float64

	/// The mass-spring-damper frequency in Hertz. A value of 0
	/// disables softness.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2DistanceJointDef() B2DistanceJointDef {
	res := B2DistanceJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_distanceJoint
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.Length = 1.0
	res.FrequencyHz = 0.0
	res.DampingRatio = 0.0

	return res
}

/// Initialize the bodies, anchors, and length using the world anchors.
func (def *B2DistanceJointDef) Initialize(b1 *B2Body, b2 *B2Body, anchor1 B2Vec2, anchor2 B2Vec2) {
	def.BodyA = b1
	def.BodyB = b2
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor1)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor2)
	d := B2Vec2Sub(anchor2, anchor1)
	def.Length = d.Length()
}

/// A distance joint constrains two points on two bodies
/// to remain at a fixed distance from each other. You can view
/// this as a massless, rigid rod. With a frequency it acts as a spring.
type B2DistanceJoint struct {
	*B2Joint

	M_localAnchor1 B2Vec2
	M_localAnchor2 B2Vec2
	M_u            B2Vec2
	M_frequencyHz  float64
	M_dampingRatio float64
	M_gamma        float64
	M_bias         float64
	M_impulse      float64
	M_mass         float64 // effective mass for the constraint.
	M_length       float64
}

func (joint B2DistanceJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchor1
}

func (joint B2DistanceJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchor2
}

func (joint *B2DistanceJoint) SetLength(length float64) {
	joint.M_length = length
}

func (joint B2DistanceJoint) GetLength() float64 {
	return joint.M_length
}

func (joint *B2DistanceJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2DistanceJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

func (joint *B2DistanceJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2DistanceJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

// C = norm(p2 - p1) - L
// u = (p2 - p1) / norm(p2 - p1)
// Cdot = dot(u, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-u -cross(r1, u) u cross(r2, u)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u)^2 + invMass2 + invI2 * cross(r2, u)^2

func MakeB2DistanceJoint(def *B2DistanceJointDef) *B2DistanceJoint {
	res := B2DistanceJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchor1 = def.LocalAnchorA
	res.M_localAnchor2 = def.LocalAnchorB
	res.M_length = def.Length
	res.M_frequencyHz = def.FrequencyHz
	res.M_dampingRatio = def.DampingRatio
	res.M_impulse = 0.0
	res.M_gamma = 0.0
	res.M_bias = 0.0

	return &res
}

func (joint *B2DistanceJoint) InitVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	// Compute the effective mass matrix.
	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)
	joint.M_u = B2Vec2Sub(
		B2Vec2Add(b2.M_sweep.C, r2),
		B2Vec2Add(b1.M_sweep.C, r1),
	)

	// Handle singularity.
	length := joint.M_u.Length()
	if length > B2_linearSlop {
		joint.M_u.OperatorScalarMulInplace(1.0 / length)
	} else {
		joint.M_u.Set(0.0, 0.0)
	}

	cr1u := B2Vec2Cross(r1, joint.M_u)
	cr2u := B2Vec2Cross(r2, joint.M_u)
	invMass := b1.M_invMass + b1.M_invI*cr1u*cr1u + b2.M_invMass + b2.M_invI*cr2u*cr2u

	joint.M_mass = 0.0
	if invMass != 0.0 {
		joint.M_mass = 1.0 / invMass
	}

	if joint.M_frequencyHz > 0.0 {
		C := length - joint.M_length

		// Frequency
		omega := 2.0 * B2_pi * joint.M_frequencyHz

		// Damping coefficient
		d := 2.0 * joint.M_mass * joint.M_dampingRatio * omega

		// Spring stiffness
		k := joint.M_mass * omega * omega

		// magic formulas
		dt := step.Dt
		joint.M_gamma = dt * (d + dt*k)
		if joint.M_gamma != 0.0 {
			joint.M_gamma = 1.0 / joint.M_gamma
		}
		joint.M_bias = C * dt * k * joint.M_gamma

		invMass += joint.M_gamma
		joint.M_mass = 0.0
		if invMass != 0.0 {
			joint.M_mass = 1.0 / invMass
		}
	} else {
		joint.M_gamma = 0.0
		joint.M_bias = 0.0
	}

	if step.WarmStarting {
		// Scale the impulse to support a variable time step.
		joint.M_impulse *= step.DtRatio

		P := B2Vec2MulScalar(joint.M_impulse, joint.M_u)
		b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(b1.M_invMass, P))
		b1.M_angularVelocity -= b1.M_invI * B2Vec2Cross(r1, P)
		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P))
		b2.M_angularVelocity += b2.M_invI * B2Vec2Cross(r2, P)
	} else {
		joint.M_impulse = 0.0
	}
}

func (joint *B2DistanceJoint) SolveVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	// Cdot = dot(u, v + cross(w, r))
	v1 := B2Vec2Add(b1.M_linearVelocity, B2Vec2CrossScalarVector(b1.M_angularVelocity, r1))
	v2 := B2Vec2Add(b2.M_linearVelocity, B2Vec2CrossScalarVector(b2.M_angularVelocity, r2))
	Cdot := B2Vec2Dot(joint.M_u, B2Vec2Sub(v2, v1))

	impulse := -joint.M_mass * (Cdot + joint.M_bias + joint.M_gamma*joint.M_impulse)
	joint.M_impulse += impulse

	P := B2Vec2MulScalar(impulse, joint.M_u)
	b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(b1.M_invMass, P))
	b1.M_angularVelocity -= b1.M_invI * B2Vec2Cross(r1, P)
	b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P))
	b2.M_angularVelocity += b2.M_invI * B2Vec2Cross(r2, P)
}

func (joint *B2DistanceJoint) SolvePositionConstraints(baumgarte float64) bool {
	if joint.M_frequencyHz > 0.0 {
		// There is no position correction for soft distance constraints.
		return true
	}

	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	d := B2Vec2Sub(
		B2Vec2Add(b2.M_sweep.C, r2),
		B2Vec2Add(b1.M_sweep.C, r1),
	)

	length := d.Normalize()
	C := length - joint.M_length
	C = B2FloatClamp(C, -B2_maxLinearCorrection, B2_maxLinearCorrection)

	impulse := -joint.M_mass * C
	joint.M_u = d
	P := B2Vec2MulScalar(impulse, joint.M_u)

	b1.M_sweep.C.OperatorMinusInplace(B2Vec2MulScalar(b1.M_invMass, P))
	b1.M_sweep.A -= b1.M_invI * B2Vec2Cross(r1, P)
	b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P))
	b2.M_sweep.A += b2.M_invI * B2Vec2Cross(r2, P)

	b1.SynchronizeTransform()
	b2.SynchronizeTransform()

	return math.Abs(C) < B2_linearSlop
}

func (joint B2DistanceJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2DistanceJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2DistanceJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar((inv_dt * joint.M_impulse), joint.M_u)
}

func (joint B2DistanceJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint B2DistanceJoint) Dump() {
	joint.dumpBase("B2DistanceJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchor1.X, joint.M_localAnchor1.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchor2.X, joint.M_localAnchor2.Y)
	fmt.Printf("  jd.Length = %.15e\n", joint.M_length)
	fmt.Printf("  jd.FrequencyHz = %.15e\n", joint.M_frequencyHz)
	fmt.Printf("  jd.DampingRatio = %.15e\n", joint.M_dampingRatio)
	joint.dumpTail()
}
