package box2d

import (
	"fmt"
	"math"
)

// The minimum pulley length keeps one side from reaching zero.
const b2_minPulleyLength = 2.0

/// Pulley joint definition. This requires two ground anchors,
/// two dynamic body anchor points, max lengths for each side,
/// and a pulley ratio.
type B2PulleyJointDef struct {
	B2JointDef

	/// The first ground anchor in world coordinates. This point never moves.
	GroundAnchorA B2Vec2

	/// The second ground anchor in world coordinates. This point never moves.
	GroundAnchorB B2Vec2

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The a reference length for the segment attached to bodyA.
	LengthA float64

	/// The maximum length of the segment attached to bodyA.
	MaxLengthA float64

	/// The a reference length for the segment attached to bodyB.
	LengthB float64

	/// The maximum length of the segment attached to bodyB.
	MaxLengthB float64

	/// The pulley ratio, used to simulate a block-and-tackle.
	Ratio float64
}

func MakeB2PulleyJointDef() B2PulleyJointDef {
	res := B2PulleyJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_pulleyJoint
	res.GroundAnchorA.Set(-1.0, 1.0)
	res.GroundAnchorB.Set(1.0, 1.0)
	res.LocalAnchorA.Set(-1.0, 0.0)
	res.LocalAnchorB.Set(1.0, 0.0)
	res.LengthA = 0.0
	res.MaxLengthA = 0.0
	res.LengthB = 0.0
	res.MaxLengthB = 0.0
	res.Ratio = 1.0
	res.CollideConnected = true

	return res
}

/// Initialize the bodies, anchors, lengths, max lengths, and ratio using the world anchors.
func (def *B2PulleyJointDef) Initialize(bA *B2Body, bB *B2Body, groundA B2Vec2, groundB B2Vec2, anchorA B2Vec2, anchorB B2Vec2, r float64) {
	def.BodyA = bA
	def.BodyB = bB
	def.GroundAnchorA = groundA
	def.GroundAnchorB = groundB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchorA)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchorB)
	dA := B2Vec2Sub(anchorA, groundA)
	def.LengthA = dA.Length()
	dB := B2Vec2Sub(anchorB, groundB)
	def.LengthB = dB.Length()
	def.Ratio = r
	B2Assert(def.Ratio > B2_epsilon)
	C := def.LengthA + def.Ratio*def.LengthB
	def.MaxLengthA = C - def.Ratio*b2_minPulleyLength
	def.MaxLengthB = (C - b2_minPulleyLength) / def.Ratio
}

/// The pulley joint is connected to two bodies and two fixed ground points.
/// The pulley supports a ratio such that:
/// length1 + ratio * length2 <= constant
/// Yes, the force transmitted is scaled by the ratio.
/// The pulley also enforces a maximum length limit on both sides. This is
/// useful to prevent one side of the pulley hitting the top.
type B2PulleyJoint struct {
	*B2Joint

	M_groundAnchor1 B2Vec2
	M_groundAnchor2 B2Vec2
	M_localAnchor1  B2Vec2
	M_localAnchor2  B2Vec2

	M_u1 B2Vec2
	M_u2 B2Vec2

	M_constant float64
	M_ratio    float64

	M_maxLength1 float64
	M_maxLength2 float64

	// Effective masses
	M_pulleyMass float64
	M_limitMass1 float64
	M_limitMass2 float64

	// Impulses for accumulation/warm starting.
	M_impulse       float64
	M_limitImpulse1 float64
	M_limitImpulse2 float64

	M_state       uint8
	M_limitState1 uint8
	M_limitState2 uint8
}

// Pulley:
// length1 = norm(p1 - s1)
// length2 = norm(p2 - s2)
// C0 = (length1 + ratio * length2)_initial
// C = C0 - (length1 + ratio * length2) >= 0
// u1 = (p1 - s1) / norm(p1 - s1)
// u2 = (p2 - s2) / norm(p2 - s2)
// Cdot = -dot(u1, v1 + cross(w1, r1)) - ratio * dot(u2, v2 + cross(w2, r2))
// J = -[u1 cross(r1, u1) ratio * u2  ratio * cross(r2, u2)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u1)^2 + ratio^2 * (invMass2 + invI2 * cross(r2, u2)^2)
//
// Limit:
// C = maxLength - length
// u = (p - s) / norm(p - s)
// Cdot = -dot(u, v + cross(w, r))
// K = invMass + invI * cross(r, u)^2
// 0 <= impulse

func MakeB2PulleyJoint(def *B2PulleyJointDef) *B2PulleyJoint {
	res := B2PulleyJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_groundAnchor1 = def.GroundAnchorA
	res.M_groundAnchor2 = def.GroundAnchorB
	res.M_localAnchor1 = def.LocalAnchorA
	res.M_localAnchor2 = def.LocalAnchorB

	B2Assert(def.Ratio != 0.0)
	res.M_ratio = def.Ratio

	res.M_constant = def.LengthA + res.M_ratio*def.LengthB

	res.M_maxLength1 = math.Min(def.MaxLengthA, res.M_constant-res.M_ratio*b2_minPulleyLength)
	res.M_maxLength2 = math.Min(def.MaxLengthB, (res.M_constant-b2_minPulleyLength)/res.M_ratio)

	res.M_impulse = 0.0
	res.M_limitImpulse1 = 0.0
	res.M_limitImpulse2 = 0.0

	res.M_state = B2LimitState.E_inactiveLimit
	res.M_limitState1 = B2LimitState.E_inactiveLimit
	res.M_limitState2 = B2LimitState.E_inactiveLimit

	return &res
}

// Unit direction from s to p and the distance between them.
func b2PulleyAxis(p, s B2Vec2) (B2Vec2, float64) {
	u := B2Vec2Sub(p, s)
	length := u.Length()
	if length > B2_linearSlop {
		u.OperatorScalarMulInplace(1.0 / length)
	} else {
		u.SetZero()
	}
	return u, length
}

func b2PulleyInvMass(invMass, invI, crossRU float64) float64 {
	k := invMass + invI*crossRU*crossRU
	if k > B2_epsilon {
		return 1.0 / k
	}
	return 0.0
}

func (joint *B2PulleyJoint) InitVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	p1 := B2Vec2Add(b1.M_sweep.C, r1)
	p2 := B2Vec2Add(b2.M_sweep.C, r2)

	// Get the pulley axes.
	var length1, length2 float64
	joint.M_u1, length1 = b2PulleyAxis(p1, joint.M_groundAnchor1)
	joint.M_u2, length2 = b2PulleyAxis(p2, joint.M_groundAnchor2)

	C := joint.M_constant - length1 - joint.M_ratio*length2
	if C > 0.0 {
		joint.M_state = B2LimitState.E_inactiveLimit
		joint.M_impulse = 0.0
	} else {
		joint.M_state = B2LimitState.E_atUpperLimit
	}

	if length1 < joint.M_maxLength1 {
		joint.M_limitState1 = B2LimitState.E_inactiveLimit
		joint.M_limitImpulse1 = 0.0
	} else {
		joint.M_limitState1 = B2LimitState.E_atUpperLimit
	}

	if length2 < joint.M_maxLength2 {
		joint.M_limitState2 = B2LimitState.E_inactiveLimit
		joint.M_limitImpulse2 = 0.0
	} else {
		joint.M_limitState2 = B2LimitState.E_atUpperLimit
	}

	// Compute effective mass.
	cr1u1 := B2Vec2Cross(r1, joint.M_u1)
	cr2u2 := B2Vec2Cross(r2, joint.M_u2)

	k1 := b1.M_invMass + b1.M_invI*cr1u1*cr1u1
	k2 := b2.M_invMass + b2.M_invI*cr2u2*cr2u2
	joint.M_limitMass1 = b2PulleyInvMass(b1.M_invMass, b1.M_invI, cr1u1)
	joint.M_limitMass2 = b2PulleyInvMass(b2.M_invMass, b2.M_invI, cr2u2)

	joint.M_pulleyMass = k1 + joint.M_ratio*joint.M_ratio*k2
	if joint.M_pulleyMass > B2_epsilon {
		joint.M_pulleyMass = 1.0 / joint.M_pulleyMass
	} else {
		joint.M_pulleyMass = 0.0
	}

	if step.WarmStarting {
		// Scale impulses to support variable time steps.
		joint.M_impulse *= step.DtRatio
		joint.M_limitImpulse1 *= step.DtRatio
		joint.M_limitImpulse2 *= step.DtRatio

		// Warm starting.
		P1 := B2Vec2MulScalar(-(joint.M_impulse + joint.M_limitImpulse1), joint.M_u1)
		P2 := B2Vec2MulScalar(-(joint.M_ratio*joint.M_impulse + joint.M_limitImpulse2), joint.M_u2)
		b1.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass, P1))
		b1.M_angularVelocity += b1.M_invI * B2Vec2Cross(r1, P1)
		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P2))
		b2.M_angularVelocity += b2.M_invI * B2Vec2Cross(r2, P2)
	} else {
		joint.M_impulse = 0.0
		joint.M_limitImpulse1 = 0.0
		joint.M_limitImpulse2 = 0.0
	}
}

func (joint *B2PulleyJoint) SolveVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	if joint.M_state == B2LimitState.E_atUpperLimit {
		v1 := B2Vec2Add(b1.M_linearVelocity, B2Vec2CrossScalarVector(b1.M_angularVelocity, r1))
		v2 := B2Vec2Add(b2.M_linearVelocity, B2Vec2CrossScalarVector(b2.M_angularVelocity, r2))

		Cdot := -B2Vec2Dot(joint.M_u1, v1) - joint.M_ratio*B2Vec2Dot(joint.M_u2, v2)
		impulse := joint.M_pulleyMass * (-Cdot)
		oldImpulse := joint.M_impulse
		joint.M_impulse = math.Max(0.0, joint.M_impulse+impulse)
		impulse = joint.M_impulse - oldImpulse

		P1 := B2Vec2MulScalar(-impulse, joint.M_u1)
		P2 := B2Vec2MulScalar(-joint.M_ratio*impulse, joint.M_u2)
		b1.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass, P1))
		b1.M_angularVelocity += b1.M_invI * B2Vec2Cross(r1, P1)
		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P2))
		b2.M_angularVelocity += b2.M_invI * B2Vec2Cross(r2, P2)
	}

	if joint.M_limitState1 == B2LimitState.E_atUpperLimit {
		v1 := B2Vec2Add(b1.M_linearVelocity, B2Vec2CrossScalarVector(b1.M_angularVelocity, r1))

		Cdot := -B2Vec2Dot(joint.M_u1, v1)
		impulse := -joint.M_limitMass1 * Cdot
		oldImpulse := joint.M_limitImpulse1
		joint.M_limitImpulse1 = math.Max(0.0, joint.M_limitImpulse1+impulse)
		impulse = joint.M_limitImpulse1 - oldImpulse

		P1 := B2Vec2MulScalar(-impulse, joint.M_u1)
		b1.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass, P1))
		b1.M_angularVelocity += b1.M_invI * B2Vec2Cross(r1, P1)
	}

	if joint.M_limitState2 == B2LimitState.E_atUpperLimit {
		v2 := B2Vec2Add(b2.M_linearVelocity, B2Vec2CrossScalarVector(b2.M_angularVelocity, r2))

		Cdot := -B2Vec2Dot(joint.M_u2, v2)
		impulse := -joint.M_limitMass2 * Cdot
		oldImpulse := joint.M_limitImpulse2
		joint.M_limitImpulse2 = math.Max(0.0, joint.M_limitImpulse2+impulse)
		impulse = joint.M_limitImpulse2 - oldImpulse

		P2 := B2Vec2MulScalar(-impulse, joint.M_u2)
		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P2))
		b2.M_angularVelocity += b2.M_invI * B2Vec2Cross(r2, P2)
	}
}

func (joint *B2PulleyJoint) SolvePositionConstraints(baumgarte float64) bool {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	linearError := 0.0

	if joint.M_state == B2LimitState.E_atUpperLimit {
		r1 := b2JointArmAtSweep(b1, joint.M_localAnchor1)
		r2 := b2JointArmAtSweep(b2, joint.M_localAnchor2)

		p1 := B2Vec2Add(b1.M_sweep.C, r1)
		p2 := B2Vec2Add(b2.M_sweep.C, r2)

		// Get the pulley axes.
		var length1, length2 float64
		joint.M_u1, length1 = b2PulleyAxis(p1, joint.M_groundAnchor1)
		joint.M_u2, length2 = b2PulleyAxis(p2, joint.M_groundAnchor2)

		C := joint.M_constant - length1 - joint.M_ratio*length2
		linearError = math.Max(linearError, -C)

		C = B2FloatClamp(C+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
		impulse := -joint.M_pulleyMass * C

		P1 := B2Vec2MulScalar(-impulse, joint.M_u1)
		P2 := B2Vec2MulScalar(-joint.M_ratio*impulse, joint.M_u2)

		b1.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass, P1))
		b1.M_sweep.A += b1.M_invI * B2Vec2Cross(r1, P1)
		b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P2))
		b2.M_sweep.A += b2.M_invI * B2Vec2Cross(r2, P2)

		b1.SynchronizeTransform()
		b2.SynchronizeTransform()
	}

	if joint.M_limitState1 == B2LimitState.E_atUpperLimit {
		r1 := b2JointArmAtSweep(b1, joint.M_localAnchor1)
		p1 := B2Vec2Add(b1.M_sweep.C, r1)

		var length1 float64
		joint.M_u1, length1 = b2PulleyAxis(p1, joint.M_groundAnchor1)

		C := joint.M_maxLength1 - length1
		linearError = math.Max(linearError, -C)
		C = B2FloatClamp(C+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
		impulse := -joint.M_limitMass1 * C

		P1 := B2Vec2MulScalar(-impulse, joint.M_u1)
		b1.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass, P1))
		b1.M_sweep.A += b1.M_invI * B2Vec2Cross(r1, P1)

		b1.SynchronizeTransform()
	}

	if joint.M_limitState2 == B2LimitState.E_atUpperLimit {
		r2 := b2JointArmAtSweep(b2, joint.M_localAnchor2)
		p2 := B2Vec2Add(b2.M_sweep.C, r2)

		var length2 float64
		joint.M_u2, length2 = b2PulleyAxis(p2, joint.M_groundAnchor2)

		C := joint.M_maxLength2 - length2
		linearError = math.Max(linearError, -C)
		C = B2FloatClamp(C+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
		impulse := -joint.M_limitMass2 * C

		P2 := B2Vec2MulScalar(-impulse, joint.M_u2)
		b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P2))
		b2.M_sweep.A += b2.M_invI * B2Vec2Cross(r2, P2)

		b2.SynchronizeTransform()
	}

	return linearError < B2_linearSlop
}

func (joint B2PulleyJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2PulleyJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2PulleyJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	P := B2Vec2MulScalar(joint.M_impulse, joint.M_u2)
	return B2Vec2MulScalar(inv_dt, P)
}

func (joint B2PulleyJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint B2PulleyJoint) GetGroundAnchorA() B2Vec2 {
	return joint.M_groundAnchor1
}

func (joint B2PulleyJoint) GetGroundAnchorB() B2Vec2 {
	return joint.M_groundAnchor2
}

/// Get the current length of the segment attached to bodyA.
func (joint B2PulleyJoint) GetLength1() float64 {
	p := joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
	return B2Vec2Distance(p, joint.M_groundAnchor1)
}

/// Get the current length of the segment attached to bodyB.
func (joint B2PulleyJoint) GetLength2() float64 {
	p := joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
	return B2Vec2Distance(p, joint.M_groundAnchor2)
}

func (joint B2PulleyJoint) GetRatio() float64 {
	return joint.M_ratio
}

func (joint *B2PulleyJoint) Dump() {
	joint.dumpBase("B2PulleyJointDef")
	fmt.Printf("  jd.GroundAnchorA.Set(%.15e, %.15e)\n", joint.M_groundAnchor1.X, joint.M_groundAnchor1.Y)
	fmt.Printf("  jd.GroundAnchorB.Set(%.15e, %.15e)\n", joint.M_groundAnchor2.X, joint.M_groundAnchor2.Y)
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchor1.X, joint.M_localAnchor1.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchor2.X, joint.M_localAnchor2.Y)
	fmt.Printf("  jd.LengthA = %.15e\n", joint.GetLength1())
	fmt.Printf("  jd.MaxLengthA = %.15e\n", joint.M_maxLength1)
	fmt.Printf("  jd.LengthB = %.15e\n", joint.GetLength2())
	fmt.Printf("  jd.MaxLengthB = %.15e\n", joint.M_maxLength2)
	fmt.Printf("  jd.Ratio = %.15e\n", joint.M_ratio)
	joint.dumpTail()
}
