package box2d

import (
	"fmt"
)

/// Friction joint definition.
type B2FrictionJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The maximum friction force in N.
	MaxForce float64

	/// The maximum friction torque in N-m.
	MaxTorque float64
}

func MakeB2FrictionJointDef() B2FrictionJointDef {
	res := B2FrictionJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_frictionJoint
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.MaxForce = 0.0
	res.MaxTorque = 0.0

	return res
}

/// Friction joint. This is used for top-down friction.
/// It provides 2D translational friction and angular friction.
type B2FrictionJoint struct {
	*B2Joint

	M_localAnchorA B2Vec2
	M_localAnchorB B2Vec2

	M_linearImpulse  B2Vec2
	M_angularImpulse float64
	M_maxForce       float64
	M_maxTorque      float64

	M_linearMass  B2Mat22
	M_angularMass float64
}

/// The local anchor point relative to bodyA's origin.
func (joint B2FrictionJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint B2FrictionJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

// Point-to-point constraint
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Angle constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (joint *B2FrictionJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	joint.BodyA = bA
	joint.BodyB = bB
	joint.LocalAnchorA = joint.BodyA.GetLocalPoint(anchor)
	joint.LocalAnchorB = joint.BodyB.GetLocalPoint(anchor)
}

func MakeB2FrictionJoint(def *B2FrictionJointDef) *B2FrictionJoint {
	res := B2FrictionJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchorA = def.LocalAnchorA
	res.M_localAnchorB = def.LocalAnchorB

	res.M_linearImpulse.SetZero()
	res.M_angularImpulse = 0.0

	res.M_maxForce = def.MaxForce
	res.M_maxTorque = def.MaxTorque

	return &res
}

func (joint *B2FrictionJoint) InitVelocityConstraints(step B2TimeStep) {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	// Compute the effective mass matrix.
	rA := b2JointArm(bA, joint.M_localAnchorA)
	rB := b2JointArm(bB, joint.M_localAnchorB)

	// J = [-I -r1_skew I r2_skew]
	//     [ 0       -1 0       1]
	// r_skew = [-ry; rx]

	// K = [ mA+r1y^2*iA+mB+r2y^2*iB,  -r1y*iA*r1x-r2y*iB*r2x]
	//     [  -r1y*iA*r1x-r2y*iB*r2x, mA+r1x^2*iA+mB+r2x^2*iB]

	mA := bA.M_invMass
	mB := bB.M_invMass
	iA := bA.M_invI
	iB := bB.M_invI

	k11 := mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
	k12 := -iA*rA.X*rA.Y - iB*rB.X*rB.Y
	k22 := mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X

	K := MakeB2Mat22FromScalars(
		k11, k12,
		k12, k22,
	)

	joint.M_linearMass = K.GetInverse()

	joint.M_angularMass = iA + iB
	if joint.M_angularMass > 0.0 {
		joint.M_angularMass = 1.0 / joint.M_angularMass
	}

	if step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_linearImpulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_angularImpulse *= step.DtRatio

		P := joint.M_linearImpulse
		bA.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(mA, P))
		bA.M_angularVelocity -= iA * (B2Vec2Cross(rA, P) + joint.M_angularImpulse)
		bB.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(mB, P))
		bB.M_angularVelocity += iB * (B2Vec2Cross(rB, P) + joint.M_angularImpulse)
	} else {
		joint.M_linearImpulse.SetZero()
		joint.M_angularImpulse = 0.0
	}
}

func (joint *B2FrictionJoint) SolveVelocityConstraints(step B2TimeStep) {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	vA := bA.M_linearVelocity
	wA := bA.M_angularVelocity
	vB := bB.M_linearVelocity
	wB := bB.M_angularVelocity

	mA := bA.M_invMass
	mB := bB.M_invMass
	iA := bA.M_invI
	iB := bB.M_invI

	rA := b2JointArm(bA, joint.M_localAnchorA)
	rB := b2JointArm(bB, joint.M_localAnchorB)

	h := step.Dt

	// Solve angular friction
	{
		Cdot := wB - wA
		impulse := -joint.M_angularMass * Cdot

		oldImpulse := joint.M_angularImpulse
		maxImpulse := h * joint.M_maxTorque
		joint.M_angularImpulse = B2FloatClamp(joint.M_angularImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_angularImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse
	}

	// Solve linear friction
	{
		Cdot := B2Vec2Sub(B2Vec2Sub(B2Vec2Add(vB, B2Vec2CrossScalarVector(wB, rB)), vA), B2Vec2CrossScalarVector(wA, rA))

		impulse := B2Vec2Mat22Mul(joint.M_linearMass, Cdot).OperatorNegate()
		oldImpulse := joint.M_linearImpulse
		joint.M_linearImpulse.OperatorPlusInplace(impulse)

		maxImpulse := h * joint.M_maxForce

		if joint.M_linearImpulse.LengthSquared() > maxImpulse*maxImpulse {
			joint.M_linearImpulse.Normalize()
			joint.M_linearImpulse.OperatorScalarMulInplace(maxImpulse)
		}

		impulse = B2Vec2Sub(joint.M_linearImpulse, oldImpulse)

		vA.OperatorMinusInplace(B2Vec2MulScalar(mA, impulse))
		wA -= iA * B2Vec2Cross(rA, impulse)

		vB.OperatorPlusInplace(B2Vec2MulScalar(mB, impulse))
		wB += iB * B2Vec2Cross(rB, impulse)
	}

	bA.M_linearVelocity = vA
	bA.M_angularVelocity = wA
	bB.M_linearVelocity = vB
	bB.M_angularVelocity = wB
}

func (joint *B2FrictionJoint) SolvePositionConstraints(baumgarte float64) bool {
	return true
}

func (joint B2FrictionJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2FrictionJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2FrictionJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, joint.M_linearImpulse)
}

func (joint B2FrictionJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_angularImpulse
}

func (joint *B2FrictionJoint) SetMaxForce(force float64) {
	B2Assert(B2IsValid(force) && force >= 0.0)
	joint.M_maxForce = force
}

func (joint B2FrictionJoint) GetMaxForce() float64 {
	return joint.M_maxForce
}

func (joint *B2FrictionJoint) SetMaxTorque(torque float64) {
	B2Assert(B2IsValid(torque) && torque >= 0.0)
	joint.M_maxTorque = torque
}

func (joint B2FrictionJoint) GetMaxTorque() float64 {
	return joint.M_maxTorque
}

func (joint *B2FrictionJoint) Dump() {
	joint.dumpBase("B2FrictionJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchorA.X, joint.M_localAnchorA.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchorB.X, joint.M_localAnchorB.Y)
	fmt.Printf("  jd.MaxForce = %.15e\n", joint.M_maxForce)
	fmt.Printf("  jd.MaxTorque = %.15e\n", joint.M_maxTorque)
	joint.dumpTail()
}
