package box2d

import (
	"fmt"
	"math"
)

/// Weld joint definition. You need to specify local anchor points
/// where they are attached and the relative body angle. The position
/// of the anchor points is important for computing the reaction torque.
type B2WeldJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// The mass-spring-damper frequency in Hertz. Rotation only.
	/// Disable softness with a value of 0.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2WeldJointDef() B2WeldJointDef {
	res := B2WeldJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_weldJoint
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.ReferenceAngle = 0.0
	res.FrequencyHz = 0.0
	res.DampingRatio = 0.0

	return res
}

/// A weld joint essentially glues two bodies together. A weld joint may
/// distort somewhat because the island constraint solver is approximate.
/// With a frequency the angular part becomes a spring.
type B2WeldJoint struct {
	*B2Joint

	M_localAnchorA   B2Vec2
	M_localAnchorB   B2Vec2
	M_referenceAngle float64

	M_frequencyHz  float64
	M_dampingRatio float64
	M_gamma        float64
	M_bias         float64
	M_angularMass  float64

	M_impulse B2Vec3
	M_mass    B2Mat33 // K, solved each iteration.
}

/// The local anchor point relative to bodyA's origin.
func (joint B2WeldJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint B2WeldJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

/// Get the reference angle.
func (joint B2WeldJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

/// Set/get frequency in Hz.
func (joint *B2WeldJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2WeldJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

/// Set/get damping ratio.
func (joint *B2WeldJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2WeldJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)
//
// Angle constraint
// C = angle2 - angle1 - referenceAngle
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (def *B2WeldJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.ReferenceAngle = def.BodyB.GetAngle() - def.BodyA.GetAngle()
}

func MakeB2WeldJoint(def *B2WeldJointDef) *B2WeldJoint {
	res := B2WeldJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchorA = def.LocalAnchorA
	res.M_localAnchorB = def.LocalAnchorB
	res.M_referenceAngle = def.ReferenceAngle
	res.M_frequencyHz = def.FrequencyHz
	res.M_dampingRatio = def.DampingRatio

	res.M_impulse.SetZero()

	return &res
}

// J = [-I -r1_skew I r2_skew]
//     [ 0       -1 0       1]
// r_skew = [-ry; rx]
//
// K = [ mA+r1y^2*iA+mB+r2y^2*iB,  -r1y*iA*r1x-r2y*iB*r2x,          -r1y*iA-r2y*iB]
//     [  -r1y*iA*r1x-r2y*iB*r2x, mA+r1x^2*iA+mB+r2x^2*iB,           r1x*iA+r2x*iB]
//     [          -r1y*iA-r2y*iB,           r1x*iA+r2x*iB,                   iA+iB]
func b2WeldMass(mA, mB, iA, iB float64, rA, rB B2Vec2) B2Mat33 {
	var K B2Mat33
	K.Col1.X = mA + mB + rA.Y*rA.Y*iA + rB.Y*rB.Y*iB
	K.Col2.X = -rA.Y*rA.X*iA - rB.Y*rB.X*iB
	K.Col3.X = -rA.Y*iA - rB.Y*iB
	K.Col1.Y = K.Col2.X
	K.Col2.Y = mA + mB + rA.X*rA.X*iA + rB.X*rB.X*iB
	K.Col3.Y = rA.X*iA + rB.X*iB
	K.Col1.Z = K.Col3.X
	K.Col2.Z = K.Col3.Y
	K.Col3.Z = iA + iB
	return K
}

func (joint *B2WeldJoint) InitVelocityConstraints(step B2TimeStep) {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	rA := b2JointArm(bA, joint.M_localAnchorA)
	rB := b2JointArm(bB, joint.M_localAnchorB)

	mA := bA.M_invMass
	mB := bB.M_invMass
	iA := bA.M_invI
	iB := bB.M_invI

	joint.M_mass = b2WeldMass(mA, mB, iA, iB, rA, rB)

	if joint.M_frequencyHz > 0.0 {
		invM := iA + iB
		m := 0.0
		if invM > 0.0 {
			m = 1.0 / invM
		}

		C := bB.M_sweep.A - bA.M_sweep.A - joint.M_referenceAngle

		// Frequency
		omega := 2.0 * B2_pi * joint.M_frequencyHz

		// Damping coefficient
		d := 2.0 * m * joint.M_dampingRatio * omega

		// Spring stiffness
		k := m * omega * omega

		// magic formulas
		h := step.Dt
		joint.M_gamma = h * (d + h*k)
		if joint.M_gamma != 0.0 {
			joint.M_gamma = 1.0 / joint.M_gamma
		}
		joint.M_bias = C * h * k * joint.M_gamma

		invM += joint.M_gamma
		joint.M_angularMass = 0.0
		if invM != 0.0 {
			joint.M_angularMass = 1.0 / invM
		}
	} else {
		joint.M_gamma = 0.0
		joint.M_bias = 0.0
		joint.M_angularMass = 0.0
	}

	if step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)

		P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)

		bA.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(mA, P))
		bA.M_angularVelocity -= iA * (B2Vec2Cross(rA, P) + joint.M_impulse.Z)

		bB.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(mB, P))
		bB.M_angularVelocity += iB * (B2Vec2Cross(rB, P) + joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
	}
}

func (joint *B2WeldJoint) SolveVelocityConstraints(step B2TimeStep) {
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

	if joint.M_frequencyHz > 0.0 {
		Cdot2 := wB - wA

		impulse2 := -joint.M_angularMass * (Cdot2 + joint.M_bias + joint.M_gamma*joint.M_impulse.Z)
		joint.M_impulse.Z += impulse2

		wA -= iA * impulse2
		wB += iB * impulse2

		Cdot1 := B2Vec2Sub(B2Vec2Sub(B2Vec2Add(vB, B2Vec2CrossScalarVector(wB, rB)), vA), B2Vec2CrossScalarVector(wA, rA))

		impulse1 := joint.M_mass.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += impulse1.X
		joint.M_impulse.Y += impulse1.Y

		P := impulse1

		vA.OperatorMinusInplace(B2Vec2MulScalar(mA, P))
		wA -= iA * B2Vec2Cross(rA, P)

		vB.OperatorPlusInplace(B2Vec2MulScalar(mB, P))
		wB += iB * B2Vec2Cross(rB, P)
	} else {
		Cdot1 := B2Vec2Sub(B2Vec2Sub(B2Vec2Add(vB, B2Vec2CrossScalarVector(wB, rB)), vA), B2Vec2CrossScalarVector(wA, rA))
		Cdot2 := wB - wA
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := joint.M_mass.Solve33(Cdot.OperatorNegate())
		joint.M_impulse.OperatorPlusInplace(impulse)

		P := MakeB2Vec2(impulse.X, impulse.Y)

		vA.OperatorMinusInplace(B2Vec2MulScalar(mA, P))
		wA -= iA * (B2Vec2Cross(rA, P) + impulse.Z)

		vB.OperatorPlusInplace(B2Vec2MulScalar(mB, P))
		wB += iB * (B2Vec2Cross(rB, P) + impulse.Z)
	}

	bA.M_linearVelocity = vA
	bA.M_angularVelocity = wA
	bB.M_linearVelocity = vB
	bB.M_angularVelocity = wB
}

func (joint *B2WeldJoint) SolvePositionConstraints(baumgarte float64) bool {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	mA := bA.M_invMass
	mB := bB.M_invMass
	iA := bA.M_invI
	iB := bB.M_invI

	rA := b2JointArmAtSweep(bA, joint.M_localAnchorA)
	rB := b2JointArmAtSweep(bB, joint.M_localAnchorB)

	K := b2WeldMass(mA, mB, iA, iB, rA, rB)

	C1 := B2Vec2Sub(
		B2Vec2Add(bB.M_sweep.C, rB),
		B2Vec2Add(bA.M_sweep.C, rA),
	)

	positionError := C1.Length()
	angularError := 0.0

	var impulse B2Vec3
	if joint.M_frequencyHz > 0.0 {
		P := K.Solve22(C1.OperatorNegate())
		impulse.Set(P.X, P.Y, 0.0)
	} else {
		C2 := bB.M_sweep.A - bA.M_sweep.A - joint.M_referenceAngle
		angularError = math.Abs(C2)

		if K.Col3.Z > 0.0 {
			C := MakeB2Vec3(C1.X, C1.Y, C2)
			impulse = K.Solve33(C.OperatorNegate())
		} else {
			P := K.Solve22(C1.OperatorNegate())
			impulse.Set(P.X, P.Y, 0.0)
		}
	}

	P := MakeB2Vec2(impulse.X, impulse.Y)

	bA.M_sweep.C.OperatorMinusInplace(B2Vec2MulScalar(mA, P))
	bA.M_sweep.A -= iA * (B2Vec2Cross(rA, P) + impulse.Z)

	bB.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(mB, P))
	bB.M_sweep.A += iB * (B2Vec2Cross(rB, P) + impulse.Z)

	bA.SynchronizeTransform()
	bB.SynchronizeTransform()

	return positionError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2WeldJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2WeldJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2WeldJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)
	return B2Vec2MulScalar(inv_dt, P)
}

func (joint B2WeldJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Z
}

func (joint *B2WeldJoint) Dump() {
	joint.dumpBase("B2WeldJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchorA.X, joint.M_localAnchorA.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchorB.X, joint.M_localAnchorB.Y)
	fmt.Printf("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	fmt.Printf("  jd.FrequencyHz = %.15e\n", joint.M_frequencyHz)
	fmt.Printf("  jd.DampingRatio = %.15e\n", joint.M_dampingRatio)
	joint.dumpTail()
}
