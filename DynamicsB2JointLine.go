package box2d

import (
	"fmt"
	"math"
)

/// Line joint definition. This requires defining a line of
/// motion using an axis and an anchor point. The definition uses local
/// anchor points and a local axis so that the initial configuration
/// can violate the constraint slightly. The joint translation is zero
/// when the local anchor points coincide in world space. Using local
/// anchors and a local axis helps when saving and loading a game.
type B2LineJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The local translation axis in bodyA.
	LocalAxisA B2Vec2

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The lower translation limit, usually in meters.
	LowerTranslation float64

	/// The upper translation limit, usually in meters.
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor force, usually in N.
	MaxMotorForce float64

	/// The desired motor speed in meters per second.
	MotorSpeed float64
}

func MakeB2LineJointDef() B2LineJointDef {
	res := B2LineJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_lineJoint
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.LocalAxisA.Set(1.0, 0.0)
	res.EnableLimit = false
	res.LowerTranslation = 0.0
	res.UpperTranslation = 0.0
	res.EnableMotor = false
	res.MaxMotorForce = 0.0
	res.MotorSpeed = 0.0

	return res
}

func (def *B2LineJointDef) Initialize(b1 *B2Body, b2 *B2Body, anchor B2Vec2, axis B2Vec2) {
	def.BodyA = b1
	def.BodyB = b2
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.LocalAxisA = def.BodyA.GetLocalVector(axis)
}

/// A line joint. This joint provides two degrees of freedom: translation
/// along an axis fixed in bodyA and rotation in the plane. It is a point to
/// line constraint with an optional translation limit and linear motor.
type B2LineJoint struct {
	*B2Joint

	M_localAnchor1 B2Vec2
	M_localAnchor2 B2Vec2
	M_localXAxis1  B2Vec2
	M_localYAxis1  B2Vec2

	M_axis, M_perp B2Vec2
	M_s1, M_s2     float64
	M_a1, M_a2     float64

	M_K       B2Mat22
	M_impulse B2Vec2 // perpendicular and limit impulses.

	M_motorMass    float64
	M_motorImpulse float64

	M_lowerTranslation float64
	M_upperTranslation float64
	M_maxMotorForce    float64
	M_motorSpeed       float64

	M_enableLimit bool
	M_enableMotor bool
	M_limitState  uint8
}

// Linear constraint (point-to-line)
// d = p2 - p1 = x2 + r2 - x1 - r1
// C = dot(perp, d)
// Cdot = dot(d, cross(w1, perp)) + dot(perp, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-perp, -cross(d + r1, perp), perp, cross(r2,perp)]
//
// The limit and motor act along the axis, like the prismatic joint. Rotation
// is free, so the block system is 2x2:
// J = [-uT -s1 uT s2] // linear
//     [-vT -a1 vT a2] // limit

func MakeB2LineJoint(def *B2LineJointDef) *B2LineJoint {
	res := B2LineJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchor1 = def.LocalAnchorA
	res.M_localAnchor2 = def.LocalAnchorB
	res.M_localXAxis1 = def.LocalAxisA
	res.M_localXAxis1.Normalize()
	res.M_localYAxis1 = B2Vec2CrossScalarVector(1.0, res.M_localXAxis1)

	res.M_impulse.SetZero()
	res.M_motorMass = 0.0
	res.M_motorImpulse = 0.0

	res.M_lowerTranslation = def.LowerTranslation
	res.M_upperTranslation = def.UpperTranslation
	res.M_maxMotorForce = def.MaxMotorForce
	res.M_motorSpeed = def.MotorSpeed
	res.M_enableLimit = def.EnableLimit
	res.M_enableMotor = def.EnableMotor
	res.M_limitState = B2LimitState.E_inactiveLimit

	res.M_axis.SetZero()
	res.M_perp.SetZero()

	return &res
}

func (joint B2LineJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchor1
}

func (joint B2LineJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchor2
}

func (joint B2LineJoint) GetLocalAxisA() B2Vec2 {
	return joint.M_localXAxis1
}

func (joint B2LineJoint) GetLimitState() uint8 {
	return joint.M_limitState
}

func (joint *B2LineJoint) InitVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)
	d := B2Vec2Sub(
		B2Vec2Add(b2.M_sweep.C, r2),
		B2Vec2Add(b1.M_sweep.C, r1),
	)

	m1 := b1.M_invMass
	m2 := b2.M_invMass
	i1 := b1.M_invI
	i2 := b2.M_invI

	// Compute motor Jacobian and effective mass.
	{
		joint.M_axis = B2Vec2Mat22Mul(b1.M_xf.R, joint.M_localXAxis1)
		joint.M_a1 = B2Vec2Cross(B2Vec2Add(d, r1), joint.M_axis)
		joint.M_a2 = B2Vec2Cross(r2, joint.M_axis)

		joint.M_motorMass = m1 + m2 + i1*joint.M_a1*joint.M_a1 + i2*joint.M_a2*joint.M_a2
		if joint.M_motorMass > B2_epsilon {
			joint.M_motorMass = 1.0 / joint.M_motorMass
		} else {
			joint.M_motorMass = 0.0
		}
	}

	// Point to line constraint.
	{
		joint.M_perp = B2Vec2Mat22Mul(b1.M_xf.R, joint.M_localYAxis1)

		joint.M_s1 = B2Vec2Cross(B2Vec2Add(d, r1), joint.M_perp)
		joint.M_s2 = B2Vec2Cross(r2, joint.M_perp)

		joint.M_K = joint.blockMass()
	}

	// Compute motor and limit terms.
	jointTranslation := B2Vec2Dot(joint.M_axis, d)
	state, reset := b2JointLimitState(joint.M_enableLimit, jointTranslation, joint.M_lowerTranslation, joint.M_upperTranslation, B2_linearSlop, joint.M_limitState)
	joint.M_limitState = state
	if reset {
		joint.M_impulse.Y = 0.0
	}

	if !joint.M_enableMotor {
		joint.M_motorImpulse = 0.0
	}

	if step.WarmStarting {
		// Account for variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_motorImpulse *= step.DtRatio

		P := B2Vec2Add(
			B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp),
			B2Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Y, joint.M_axis),
		)
		L1 := joint.M_impulse.X*joint.M_s1 + (joint.M_motorImpulse+joint.M_impulse.Y)*joint.M_a1
		L2 := joint.M_impulse.X*joint.M_s2 + (joint.M_motorImpulse+joint.M_impulse.Y)*joint.M_a2

		b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		b1.M_angularVelocity -= i1 * L1

		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		b2.M_angularVelocity += i2 * L2
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}
}

func (joint B2LineJoint) blockMass() B2Mat22 {
	m1 := joint.M_bodyA.M_invMass
	m2 := joint.M_bodyB.M_invMass
	i1 := joint.M_bodyA.M_invI
	i2 := joint.M_bodyB.M_invI

	k11 := m1 + m2 + i1*joint.M_s1*joint.M_s1 + i2*joint.M_s2*joint.M_s2
	k12 := i1*joint.M_s1*joint.M_a1 + i2*joint.M_s2*joint.M_a2
	k22 := m1 + m2 + i1*joint.M_a1*joint.M_a1 + i2*joint.M_a2*joint.M_a2

	return MakeB2Mat22FromScalars(
		k11, k12,
		k12, k22,
	)
}

func (joint *B2LineJoint) SolveVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	v1 := b1.M_linearVelocity
	w1 := b1.M_angularVelocity
	v2 := b2.M_linearVelocity
	w2 := b2.M_angularVelocity

	m1 := b1.M_invMass
	m2 := b2.M_invMass
	i1 := b1.M_invI
	i2 := b2.M_invI

	// Solve linear motor constraint.
	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits {
		Cdot := B2Vec2Dot(joint.M_axis, B2Vec2Sub(v2, v1)) + joint.M_a2*w2 - joint.M_a1*w1
		impulse := joint.M_motorMass * (joint.M_motorSpeed - Cdot)
		oldImpulse := joint.M_motorImpulse
		maxImpulse := step.Dt * joint.M_maxMotorForce
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		P := B2Vec2MulScalar(impulse, joint.M_axis)
		L1 := impulse * joint.M_a1
		L2 := impulse * joint.M_a2

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		w1 -= i1 * L1

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		w2 += i2 * L2
	}

	Cdot1 := B2Vec2Dot(joint.M_perp, B2Vec2Sub(v2, v1)) + joint.M_s2*w2 - joint.M_s1*w1

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		// Solve line and limit constraint in block form.
		Cdot2 := B2Vec2Dot(joint.M_axis, B2Vec2Sub(v2, v1)) + joint.M_a2*w2 - joint.M_a1*w1
		Cdot := MakeB2Vec2(Cdot1, Cdot2)

		f1 := joint.M_impulse
		df := joint.M_K.Solve(Cdot.OperatorNegate())
		joint.M_impulse.OperatorPlusInplace(df)

		if joint.M_limitState == B2LimitState.E_atLowerLimit {
			joint.M_impulse.Y = math.Max(joint.M_impulse.Y, 0.0)
		} else if joint.M_limitState == B2LimitState.E_atUpperLimit {
			joint.M_impulse.Y = math.Min(joint.M_impulse.Y, 0.0)
		}

		// f2(1) = invK(1,1) * (-Cdot(1) - K(1,2) * (f2(2) - f1(2))) + f1(1)
		b := -Cdot1 - (joint.M_impulse.Y-f1.Y)*joint.M_K.Col2.X
		f2r := f1.X
		if joint.M_K.Col1.X != 0.0 {
			f2r = b/joint.M_K.Col1.X + f1.X
		}
		joint.M_impulse.X = f2r

		df = B2Vec2Sub(joint.M_impulse, f1)

		P := B2Vec2Add(
			B2Vec2MulScalar(df.X, joint.M_perp),
			B2Vec2MulScalar(df.Y, joint.M_axis),
		)
		L1 := df.X*joint.M_s1 + df.Y*joint.M_a1
		L2 := df.X*joint.M_s2 + df.Y*joint.M_a2

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		w1 -= i1 * L1

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		w2 += i2 * L2
	} else {
		// Limit is inactive, just solve the line constraint.
		df := 0.0
		if joint.M_K.Col1.X != 0.0 {
			df = -Cdot1 / joint.M_K.Col1.X
		}
		joint.M_impulse.X += df

		P := B2Vec2MulScalar(df, joint.M_perp)
		L1 := df * joint.M_s1
		L2 := df * joint.M_s2

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		w1 -= i1 * L1

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		w2 += i2 * L2
	}

	b1.M_linearVelocity = v1
	b1.M_angularVelocity = w1
	b2.M_linearVelocity = v2
	b2.M_angularVelocity = w2
}

func (joint *B2LineJoint) SolvePositionConstraints(baumgarte float64) bool {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	c1 := b1.M_sweep.C
	a1 := b1.M_sweep.A

	c2 := b2.M_sweep.C
	a2 := b2.M_sweep.A

	// Solve linear limit constraint.
	linearError := 0.0
	active := false
	C2 := 0.0

	R1 := MakeB2Mat22FromAngle(a1)

	r1 := b2JointArmAtSweep(b1, joint.M_localAnchor1)
	r2 := b2JointArmAtSweep(b2, joint.M_localAnchor2)
	d := B2Vec2Sub(B2Vec2Add(c2, r2), B2Vec2Add(c1, r1))

	if joint.M_enableLimit {
		joint.M_axis = B2Vec2Mat22Mul(R1, joint.M_localXAxis1)

		joint.M_a1 = B2Vec2Cross(B2Vec2Add(d, r1), joint.M_axis)
		joint.M_a2 = B2Vec2Cross(r2, joint.M_axis)

		translation := B2Vec2Dot(joint.M_axis, d)
		C2, linearError, active = b2TranslationLimitError(translation, joint.M_lowerTranslation, joint.M_upperTranslation)
	}

	joint.M_perp = B2Vec2Mat22Mul(R1, joint.M_localYAxis1)

	joint.M_s1 = B2Vec2Cross(B2Vec2Add(d, r1), joint.M_perp)
	joint.M_s2 = B2Vec2Cross(r2, joint.M_perp)

	C1 := B2Vec2Dot(joint.M_perp, d)

	linearError = math.Max(linearError, math.Abs(C1))

	var impulse B2Vec2
	if active {
		joint.M_K = joint.blockMass()

		C := MakeB2Vec2(C1, C2)
		impulse = joint.M_K.Solve(C.OperatorNegate())
	} else {
		m1 := b1.M_invMass
		m2 := b2.M_invMass
		i1 := b1.M_invI
		i2 := b2.M_invI

		k11 := m1 + m2 + i1*joint.M_s1*joint.M_s1 + i2*joint.M_s2*joint.M_s2

		impulse1 := 0.0
		if k11 != 0.0 {
			impulse1 = -C1 / k11
		}

		impulse.X = impulse1
		impulse.Y = 0.0
	}

	P := B2Vec2Add(
		B2Vec2MulScalar(impulse.X, joint.M_perp),
		B2Vec2MulScalar(impulse.Y, joint.M_axis),
	)
	L1 := impulse.X*joint.M_s1 + impulse.Y*joint.M_a1
	L2 := impulse.X*joint.M_s2 + impulse.Y*joint.M_a2

	c1.OperatorMinusInplace(B2Vec2MulScalar(b1.M_invMass, P))
	a1 -= b1.M_invI * L1
	c2.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass, P))
	a2 += b2.M_invI * L2

	b1.M_sweep.C = c1
	b1.M_sweep.A = a1
	b2.M_sweep.C = c2
	b2.M_sweep.A = a2
	b1.SynchronizeTransform()
	b2.SynchronizeTransform()

	return linearError <= B2_linearSlop
}

func (joint B2LineJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2LineJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2LineJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(
		inv_dt,
		B2Vec2Add(
			B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp),
			B2Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Y, joint.M_axis),
		),
	)
}

func (joint B2LineJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

/// Get the current joint translation, usually in meters.
func (joint B2LineJoint) GetJointTranslation() float64 {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	p1 := b1.GetWorldPoint(joint.M_localAnchor1)
	p2 := b2.GetWorldPoint(joint.M_localAnchor2)
	axis := b1.GetWorldVector(joint.M_localXAxis1)

	return B2Vec2Dot(B2Vec2Sub(p2, p1), axis)
}

/// Get the current joint translation speed, usually in meters per second.
func (joint B2LineJoint) GetJointSpeed() float64 {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)
	d := B2Vec2Sub(B2Vec2Add(b2.M_sweep.C, r2), B2Vec2Add(b1.M_sweep.C, r1))
	axis := b1.GetWorldVector(joint.M_localXAxis1)

	v1 := b1.M_linearVelocity
	v2 := b2.M_linearVelocity
	w1 := b1.M_angularVelocity
	w2 := b2.M_angularVelocity

	return B2Vec2Dot(d, B2Vec2CrossScalarVector(w1, axis)) +
		B2Vec2Dot(axis, B2Vec2Sub(
			B2Vec2Sub(B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, r2)), v1),
			B2Vec2CrossScalarVector(w1, r1),
		))
}

func (joint B2LineJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2LineJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableLimit = flag
		joint.M_impulse.Y = 0.0
	}
}

func (joint B2LineJoint) GetLowerLimit() float64 {
	return joint.M_lowerTranslation
}

func (joint B2LineJoint) GetUpperLimit() float64 {
	return joint.M_upperTranslation
}

func (joint *B2LineJoint) SetLimits(lower float64, upper float64) {
	B2Assert(lower <= upper)
	if lower != joint.M_lowerTranslation || upper != joint.M_upperTranslation {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_lowerTranslation = lower
		joint.M_upperTranslation = upper
		joint.M_impulse.Y = 0.0
	}
}

func (joint B2LineJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2LineJoint) EnableMotor(flag bool) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_enableMotor = flag
}

func (joint *B2LineJoint) SetMotorSpeed(speed float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_motorSpeed = speed
}

func (joint B2LineJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

func (joint *B2LineJoint) SetMaxMotorForce(force float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_maxMotorForce = force
}

func (joint B2LineJoint) GetMaxMotorForce() float64 {
	return joint.M_maxMotorForce
}

func (joint B2LineJoint) GetMotorForce(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2LineJoint) Dump() {
	joint.dumpBase("B2LineJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchor1.X, joint.M_localAnchor1.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchor2.X, joint.M_localAnchor2.Y)
	fmt.Printf("  jd.LocalAxisA.Set(%.15e, %.15e)\n", joint.M_localXAxis1.X, joint.M_localXAxis1.Y)
	fmt.Printf("  jd.EnableLimit = %t\n", joint.M_enableLimit)
	fmt.Printf("  jd.LowerTranslation = %.15e\n", joint.M_lowerTranslation)
	fmt.Printf("  jd.UpperTranslation = %.15e\n", joint.M_upperTranslation)
	fmt.Printf("  jd.EnableMotor = %t\n", joint.M_enableMotor)
	fmt.Printf("  jd.MotorSpeed = %.15e\n", joint.M_motorSpeed)
	fmt.Printf("  jd.MaxMotorForce = %.15e\n", joint.M_maxMotorForce)
	joint.dumpTail()
}
