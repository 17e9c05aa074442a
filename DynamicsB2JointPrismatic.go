package box2d

import (
	"fmt"
	"math"
)

/// Prismatic joint definition. This requires defining a line of
/// motion using an axis and an anchor point. The definition uses local
/// anchor points and a local axis so that the initial configuration
/// can violate the constraint slightly. The joint translation is zero
/// when the local anchor points coincide in world space. Using local
/// anchors and a local axis helps when saving and loading a game.
type B2PrismaticJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The local translation unit axis in bodyA.
	LocalAxisA B2Vec2

	/// The constrained angle between the bodies: bodyB_angle - bodyA_angle.
	ReferenceAngle float64

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The lower translation limit, usually in meters.
	LowerTranslation float64

	/// The upper translation limit, usually in meters.
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor torque, usually in N-m.
	MaxMotorForce float64

	/// The desired motor speed in radians per second.
	MotorSpeed float64
}

func MakeB2PrismaticJointDef() B2PrismaticJointDef {
	res := B2PrismaticJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_prismaticJoint
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.LocalAxisA.Set(1.0, 0.0)
	res.ReferenceAngle = 0.0
	res.EnableLimit = false
	res.LowerTranslation = 0.0
	res.UpperTranslation = 0.0
	res.EnableMotor = false
	res.MaxMotorForce = 0.0
	res.MotorSpeed = 0.0

	return res
}

/// A prismatic joint. This joint provides one degree of freedom: translation
/// along an axis fixed in bodyA. Relative rotation is prevented. You can
/// use a joint limit to restrict the range of motion and a joint motor to
/// drive the motion or to model joint friction.
type B2PrismaticJoint struct {
	*B2Joint

	M_localAnchor1   B2Vec2
	M_localAnchor2   B2Vec2
	M_localXAxis1    B2Vec2
	M_localYAxis1    B2Vec2
	M_referenceAngle float64

	M_axis, M_perp B2Vec2
	M_s1, M_s2     float64
	M_a1, M_a2     float64

	M_K       B2Mat33
	M_impulse B2Vec3

	M_motorMass    float64 // effective mass for motor/limit translational constraint.
	M_motorImpulse float64

	M_lowerTranslation float64
	M_upperTranslation float64
	M_maxMotorForce    float64
	M_motorSpeed       float64

	M_enableLimit bool
	M_enableMotor bool
	M_limitState  uint8
}

/// The local anchor point relative to bodyA's origin.
func (joint B2PrismaticJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchor1
}

/// The local anchor point relative to bodyB's origin.
func (joint B2PrismaticJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchor2
}

/// The local joint axis relative to bodyA.
func (joint B2PrismaticJoint) GetLocalAxisA() B2Vec2 {
	return joint.M_localXAxis1
}

/// Get the reference angle.
func (joint B2PrismaticJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

func (joint B2PrismaticJoint) GetMaxMotorForce() float64 {
	return joint.M_maxMotorForce
}

func (joint B2PrismaticJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

func (joint B2PrismaticJoint) GetLimitState() uint8 {
	return joint.M_limitState
}

// Linear constraint (point-to-line)
// d = p2 - p1 = x2 + r2 - x1 - r1
// C = dot(perp, d)
// Cdot = dot(d, cross(w1, perp)) + dot(perp, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-perp, -cross(d + r1, perp), perp, cross(r2,perp)]
//
// Angular constraint
// C = a2 - a1 + a_initial
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
//
// Motor/Limit linear constraint
// C = dot(ax1, d)
// J = [-ax1 -cross(d+r1,ax1) ax1 cross(r2,ax1)]
//
// The block solver stacks the three rows so the limit stays stiff:
// J = [-uT -s1 uT s2] // linear
//     [0   -1   0  1] // angular
//     [-vT -a1 vT a2] // limit
// u = perp, v = axis
// s1 = cross(d + r1, u), s2 = cross(r2, u)
// a1 = cross(d + r1, v), a2 = cross(r2, v)
//
// K * df = -Cdot, then the limit impulse is clamped and
// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)

func (def *B2PrismaticJointDef) Initialize(b1 *B2Body, b2 *B2Body, anchor B2Vec2, axis B2Vec2) {
	def.BodyA = b1
	def.BodyB = b2
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.LocalAxisA = def.BodyA.GetLocalVector(axis)
	def.ReferenceAngle = def.BodyB.GetAngle() - def.BodyA.GetAngle()
}

func MakeB2PrismaticJoint(def *B2PrismaticJointDef) *B2PrismaticJoint {
	res := B2PrismaticJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchor1 = def.LocalAnchorA
	res.M_localAnchor2 = def.LocalAnchorB
	res.M_localXAxis1 = def.LocalAxisA
	res.M_localXAxis1.Normalize()
	res.M_localYAxis1 = B2Vec2CrossScalarVector(1.0, res.M_localXAxis1)
	res.M_referenceAngle = def.ReferenceAngle

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

// Position error of a translation limit. C2 is the clamped correction along
// the axis, active reports whether the limit row takes part in the solve.
func b2TranslationLimitError(translation, lower, upper float64) (C2 float64, linearError float64, active bool) {
	if math.Abs(upper-lower) < 2.0*B2_linearSlop {
		// Prevent large linear corrections.
		C2 = B2FloatClamp(translation, -B2_maxLinearCorrection, B2_maxLinearCorrection)
		return C2, math.Abs(translation), true
	}

	if translation <= lower {
		// Prevent large linear corrections and allow some slop.
		C2 = B2FloatClamp(translation-lower+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
		return C2, lower - translation, true
	}

	if translation >= upper {
		// Prevent large linear corrections and allow some slop.
		C2 = B2FloatClamp(translation-upper-B2_linearSlop, 0.0, B2_maxLinearCorrection)
		return C2, translation - upper, true
	}

	return 0.0, 0.0, false
}

func (joint *B2PrismaticJoint) InitVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	// Compute the effective masses.
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

	// Prismatic constraint.
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
		joint.M_impulse.Z = 0.0
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
			B2Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Z, joint.M_axis),
		)
		L1 := joint.M_impulse.X*joint.M_s1 + joint.M_impulse.Y + (joint.M_motorImpulse+joint.M_impulse.Z)*joint.M_a1
		L2 := joint.M_impulse.X*joint.M_s2 + joint.M_impulse.Y + (joint.M_motorImpulse+joint.M_impulse.Z)*joint.M_a2

		b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		b1.M_angularVelocity -= i1 * L1

		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		b2.M_angularVelocity += i2 * L2
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}
}

// The 3x3 effective mass of the perpendicular, angular and axial rows.
func (joint B2PrismaticJoint) blockMass() B2Mat33 {
	m1 := joint.M_bodyA.M_invMass
	m2 := joint.M_bodyB.M_invMass
	i1 := joint.M_bodyA.M_invI
	i2 := joint.M_bodyB.M_invI

	k11 := m1 + m2 + i1*joint.M_s1*joint.M_s1 + i2*joint.M_s2*joint.M_s2
	k12 := i1*joint.M_s1 + i2*joint.M_s2
	k13 := i1*joint.M_s1*joint.M_a1 + i2*joint.M_s2*joint.M_a2
	k22 := i1 + i2
	k23 := i1*joint.M_a1 + i2*joint.M_a2
	k33 := m1 + m2 + i1*joint.M_a1*joint.M_a1 + i2*joint.M_a2*joint.M_a2

	return MakeB2Mat33FromColumns(
		MakeB2Vec3(k11, k12, k13),
		MakeB2Vec3(k12, k22, k23),
		MakeB2Vec3(k13, k23, k33),
	)
}

func (joint *B2PrismaticJoint) SolveVelocityConstraints(step B2TimeStep) {
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

	Cdot1 := MakeB2Vec2(
		B2Vec2Dot(joint.M_perp, B2Vec2Sub(v2, v1))+joint.M_s2*w2-joint.M_s1*w1,
		w2-w1,
	)

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		// Solve prismatic and limit constraint in block form.
		Cdot2 := B2Vec2Dot(joint.M_axis, B2Vec2Sub(v2, v1)) + joint.M_a2*w2 - joint.M_a1*w1
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, Cdot2)

		f1 := joint.M_impulse
		df := joint.M_K.Solve33(Cdot.OperatorNegate())
		joint.M_impulse.OperatorPlusInplace(df)

		if joint.M_limitState == B2LimitState.E_atLowerLimit {
			joint.M_impulse.Z = math.Max(joint.M_impulse.Z, 0.0)
		} else if joint.M_limitState == B2LimitState.E_atUpperLimit {
			joint.M_impulse.Z = math.Min(joint.M_impulse.Z, 0.0)
		}

		// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)
		b := B2Vec2Sub(
			Cdot1.OperatorNegate(),
			B2Vec2MulScalar(joint.M_impulse.Z-f1.Z, MakeB2Vec2(joint.M_K.Col3.X, joint.M_K.Col3.Y)),
		)
		f2r := B2Vec2Add(joint.M_K.Solve22(b), MakeB2Vec2(f1.X, f1.Y))
		joint.M_impulse.X = f2r.X
		joint.M_impulse.Y = f2r.Y

		df = B2Vec3Sub(joint.M_impulse, f1)

		P := B2Vec2Add(
			B2Vec2MulScalar(df.X, joint.M_perp),
			B2Vec2MulScalar(df.Z, joint.M_axis),
		)
		L1 := df.X*joint.M_s1 + df.Y + df.Z*joint.M_a1
		L2 := df.X*joint.M_s2 + df.Y + df.Z*joint.M_a2

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		w1 -= i1 * L1

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		w2 += i2 * L2
	} else {
		// Limit is inactive, just solve the prismatic constraint in block form.
		df := joint.M_K.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += df.X
		joint.M_impulse.Y += df.Y

		P := B2Vec2MulScalar(df.X, joint.M_perp)
		L1 := df.X*joint.M_s1 + df.Y
		L2 := df.X*joint.M_s2 + df.Y

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

func (joint *B2PrismaticJoint) SolvePositionConstraints(baumgarte float64) bool {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	c1 := b1.M_sweep.C
	a1 := b1.M_sweep.A

	c2 := b2.M_sweep.C
	a2 := b2.M_sweep.A

	// Solve linear limit constraint.
	linearError := 0.0
	angularError := 0.0
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

	C1 := MakeB2Vec2(
		B2Vec2Dot(joint.M_perp, d),
		a2-a1-joint.M_referenceAngle,
	)

	linearError = math.Max(linearError, math.Abs(C1.X))
	angularError = math.Abs(C1.Y)

	var impulse B2Vec3
	if active {
		joint.M_K = joint.blockMass()

		C := MakeB2Vec3(C1.X, C1.Y, C2)
		impulse = joint.M_K.Solve33(C.OperatorNegate())
	} else {
		m1 := b1.M_invMass
		m2 := b2.M_invMass
		i1 := b1.M_invI
		i2 := b2.M_invI

		k11 := m1 + m2 + i1*joint.M_s1*joint.M_s1 + i2*joint.M_s2*joint.M_s2
		k12 := i1*joint.M_s1 + i2*joint.M_s2
		k22 := i1 + i2

		joint.M_K.Col1.Set(k11, k12, 0.0)
		joint.M_K.Col2.Set(k12, k22, 0.0)

		impulse1 := joint.M_K.Solve22(C1.OperatorNegate())
		impulse.X = impulse1.X
		impulse.Y = impulse1.Y
		impulse.Z = 0.0
	}

	P := B2Vec2Add(
		B2Vec2MulScalar(impulse.X, joint.M_perp),
		B2Vec2MulScalar(impulse.Z, joint.M_axis),
	)
	L1 := impulse.X*joint.M_s1 + impulse.Y + impulse.Z*joint.M_a1
	L2 := impulse.X*joint.M_s2 + impulse.Y + impulse.Z*joint.M_a2

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

	return linearError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2PrismaticJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2PrismaticJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2PrismaticJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(
		inv_dt,
		B2Vec2Add(
			B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp),
			B2Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Z, joint.M_axis),
		),
	)
}

func (joint B2PrismaticJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Y
}

/// Get the current joint translation, usually in meters.
func (joint B2PrismaticJoint) GetJointTranslation() float64 {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	p1 := b1.GetWorldPoint(joint.M_localAnchor1)
	p2 := b2.GetWorldPoint(joint.M_localAnchor2)
	d := B2Vec2Sub(p2, p1)
	axis := b1.GetWorldVector(joint.M_localXAxis1)

	return B2Vec2Dot(d, axis)
}

/// Get the current joint translation speed, usually in meters per second.
func (joint B2PrismaticJoint) GetJointSpeed() float64 {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)
	p1 := B2Vec2Add(b1.M_sweep.C, r1)
	p2 := B2Vec2Add(b2.M_sweep.C, r2)
	d := B2Vec2Sub(p2, p1)
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

func (joint B2PrismaticJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2PrismaticJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2PrismaticJoint) GetLowerLimit() float64 {
	return joint.M_lowerTranslation
}

func (joint B2PrismaticJoint) GetUpperLimit() float64 {
	return joint.M_upperTranslation
}

func (joint *B2PrismaticJoint) SetLimits(lower float64, upper float64) {
	B2Assert(lower <= upper)
	if lower != joint.M_lowerTranslation || upper != joint.M_upperTranslation {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_lowerTranslation = lower
		joint.M_upperTranslation = upper
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2PrismaticJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2PrismaticJoint) EnableMotor(flag bool) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_enableMotor = flag
}

func (joint *B2PrismaticJoint) SetMotorSpeed(speed float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_motorSpeed = speed
}

func (joint *B2PrismaticJoint) SetMaxMotorForce(force float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_maxMotorForce = force
}

func (joint B2PrismaticJoint) GetMotorForce(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2PrismaticJoint) Dump() {
	joint.dumpBase("B2PrismaticJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchor1.X, joint.M_localAnchor1.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchor2.X, joint.M_localAnchor2.Y)
	fmt.Printf("  jd.LocalAxisA.Set(%.15e, %.15e)\n", joint.M_localXAxis1.X, joint.M_localXAxis1.Y)
	fmt.Printf("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	fmt.Printf("  jd.EnableLimit = %t\n", joint.M_enableLimit)
	fmt.Printf("  jd.LowerTranslation = %.15e\n", joint.M_lowerTranslation)
	fmt.Printf("  jd.UpperTranslation = %.15e\n", joint.M_upperTranslation)
	fmt.Printf("  jd.EnableMotor = %t\n", joint.M_enableMotor)
	fmt.Printf("  jd.MotorSpeed = %.15e\n", joint.M_motorSpeed)
	fmt.Printf("  jd.MaxMotorForce = %.15e\n", joint.M_maxMotorForce)
	joint.dumpTail()
}
