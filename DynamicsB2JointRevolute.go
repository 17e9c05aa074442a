package box2d

import (
	"fmt"
	"math"
)

/// Revolute joint definition. This requires defining an
/// anchor point where the bodies are joined. The definition
/// uses local anchor points so that the initial configuration
/// can violate the constraint slightly. You also need to
/// specify the initial relative angle for joint limits. This
/// helps when saving and loading a game.
/// The local anchor points are measured from the body's origin
/// rather than the center of mass because:
/// 1. you might not know where the center of mass will be.
/// 2. if you add/remove shapes from a body and recompute the mass,
///    the joints will be broken.
type B2RevoluteJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// A flag to enable joint limits.
	EnableLimit bool

	/// The lower angle for the joint limit (radians).
	LowerAngle float64

	/// The upper angle for the joint limit (radians).
	UpperAngle float64

	/// A flag to enable the joint motor.
	EnableMotor bool

	/// The desired motor speed. Usually in radians per second.
	MotorSpeed float64

	/// The maximum motor torque used to achieve the desired motor speed.
	/// Usually in N-m.
	MaxMotorTorque float64
}

func MakeB2RevoluteJointDef() B2RevoluteJointDef {
	res := B2RevoluteJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_revoluteJoint
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.ReferenceAngle = 0.0
	res.LowerAngle = 0.0
	res.UpperAngle = 0.0
	res.MaxMotorTorque = 0.0
	res.MotorSpeed = 0.0
	res.EnableLimit = false
	res.EnableMotor = false

	return res
}

/// A revolute joint constrains two bodies to share a common point while they
/// are free to rotate about the point. The relative rotation about the shared
/// point is the joint angle. You can limit the relative rotation with
/// a joint limit that specifies a lower and upper angle. You can use a motor
/// to drive the relative rotation about the shared point. A maximum motor torque
/// is provided so that infinite forces are not generated.
type B2RevoluteJoint struct {
	*B2Joint

	M_localAnchor1 B2Vec2 // relative
	M_localAnchor2 B2Vec2
	M_impulse      B2Vec3
	M_motorImpulse float64

	M_mass      B2Mat33 // effective mass for point-to-point constraint.
	M_motorMass float64 // effective mass for motor/limit angular constraint.

	M_enableMotor    bool
	M_maxMotorTorque float64
	M_motorSpeed     float64

	M_enableLimit    bool
	M_referenceAngle float64
	M_lowerAngle     float64
	M_upperAngle     float64
	M_limitState     uint8
}

/// The local anchor point relative to bodyA's origin.
func (joint B2RevoluteJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchor1
}

/// The local anchor point relative to bodyB's origin.
func (joint B2RevoluteJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchor2
}

/// Get the reference angle.
func (joint B2RevoluteJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

func (joint B2RevoluteJoint) GetMaxMotorTorque() float64 {
	return joint.M_maxMotorTorque
}

func (joint B2RevoluteJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

func (joint B2RevoluteJoint) GetLimitState() uint8 {
	return joint.M_limitState
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Motor constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (def *B2RevoluteJointDef) Initialize(b1 *B2Body, b2 *B2Body, anchor B2Vec2) {
	def.BodyA = b1
	def.BodyB = b2
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.ReferenceAngle = def.BodyB.GetAngle() - def.BodyA.GetAngle()
}

func MakeB2RevoluteJoint(def *B2RevoluteJointDef) *B2RevoluteJoint {
	res := B2RevoluteJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_localAnchor1 = def.LocalAnchorA
	res.M_localAnchor2 = def.LocalAnchorB
	res.M_referenceAngle = def.ReferenceAngle

	res.M_impulse.SetZero()
	res.M_motorImpulse = 0.0

	res.M_lowerAngle = def.LowerAngle
	res.M_upperAngle = def.UpperAngle
	res.M_maxMotorTorque = def.MaxMotorTorque
	res.M_motorSpeed = def.MotorSpeed
	res.M_enableLimit = def.EnableLimit
	res.M_enableMotor = def.EnableMotor
	res.M_limitState = B2LimitState.E_inactiveLimit

	return &res
}

func (joint *B2RevoluteJoint) InitVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	if joint.M_enableMotor || joint.M_enableLimit {
		// You cannot create a rotation limit between bodies that
		// both have fixed rotation.
		B2Assert(b1.M_invI > 0.0 || b2.M_invI > 0.0)
	}

	// Compute the effective mass matrix.
	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	// J = [-I -r1_skew I r2_skew]
	//     [ 0       -1 0       1]
	// r_skew = [-ry; rx]

	// Matlab
	// K = [ m1+r1y^2*i1+m2+r2y^2*i2,  -r1y*i1*r1x-r2y*i2*r2x,          -r1y*i1-r2y*i2]
	//     [  -r1y*i1*r1x-r2y*i2*r2x, m1+r1x^2*i1+m2+r2x^2*i2,           r1x*i1+r2x*i2]
	//     [          -r1y*i1-r2y*i2,           r1x*i1+r2x*i2,                   i1+i2]

	m1 := b1.M_invMass
	m2 := b2.M_invMass
	i1 := b1.M_invI
	i2 := b2.M_invI

	joint.M_mass.Col1.X = m1 + m2 + r1.Y*r1.Y*i1 + r2.Y*r2.Y*i2
	joint.M_mass.Col2.X = -r1.Y*r1.X*i1 - r2.Y*r2.X*i2
	joint.M_mass.Col3.X = -r1.Y*i1 - r2.Y*i2
	joint.M_mass.Col1.Y = joint.M_mass.Col2.X
	joint.M_mass.Col2.Y = m1 + m2 + r1.X*r1.X*i1 + r2.X*r2.X*i2
	joint.M_mass.Col3.Y = r1.X*i1 + r2.X*i2
	joint.M_mass.Col1.Z = joint.M_mass.Col3.X
	joint.M_mass.Col2.Z = joint.M_mass.Col3.Y
	joint.M_mass.Col3.Z = i1 + i2

	joint.M_motorMass = i1 + i2
	if joint.M_motorMass > 0.0 {
		joint.M_motorMass = 1.0 / joint.M_motorMass
	}

	if !joint.M_enableMotor {
		joint.M_motorImpulse = 0.0
	}

	jointAngle := b2.M_sweep.A - b1.M_sweep.A - joint.M_referenceAngle
	state, reset := b2JointLimitState(joint.M_enableLimit, jointAngle, joint.M_lowerAngle, joint.M_upperAngle, B2_angularSlop, joint.M_limitState)
	joint.M_limitState = state
	if reset {
		joint.M_impulse.Z = 0.0
	}

	if step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_motorImpulse *= step.DtRatio

		P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)

		b1.M_linearVelocity.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		b1.M_angularVelocity -= i1 * (B2Vec2Cross(r1, P) + joint.M_motorImpulse + joint.M_impulse.Z)

		b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		b2.M_angularVelocity += i2 * (B2Vec2Cross(r2, P) + joint.M_motorImpulse + joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}
}

func (joint *B2RevoluteJoint) SolveVelocityConstraints(step B2TimeStep) {
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

	// Solve motor constraint.
	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits {
		Cdot := w2 - w1 - joint.M_motorSpeed
		impulse := joint.M_motorMass * (-Cdot)
		oldImpulse := joint.M_motorImpulse
		maxImpulse := step.Dt * joint.M_maxMotorTorque
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		w1 -= i1 * impulse
		w2 += i2 * impulse
	}

	r1 := b2JointArm(b1, joint.M_localAnchor1)
	r2 := b2JointArm(b2, joint.M_localAnchor2)

	// Solve limit constraint.
	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		// Solve point to point constraint
		Cdot1 := B2Vec2Sub(
			B2Vec2Sub(
				B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, r2)),
				v1,
			),
			B2Vec2CrossScalarVector(w1, r1),
		)
		Cdot2 := w2 - w1
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := joint.M_mass.Solve33(Cdot.OperatorNegate())

		if joint.M_limitState == B2LimitState.E_equalLimits {
			joint.M_impulse.OperatorPlusInplace(impulse)
		} else if joint.M_limitState == B2LimitState.E_atLowerLimit {
			newImpulse := joint.M_impulse.Z + impulse.Z
			if newImpulse < 0.0 {
				reduced := joint.M_mass.Solve22(Cdot1.OperatorNegate())
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -joint.M_impulse.Z
				joint.M_impulse.X += reduced.X
				joint.M_impulse.Y += reduced.Y
				joint.M_impulse.Z = 0.0
			} else {
				joint.M_impulse.OperatorPlusInplace(impulse)
			}
		} else if joint.M_limitState == B2LimitState.E_atUpperLimit {
			newImpulse := joint.M_impulse.Z + impulse.Z
			if newImpulse > 0.0 {
				reduced := joint.M_mass.Solve22(Cdot1.OperatorNegate())
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -joint.M_impulse.Z
				joint.M_impulse.X += reduced.X
				joint.M_impulse.Y += reduced.Y
				joint.M_impulse.Z = 0.0
			} else {
				joint.M_impulse.OperatorPlusInplace(impulse)
			}
		}

		P := MakeB2Vec2(impulse.X, impulse.Y)

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, P))
		w1 -= i1 * (B2Vec2Cross(r1, P) + impulse.Z)

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, P))
		w2 += i2 * (B2Vec2Cross(r2, P) + impulse.Z)
	} else {
		// Solve point to point constraint
		Cdot := B2Vec2Sub(
			B2Vec2Sub(
				B2Vec2Add(v2, B2Vec2CrossScalarVector(w2, r2)),
				v1,
			),
			B2Vec2CrossScalarVector(w1, r1),
		)
		impulse := joint.M_mass.Solve22(Cdot.OperatorNegate())

		joint.M_impulse.X += impulse.X
		joint.M_impulse.Y += impulse.Y

		v1.OperatorMinusInplace(B2Vec2MulScalar(m1, impulse))
		w1 -= i1 * B2Vec2Cross(r1, impulse)

		v2.OperatorPlusInplace(B2Vec2MulScalar(m2, impulse))
		w2 += i2 * B2Vec2Cross(r2, impulse)
	}

	b1.M_linearVelocity = v1
	b1.M_angularVelocity = w1
	b2.M_linearVelocity = v2
	b2.M_angularVelocity = w2
}

func (joint *B2RevoluteJoint) SolvePositionConstraints(baumgarte float64) bool {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	angularError := 0.0
	positionError := 0.0

	// Solve angular limit constraint.
	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		angle := b2.M_sweep.A - b1.M_sweep.A - joint.M_referenceAngle
		limitImpulse := 0.0

		if joint.M_limitState == B2LimitState.E_equalLimits {
			// Prevent large angular corrections
			C := B2FloatClamp(angle-joint.M_lowerAngle, -B2_maxAngularCorrection, B2_maxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
			angularError = math.Abs(C)
		} else if joint.M_limitState == B2LimitState.E_atLowerLimit {
			C := angle - joint.M_lowerAngle
			angularError = -C

			// Prevent large angular corrections and allow some slop.
			C = B2FloatClamp(C+B2_angularSlop, -B2_maxAngularCorrection, 0.0)
			limitImpulse = -joint.M_motorMass * C
		} else if joint.M_limitState == B2LimitState.E_atUpperLimit {
			C := angle - joint.M_upperAngle
			angularError = C

			// Prevent large angular corrections and allow some slop.
			C = B2FloatClamp(C-B2_angularSlop, 0.0, B2_maxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
		}

		b1.M_sweep.A -= b1.M_invI * limitImpulse
		b2.M_sweep.A += b2.M_invI * limitImpulse

		b1.SynchronizeTransform()
		b2.SynchronizeTransform()
	}

	// Solve point to point constraint.
	{
		r1 := b2JointArm(b1, joint.M_localAnchor1)
		r2 := b2JointArm(b2, joint.M_localAnchor2)

		C := B2Vec2Sub(
			B2Vec2Add(b2.M_sweep.C, r2),
			B2Vec2Add(b1.M_sweep.C, r1),
		)
		positionError = C.Length()

		invMass1 := b1.M_invMass
		invMass2 := b2.M_invMass
		invI1 := b1.M_invI
		invI2 := b2.M_invI

		// Handle large detachment.
		k_allowedStretch := 10.0 * B2_linearSlop
		if C.LengthSquared() > k_allowedStretch*k_allowedStretch {
			// Use a particle solution (no rotation).
			m := invMass1 + invMass2
			if m > 0.0 {
				m = 1.0 / m
			}
			impulse := B2Vec2MulScalar(m, C.OperatorNegate())
			k_beta := 0.5
			b1.M_sweep.C.OperatorMinusInplace(B2Vec2MulScalar(k_beta*invMass1, impulse))
			b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(k_beta*invMass2, impulse))

			C = B2Vec2Sub(
				B2Vec2Add(b2.M_sweep.C, r2),
				B2Vec2Add(b1.M_sweep.C, r1),
			)
		}

		K1 := MakeB2Mat22FromScalars(
			invMass1+invMass2, 0.0,
			0.0, invMass1+invMass2,
		)

		K2 := MakeB2Mat22FromScalars(
			invI1*r1.Y*r1.Y, -invI1*r1.X*r1.Y,
			-invI1*r1.X*r1.Y, invI1*r1.X*r1.X,
		)

		K3 := MakeB2Mat22FromScalars(
			invI2*r2.Y*r2.Y, -invI2*r2.X*r2.Y,
			-invI2*r2.X*r2.Y, invI2*r2.X*r2.X,
		)

		K := B2Mat22Add(B2Mat22Add(K1, K2), K3)
		impulse := K.Solve(C.OperatorNegate())

		b1.M_sweep.C.OperatorMinusInplace(B2Vec2MulScalar(invMass1, impulse))
		b1.M_sweep.A -= invI1 * B2Vec2Cross(r1, impulse)

		b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(invMass2, impulse))
		b2.M_sweep.A += invI2 * B2Vec2Cross(r2, impulse)

		b1.SynchronizeTransform()
		b2.SynchronizeTransform()
	}

	return positionError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2RevoluteJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2RevoluteJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2RevoluteJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)
	return B2Vec2MulScalar(inv_dt, P)
}

func (joint B2RevoluteJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Z
}

func (joint B2RevoluteJoint) GetJointAngle() float64 {
	return joint.M_bodyB.M_sweep.A - joint.M_bodyA.M_sweep.A - joint.M_referenceAngle
}

func (joint B2RevoluteJoint) GetJointSpeed() float64 {
	return joint.M_bodyB.M_angularVelocity - joint.M_bodyA.M_angularVelocity
}

func (joint B2RevoluteJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2RevoluteJoint) EnableMotor(flag bool) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_enableMotor = flag
}

func (joint B2RevoluteJoint) GetMotorTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2RevoluteJoint) SetMotorSpeed(speed float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_motorSpeed = speed
}

func (joint *B2RevoluteJoint) SetMaxMotorTorque(torque float64) {
	joint.M_bodyA.SetAwake(true)
	joint.M_bodyB.SetAwake(true)
	joint.M_maxMotorTorque = torque
}

func (joint B2RevoluteJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2RevoluteJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2RevoluteJoint) GetLowerLimit() float64 {
	return joint.M_lowerAngle
}

func (joint B2RevoluteJoint) GetUpperLimit() float64 {
	return joint.M_upperAngle
}

func (joint *B2RevoluteJoint) SetLimits(lower float64, upper float64) {
	B2Assert(lower <= upper)

	if lower != joint.M_lowerAngle || upper != joint.M_upperAngle {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_impulse.Z = 0.0
		joint.M_lowerAngle = lower
		joint.M_upperAngle = upper
	}
}

func (joint *B2RevoluteJoint) Dump() {
	joint.dumpBase("B2RevoluteJointDef")
	fmt.Printf("  jd.LocalAnchorA.Set(%.15e, %.15e)\n", joint.M_localAnchor1.X, joint.M_localAnchor1.Y)
	fmt.Printf("  jd.LocalAnchorB.Set(%.15e, %.15e)\n", joint.M_localAnchor2.X, joint.M_localAnchor2.Y)
	fmt.Printf("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	fmt.Printf("  jd.EnableLimit = %t\n", joint.M_enableLimit)
	fmt.Printf("  jd.LowerAngle = %.15e\n", joint.M_lowerAngle)
	fmt.Printf("  jd.UpperAngle = %.15e\n", joint.M_upperAngle)
	fmt.Printf("  jd.EnableMotor = %t\n", joint.M_enableMotor)
	fmt.Printf("  jd.MotorSpeed = %.15e\n", joint.M_motorSpeed)
	fmt.Printf("  jd.MaxMotorTorque = %.15e\n", joint.M_maxMotorTorque)
	joint.dumpTail()
}
