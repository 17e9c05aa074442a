package box2d

import (
	"fmt"
)

/// Gear joint definition. This definition requires two existing
/// revolute or prismatic joints (any combination will work).
/// The bodies of the gear are taken from the second body of each joint.
type B2GearJointDef struct {
	B2JointDef

	/// The first revolute/prismatic joint attached to the gear joint.
	Joint1 B2JointInterface // has to be backed by pointer

	/// The second revolute/prismatic joint attached to the gear joint.
	Joint2 B2JointInterface // has to be backed by pointer

	/// The gear ratio.
	/// @see B2GearJoint for explanation.
	Ratio float64
}

func MakeB2GearJointDef() B2GearJointDef {
	res := B2GearJointDef{
		B2JointDef: MakeB2JointDef(),
	}

	res.Type = B2JointType.E_gearJoint
	res.Joint1 = nil
	res.Joint2 = nil
	res.Ratio = 1.0

	return res
}

/// A gear joint is used to connect two joints together. Either joint
/// can be a revolute or prismatic joint. You specify a gear ratio
/// to bind the motions together:
/// coordinate1 + ratio * coordinate2 = constant
/// The ratio can be negative or positive. If one joint is a revolute joint
/// and the other joint is a prismatic joint, then the ratio will have units
/// of length or units of 1/length.
/// @warning The first body of both joints must be static.
/// @warning You have to manually destroy the gear joint if joint1 or joint2
/// is destroyed.
type B2GearJoint struct {
	*B2Joint

	M_ground1 *B2Body
	M_ground2 *B2Body

	// One of these is nil.
	M_revolute1  *B2RevoluteJoint
	M_prismatic1 *B2PrismaticJoint

	// One of these is nil.
	M_revolute2  *B2RevoluteJoint
	M_prismatic2 *B2PrismaticJoint

	M_groundAnchor1 B2Vec2
	M_groundAnchor2 B2Vec2

	M_localAnchor1 B2Vec2
	M_localAnchor2 B2Vec2

	M_J B2Jacobian

	M_constant float64
	M_ratio    float64

	// Effective mass
	M_mass float64

	// Impulse for accumulation/warm starting.
	M_impulse float64
}

/// Get the first joint.
func (joint B2GearJoint) GetJoint1() B2JointInterface { // returns a pointer
	if joint.M_revolute1 != nil {
		return joint.M_revolute1
	}
	return joint.M_prismatic1
}

/// Get the second joint.
func (joint B2GearJoint) GetJoint2() B2JointInterface { // returns a pointer
	if joint.M_revolute2 != nil {
		return joint.M_revolute2
	}
	return joint.M_prismatic2
}

// Gear Joint:
// C0 = (coordinate1 + ratio * coordinate2)_initial
// C = C0 - (coordinate1 + ratio * coordinate2) = 0
// Cdot = -(Cdot1 + ratio * Cdot2)
// J = -[J1 ratio * J2]
// K = J * invM * JT
//   = J1 * invM1 * J1T + ratio * ratio * J2 * invM2 * J2T
//
// Revolute:
// coordinate = rotation
// Cdot = angularVelocity
// J = [0 0 1]
// K = J * invM * JT = invI
//
// Prismatic:
// coordinate = dot(p - pg, ug)
// Cdot = dot(v + cross(w, r), ug)
// J = [ug cross(r, ug)]
// K = J * invM * JT = invMass + invI * cross(r, ug)^2

// Split a gear input joint into its concrete kind.
func b2GearInput(j B2JointInterface) (*B2RevoluteJoint, *B2PrismaticJoint, error) {
	switch typed := j.(type) {
	case *B2RevoluteJoint:
		return typed, nil, nil
	case *B2PrismaticJoint:
		return nil, typed, nil
	}

	return nil, nil, fmt.Errorf("%w: got %T", ErrGearJointType, j)
}

/// Build a gear joint. Both input joints must be revolute or prismatic joints
/// whose first body is static. The gear bodies are copied into the definition.
func MakeB2GearJoint(def *B2GearJointDef) (*B2GearJoint, error) {
	revolute1, prismatic1, err := b2GearInput(def.Joint1)
	if err != nil {
		return nil, err
	}

	revolute2, prismatic2, err := b2GearInput(def.Joint2)
	if err != nil {
		return nil, err
	}

	if !def.Joint1.GetBodyA().IsStatic() || !def.Joint2.GetBodyA().IsStatic() {
		return nil, fmt.Errorf("%w: the first body of each joint must be static", ErrGearJointType)
	}

	def.BodyA = def.Joint1.GetBodyB()
	def.BodyB = def.Joint2.GetBodyB()

	if def.BodyA == def.BodyB {
		return nil, ErrJointSameBody
	}

	res := B2GearJoint{
		B2Joint: MakeB2Joint(def),
	}

	res.M_revolute1 = revolute1
	res.M_prismatic1 = prismatic1
	res.M_revolute2 = revolute2
	res.M_prismatic2 = prismatic2

	res.M_ground1 = def.Joint1.GetBodyA()
	res.M_ground2 = def.Joint2.GetBodyA()

	coordinate1 := 0.0
	coordinate2 := 0.0

	if revolute1 != nil {
		res.M_groundAnchor1 = revolute1.M_localAnchor1
		res.M_localAnchor1 = revolute1.M_localAnchor2
		coordinate1 = revolute1.GetJointAngle()
	} else {
		res.M_groundAnchor1 = prismatic1.M_localAnchor1
		res.M_localAnchor1 = prismatic1.M_localAnchor2
		coordinate1 = prismatic1.GetJointTranslation()
	}

	if revolute2 != nil {
		res.M_groundAnchor2 = revolute2.M_localAnchor1
		res.M_localAnchor2 = revolute2.M_localAnchor2
		coordinate2 = revolute2.GetJointAngle()
	} else {
		res.M_groundAnchor2 = prismatic2.M_localAnchor1
		res.M_localAnchor2 = prismatic2.M_localAnchor2
		coordinate2 = prismatic2.GetJointTranslation()
	}

	res.M_ratio = def.Ratio
	res.M_constant = coordinate1 + res.M_ratio*coordinate2
	res.M_impulse = 0.0

	return &res, nil
}

func (joint *B2GearJoint) coordinates() (float64, float64) {
	coordinate1 := 0.0
	if joint.M_revolute1 != nil {
		coordinate1 = joint.M_revolute1.GetJointAngle()
	} else {
		coordinate1 = joint.M_prismatic1.GetJointTranslation()
	}

	coordinate2 := 0.0
	if joint.M_revolute2 != nil {
		coordinate2 = joint.M_revolute2.GetJointAngle()
	} else {
		coordinate2 = joint.M_prismatic2.GetJointTranslation()
	}

	return coordinate1, coordinate2
}

func (joint *B2GearJoint) InitVelocityConstraints(step B2TimeStep) {
	g1 := joint.M_ground1
	g2 := joint.M_ground2
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	K := 0.0
	joint.M_J.SetZero()

	if joint.M_revolute1 != nil {
		joint.M_J.AngularA = -1.0
		K += b1.M_invI
	} else {
		ug := B2Vec2Mat22Mul(g1.M_xf.R, joint.M_prismatic1.M_localXAxis1)
		r := b2JointArm(b1, joint.M_localAnchor1)
		crug := B2Vec2Cross(r, ug)
		joint.M_J.LinearA = ug.OperatorNegate()
		joint.M_J.AngularA = -crug
		K += b1.M_invMass + b1.M_invI*crug*crug
	}

	if joint.M_revolute2 != nil {
		joint.M_J.AngularB = -joint.M_ratio
		K += joint.M_ratio * joint.M_ratio * b2.M_invI
	} else {
		ug := B2Vec2Mat22Mul(g2.M_xf.R, joint.M_prismatic2.M_localXAxis1)
		r := b2JointArm(b2, joint.M_localAnchor2)
		crug := B2Vec2Cross(r, ug)
		joint.M_J.LinearB = B2Vec2MulScalar(-joint.M_ratio, ug)
		joint.M_J.AngularB = -joint.M_ratio * crug
		K += joint.M_ratio * joint.M_ratio * (b2.M_invMass + b2.M_invI*crug*crug)
	}

	// Compute effective mass.
	joint.M_mass = 0.0
	if K > 0.0 {
		joint.M_mass = 1.0 / K
	}

	if step.WarmStarting {
		// Warm starting.
		joint.applyImpulse(joint.M_impulse)
	} else {
		joint.M_impulse = 0.0
	}
}

func (joint *B2GearJoint) applyImpulse(impulse float64) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	b1.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass*impulse, joint.M_J.LinearA))
	b1.M_angularVelocity += b1.M_invI * impulse * joint.M_J.AngularA
	b2.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass*impulse, joint.M_J.LinearB))
	b2.M_angularVelocity += b2.M_invI * impulse * joint.M_J.AngularB
}

func (joint *B2GearJoint) SolveVelocityConstraints(step B2TimeStep) {
	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	Cdot := joint.M_J.Compute(b1.M_linearVelocity, b1.M_angularVelocity, b2.M_linearVelocity, b2.M_angularVelocity)

	impulse := joint.M_mass * (-Cdot)
	joint.M_impulse += impulse

	joint.applyImpulse(impulse)
}

func (joint *B2GearJoint) SolvePositionConstraints(baumgarte float64) bool {
	linearError := 0.0

	b1 := joint.M_bodyA
	b2 := joint.M_bodyB

	coordinate1, coordinate2 := joint.coordinates()

	C := joint.M_constant - (coordinate1 + joint.M_ratio*coordinate2)

	impulse := joint.M_mass * (-C)

	b1.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b1.M_invMass*impulse, joint.M_J.LinearA))
	b1.M_sweep.A += b1.M_invI * impulse * joint.M_J.AngularA
	b2.M_sweep.C.OperatorPlusInplace(B2Vec2MulScalar(b2.M_invMass*impulse, joint.M_J.LinearB))
	b2.M_sweep.A += b2.M_invI * impulse * joint.M_J.AngularB

	b1.SynchronizeTransform()
	b2.SynchronizeTransform()

	// The error is reported through the input joints.
	return linearError < B2_linearSlop
}

func (joint B2GearJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchor1)
}

func (joint B2GearJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchor2)
}

func (joint B2GearJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	P := B2Vec2MulScalar(joint.M_impulse, joint.M_J.LinearB)
	return B2Vec2MulScalar(inv_dt, P)
}

func (joint B2GearJoint) GetReactionTorque(inv_dt float64) float64 {
	r := b2JointArm(joint.M_bodyB, joint.M_localAnchor2)
	P := B2Vec2MulScalar(joint.M_impulse, joint.M_J.LinearB)
	L := joint.M_impulse*joint.M_J.AngularB - B2Vec2Cross(r, P)
	return inv_dt * L
}

func (joint *B2GearJoint) SetRatio(ratio float64) {
	B2Assert(B2IsValid(ratio))
	joint.M_ratio = ratio
}

func (joint B2GearJoint) GetRatio() float64 {
	return joint.M_ratio
}

func (joint *B2GearJoint) Dump() {
	fmt.Printf("  jd := box2d.MakeB2GearJointDef()\n")
	fmt.Printf("  jd.CollideConnected = %t\n", joint.M_collideConnected)
	fmt.Printf("  jd.Joint1 = joints[%d]\n", joint.GetJoint1().GetIndex())
	fmt.Printf("  jd.Joint2 = joints[%d]\n", joint.GetJoint2().GetIndex())
	fmt.Printf("  jd.Ratio = %.15e\n", joint.M_ratio)
	joint.dumpTail()
}
