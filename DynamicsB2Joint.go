package box2d

import (
	"fmt"
	"math"
)

var B2JointType = struct {
	E_unknownJoint   uint8
	E_revoluteJoint  uint8
	E_prismaticJoint uint8
	E_distanceJoint  uint8
	E_pulleyJoint    uint8
	E_mouseJoint     uint8
	E_gearJoint      uint8
	E_lineJoint      uint8
	E_weldJoint      uint8
	E_frictionJoint  uint8
}{
	E_unknownJoint:   1,
	E_revoluteJoint:  2,
	E_prismaticJoint: 3,
	E_distanceJoint:  4,
	E_pulleyJoint:    5,
	E_mouseJoint:     6,
	E_gearJoint:      7,
	E_lineJoint:      8,
	E_weldJoint:      9,
	E_frictionJoint:  10,
}

var B2LimitState = struct {
	E_inactiveLimit uint8
	E_atLowerLimit  uint8
	E_atUpperLimit  uint8
	E_equalLimits   uint8
}{
	E_inactiveLimit: 1,
	E_atLowerLimit:  2,
	E_atUpperLimit:  3,
	E_equalLimits:   4,
}

type B2Jacobian struct {
	LinearA  B2Vec2
	AngularA float64
	LinearB  B2Vec2
	AngularB float64
}

func (j *B2Jacobian) SetZero() {
	j.LinearA.SetZero()
	j.AngularA = 0.0
	j.LinearB.SetZero()
	j.AngularB = 0.0
}

func (j *B2Jacobian) Set(x1 B2Vec2, a1 float64, x2 B2Vec2, a2 float64) {
	j.LinearA = x1
	j.AngularA = a1
	j.LinearB = x2
	j.AngularB = a2
}

func (j B2Jacobian) Compute(x1 B2Vec2, a1 float64, x2 B2Vec2, a2 float64) float64 {
	return B2Vec2Dot(j.LinearA, x1) + j.AngularA*a1 + B2Vec2Dot(j.LinearB, x2) + j.AngularB*a2
}

/// A joint edge is used to connect bodies and joints together
/// in a joint graph where each body is a node and each joint
/// is an edge. A joint edge belongs to a doubly linked list
/// maintained in each attached body. Each joint has two joint
/// nodes, one for each attached body.
type B2JointEdge struct {
	Other *B2Body          ///< provides quick access to the other body attached.
	Joint B2JointInterface ///< the joint; backed by pointer
	Prev  *B2JointEdge     ///< the previous joint edge in the body's joint list
	Next  *B2JointEdge     ///< the next joint edge in the body's joint list
}

/// Joint definitions are used to construct joints.
type B2JointDef struct {

	/// The joint type is set automatically for concrete joint types.
	Type uint8

	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body.
	BodyA *B2Body

	/// The second attached body.
	BodyB *B2Body

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool
}

type B2JointDefInterface interface {
	GetType() uint8
	SetType(t uint8)
	GetUserData() interface{}
	SetUserData(userdata interface{})
	GetBodyA() *B2Body
	SetBodyA(body *B2Body)
	GetBodyB() *B2Body
	SetBodyB(body *B2Body)
	IsCollideConnected() bool
	SetCollideConnected(flag bool)
}

// Implementing B2JointDefInterface on B2JointDef (used as a base struct)
func (def B2JointDef) GetType() uint8 {
	return def.Type
}

func (def *B2JointDef) SetType(t uint8) {
	def.Type = t
}

func (def B2JointDef) GetUserData() interface{} {
	return def.UserData
}

func (def *B2JointDef) SetUserData(userdata interface{}) {
	def.UserData = userdata
}

func (def B2JointDef) GetBodyA() *B2Body {
	return def.BodyA
}

func (def *B2JointDef) SetBodyA(body *B2Body) {
	def.BodyA = body
}

func (def B2JointDef) GetBodyB() *B2Body {
	return def.BodyB
}

func (def *B2JointDef) SetBodyB(body *B2Body) {
	def.BodyB = body
}

func (def B2JointDef) IsCollideConnected() bool {
	return def.CollideConnected
}

func (def *B2JointDef) SetCollideConnected(flag bool) {
	def.CollideConnected = flag
}

func MakeB2JointDef() B2JointDef {
	res := B2JointDef{}
	res.Type = B2JointType.E_unknownJoint
	res.UserData = nil
	res.BodyA = nil
	res.BodyB = nil
	res.CollideConnected = false

	return res
}

/// The base joint class. Joints are used to constraint two bodies together in
/// various fashions. Some joints also feature limits and motors.
type B2Joint struct {
	M_type             uint8
	M_prev             B2JointInterface // has to be backed by pointer
	M_next             B2JointInterface // has to be backed by pointer
	M_edgeA            *B2JointEdge
	M_edgeB            *B2JointEdge
	M_bodyA            *B2Body
	M_bodyB            *B2Body
	M_index            int
	M_islandFlag       bool
	M_collideConnected bool
	M_userData         interface{}
}

func (j B2Joint) GetType() uint8 {
	return j.M_type
}

func (j B2Joint) GetBodyA() *B2Body {
	return j.M_bodyA
}

func (j B2Joint) GetBodyB() *B2Body {
	return j.M_bodyB
}

func (j B2Joint) GetNext() B2JointInterface { // returns pointer
	return j.M_next
}

func (j *B2Joint) SetNext(next B2JointInterface) { // has to be backed by pointer
	j.M_next = next
}

func (j B2Joint) GetPrev() B2JointInterface { // returns pointer
	return j.M_prev
}

func (j *B2Joint) SetPrev(prev B2JointInterface) { // prev has to be backed by pointer
	j.M_prev = prev
}

func (j B2Joint) GetUserData() interface{} {
	return j.M_userData
}

func (j *B2Joint) SetUserData(data interface{}) {
	j.M_userData = data
}

func (j B2Joint) IsCollideConnected() bool {
	return j.M_collideConnected
}

func (j B2Joint) GetEdgeA() *B2JointEdge {
	return j.M_edgeA
}

func (j B2Joint) GetEdgeB() *B2JointEdge {
	return j.M_edgeB
}

func (j B2Joint) GetIndex() int {
	return j.M_index
}

func (j *B2Joint) SetIndex(index int) {
	j.M_index = index
}

func (j B2Joint) GetIslandFlag() bool {
	return j.M_islandFlag
}

func (j *B2Joint) SetIslandFlag(flag bool) {
	j.M_islandFlag = flag
}

func (j *B2Joint) Destroy() {}

// Shared head of every joint Dump.
func (j B2Joint) dumpBase(defName string) {
	fmt.Printf("  jd := box2d.Make%s()\n", defName)
	fmt.Printf("  jd.BodyA = bodies[%d]\n", j.M_bodyA.M_islandIndex)
	fmt.Printf("  jd.BodyB = bodies[%d]\n", j.M_bodyB.M_islandIndex)
	fmt.Printf("  jd.CollideConnected = %t\n", j.M_collideConnected)
}

func (j B2Joint) dumpTail() {
	fmt.Printf("  joints[%d], _ = world.CreateJoint(&jd)\n", j.M_index)
}

type B2JointInterface interface {
	/// Dump this joint as Go construction code.
	Dump()

	GetType() uint8

	GetBodyA() *B2Body
	GetBodyB() *B2Body

	/// Get the anchor point on bodyA in world coordinates.
	GetAnchorA() B2Vec2

	/// Get the anchor point on bodyB in world coordinates.
	GetAnchorB() B2Vec2

	/// Get the reaction force on bodyB at the joint anchor in Newtons.
	GetReactionForce(inv_dt float64) B2Vec2

	/// Get the reaction torque on bodyB in N*m.
	GetReactionTorque(inv_dt float64) float64

	GetIndex() int
	SetIndex(index int)

	GetNext() B2JointInterface     // backed by pointer
	SetNext(next B2JointInterface) // backed by pointer

	GetPrev() B2JointInterface     // backed by pointer
	SetPrev(prev B2JointInterface) // backed by pointer

	GetEdgeA() *B2JointEdge
	GetEdgeB() *B2JointEdge

	GetUserData() interface{}
	SetUserData(data interface{})

	IsCollideConnected() bool

	Destroy()

	InitVelocityConstraints(step B2TimeStep)

	SolveVelocityConstraints(step B2TimeStep)

	/// This returns true if the position errors are within tolerance.
	SolvePositionConstraints(baumgarte float64) bool

	GetIslandFlag() bool
	SetIslandFlag(flag bool)
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Joint.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// Build the concrete joint for a definition. The definition must be a pointer
/// to one of the joint definition types.
func B2JointCreate(def B2JointDefInterface) (B2JointInterface, error) { // def should be back by pointer; a pointer is returned

	// The gear takes its bodies from its input joints.
	if gd, ok := def.(*B2GearJointDef); ok {
		joint, err := MakeB2GearJoint(gd)
		if err != nil {
			return nil, err
		}
		return joint, nil
	}

	if def.GetBodyA() == def.GetBodyB() {
		return nil, ErrJointSameBody
	}

	switch typeddef := def.(type) {
	case *B2DistanceJointDef:
		return MakeB2DistanceJoint(typeddef), nil

	case *B2MouseJointDef:
		return MakeB2MouseJoint(typeddef), nil

	case *B2PrismaticJointDef:
		return MakeB2PrismaticJoint(typeddef), nil

	case *B2RevoluteJointDef:
		return MakeB2RevoluteJoint(typeddef), nil

	case *B2PulleyJointDef:
		return MakeB2PulleyJoint(typeddef), nil

	case *B2LineJointDef:
		return MakeB2LineJoint(typeddef), nil

	case *B2WeldJointDef:
		return MakeB2WeldJoint(typeddef), nil

	case *B2FrictionJointDef:
		return MakeB2FrictionJoint(typeddef), nil
	}

	return nil, fmt.Errorf("%w: unknown joint definition %T", ErrInvalidConfig, def)
}

func B2JointDestroy(joint B2JointInterface) { // has to be backed by pointer
	joint.Destroy()
}

func MakeB2Joint(def B2JointDefInterface) *B2Joint { // def has to be backed by pointer
	B2Assert(def.GetBodyA() != def.GetBodyB())

	res := B2Joint{}

	res.M_type = def.GetType()
	res.M_prev = nil
	res.M_next = nil
	res.M_bodyA = def.GetBodyA()
	res.M_bodyB = def.GetBodyB()
	res.M_index = 0
	res.M_collideConnected = def.IsCollideConnected()
	res.M_islandFlag = false
	res.M_userData = def.GetUserData()

	res.M_edgeA = &B2JointEdge{}
	res.M_edgeB = &B2JointEdge{}

	return &res
}

// World offset of a body-local anchor from the body center of mass.
func b2JointArm(body *B2Body, localAnchor B2Vec2) B2Vec2 {
	return B2Vec2Mat22Mul(body.M_xf.R, B2Vec2Sub(localAnchor, body.M_sweep.LocalCenter))
}

// Same as b2JointArm with the rotation taken from the sweep angle.
func b2JointArmAtSweep(body *B2Body, localAnchor B2Vec2) B2Vec2 {
	R := MakeB2Mat22FromAngle(body.M_sweep.A)
	return B2Vec2Mat22Mul(R, B2Vec2Sub(localAnchor, body.M_sweep.LocalCenter))
}

func b2JointLimitState(enabled bool, value, lower, upper, tolerance float64, state uint8) (uint8, bool) {
	if !enabled {
		return B2LimitState.E_inactiveLimit, true
	}

	if math.Abs(upper-lower) < 2.0*tolerance {
		return B2LimitState.E_equalLimits, false
	}

	if value <= lower {
		return B2LimitState.E_atLowerLimit, state != B2LimitState.E_atLowerLimit
	}

	if value >= upper {
		return B2LimitState.E_atUpperLimit, state != B2LimitState.E_atUpperLimit
	}

	return B2LimitState.E_inactiveLimit, true
}
