package box2d

import (
	"fmt"
	"math"
)

/// The body type. A body is static when it has neither mass nor rotational
/// inertia, dynamic otherwise. The type follows from the mass data.
var B2BodyType = struct {
	B2_staticBody  uint8
	B2_dynamicBody uint8
}{
	B2_staticBody:  0,
	B2_dynamicBody: 1,
}

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type B2BodyDef struct {

	/// You can use this to initialize the mass properties of the body.
	/// If you prefer, you can set the mass properties after the shapes
	/// have been added using B2Body.ResetMassData.
	MassData B2MassData

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position B2Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity B2Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Linear damping is use to reduce the linear velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	LinearDamping float64

	/// Angular damping is use to reduce the angular velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	AngularDamping float64

	/// Set this flag to false if this body should never fall asleep. Note that
	/// this increases CPU usage.
	AllowSleep bool

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Is this a fast moving body that should be prevented from tunneling through
	/// other moving bodies? Note that all bodies are prevented from tunneling through
	/// static bodies.
	/// @warning You should use this flag sparingly since it increases processing time.
	Bullet bool

	/// Use this to store application specific body data.
	UserData interface{}
}

/// This constructor sets the body definition default values.
func MakeB2BodyDef() B2BodyDef {
	return B2BodyDef{
		MassData:        MakeMassData(),
		UserData:        nil,
		Position:        MakeB2Vec2(0, 0),
		Angle:           0.0,
		LinearVelocity:  MakeB2Vec2(0, 0),
		AngularVelocity: 0.0,
		LinearDamping:   0.0,
		AngularDamping:  0.0,
		AllowSleep:      true,
		Awake:           true,
		FixedRotation:   false,
		Bullet:          false,
	}
}

func NewB2BodyDef() *B2BodyDef {
	res := MakeB2BodyDef()
	return &res
}

var B2Body_Flags = struct {
	E_frozenFlag        uint32
	E_islandFlag        uint32
	E_awakeFlag         uint32
	E_autoSleepFlag     uint32
	E_bulletFlag        uint32
	E_fixedRotationFlag uint32
}{
	E_frozenFlag:        0x0002,
	E_islandFlag:        0x0004,
	E_awakeFlag:         0x0008,
	E_autoSleepFlag:     0x0010,
	E_bulletFlag:        0x0020,
	E_fixedRotationFlag: 0x0040,
}

type B2Body struct {
	M_type uint8

	M_flags uint32

	M_islandIndex int

	M_xf    B2Transform // the body origin transform
	M_sweep B2Sweep     // the swept motion for CCD

	M_linearVelocity  B2Vec2
	M_angularVelocity float64

	M_force  B2Vec2
	M_torque float64

	M_world *B2World
	M_prev  *B2Body
	M_next  *B2Body

	M_fixtureList  *B2Fixture // linked list
	M_fixtureCount int

	M_jointList   *B2JointEdge   // linked list
	M_contactList *B2ContactEdge // linked list

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64

	M_sleepTime float64

	M_userData interface{}
}

func (body B2Body) GetType() uint8 {
	return body.M_type
}

func (body B2Body) IsStatic() bool {
	return body.M_type == B2BodyType.B2_staticBody
}

func (body B2Body) IsDynamic() bool {
	return body.M_type == B2BodyType.B2_dynamicBody
}

func (body B2Body) GetTransform() B2Transform {
	return body.M_xf
}

func (body B2Body) GetPosition() B2Vec2 {
	return body.M_xf.P
}

func (body B2Body) GetAngle() float64 {
	return body.M_sweep.A
}

func (body B2Body) GetWorldCenter() B2Vec2 {
	return body.M_sweep.C
}

func (body B2Body) GetLocalCenter() B2Vec2 {
	return body.M_sweep.LocalCenter
}

func (body B2Body) GetSweep() B2Sweep {
	return body.M_sweep
}

func (body *B2Body) SetLinearVelocity(v B2Vec2) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if B2Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.M_linearVelocity = v
}

func (body B2Body) GetLinearVelocity() B2Vec2 {
	return body.M_linearVelocity
}

func (body *B2Body) SetAngularVelocity(w float64) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.M_angularVelocity = w
}

func (body B2Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body B2Body) GetMass() float64 {
	return body.M_mass
}

/// Get the rotational inertia of the body about the local origin.
func (body B2Body) GetInertia() float64 {
	return body.M_I + body.M_mass*B2Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
}

func (body B2Body) GetMassData(data *B2MassData) {
	data.Mass = body.M_mass
	data.I = body.M_I + body.M_mass*B2Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
	data.Center = body.M_sweep.LocalCenter
}

func (body B2Body) GetWorldPoint(localPoint B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(body.M_xf, localPoint)
}

func (body B2Body) GetWorldVector(localVector B2Vec2) B2Vec2 {
	return B2Vec2Mat22Mul(body.M_xf.R, localVector)
}

func (body B2Body) GetLocalPoint(worldPoint B2Vec2) B2Vec2 {
	return B2TransformVec2MulT(body.M_xf, worldPoint)
}

func (body B2Body) GetLocalVector(worldVector B2Vec2) B2Vec2 {
	return B2Vec2Mat22MulT(body.M_xf.R, worldVector)
}

func (body B2Body) GetLinearVelocityFromWorldPoint(worldPoint B2Vec2) B2Vec2 {
	return B2Vec2Add(body.M_linearVelocity, B2Vec2CrossScalarVector(body.M_angularVelocity, B2Vec2Sub(worldPoint, body.M_sweep.C)))
}

func (body B2Body) GetLinearVelocityFromLocalPoint(localPoint B2Vec2) B2Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

func (body B2Body) GetLinearDamping() float64 {
	return body.M_linearDamping
}

func (body *B2Body) SetLinearDamping(linearDamping float64) {
	body.M_linearDamping = linearDamping
}

func (body B2Body) GetAngularDamping() float64 {
	return body.M_angularDamping
}

func (body *B2Body) SetAngularDamping(angularDamping float64) {
	body.M_angularDamping = angularDamping
}

func (body *B2Body) SetBullet(flag bool) {
	if flag {
		body.M_flags |= B2Body_Flags.E_bulletFlag
	} else {
		body.M_flags &= ^B2Body_Flags.E_bulletFlag
	}
}

func (body B2Body) IsBullet() bool {
	return (body.M_flags & B2Body_Flags.E_bulletFlag) == B2Body_Flags.E_bulletFlag
}

func (body *B2Body) SetAwake(flag bool) {
	if flag {
		body.M_flags |= B2Body_Flags.E_awakeFlag
		body.M_sleepTime = 0.0
	} else {
		body.M_flags &= ^B2Body_Flags.E_awakeFlag
		body.M_sleepTime = 0.0
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
		body.M_force.SetZero()
		body.M_torque = 0.0
	}
}

func (body B2Body) IsAwake() bool {
	return (body.M_flags & B2Body_Flags.E_awakeFlag) == B2Body_Flags.E_awakeFlag
}

/// A frozen body left the world bounds. It has no proxies and is not simulated.
func (body B2Body) IsFrozen() bool {
	return (body.M_flags & B2Body_Flags.E_frozenFlag) == B2Body_Flags.E_frozenFlag
}

func (body B2Body) IsFixedRotation() bool {
	return (body.M_flags & B2Body_Flags.E_fixedRotationFlag) == B2Body_Flags.E_fixedRotationFlag
}

func (body *B2Body) SetSleepingAllowed(flag bool) {
	if flag {
		body.M_flags |= B2Body_Flags.E_autoSleepFlag
	} else {
		body.M_flags &= ^B2Body_Flags.E_autoSleepFlag
		body.SetAwake(true)
	}
}

func (body B2Body) IsSleepingAllowed() bool {
	return (body.M_flags & B2Body_Flags.E_autoSleepFlag) == B2Body_Flags.E_autoSleepFlag
}

func (body B2Body) GetFixtureList() *B2Fixture {
	return body.M_fixtureList
}

func (body B2Body) GetJointList() *B2JointEdge {
	return body.M_jointList
}

func (body B2Body) GetContactList() *B2ContactEdge {
	return body.M_contactList
}

func (body B2Body) GetNext() *B2Body {
	return body.M_next
}

func (body *B2Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body B2Body) GetUserData() interface{} {
	return body.M_userData
}

func (body *B2Body) ApplyForce(force B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	if wake && (body.M_flags&B2Body_Flags.E_awakeFlag) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping.
	if (body.M_flags & B2Body_Flags.E_awakeFlag) != 0x0000 {
		body.M_force.OperatorPlusInplace(force)
		body.M_torque += B2Vec2Cross(
			B2Vec2Sub(point, body.M_sweep.C),
			force,
		)
	}
}

func (body *B2Body) ApplyForceToCenter(force B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	if wake && (body.M_flags&B2Body_Flags.E_awakeFlag) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping
	if (body.M_flags & B2Body_Flags.E_awakeFlag) != 0x0000 {
		body.M_force.OperatorPlusInplace(force)
	}
}

func (body *B2Body) ApplyTorque(torque float64, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	if wake && (body.M_flags&B2Body_Flags.E_awakeFlag) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping
	if (body.M_flags & B2Body_Flags.E_awakeFlag) != 0x0000 {
		body.M_torque += torque
	}
}

func (body *B2Body) ApplyLinearImpulse(impulse B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	if wake && (body.M_flags&B2Body_Flags.E_awakeFlag) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping
	if (body.M_flags & B2Body_Flags.E_awakeFlag) != 0x0000 {
		body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
		body.M_angularVelocity += body.M_invI * B2Vec2Cross(
			B2Vec2Sub(point, body.M_sweep.C),
			impulse,
		)
	}
}

func (body *B2Body) ApplyAngularImpulse(impulse float64, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	if wake && (body.M_flags&B2Body_Flags.E_awakeFlag) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping
	if (body.M_flags & B2Body_Flags.E_awakeFlag) != 0x0000 {
		body.M_angularVelocity += body.M_invI * impulse
	}
}

/// Recompute the origin transform from the sweep's current center and angle.
func (body *B2Body) SynchronizeTransform() {
	body.M_xf.R.SetAngle(body.M_sweep.A)
	body.M_xf.P = B2Vec2Sub(body.M_sweep.C, B2Vec2Mat22Mul(body.M_xf.R, body.M_sweep.LocalCenter))
}

/// Advance to the new safe time. This doesn't sync the broad-phase.
func (body *B2Body) Advance(alpha float64) {
	body.M_sweep.Advance(alpha)
	body.M_sweep.C = body.M_sweep.C0
	body.M_sweep.A = body.M_sweep.A0
	body.SynchronizeTransform()
}

func (body B2Body) GetWorld() *B2World {
	return body.M_world
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Body.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func NewB2Body(bd *B2BodyDef, world *B2World) *B2Body {
	B2Assert(bd.Position.IsValid())
	B2Assert(bd.LinearVelocity.IsValid())
	B2Assert(B2IsValid(bd.Angle))
	B2Assert(B2IsValid(bd.AngularVelocity))
	B2Assert(B2IsValid(bd.AngularDamping) && bd.AngularDamping >= 0.0)
	B2Assert(B2IsValid(bd.LinearDamping) && bd.LinearDamping >= 0.0)

	body := &B2Body{}

	body.M_flags = 0

	if bd.Bullet {
		body.M_flags |= B2Body_Flags.E_bulletFlag
	}
	if bd.FixedRotation {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	}
	if bd.AllowSleep {
		body.M_flags |= B2Body_Flags.E_autoSleepFlag
	}
	if bd.Awake {
		body.M_flags |= B2Body_Flags.E_awakeFlag
	}

	body.M_world = world

	body.M_xf.P = bd.Position
	body.M_xf.R.SetAngle(bd.Angle)

	body.M_sweep.LocalCenter = bd.MassData.Center
	body.M_sweep.Alpha0 = 1.0
	body.M_sweep.A0 = bd.Angle
	body.M_sweep.A = bd.Angle
	body.M_sweep.C0 = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C = body.M_sweep.C0

	body.M_jointList = nil
	body.M_contactList = nil
	body.M_prev = nil
	body.M_next = nil

	body.M_linearVelocity = bd.LinearVelocity
	body.M_angularVelocity = bd.AngularVelocity

	body.M_linearDamping = bd.LinearDamping
	body.M_angularDamping = bd.AngularDamping

	body.M_force.SetZero()
	body.M_torque = 0.0

	body.M_sleepTime = 0.0

	body.M_mass = bd.MassData.Mass
	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
	}

	body.M_I = bd.MassData.I
	if body.M_I > 0.0 && (body.M_flags&B2Body_Flags.E_fixedRotationFlag) == 0 {
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
	}

	if body.M_invMass == 0.0 && body.M_invI == 0.0 {
		body.M_type = B2BodyType.B2_staticBody
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
	} else {
		body.M_type = B2BodyType.B2_dynamicBody
	}

	body.M_userData = bd.UserData

	body.M_fixtureList = nil
	body.M_fixtureCount = 0

	return body
}

/// Creates a fixture and attach it to this body. The body mass is updated
/// when the fixture carries mass.
/// @warning This function is locked during callbacks.
func (body *B2Body) CreateFixture(def *B2FixtureDef) (*B2Fixture, error) {
	if body.M_world.IsLocked() {
		return nil, ErrWorldLocked
	}

	B2Assert(def.Shape != nil)

	fixture := NewB2Fixture()
	fixture.Create(body, def)

	if !body.IsFrozen() {
		inRange, err := fixture.CreateProxy(body.M_world.M_broadPhase, body.M_xf)
		if err != nil {
			return nil, err
		}

		if !inRange {
			b2Logf("fixture created outside the world bounds, body is frozen")
			body.freeze()
			if body.M_world.M_boundaryListener != nil {
				body.M_world.M_boundaryListener.Violation(body)
			}
		}
	}

	fixture.M_next = body.M_fixtureList
	body.M_fixtureList = fixture
	body.M_fixtureCount++

	fixture.M_body = body

	// Adjust mass properties if needed.
	if fixture.hasMass() {
		if err := body.ResetMassData(); err != nil {
			return fixture, err
		}
	}

	return fixture, nil
}

/// Shortcut that creates a fixture from a shape with default friction.
func (body *B2Body) CreateFixtureFromShape(shape B2ShapeInterface, density float64) (*B2Fixture, error) {
	def := MakeB2FixtureDef()
	def.Shape = shape
	def.Density = density
	return body.CreateFixture(&def)
}

/// An edge chain is a run of edges sharing vertices. Every edge gets its own
/// fixture built from the embedded fixture definition, whose Shape is ignored.
type B2EdgeChainDef struct {
	B2FixtureDef

	/// The chain vertices, in body coordinates. The empty side of each edge
	/// is to the right when walking the chain.
	Vertices []B2Vec2

	/// Join the last vertex back to the first.
	IsLoop bool
}

func MakeB2EdgeChainDef(vertices ...B2Vec2) B2EdgeChainDef {
	return B2EdgeChainDef{
		B2FixtureDef: MakeB2FixtureDef(),
		Vertices:     vertices,
	}
}

/// Create one edge fixture per chain segment and connect neighbouring edges
/// so that shapes slide across the shared vertices.
/// @warning This function is locked during callbacks.
func (body *B2Body) CreateEdgeChain(def *B2EdgeChainDef) ([]*B2Fixture, error) {
	if body.M_world.IsLocked() {
		return nil, ErrWorldLocked
	}

	vertexCount := len(def.Vertices)
	minCount := 2
	if def.IsLoop {
		minCount = 3
	}
	if vertexCount < minCount {
		return nil, fmt.Errorf("%w: chain needs %d vertices, got %d", ErrInvalidEdge, minCount, vertexCount)
	}

	edgeCount := vertexCount - 1
	if def.IsLoop {
		edgeCount = vertexCount
	}

	edges := make([]B2EdgeShape, edgeCount)
	for i := range edges {
		edges[i] = MakeB2EdgeShape()
		if err := edges[i].Set(def.Vertices[i], def.Vertices[(i+1)%vertexCount]); err != nil {
			return nil, fmt.Errorf("chain edge %d: %w", i, err)
		}
	}

	fixtureDef := def.B2FixtureDef
	fixtures := make([]*B2Fixture, 0, edgeCount)
	for i := range edges {
		fixtureDef.Shape = &edges[i]
		fixture, err := body.CreateFixture(&fixtureDef)
		if err != nil {
			return fixtures, err
		}
		fixtures = append(fixtures, fixture)
	}

	// The fixtures own clones, so link those.
	first := fixtures[0].M_shape.(*B2EdgeShape)
	prev := first
	angle := math.Atan2(first.M_direction.Y, first.M_direction.X)
	for _, fixture := range fixtures[1:] {
		edge := fixture.M_shape.(*B2EdgeShape)
		angle = b2ConnectEdges(prev, edge, angle)
		prev = edge
	}
	if def.IsLoop {
		b2ConnectEdges(prev, first, angle)
	}

	for _, fixture := range fixtures {
		fixture.M_shape.UpdateSweepRadius(body.M_sweep.LocalCenter)
	}

	return fixtures, nil
}

/// Destroy a fixture. This removes the fixture from the broad-phase and
/// destroys its contacts. The body mass is reset.
/// @warning This function is locked during callbacks.
func (body *B2Body) DestroyFixture(fixture *B2Fixture) error {
	if fixture == nil {
		return nil
	}

	if body.M_world.IsLocked() {
		return ErrWorldLocked
	}

	B2Assert(fixture.M_body == body)

	// Remove the fixture from this body's singly linked list.
	B2Assert(body.M_fixtureCount > 0)
	node := &body.M_fixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.M_next
			found = true
			break
		}

		node = &(*node).M_next
	}

	// You tried to remove a shape that is not attached to this body.
	B2Assert(found)

	// Destroying the proxy removes its pairs and so its contacts.
	err := fixture.DestroyProxy(body.M_world.M_broadPhase)

	fixture.M_body = nil
	fixture.M_next = nil
	fixture.Destroy()

	body.M_fixtureCount--

	if massErr := body.ResetMassData(); err == nil {
		err = massErr
	}

	return err
}

/// Compute the mass properties from the attached fixtures. The body becomes
/// static when it ends up without mass and inertia, and its proxies are
/// recreated if that changes its type.
func (body *B2Body) ResetMassData() error {
	if body.M_world.IsLocked() {
		return ErrWorldLocked
	}

	// Compute mass data from shapes. Each shape has its own density.
	body.M_mass = 0.0
	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	// Accumulate mass over all fixtures.
	center := MakeB2Vec2(0, 0)
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		massData := NewMassData()
		f.GetMassData(massData)
		body.M_mass += massData.Mass
		center.OperatorPlusInplace(B2Vec2MulScalar(massData.Mass, massData.Center))
		body.M_I += massData.I
	}

	// Compute center of mass.
	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
		center.OperatorScalarMulInplace(body.M_invMass)
	}

	if body.M_I > 0.0 && (body.M_flags&B2Body_Flags.E_fixedRotationFlag) == 0 {
		// Center the inertia about the center of mass.
		body.M_I -= body.M_mass * B2Vec2Dot(center, center)
	}

	if body.M_I > 0.0 && (body.M_flags&B2Body_Flags.E_fixedRotationFlag) == 0 {
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
		body.M_invI = 0.0
	}

	return body.moveCenterOfMass(center)
}

/// Set the mass properties directly. This overrides the fixture mass. A zero
/// mass and inertia turns the body static.
func (body *B2Body) SetMassData(massData *B2MassData) error {
	if body.M_world.IsLocked() {
		return ErrWorldLocked
	}

	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	body.M_mass = massData.Mass

	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
	}

	if massData.I > 0.0 && (body.M_flags&B2Body_Flags.E_fixedRotationFlag) == 0 {
		body.M_I = massData.I - body.M_mass*B2Vec2Dot(massData.Center, massData.Center)
		if body.M_I > 0.0 {
			body.M_invI = 1.0 / body.M_I
		} else {
			body.M_I = 0.0
		}
	}

	return body.moveCenterOfMass(massData.Center)
}

func (body *B2Body) moveCenterOfMass(localCenter B2Vec2) error {
	// Move center of mass.
	body.M_sweep.LocalCenter = localCenter
	body.M_sweep.C0 = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C = body.M_sweep.C0

	// Update the sweep radii of all child shapes.
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		f.M_shape.UpdateSweepRadius(body.M_sweep.LocalCenter)
	}

	oldType := body.M_type
	if body.M_invMass == 0.0 && body.M_invI == 0.0 {
		body.M_type = B2BodyType.B2_staticBody
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
	} else {
		body.M_type = B2BodyType.B2_dynamicBody
	}

	// If the body type changed, we need to refilter the broad-phase proxies.
	if oldType != body.M_type {
		broadPhase := body.M_world.M_broadPhase
		for f := body.M_fixtureList; f != nil; f = f.M_next {
			if err := f.RefilterProxy(broadPhase, body.M_xf); err != nil {
				return err
			}
		}
	}

	return nil
}

/// Returns true if a joint with collideConnected unset links the two bodies.
func (body B2Body) IsConnected(other *B2Body) bool {
	for jn := body.M_jointList; jn != nil; jn = jn.Next {
		if jn.Other == other {
			return jn.Joint.IsCollideConnected() == false
		}
	}

	return false
}

/// Whether the fixtures of the two bodies may produce contacts.
func (body B2Body) ShouldCollide(other *B2Body) bool {
	// At least one body should be dynamic.
	if body.M_type != B2BodyType.B2_dynamicBody && other.M_type != B2BodyType.B2_dynamicBody {
		return false
	}

	// Does a joint prevent collision?
	return !body.IsConnected(other)
}

/// Set the position of the body's origin and rotation (radians).
/// This breaks any contacts and wakes the other bodies.
/// Returns ErrBodyFrozen when the body ends up outside the world bounds.
func (body *B2Body) SetTransform(position B2Vec2, angle float64) error {
	if body.M_world.IsLocked() {
		return ErrWorldLocked
	}

	if body.IsFrozen() {
		return ErrBodyFrozen
	}

	body.M_xf.R.SetAngle(angle)
	body.M_xf.P = position

	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.A = angle
	body.M_sweep.C0 = body.M_sweep.C
	body.M_sweep.A0 = angle

	broadPhase := body.M_world.M_broadPhase
	freeze := false
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		if !f.Synchronize(broadPhase, body.M_xf, body.M_xf) {
			freeze = true
			break
		}
	}

	if freeze {
		body.freeze()
		if body.M_world.M_boundaryListener != nil {
			body.M_world.M_boundaryListener.Violation(body)
		}
		return ErrBodyFrozen
	}

	return broadPhase.Commit()
}

/// Move the proxies to cover the sweep from (C0, A0) to the current transform.
/// A body whose swept box leaves the world is frozen and false is returned.
func (body *B2Body) SynchronizeFixtures() bool {
	if body.IsFrozen() {
		return false
	}

	xf1 := MakeB2Transform()
	xf1.R.SetAngle(body.M_sweep.A0)
	xf1.P = B2Vec2Sub(body.M_sweep.C0, B2Vec2Mat22Mul(xf1.R, body.M_sweep.LocalCenter))

	broadPhase := body.M_world.M_broadPhase
	inRange := true
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		inRange = f.Synchronize(broadPhase, xf1, body.M_xf)
		if !inRange {
			break
		}
	}

	if !inRange {
		body.freeze()
		return false
	}

	return true
}

// Zero the motion and drop the proxies of a body that left the world.
func (body *B2Body) freeze() {
	body.M_flags |= B2Body_Flags.E_frozenFlag
	body.M_linearVelocity.SetZero()
	body.M_angularVelocity = 0.0

	broadPhase := body.M_world.M_broadPhase
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		if err := f.DestroyProxy(broadPhase); err != nil {
			b2Logf("freeze: %v", err)
		}
	}
}

func (body *B2Body) SetFixedRotation(flag bool) error {
	status := (body.M_flags & B2Body_Flags.E_fixedRotationFlag) == B2Body_Flags.E_fixedRotationFlag
	if status == flag {
		return nil
	}

	if flag {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	} else {
		body.M_flags &= ^B2Body_Flags.E_fixedRotationFlag
	}

	body.M_angularVelocity = 0.0

	return body.ResetMassData()
}

func (body *B2Body) Dump() {
	bodyIndex := body.M_islandIndex

	fmt.Print("{\n")
	fmt.Print("  bd := box2d.MakeB2BodyDef()\n")
	fmt.Printf("  bd.Position.Set(%.15e, %.15e)\n", body.M_xf.P.X, body.M_xf.P.Y)
	fmt.Printf("  bd.Angle = %.15e\n", body.M_sweep.A)
	fmt.Printf("  bd.LinearVelocity.Set(%.15e, %.15e)\n", body.M_linearVelocity.X, body.M_linearVelocity.Y)
	fmt.Printf("  bd.AngularVelocity = %.15e\n", body.M_angularVelocity)
	fmt.Printf("  bd.LinearDamping = %.15e\n", body.M_linearDamping)
	fmt.Printf("  bd.AngularDamping = %.15e\n", body.M_angularDamping)
	fmt.Printf("  bd.AllowSleep = %t\n", body.IsSleepingAllowed())
	fmt.Printf("  bd.Awake = %t\n", body.IsAwake())
	fmt.Printf("  bd.FixedRotation = %t\n", body.IsFixedRotation())
	fmt.Printf("  bd.Bullet = %t\n", body.IsBullet())
	fmt.Printf("  bodies[%d] = world.CreateBody(&bd)\n", bodyIndex)
	fmt.Print("\n")
	for f := body.M_fixtureList; f != nil; f = f.M_next {
		fmt.Print("  {\n")
		f.Dump(bodyIndex)
		fmt.Print("  }\n")
	}
	fmt.Print("}\n")
}
