package box2d

import (
	"fmt"
)

/// This holds contact filtering data.
type B2Filter struct {
	/// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	/// The collision mask bits. This states the categories that this
	/// shape would accept for collision.
	MaskBits uint16

	/// Collision groups allow a certain group of objects to never collide (negative)
	/// or always collide (positive). Zero means no collision group. Non-zero group
	/// filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeB2Filter() B2Filter {
	return B2Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

/// A fixture definition is used to create a fixture. You can reuse fixture
/// definitions safely.
type B2FixtureDef struct {

	/// The shape, this must be set. The shape will be cloned, so you
	/// can create the shape on the stack.
	Shape B2ShapeInterface

	/// Use this to store application specific fixture data.
	UserData interface{}

	/// The friction coefficient, usually in the range [0,1].
	Friction float64

	/// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	/// The density, usually in kg/m^2. Point shapes carry their own mass
	/// and ignore it.
	Density float64

	/// A sensor shape collects contact information but never generates a collision
	/// response.
	IsSensor bool

	/// Contact filtering data.
	Filter B2Filter
}

/// The constructor sets the default fixture definition values.
func MakeB2FixtureDef() B2FixtureDef {
	return B2FixtureDef{
		Shape:       nil,
		UserData:    nil,
		Friction:    0.2,
		Restitution: 0.0,
		Density:     0.0,
		IsSensor:    false,
		Filter:      MakeB2Filter(),
	}
}

/// A fixture is used to attach a shape to a body for collision detection. A fixture
/// inherits its transform from its parent. Fixtures hold additional non-geometric data
/// such as friction, collision filters, etc.
/// Fixtures are created via B2Body.CreateFixture.
/// @warning you cannot reuse fixtures.
type B2Fixture struct {
	M_density float64

	M_next *B2Fixture
	M_body *B2Body

	M_shape B2ShapeInterface

	M_friction    float64
	M_restitution float64

	// One broad-phase proxy per fixture, B2_nullProxy while the body is frozen.
	M_proxyId int

	M_filter B2Filter

	M_isSensor bool

	M_userData interface{}
}

func NewB2Fixture() *B2Fixture {
	return &B2Fixture{
		M_next:    nil,
		M_body:    nil,
		M_proxyId: B2_nullProxy,
		M_filter:  MakeB2Filter(),
	}
}

func (fix B2Fixture) GetType() uint8 {
	return fix.M_shape.GetType()
}

func (fix B2Fixture) GetShape() B2ShapeInterface {
	return fix.M_shape
}

func (fix B2Fixture) IsSensor() bool {
	return fix.M_isSensor
}

func (fix B2Fixture) GetFilterData() B2Filter {
	return fix.M_filter
}

func (fix B2Fixture) GetUserData() interface{} {
	return fix.M_userData
}

func (fix *B2Fixture) SetUserData(data interface{}) {
	fix.M_userData = data
}

func (fix B2Fixture) GetBody() *B2Body {
	return fix.M_body
}

func (fix B2Fixture) GetNext() *B2Fixture {
	return fix.M_next
}

/// Set the density. Call B2Body.ResetMassData to update the body mass.
func (fix *B2Fixture) SetDensity(density float64) {
	B2Assert(B2IsValid(density) && density >= 0.0)
	fix.M_density = density
}

func (fix B2Fixture) GetDensity() float64 {
	return fix.M_density
}

func (fix B2Fixture) GetFriction() float64 {
	return fix.M_friction
}

func (fix *B2Fixture) SetFriction(friction float64) {
	fix.M_friction = friction
}

func (fix B2Fixture) GetRestitution() float64 {
	return fix.M_restitution
}

func (fix *B2Fixture) SetRestitution(restitution float64) {
	fix.M_restitution = restitution
}

func (fix B2Fixture) GetProxyId() int {
	return fix.M_proxyId
}

/// Test a point in world coordinates for containment in this fixture.
func (fix B2Fixture) TestPoint(p B2Vec2) bool {
	return fix.M_shape.TestPoint(fix.M_body.GetTransform(), p)
}

/// Cast a segment against this fixture in world coordinates.
func (fix B2Fixture) TestSegment(output *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8 {
	return fix.M_shape.TestSegment(fix.M_body.GetTransform(), output, segment, maxLambda)
}

func (fix B2Fixture) GetMassData(massData *B2MassData) {
	fix.M_shape.ComputeMass(massData, fix.M_density)
}

/// The fixture AABB at the current body transform.
func (fix B2Fixture) GetAABB() B2AABB {
	aabb := MakeB2AABB()
	fix.M_shape.ComputeAABB(&aabb, fix.M_body.GetTransform())
	return aabb
}

// Point shapes have an intrinsic mass, every other shape needs density.
func (fix B2Fixture) hasMass() bool {
	if point, ok := fix.M_shape.(*B2PointShape); ok {
		return point.M_mass > 0.0
	}
	if fix.M_shape.GetType() == B2Shape_Type.E_edge {
		return false
	}

	return fix.M_density > 0.0
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Fixture.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func (fix *B2Fixture) Create(body *B2Body, def *B2FixtureDef) {
	fix.M_userData = def.UserData
	fix.M_friction = def.Friction
	fix.M_restitution = def.Restitution

	fix.M_body = body
	fix.M_next = nil

	fix.M_filter = def.Filter

	fix.M_isSensor = def.IsSensor

	fix.M_shape = def.Shape.Clone()
	fix.M_shape.UpdateSweepRadius(body.M_sweep.LocalCenter)

	fix.M_proxyId = B2_nullProxy

	fix.M_density = def.Density
}

func (fix *B2Fixture) Destroy() {
	// The proxy must be destroyed before calling this.
	B2Assert(fix.M_proxyId == B2_nullProxy)

	fix.M_shape = nil
}

/// Add the fixture to the broad phase. A fixture outside the world bounds gets
/// no proxy and the call reports false.
func (fix *B2Fixture) CreateProxy(broadPhase *B2BroadPhase, xf B2Transform) (bool, error) {
	B2Assert(fix.M_proxyId == B2_nullProxy)

	aabb := MakeB2AABB()
	fix.M_shape.ComputeAABB(&aabb, xf)

	if !broadPhase.InRange(aabb) {
		fix.M_proxyId = B2_nullProxy
		return false, nil
	}

	proxyId, err := broadPhase.CreateProxy(aabb, fix)
	if err != nil {
		fix.M_proxyId = B2_nullProxy
		return true, err
	}

	fix.M_proxyId = proxyId
	return true, nil
}

func (fix *B2Fixture) DestroyProxy(broadPhase *B2BroadPhase) error {
	if fix.M_proxyId == B2_nullProxy {
		return nil
	}

	err := broadPhase.DestroyProxy(fix.M_proxyId)
	fix.M_proxyId = B2_nullProxy
	return err
}

/// Move the proxy to cover the swept shape. Returns false when the fixture
/// has no proxy or the swept box left the world bounds.
func (fix *B2Fixture) Synchronize(broadPhase *B2BroadPhase, transform1 B2Transform, transform2 B2Transform) bool {
	if fix.M_proxyId == B2_nullProxy {
		return false
	}

	// Compute an AABB that covers the swept shape (may miss some rotation effect).
	aabb := MakeB2AABB()
	fix.M_shape.ComputeSweptAABB(&aabb, transform1, transform2)

	if !broadPhase.InRange(aabb) {
		return false
	}

	broadPhase.MoveProxy(fix.M_proxyId, aabb)
	return true
}

/// Recreate the proxy so the pair manager reconsiders every overlap. This is
/// how filter and body type changes reach the contact list.
func (fix *B2Fixture) RefilterProxy(broadPhase *B2BroadPhase, xf B2Transform) error {
	if fix.M_proxyId == B2_nullProxy {
		return nil
	}

	if err := broadPhase.DestroyProxy(fix.M_proxyId); err != nil {
		return err
	}
	fix.M_proxyId = B2_nullProxy

	_, err := fix.CreateProxy(broadPhase, xf)
	return err
}

func (fix *B2Fixture) SetFilterData(filter B2Filter) error {
	fix.M_filter = filter
	return fix.Refilter()
}

func (fix *B2Fixture) Refilter() error {
	if fix.M_body == nil {
		return nil
	}

	world := fix.M_body.GetWorld()
	if world == nil {
		return nil
	}

	if world.IsLocked() {
		return ErrWorldLocked
	}

	return fix.RefilterProxy(world.M_broadPhase, fix.M_body.M_xf)
}

func (fix *B2Fixture) SetSensor(sensor bool) {
	if sensor != fix.M_isSensor {
		fix.M_body.SetAwake(true)
		fix.M_isSensor = sensor
	}
}

func (fix *B2Fixture) Dump(bodyIndex int) {
	fmt.Print("    fd := box2d.MakeB2FixtureDef()\n")
	fmt.Printf("    fd.Friction = %.15e\n", fix.M_friction)
	fmt.Printf("    fd.Restitution = %.15e\n", fix.M_restitution)
	fmt.Printf("    fd.Density = %.15e\n", fix.M_density)
	fmt.Printf("    fd.IsSensor = %t\n", fix.M_isSensor)
	fmt.Printf("    fd.Filter.CategoryBits = uint16(%d)\n", fix.M_filter.CategoryBits)
	fmt.Printf("    fd.Filter.MaskBits = uint16(%d)\n", fix.M_filter.MaskBits)
	fmt.Printf("    fd.Filter.GroupIndex = int16(%d)\n", fix.M_filter.GroupIndex)

	fix.M_shape.Dump()

	fmt.Print("\n")
	fmt.Print("    fd.Shape = shape\n")
	fmt.Print("\n")
	fmt.Printf("    bodies[%d].CreateFixture(&fd)\n", bodyIndex)
}
