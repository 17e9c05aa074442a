package box2d

import (
	"math"
	"sync"
)

/// Friction mixing law. The idea is to allow either fixture to drive the friction to zero.
/// For example, anything slides on ice.
func B2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func B2MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

type B2ContactCreateFcn func(fixtureA *B2Fixture, fixtureB *B2Fixture) B2ContactInterface // returned contact should be a pointer

type B2ContactRegister struct {
	CreateFcn B2ContactCreateFcn
	Primary   bool
}

/// A contact edge is used to connect bodies and contacts together
/// in a contact graph where each body is a node and each contact
/// is an edge. A contact edge belongs to a doubly linked list
/// maintained in each attached body. Each contact has two contact
/// nodes, one for each attached body.
type B2ContactEdge struct {
	Other   *B2Body            ///< provides quick access to the other body attached.
	Contact B2ContactInterface ///< the contact
	Prev    *B2ContactEdge     ///< the previous contact edge in the body's contact list
	Next    *B2ContactEdge     ///< the next contact edge in the body's contact list
}

func NewB2ContactEdge() *B2ContactEdge {
	return &B2ContactEdge{}
}

var B2Contact_Flag = struct {
	// One of the fixtures is a sensor. The contact is evaluated but never solved.
	E_nonSolidFlag uint32

	// Neither body is static or a bullet, so the contact is skipped by the TOI pass.
	E_slowFlag uint32

	// Used when crawling contact graph when forming islands.
	E_islandFlag uint32

	// This contact has a valid TOI in m_toi
	E_toiFlag uint32
}{
	E_nonSolidFlag: 0x0001,
	E_slowFlag:     0x0002,
	E_islandFlag:   0x0004,
	E_toiFlag:      0x0008,
}

// The contact registry, indexed by the two shape types.
var s_registers [b2_shapeTypeCount][b2_shapeTypeCount]B2ContactRegister
var s_registerOnce sync.Once

/// The class manages contact between two shapes. A contact exists for each overlapping
/// AABB in the broad-phase (except if filtered). Therefore a contact object may exist
/// that has no contact points.
type B2ContactInterface interface {
	GetFlags() uint32
	SetFlags(flags uint32)

	GetPrev() B2ContactInterface
	SetPrev(prev B2ContactInterface)

	GetNext() B2ContactInterface
	SetNext(prev B2ContactInterface)

	GetNodeA() *B2ContactEdge
	SetNodeA(node *B2ContactEdge)

	GetNodeB() *B2ContactEdge
	SetNodeB(node *B2ContactEdge)

	GetFixtureA() *B2Fixture
	SetFixtureA(fixture *B2Fixture)

	GetFixtureB() *B2Fixture
	SetFixtureB(fixture *B2Fixture)

	GetManifold() *B2Manifold
	SetManifold(manifold *B2Manifold)

	GetManifoldCount() int

	GetTOI() float64
	SetTOI(toi float64)

	GetFriction() float64
	SetFriction(friction float64)
	ResetFriction()

	GetRestitution() float64
	SetRestitution(restitution float64)
	ResetRestitution()

	IsSolid() bool

	Evaluate(manifold *B2Manifold, xfA B2Transform, xfB B2Transform)
}

type B2Contact struct {
	M_flags uint32

	// World pool and list pointers.
	M_prev B2ContactInterface //should be backed by a pointer
	M_next B2ContactInterface //should be backed by a pointer

	// Nodes for connecting bodies.
	M_nodeA *B2ContactEdge
	M_nodeB *B2ContactEdge

	M_fixtureA *B2Fixture
	M_fixtureB *B2Fixture

	M_manifold *B2Manifold

	M_toi         float64
	M_friction    float64
	M_restitution float64
}

func (contact B2Contact) GetFlags() uint32 {
	return contact.M_flags
}

func (contact *B2Contact) SetFlags(flags uint32) {
	contact.M_flags = flags
}

func (contact B2Contact) GetPrev() B2ContactInterface {
	return contact.M_prev
}

func (contact *B2Contact) SetPrev(prev B2ContactInterface) {
	contact.M_prev = prev
}

func (contact B2Contact) GetNext() B2ContactInterface {
	return contact.M_next
}

func (contact *B2Contact) SetNext(next B2ContactInterface) {
	contact.M_next = next
}

func (contact B2Contact) GetNodeA() *B2ContactEdge {
	return contact.M_nodeA
}

func (contact *B2Contact) SetNodeA(node *B2ContactEdge) {
	contact.M_nodeA = node
}

func (contact B2Contact) GetNodeB() *B2ContactEdge {
	return contact.M_nodeB
}

func (contact *B2Contact) SetNodeB(node *B2ContactEdge) {
	contact.M_nodeB = node
}

func (contact B2Contact) GetFixtureA() *B2Fixture {
	return contact.M_fixtureA
}

func (contact *B2Contact) SetFixtureA(fixture *B2Fixture) {
	contact.M_fixtureA = fixture
}

func (contact B2Contact) GetFixtureB() *B2Fixture {
	return contact.M_fixtureB
}

func (contact *B2Contact) SetFixtureB(fixture *B2Fixture) {
	contact.M_fixtureB = fixture
}

func (contact B2Contact) GetManifold() *B2Manifold {
	return contact.M_manifold
}

func (contact *B2Contact) SetManifold(manifold *B2Manifold) {
	contact.M_manifold = manifold
}

/// Convex shapes produce at most one manifold.
func (contact B2Contact) GetManifoldCount() int {
	if contact.M_manifold.PointCount > 0 {
		return 1
	}

	return 0
}

func (contact B2Contact) GetTOI() float64 {
	return contact.M_toi
}

func (contact *B2Contact) SetTOI(toi float64) {
	contact.M_toi = toi
}

func (contact B2Contact) GetFriction() float64 {
	return contact.M_friction
}

func (contact *B2Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact *B2Contact) ResetFriction() {
	contact.M_friction = B2MixFriction(contact.M_fixtureA.M_friction, contact.M_fixtureB.M_friction)
}

func (contact B2Contact) GetRestitution() float64 {
	return contact.M_restitution
}

func (contact *B2Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact *B2Contact) ResetRestitution() {
	contact.M_restitution = B2MixRestitution(contact.M_fixtureA.M_restitution, contact.M_fixtureB.M_restitution)
}

func (contact B2Contact) IsSolid() bool {
	return (contact.M_flags & B2Contact_Flag.E_nonSolidFlag) == 0
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Contact.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func addContactType(createFcn B2ContactCreateFcn, type1 uint8, type2 uint8) {
	B2Assert(type1 < B2Shape_Type.E_typeCount)
	B2Assert(type2 < B2Shape_Type.E_typeCount)

	s_registers[type1][type2].CreateFcn = createFcn
	s_registers[type1][type2].Primary = true

	if type1 != type2 {
		s_registers[type2][type1].CreateFcn = createFcn
		s_registers[type2][type1].Primary = false
	}
}

/// Create the contact registered for the two shape types. Returns nil for
/// pairs that never collide, such as two points.
func B2ContactFactory(fixtureA *B2Fixture, fixtureB *B2Fixture) B2ContactInterface { // returned contact should be a pointer
	s_registerOnce.Do(b2RegisterShapeContacts)

	type1 := fixtureA.GetType()
	type2 := fixtureB.GetType()

	B2Assert(type1 < B2Shape_Type.E_typeCount)
	B2Assert(type2 < B2Shape_Type.E_typeCount)

	createFcn := s_registers[type1][type2].CreateFcn
	if createFcn != nil {
		if s_registers[type1][type2].Primary {
			return createFcn(fixtureA, fixtureB)
		} else {
			return createFcn(fixtureB, fixtureA)
		}
	}

	return nil
}

/// Wake the bodies of a touching contact that is going away.
func B2ContactDestroy(contact B2ContactInterface) {
	fixtureA := contact.GetFixtureA()
	fixtureB := contact.GetFixtureB()

	if contact.GetManifoldCount() > 0 {
		fixtureA.GetBody().SetAwake(true)
		fixtureB.GetBody().SetAwake(true)
	}
}

func MakeB2Contact(fA *B2Fixture, fB *B2Fixture) B2Contact {
	contact := B2Contact{}
	contact.M_flags = 0

	if fA.IsSensor() || fB.IsSensor() {
		contact.M_flags |= B2Contact_Flag.E_nonSolidFlag
	}

	contact.M_fixtureA = fA
	contact.M_fixtureB = fB

	contact.M_manifold = NewB2Manifold()
	contact.M_manifold.PointCount = 0

	contact.M_prev = nil
	contact.M_next = nil

	contact.M_nodeA = NewB2ContactEdge()
	contact.M_nodeB = NewB2ContactEdge()

	contact.M_toi = 0.0

	contact.M_friction = B2MixFriction(contact.M_fixtureA.M_friction, contact.M_fixtureB.M_friction)
	contact.M_restitution = B2MixRestitution(contact.M_fixtureA.M_restitution, contact.M_fixtureB.M_restitution)

	return contact
}

// Fill the geometric part of a reported contact point.
func b2ContactPointFromManifold(cp *B2ContactPoint, bodyA *B2Body, bodyB *B2Body, normal B2Vec2, mp *B2ManifoldPoint) {
	cp.Position = bodyA.GetWorldPoint(mp.LocalPoint1)
	v1 := bodyA.GetLinearVelocityFromLocalPoint(mp.LocalPoint1)
	v2 := bodyB.GetLinearVelocityFromLocalPoint(mp.LocalPoint2)
	cp.Velocity = B2Vec2Sub(v2, v1)
	cp.Normal = normal
	cp.Separation = mp.Separation
	cp.Id = mp.Id
}

/// Run the narrow phase for the contact. New points are matched to old ones by
/// ContactID key so the warm starting impulses carry over. The listener is told
/// which points were added, persisted or removed.
func B2ContactUpdate(contact B2ContactInterface, listener B2ContactListenerInterface) {
	manifold := contact.GetManifold()
	oldManifold := *manifold
	oldCount := contact.GetManifoldCount()

	fixtureA := contact.GetFixtureA()
	fixtureB := contact.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	contact.Evaluate(manifold, bodyA.GetTransform(), bodyB.GetTransform())

	var persisted [B2_maxManifoldPoints]bool

	var cp B2ContactPoint
	cp.Fixture1 = fixtureA
	cp.Fixture2 = fixtureB
	cp.Friction = contact.GetFriction()
	cp.Restitution = contact.GetRestitution()

	// Match old contact ids to new contact ids and copy the
	// stored impulses to warm start the solver.
	for i := 0; i < manifold.PointCount; i++ {
		mp := &manifold.Points[i]
		mp.NormalImpulse = 0.0
		mp.TangentImpulse = 0.0
		found := false
		key := mp.Id.Key()

		for j := 0; j < oldManifold.PointCount; j++ {
			if persisted[j] {
				continue
			}

			mp0 := &oldManifold.Points[j]
			if mp0.Id.Key() == key {
				persisted[j] = true
				mp.NormalImpulse = mp0.NormalImpulse
				mp.TangentImpulse = mp0.TangentImpulse
				found = true

				if listener != nil {
					b2ContactPointFromManifold(&cp, bodyA, bodyB, manifold.Normal, mp)
					listener.Persist(&cp)
				}
				break
			}
		}

		if !found && listener != nil {
			b2ContactPointFromManifold(&cp, bodyA, bodyB, manifold.Normal, mp)
			listener.Add(&cp)
		}
	}

	if listener != nil {
		for i := 0; i < oldManifold.PointCount; i++ {
			if persisted[i] {
				continue
			}

			b2ContactPointFromManifold(&cp, bodyA, bodyB, oldManifold.Normal, &oldManifold.Points[i])
			listener.Remove(&cp)
		}
	}

	newCount := contact.GetManifoldCount()
	if newCount == 0 && oldCount > 0 {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	if bodyA.IsStatic() || bodyA.IsBullet() || bodyB.IsStatic() || bodyB.IsBullet() {
		contact.SetFlags(contact.GetFlags() & ^B2Contact_Flag.E_slowFlag)
	} else {
		contact.SetFlags(contact.GetFlags() | B2Contact_Flag.E_slowFlag)
	}
}
