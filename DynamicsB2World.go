package box2d

import (
	"fmt"
	"math"
	"time"
)

var B2World_Flags = struct {
	E_locked      int
	E_clearForces int
}{
	E_locked:      0x0002,
	E_clearForces: 0x0004,
}

/// The world class manages all physics entities, dynamic simulation,
/// and asynchronous queries. Bodies that leave the world AABB are frozen.
type B2World struct {
	M_flags int

	M_broadPhase     *B2BroadPhase
	M_contactManager *B2ContactManager

	M_bodyList  *B2Body          // linked list
	M_jointList B2JointInterface // has to be backed by pointer

	M_bodyCount  int
	M_jointCount int

	M_controllers []B2Controller

	M_gravity    B2Vec2
	M_allowSleep bool

	M_groundBody *B2Body

	M_destructionListener B2DestructionListenerInterface
	M_boundaryListener    B2BoundaryListenerInterface

	// This is used to compute the time step ratio to
	// support a variable time step.
	M_inv_dt0 float64

	// These are for debugging the solver.
	M_warmStarting      bool
	M_continuousPhysics bool

	// Keep warm starting impulses unscaled when dt changes.
	M_fixedDtRatio bool

	// Scratch reused by every step.
	m_island B2Island
	m_stack  *B2GrowableStack[*B2Body]
	m_queue  []*B2Body

	M_profile B2Profile
}

func (world B2World) GetBodyList() *B2Body {
	return world.M_bodyList
}

func (world B2World) GetJointList() B2JointInterface { // returns a pointer
	return world.M_jointList
}

func (world B2World) GetContactList() B2ContactInterface { // returns a pointer
	return world.M_contactManager.M_contactList
}

func (world B2World) GetBodyCount() int {
	return world.M_bodyCount
}

func (world B2World) GetJointCount() int {
	return world.M_jointCount
}

func (world B2World) GetContactCount() int {
	return world.M_contactManager.M_contactCount
}

/// The static body created with the world. Useful as the ground side of
/// mouse and pulley joints.
func (world B2World) GetGroundBody() *B2Body {
	return world.M_groundBody
}

func (world *B2World) SetGravity(gravity B2Vec2) {
	world.M_gravity = gravity
}

func (world B2World) GetGravity() B2Vec2 {
	return world.M_gravity
}

func (world B2World) IsLocked() bool {
	return (world.M_flags & B2World_Flags.E_locked) == B2World_Flags.E_locked
}

func (world *B2World) SetAutoClearForces(flag bool) {
	if flag {
		world.M_flags |= B2World_Flags.E_clearForces
	} else {
		world.M_flags &= ^B2World_Flags.E_clearForces
	}
}

/// Get the flag that controls automatic clearing of forces after each time step.
func (world B2World) GetAutoClearForces() bool {
	return (world.M_flags & B2World_Flags.E_clearForces) == B2World_Flags.E_clearForces
}

func (world B2World) GetContactManager() *B2ContactManager {
	return world.M_contactManager
}

func (world B2World) GetProfile() B2Profile {
	return world.M_profile
}

func (world *B2World) SetWarmStarting(flag bool) {
	world.M_warmStarting = flag
}

func (world B2World) GetWarmStarting() bool {
	return world.M_warmStarting
}

func (world *B2World) SetContinuousPhysics(flag bool) {
	world.M_continuousPhysics = flag
}

func (world B2World) GetContinuousPhysics() bool {
	return world.M_continuousPhysics
}

func (world B2World) GetProxyCount() int {
	return world.M_broadPhase.GetProxyCount()
}

func (world B2World) GetPairCount() int {
	return world.M_broadPhase.GetPairCount()
}

/// Check if the AABB is within the broad-phase limits.
func (world B2World) InRange(aabb B2AABB) bool {
	return world.M_broadPhase.InRange(aabb)
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2World.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// Construct a world object.
/// @param gravity the world gravity vector.
/// @param worldAABB the world bounding box. Bodies leaving it are frozen.
/// @param doSleep improve performance by not simulating inactive bodies.
func NewB2World(gravity B2Vec2, worldAABB B2AABB, doSleep bool) (*B2World, error) {
	return NewB2WorldWithCapacity(gravity, worldAABB, doSleep, B2_maxProxies, B2_maxPairs)
}

/// Same as NewB2World with explicit broad-phase pool sizes.
func NewB2WorldWithCapacity(gravity B2Vec2, worldAABB B2AABB, doSleep bool, maxProxies, maxPairs int) (*B2World, error) {
	world := &B2World{}

	world.M_destructionListener = nil
	world.M_boundaryListener = nil

	world.M_bodyList = nil
	world.M_jointList = nil

	world.M_bodyCount = 0
	world.M_jointCount = 0

	world.M_warmStarting = true
	world.M_continuousPhysics = true

	world.M_allowSleep = doSleep
	world.M_gravity = gravity

	world.M_flags = B2World_Flags.E_clearForces

	world.M_inv_dt0 = 0.0

	world.M_contactManager = NewB2ContactManager()

	broadPhase, err := NewB2BroadPhaseWithCapacity(worldAABB, world.M_contactManager, maxProxies, maxPairs)
	if err != nil {
		return nil, err
	}
	world.M_broadPhase = broadPhase
	world.M_contactManager.M_broadPhase = broadPhase

	world.m_island = MakeB2Island(0, 0, 0, nil)
	world.m_stack = NewB2GrowableStack[*B2Body](64)

	bd := MakeB2BodyDef()
	world.M_groundBody, err = world.CreateBody(&bd)
	if err != nil {
		return nil, err
	}

	return world, nil
}

/// Register a destruction listener. The listener is owned by you and must
/// remain in scope.
func (world *B2World) SetDestructionListener(listener B2DestructionListenerInterface) {
	world.M_destructionListener = listener
}

/// Register a listener notified when a body leaves the world AABB.
func (world *B2World) SetBoundaryListener(listener B2BoundaryListenerInterface) {
	world.M_boundaryListener = listener
}

/// Register a contact filter to provide specific control over collision.
/// Otherwise the default filter is used.
func (world *B2World) SetContactFilter(filter B2ContactFilterInterface) {
	world.M_contactManager.M_contactFilter = filter
}

/// Register a contact event listener.
func (world *B2World) SetContactListener(listener B2ContactListenerInterface) {
	world.M_contactManager.M_contactListener = listener
}

/// Create a rigid body given a definition. No reference to the definition
/// is retained.
/// @warning This function is locked during callbacks.
func (world *B2World) CreateBody(def *B2BodyDef) (*B2Body, error) {
	if world.IsLocked() {
		return nil, ErrWorldLocked
	}

	b := NewB2Body(def, world)

	// Add to world doubly linked list.
	b.M_prev = nil
	b.M_next = world.M_bodyList
	if world.M_bodyList != nil {
		world.M_bodyList.M_prev = b
	}
	world.M_bodyList = b
	world.M_bodyCount++

	return b, nil
}

/// Destroy a rigid body given a definition. No reference to the definition
/// is retained. This automatically deletes all associated fixtures and joints.
/// @warning This function is locked during callbacks.
func (world *B2World) DestroyBody(b *B2Body) error {
	B2Assert(world.M_bodyCount > 0)
	if world.IsLocked() {
		return ErrWorldLocked
	}

	var firstErr error

	// Delete the attached joints.
	je := b.M_jointList
	for je != nil {
		je0 := je
		je = je.Next

		if world.M_destructionListener != nil {
			world.M_destructionListener.SayGoodbyeToJoint(je0.Joint)
		}

		if err := world.DestroyJoint(je0.Joint); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.M_jointList = nil

	// Delete the attached fixtures. This destroys broad-phase proxies
	// and pairs, leading to the destruction of contacts.
	f := b.M_fixtureList
	for f != nil {
		f0 := f
		f = f.M_next

		if world.M_destructionListener != nil {
			world.M_destructionListener.SayGoodbyeToFixture(f0)
		}

		if err := f0.DestroyProxy(world.M_broadPhase); err != nil && firstErr == nil {
			firstErr = err
		}
		f0.Destroy()
	}
	b.M_fixtureList = nil
	b.M_fixtureCount = 0

	for _, controller := range world.M_controllers {
		controller.RemoveBody(b)
	}

	// Remove world body list.
	if b.M_prev != nil {
		b.M_prev.M_next = b.M_next
	}

	if b.M_next != nil {
		b.M_next.M_prev = b.M_prev
	}

	if b == world.M_bodyList {
		world.M_bodyList = b.M_next
	}

	world.M_bodyCount--

	return firstErr
}

/// Attach a controller. It is stepped before the islands are solved, in the
/// order controllers were added.
/// @warning This function is locked during callbacks.
func (world *B2World) AddController(controller B2Controller) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	if controller.GetWorld() == world {
		return nil
	}
	B2Assert(controller.GetWorld() == nil)

	controller.setWorld(world)
	world.M_controllers = append(world.M_controllers, controller)
	return nil
}

/// Detach a controller and all of its bodies.
/// @warning This function is locked during callbacks.
func (world *B2World) RemoveController(controller B2Controller) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	for i, c := range world.M_controllers {
		if c == controller {
			world.M_controllers = append(world.M_controllers[:i], world.M_controllers[i+1:]...)
			controller.Clear()
			controller.setWorld(nil)
			return nil
		}
	}
	return nil
}

func (world B2World) GetControllerList() []B2Controller {
	return world.M_controllers
}

/// Create a joint to constrain bodies together. No reference to the definition
/// is retained. This may cause the connected bodies to cease colliding.
/// @warning This function is locked during callbacks.
func (world *B2World) CreateJoint(def B2JointDefInterface) (B2JointInterface, error) {
	if world.IsLocked() {
		return nil, ErrWorldLocked
	}

	j, err := B2JointCreate(def)
	if err != nil {
		return nil, err
	}

	// Connect to the world list.
	j.SetPrev(nil)
	j.SetNext(world.M_jointList)
	if world.M_jointList != nil {
		world.M_jointList.SetPrev(j)
	}
	world.M_jointList = j
	world.M_jointCount++

	bodyA := j.GetBodyA()
	bodyB := j.GetBodyB()

	// Connect to the bodies' doubly linked lists.
	j.GetEdgeA().Joint = j
	j.GetEdgeA().Other = bodyB
	j.GetEdgeA().Prev = nil
	j.GetEdgeA().Next = bodyA.M_jointList
	if bodyA.M_jointList != nil {
		bodyA.M_jointList.Prev = j.GetEdgeA()
	}
	bodyA.M_jointList = j.GetEdgeA()

	j.GetEdgeB().Joint = j
	j.GetEdgeB().Other = bodyA
	j.GetEdgeB().Prev = nil
	j.GetEdgeB().Next = bodyB.M_jointList
	if bodyB.M_jointList != nil {
		bodyB.M_jointList.Prev = j.GetEdgeB()
	}
	bodyB.M_jointList = j.GetEdgeB()

	// If the joint prevents collisions, then reset collision filtering.
	if !j.IsCollideConnected() {
		if err := world.refilterJointBodies(bodyA, bodyB); err != nil {
			return j, err
		}
	}

	return j, nil
}

/// Destroy a joint. This may cause the connected bodies to begin colliding.
/// @warning This function is locked during callbacks.
func (world *B2World) DestroyJoint(j B2JointInterface) error { // j backed by pointer
	if world.IsLocked() {
		return ErrWorldLocked
	}

	collideConnected := j.IsCollideConnected()

	// Remove from the doubly linked list.
	if j.GetPrev() != nil {
		j.GetPrev().SetNext(j.GetNext())
	}

	if j.GetNext() != nil {
		j.GetNext().SetPrev(j.GetPrev())
	}

	if j == world.M_jointList {
		world.M_jointList = j.GetNext()
	}

	// Disconnect from island graph.
	bodyA := j.GetBodyA()
	bodyB := j.GetBodyB()

	// Wake up connected bodies.
	bodyA.SetAwake(true)
	bodyB.SetAwake(true)

	// Remove from body 1.
	edgeA := j.GetEdgeA()
	if edgeA.Prev != nil {
		edgeA.Prev.Next = edgeA.Next
	}

	if edgeA.Next != nil {
		edgeA.Next.Prev = edgeA.Prev
	}

	if edgeA == bodyA.M_jointList {
		bodyA.M_jointList = edgeA.Next
	}

	edgeA.Prev = nil
	edgeA.Next = nil

	// Remove from body 2
	edgeB := j.GetEdgeB()
	if edgeB.Prev != nil {
		edgeB.Prev.Next = edgeB.Next
	}

	if edgeB.Next != nil {
		edgeB.Next.Prev = edgeB.Prev
	}

	if edgeB == bodyB.M_jointList {
		bodyB.M_jointList = edgeB.Next
	}

	edgeB.Prev = nil
	edgeB.Next = nil

	B2JointDestroy(j)

	B2Assert(world.M_jointCount > 0)
	world.M_jointCount--

	// If the joint prevents collisions, then reset collision filtering.
	if !collideConnected {
		return world.refilterJointBodies(bodyA, bodyB)
	}

	return nil
}

// Reset the proxies on the body with the minimum number of fixtures.
func (world *B2World) refilterJointBodies(bodyA, bodyB *B2Body) error {
	b := bodyB
	if bodyA.M_fixtureCount < bodyB.M_fixtureCount {
		b = bodyA
	}

	for f := b.M_fixtureList; f != nil; f = f.M_next {
		if err := f.RefilterProxy(world.M_broadPhase, b.M_xf); err != nil {
			return err
		}
	}

	return nil
}

/// Enable/disable sleep.
func (world *B2World) SetAllowSleeping(flag bool) {
	if flag == world.M_allowSleep {
		return
	}

	world.M_allowSleep = flag
	if !world.M_allowSleep {
		for b := world.M_bodyList; b != nil; b = b.M_next {
			b.SetAwake(true)
		}
	}
}

func (world B2World) GetAllowSleeping() bool {
	return world.M_allowSleep
}

// Find islands, integrate and solve constraints, solve position constraints
func (world *B2World) Solve(step B2TimeStep) {
	// Step all controllers.
	for _, controller := range world.M_controllers {
		controller.Step(step)
	}

	// Size the island for the worst case.
	island := &world.m_island
	island.M_listener = world.M_contactManager.M_contactListener
	island.Reserve(world.M_bodyCount, world.M_contactManager.M_contactCount, world.M_jointCount)

	// Clear all the island flags.
	for b := world.M_bodyList; b != nil; b = b.M_next {
		b.M_flags &= ^B2Body_Flags.E_islandFlag
	}
	for c := world.M_contactManager.M_contactList; c != nil; c = c.GetNext() {
		c.SetFlags(c.GetFlags() & ^B2Contact_Flag.E_islandFlag)
	}
	for j := world.M_jointList; j != nil; j = j.GetNext() {
		j.SetIslandFlag(false)
	}

	// Build and simulate all awake islands.
	stack := world.m_stack
	for seed := world.M_bodyList; seed != nil; seed = seed.M_next {
		if (seed.M_flags & (B2Body_Flags.E_islandFlag | B2Body_Flags.E_frozenFlag)) != 0x0000 {
			continue
		}

		if !seed.IsAwake() {
			continue
		}

		// The seed can be awake or asleep but must be dynamic.
		if seed.IsStatic() {
			continue
		}

		// Reset island and stack.
		island.Clear()
		stack.Reset()
		stack.Push(seed)
		seed.M_flags |= B2Body_Flags.E_islandFlag

		// Perform a depth first search (DFS) on the constraint graph.
		for stack.GetCount() > 0 {
			// Grab the next body off the stack and add it to the island.
			b := stack.Pop()
			island.AddBody(b)

			// Make sure the body is awake. The sleep timer keeps running.
			b.M_flags |= B2Body_Flags.E_awakeFlag

			// To keep islands as small as possible, we don't
			// propagate islands across static bodies.
			if b.IsStatic() {
				continue
			}

			// Search all contacts connected to this body.
			for ce := b.M_contactList; ce != nil; ce = ce.Next {
				contact := ce.Contact

				// Has this contact already been added to an island?
				if (contact.GetFlags() & (B2Contact_Flag.E_islandFlag | B2Contact_Flag.E_nonSolidFlag)) != 0x0000 {
					continue
				}

				// Is this contact touching?
				if contact.GetManifoldCount() == 0 {
					continue
				}

				island.AddContact(contact)
				contact.SetFlags(contact.GetFlags() | B2Contact_Flag.E_islandFlag)

				other := ce.Other

				// Was the other body already added to this island?
				if (other.M_flags & B2Body_Flags.E_islandFlag) != 0x0000 {
					continue
				}

				stack.Push(other)
				other.M_flags |= B2Body_Flags.E_islandFlag
			}

			// Search all joints connect to this body.
			for je := b.M_jointList; je != nil; je = je.Next {
				if je.Joint.GetIslandFlag() {
					continue
				}

				island.AddJoint(je.Joint)
				je.Joint.SetIslandFlag(true)

				other := je.Other
				if (other.M_flags & B2Body_Flags.E_islandFlag) != 0x0000 {
					continue
				}

				stack.Push(other)
				other.M_flags |= B2Body_Flags.E_islandFlag
			}
		}

		island.Solve(step, world.M_gravity, world.M_allowSleep)

		// Post solve cleanup.
		for i := 0; i < island.M_bodyCount; i++ {
			// Allow static bodies to participate in other islands.
			b := island.M_bodies[i]
			if b.IsStatic() {
				b.M_flags &= ^B2Body_Flags.E_islandFlag
			}
		}
	}

	// Synchronize fixtures, check for out of range bodies.
	for b := world.M_bodyList; b != nil; b = b.GetNext() {
		if !b.IsAwake() || b.IsFrozen() {
			continue
		}

		if b.IsStatic() {
			continue
		}

		// Update fixtures (for broad-phase). If the fixtures go out of
		// the world AABB then fixtures and contacts may be destroyed.
		world.synchronizeBody(b)
	}

	// Commit fixture proxy movements to the broad-phase so that new contacts
	// are created. Also, some contacts can be destroyed.
	world.commit()
}

// Move the proxies of a solved body. A body that left the world is frozen and
// reported to the boundary listener.
func (world *B2World) synchronizeBody(b *B2Body) {
	if b.SynchronizeFixtures() {
		return
	}

	b2Logf("body at (%g, %g) left the world bounds and was frozen", b.M_xf.P.X, b.M_xf.P.Y)
	if world.M_boundaryListener != nil {
		world.M_boundaryListener.Violation(b)
	}
}

func (world *B2World) commit() {
	if err := world.M_broadPhase.Commit(); err != nil {
		b2Logf("broad-phase commit: %v", err)
	}
}

// Find TOI contacts and solve them.
func (world *B2World) SolveTOI(step B2TimeStep) {
	// Reserve an island and a queue for TOI island solution.
	island := &world.m_island
	island.M_listener = world.M_contactManager.M_contactListener
	island.Reserve(world.M_bodyCount, B2_maxTOIContactsPerIsland, B2_maxTOIJointsPerIsland)

	// Each body is pushed at most once per island.
	if cap(world.m_queue) < world.M_bodyCount {
		world.m_queue = make([]*B2Body, world.M_bodyCount)
	}
	queue := world.m_queue[:world.M_bodyCount]

	for b := world.M_bodyList; b != nil; b = b.M_next {
		b.M_flags &= ^B2Body_Flags.E_islandFlag
		b.M_sweep.Alpha0 = 0.0
	}

	for c := world.M_contactManager.M_contactList; c != nil; c = c.GetNext() {
		// Invalidate TOI
		c.SetFlags(c.GetFlags() & ^(B2Contact_Flag.E_toiFlag | B2Contact_Flag.E_islandFlag))
	}

	for j := world.M_jointList; j != nil; j = j.GetNext() {
		j.SetIslandFlag(false)
	}

	// Find TOI events and solve them.
	for {
		// Find the first TOI.
		var minContact B2ContactInterface = nil
		minTOI := 1.0

		for c := world.M_contactManager.M_contactList; c != nil; c = c.GetNext() {
			if (c.GetFlags() & (B2Contact_Flag.E_slowFlag | B2Contact_Flag.E_nonSolidFlag)) != 0x0000 {
				continue
			}

			toi := 1.0
			if (c.GetFlags() & B2Contact_Flag.E_toiFlag) != 0x0000 {
				// This contact has a valid cached TOI.
				toi = c.GetTOI()
			} else {
				fA := c.GetFixtureA()
				fB := c.GetFixtureB()
				bA := fA.GetBody()
				bB := fB.GetBody()

				if (bA.IsStatic() || !bA.IsAwake()) && (bB.IsStatic() || !bB.IsAwake()) {
					continue
				}

				// Put the sweeps onto the same time interval.
				alpha0 := bA.M_sweep.Alpha0
				if bA.M_sweep.Alpha0 < bB.M_sweep.Alpha0 {
					alpha0 = bB.M_sweep.Alpha0
					bA.M_sweep.Advance(alpha0)
				} else if bB.M_sweep.Alpha0 < bA.M_sweep.Alpha0 {
					alpha0 = bA.M_sweep.Alpha0
					bB.M_sweep.Advance(alpha0)
				}

				B2Assert(alpha0 < 1.0)

				// Compute the time of impact in interval [0, minTOI]
				toi = B2TimeOfImpact(fA.GetShape(), bA.M_sweep, fB.GetShape(), bB.M_sweep)
				B2Assert(0.0 <= toi && toi <= 1.0)

				// The TOI is relative to the advanced sweeps, map it back.
				if toi > 0.0 && toi < 1.0 {
					toi = math.Min((1.0-toi)*alpha0+toi, 1.0)
				}

				c.SetTOI(toi)
				c.SetFlags(c.GetFlags() | B2Contact_Flag.E_toiFlag)
			}

			if B2_epsilon < toi && toi < minTOI {
				// This is the minimum TOI found so far.
				minContact = c
				minTOI = toi
			}
		}

		if minContact == nil || 1.0-100.0*B2_epsilon < minTOI {
			// No more TOI events. Done!
			break
		}

		// Advance the bodies to the TOI.
		bA := minContact.GetFixtureA().GetBody()
		bB := minContact.GetFixtureB().GetBody()
		bA.Advance(minTOI)
		bB.Advance(minTOI)

		// The TOI contact likely has some new contact points.
		B2ContactUpdate(minContact, world.M_contactManager.M_contactListener)
		minContact.SetFlags(minContact.GetFlags() & ^B2Contact_Flag.E_toiFlag)

		if minContact.GetManifoldCount() == 0 {
			// This shouldn't happen. Numerical error?
			continue
		}

		// Build the TOI island. We need a dynamic seed.
		seed := bA
		if seed.IsStatic() {
			seed = bB
		}

		// Reset island and queue.
		island.Clear()

		queueStart := 0
		queueSize := 0
		queue[queueStart+queueSize] = seed
		queueSize++
		seed.M_flags |= B2Body_Flags.E_islandFlag

		// Perform a breadth first search (BFS) on the contact/joint graph.
		for queueSize > 0 {
			// Grab the head body off the queue and add it to the island.
			b := queue[queueStart]
			queueStart++
			queueSize--

			island.AddBody(b)

			// Make sure the body is awake. The sleep timer keeps running.
			b.M_flags |= B2Body_Flags.E_awakeFlag

			// To keep islands as small as possible, we don't
			// propagate islands across static bodies.
			if b.IsStatic() {
				continue
			}

			// Search all contacts connected to this body.
			for ce := b.M_contactList; ce != nil; ce = ce.Next {
				// Does the TOI island still have space for contacts?
				if island.M_contactCount == island.M_contactCapacity {
					break
				}

				contact := ce.Contact

				// Has this contact already been added to an island? Skip slow or non-solid contacts.
				if (contact.GetFlags() & (B2Contact_Flag.E_islandFlag | B2Contact_Flag.E_slowFlag | B2Contact_Flag.E_nonSolidFlag)) != 0x0000 {
					continue
				}

				// Is this contact touching? For performance we are not updating this contact.
				if contact.GetManifoldCount() == 0 {
					continue
				}

				island.AddContact(contact)
				contact.SetFlags(contact.GetFlags() | B2Contact_Flag.E_islandFlag)

				other := ce.Other

				// Was the other body already added to this island?
				if (other.M_flags & B2Body_Flags.E_islandFlag) != 0x0000 {
					continue
				}

				// March forward, this can do no harm since this is the min TOI.
				if !other.IsStatic() {
					other.Advance(minTOI)
					other.SetAwake(true)
				}

				B2Assert(queueStart+queueSize < len(queue))
				queue[queueStart+queueSize] = other
				queueSize++
				other.M_flags |= B2Body_Flags.E_islandFlag
			}

			for je := b.M_jointList; je != nil; je = je.Next {
				if island.M_jointCount == island.M_jointCapacity {
					break
				}

				if je.Joint.GetIslandFlag() {
					continue
				}

				island.AddJoint(je.Joint)
				je.Joint.SetIslandFlag(true)

				other := je.Other
				if (other.M_flags & B2Body_Flags.E_islandFlag) != 0x0000 {
					continue
				}

				if !other.IsStatic() {
					other.Advance(minTOI)
					other.SetAwake(true)
				}

				B2Assert(queueStart+queueSize < len(queue))
				queue[queueStart+queueSize] = other
				queueSize++
				other.M_flags |= B2Body_Flags.E_islandFlag
			}
		}

		subStep := MakeB2TimeStepFromDt(
			(1.0-minTOI)*step.Dt,
			step.VelocityIterations,
			step.PositionIterations,
			0.0,
			false,
		)
		B2Assert(subStep.Dt > B2_epsilon)
		island.SolveTOI(subStep)

		// Post solve cleanup.
		for i := 0; i < island.M_bodyCount; i++ {
			// Allow bodies to participate in future TOI islands.
			b := island.M_bodies[i]
			b.M_flags &= ^B2Body_Flags.E_islandFlag

			if !b.IsAwake() || b.IsFrozen() {
				continue
			}

			if b.IsStatic() {
				continue
			}

			world.synchronizeBody(b)

			// Invalidate all contact TOIs associated with this body. Some of these
			// may not be in the island because they were not touching.
			for ce := b.M_contactList; ce != nil; ce = ce.Next {
				ce.Contact.SetFlags(ce.Contact.GetFlags() & ^B2Contact_Flag.E_toiFlag)
			}
		}

		for i := 0; i < island.M_contactCount; i++ {
			// Allow contacts to participate in future TOI islands.
			c := island.M_contacts[i]
			c.SetFlags(c.GetFlags() & ^(B2Contact_Flag.E_toiFlag | B2Contact_Flag.E_islandFlag))
		}

		for i := 0; i < island.M_jointCount; i++ {
			// Allow joints to participate in future TOI islands.
			island.M_joints[i].SetIslandFlag(false)
		}

		// Commit fixture proxy movements to the broad-phase so that new contacts
		// are created. Also, some contacts can be destroyed.
		world.commit()
	}
}

/// Take a time step. This performs collision detection, integration,
/// and constraint solution.
/// @param timeStep the amount of time to simulate, this should not vary.
/// @param velocityIterations for the velocity constraint solver.
/// @param positionIterations for the position constraint solver.
func (world *B2World) Step(dt float64, velocityIterations int, positionIterations int) {
	stepStart := time.Now()

	world.M_flags |= B2World_Flags.E_locked

	step := MakeB2TimeStepFromDt(dt, velocityIterations, positionIterations, world.M_inv_dt0, world.M_warmStarting)
	if world.M_fixedDtRatio {
		step.DtRatio = 1.0
	}

	// Update contacts. This is where some contacts are destroyed.
	{
		start := time.Now()
		world.M_contactManager.Collide()
		world.M_profile.Collide = b2Milliseconds(time.Since(start))
	}

	// Integrate velocities, solve velocity constraints, and integrate positions.
	if step.Dt > 0.0 {
		start := time.Now()
		world.Solve(step)
		world.M_profile.Solve = b2Milliseconds(time.Since(start))
	}

	// Handle TOI events.
	if world.M_continuousPhysics && step.Dt > 0.0 {
		start := time.Now()
		world.SolveTOI(step)
		world.M_profile.SolveTOI = b2Milliseconds(time.Since(start))
	}

	if step.Dt > 0.0 {
		world.M_inv_dt0 = step.Inv_dt
	}

	if (world.M_flags & B2World_Flags.E_clearForces) != 0x0000 {
		world.ClearForces()
	}

	world.M_flags &= ^B2World_Flags.E_locked

	world.M_profile.Step = b2Milliseconds(time.Since(stepStart))
}

func b2Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

/// Manually clear the force buffer on all bodies. Step does this
/// automatically unless SetAutoClearForces(false) was called.
func (world *B2World) ClearForces() {
	for body := world.M_bodyList; body != nil; body = body.GetNext() {
		body.M_force.SetZero()
		body.M_torque = 0.0
	}
}

/// Query the world for all fixtures whose proxies overlap the provided AABB,
/// up to maxCount.
func (world *B2World) Query(aabb B2AABB, maxCount int) []*B2Fixture {
	found := world.M_broadPhase.Query(aabb, maxCount)

	fixtures := make([]*B2Fixture, 0, len(found))
	for _, userData := range found {
		fixtures = append(fixtures, userData.(*B2Fixture))
	}

	return fixtures
}

/// Query the world and call back for each fixture whose proxy overlaps the
/// AABB. Return false from the callback to stop.
func (world *B2World) QueryAABB(callback B2BroadPhaseQueryCallback, aabb B2AABB) {
	for _, fixture := range world.Query(aabb, world.M_broadPhase.GetProxyCount()) {
		if !callback(fixture) {
			return
		}
	}
}

/// Ray-cast the world for all fixtures in the path of the ray. The callback
/// controls whether you get the closest point, any point, or n-points.
/// Candidates come from the broad phase, then each shape tests the segment.
/// @param callback a user implemented callback.
/// @param point1 the ray starting point
/// @param point2 the ray ending point
func (world *B2World) RayCast(callback B2RaycastCallback, point1 B2Vec2, point2 B2Vec2) {
	segment := MakeB2Segment(point1, point2)

	aabb := MakeB2AABB()
	aabb.LowerBound = B2Vec2Min(point1, point2)
	aabb.UpperBound = B2Vec2Max(point1, point2)

	maxLambda := 1.0
	for _, fixture := range world.Query(aabb, world.M_broadPhase.GetProxyCount()) {
		output := B2RayCastOutput{}
		if fixture.TestSegment(&output, segment, maxLambda) != B2SegmentCollide.E_hit {
			continue
		}

		lambda := output.Lambda
		point := B2Vec2Add(B2Vec2MulScalar(1.0-lambda, point1), B2Vec2MulScalar(lambda, point2))
		value := callback(fixture, point, output.Normal, lambda)

		if value == 0.0 {
			// The client has terminated the ray cast.
			return
		}

		if value > 0.0 && value < maxLambda {
			// Update segment bounding box.
			maxLambda = value
		}
	}
}

/// Check the broad phase bound arrays and pair buffers. Panics through
/// B2Assert on a broken invariant.
func (world *B2World) Validate() {
	world.M_broadPhase.Validate()
}

/// Dump the world as Go construction code.
func (world *B2World) Dump() {
	if world.IsLocked() {
		return
	}

	fmt.Printf("gravity := box2d.MakeB2Vec2(%.15e, %.15e)\n", world.M_gravity.X, world.M_gravity.Y)
	fmt.Print("world.SetGravity(gravity)\n")

	fmt.Printf("bodies := make([]*box2d.B2Body, %d)\n", world.M_bodyCount)
	fmt.Printf("joints := make([]box2d.B2JointInterface, %d)\n", world.M_jointCount)

	i := 0
	for b := world.M_bodyList; b != nil; b = b.M_next {
		b.M_islandIndex = i
		b.Dump()
		i++
	}

	i = 0
	for j := world.M_jointList; j != nil; j = j.GetNext() {
		j.SetIndex(i)
		i++
	}

	// First pass on joints, skip gear joints.
	for j := world.M_jointList; j != nil; j = j.GetNext() {
		if j.GetType() == B2JointType.E_gearJoint {
			continue
		}

		fmt.Print("{\n")
		j.Dump()
		fmt.Print("}\n")
	}

	// Second pass on joints, only gear joints.
	for j := world.M_jointList; j != nil; j = j.GetNext() {
		if j.GetType() != B2JointType.E_gearJoint {
			continue
		}

		fmt.Print("{\n")
		j.Dump()
		fmt.Print("}\n")
	}
}
