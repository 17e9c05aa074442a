package box2d

/// Delegate of the broad phase. Turns proxy pairs into contacts and owns the
/// world contact list.
type B2ContactManager struct {
	M_broadPhase      *B2BroadPhase
	M_contactList     B2ContactInterface
	M_contactCount    int
	M_contactFilter   B2ContactFilterInterface
	M_contactListener B2ContactListenerInterface
}

var b2_defaultFilter B2ContactFilterInterface = &B2ContactFilter{}

func MakeB2ContactManager() B2ContactManager {
	return B2ContactManager{
		M_broadPhase:      nil,
		M_contactList:     nil,
		M_contactCount:    0,
		M_contactFilter:   b2_defaultFilter,
		M_contactListener: nil,
	}
}

func NewB2ContactManager() *B2ContactManager {
	res := MakeB2ContactManager()
	return &res
}

/// Called by the broad phase when two proxies start to overlap. The returned
/// contact is stored as the pair user data. Nil means the pair is filtered.
func (mgr *B2ContactManager) PairAdded(proxyUserDataA interface{}, proxyUserDataB interface{}) interface{} {
	fixtureA := proxyUserDataA.(*B2Fixture)
	fixtureB := proxyUserDataB.(*B2Fixture)

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Are the fixtures on the same body?
	if bodyA == bodyB {
		return nil
	}

	// Does a joint override collision? Is at least one body dynamic?
	if bodyB.ShouldCollide(bodyA) == false {
		return nil
	}

	// Check user filtering.
	if mgr.M_contactFilter != nil && mgr.M_contactFilter.ShouldCollide(fixtureA, fixtureB) == false {
		return nil
	}

	// Call the factory.
	c := B2ContactFactory(fixtureA, fixtureB)
	if c == nil {
		return nil
	}

	// Contact creation may swap fixtures.
	fixtureA = c.GetFixtureA()
	fixtureB = c.GetFixtureB()
	bodyA = fixtureA.GetBody()
	bodyB = fixtureB.GetBody()

	// Insert into the world.
	c.SetPrev(nil)
	c.SetNext(mgr.M_contactList)
	if mgr.M_contactList != nil {
		mgr.M_contactList.SetPrev(c)
	}
	mgr.M_contactList = c

	// Connect to island graph.

	// Connect to body A
	c.GetNodeA().Contact = c
	c.GetNodeA().Other = bodyB

	c.GetNodeA().Prev = nil
	c.GetNodeA().Next = bodyA.M_contactList
	if bodyA.M_contactList != nil {
		bodyA.M_contactList.Prev = c.GetNodeA()
	}
	bodyA.M_contactList = c.GetNodeA()

	// Connect to body B
	c.GetNodeB().Contact = c
	c.GetNodeB().Other = bodyA

	c.GetNodeB().Prev = nil
	c.GetNodeB().Next = bodyB.M_contactList
	if bodyB.M_contactList != nil {
		bodyB.M_contactList.Prev = c.GetNodeB()
	}
	bodyB.M_contactList = c.GetNodeB()

	mgr.M_contactCount++
	return c
}

/// Called by the broad phase when two proxies stop overlapping.
func (mgr *B2ContactManager) PairRemoved(proxyUserDataA interface{}, proxyUserDataB interface{}, pairUserData interface{}) {
	if pairUserData == nil {
		return
	}

	c, ok := pairUserData.(B2ContactInterface)
	if !ok || c == nil {
		return
	}

	mgr.Destroy(c)
}

func (mgr *B2ContactManager) Destroy(c B2ContactInterface) {
	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Every remaining point is reported as removed.
	if mgr.M_contactListener != nil && c.GetManifoldCount() > 0 {
		manifold := c.GetManifold()

		var cp B2ContactPoint
		cp.Fixture1 = fixtureA
		cp.Fixture2 = fixtureB
		cp.Friction = c.GetFriction()
		cp.Restitution = c.GetRestitution()

		for i := 0; i < manifold.PointCount; i++ {
			b2ContactPointFromManifold(&cp, bodyA, bodyB, manifold.Normal, &manifold.Points[i])
			mgr.M_contactListener.Remove(&cp)
		}
	}

	// Remove from the world.
	if c.GetPrev() != nil {
		c.GetPrev().SetNext(c.GetNext())
	}

	if c.GetNext() != nil {
		c.GetNext().SetPrev(c.GetPrev())
	}

	if c == mgr.M_contactList {
		mgr.M_contactList = c.GetNext()
	}

	// Remove from body 1
	if c.GetNodeA().Prev != nil {
		c.GetNodeA().Prev.Next = c.GetNodeA().Next
	}

	if c.GetNodeA().Next != nil {
		c.GetNodeA().Next.Prev = c.GetNodeA().Prev
	}

	if c.GetNodeA() == bodyA.M_contactList {
		bodyA.M_contactList = c.GetNodeA().Next
	}

	// Remove from body 2
	if c.GetNodeB().Prev != nil {
		c.GetNodeB().Prev.Next = c.GetNodeB().Next
	}

	if c.GetNodeB().Next != nil {
		c.GetNodeB().Next.Prev = c.GetNodeB().Prev
	}

	if c.GetNodeB() == bodyB.M_contactList {
		bodyB.M_contactList = c.GetNodeB().Next
	}

	// Call the factory.
	B2ContactDestroy(c)
	mgr.M_contactCount--
}

// This is the top level collision call for the time step. Here
// all the narrow phase collision is processed for the world
// contact list.
func (mgr *B2ContactManager) Collide() {
	for c := mgr.M_contactList; c != nil; c = c.GetNext() {
		bodyA := c.GetFixtureA().GetBody()
		bodyB := c.GetFixtureB().GetBody()

		if !bodyA.IsAwake() && !bodyB.IsAwake() {
			continue
		}

		B2ContactUpdate(c, mgr.M_contactListener)
	}
}
