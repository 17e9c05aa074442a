package box2d

/// Joints and fixtures are destroyed when their associated
/// body is destroyed. Implement this listener so that you
/// may nullify references to these joints and shapes.
type B2DestructionListenerInterface interface {
	/// Called when any fixture is about to be destroyed due
	/// to the destruction of its parent body.
	SayGoodbyeToFixture(fixture *B2Fixture)

	SayGoodbyeToJoint(joint B2JointInterface) // backed by pointer
}

/// This is called when a body's shape passes outside of the world boundary.
/// The body is frozen: its velocity is zeroed and its proxies are removed.
type B2BoundaryListenerInterface interface {
	Violation(body *B2Body)
}

type B2ContactFilterInterface interface {
	ShouldCollide(fixtureA *B2Fixture, fixtureB *B2Fixture) bool
}

/// This structure is used to report contact points.
type B2ContactPoint struct {
	Fixture1    *B2Fixture
	Fixture2    *B2Fixture
	Position    B2Vec2 ///< position in world coordinates
	Velocity    B2Vec2 ///< velocity of point on body2 relative to point on body1 (pre-solver)
	Normal      B2Vec2 ///< points from shape1 to shape2
	Separation  float64
	Friction    float64
	Restitution float64
	Id          B2ContactID
}

/// This structure is used to report contact point results.
type B2ContactResult struct {
	Fixture1       *B2Fixture
	Fixture2       *B2Fixture
	Position       B2Vec2 ///< position in world coordinates
	Normal         B2Vec2 ///< points from shape1 to shape2
	NormalImpulse  float64
	TangentImpulse float64
	Id             B2ContactID
}

/// Implement this interface to get contact information. You can use these results
/// for things like sounds and game logic. You can also get contact results by
/// traversing the contact lists after the time step. However, you might miss
/// some contacts because continuous physics leads to sub-stepping.
/// Additionally you may receive multiple callbacks for the same contact in a
/// single time step.
/// @warning the contact point is reused between calls, copy it if you keep it.
/// @warning you cannot create or destroy bodies, fixtures or joints in these callbacks.
type B2ContactListenerInterface interface {
	/// Called when a contact point is added. This includes the geometry
	/// and the forces.
	Add(point *B2ContactPoint)

	/// Called when a contact point persists.
	Persist(point *B2ContactPoint)

	/// Called when a contact point is removed.
	Remove(point *B2ContactPoint)

	/// Called after a contact point is solved.
	Result(result *B2ContactResult)
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2WorldCallbacks.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

type B2BroadPhaseQueryCallback func(fixture *B2Fixture) bool

type B2ContactFilter struct {
}

// Return true if contact calculations should be performed between these two shapes.
// If you implement your own collision filter you may want to build from this implementation.
func (cf *B2ContactFilter) ShouldCollide(fixtureA *B2Fixture, fixtureB *B2Fixture) bool {
	filterA := fixtureA.GetFilterData()
	filterB := fixtureB.GetFilterData()

	if filterA.GroupIndex == filterB.GroupIndex && filterA.GroupIndex != 0 {
		return filterA.GroupIndex > 0
	}

	collide := (filterA.MaskBits&filterB.CategoryBits) != 0 && (filterA.CategoryBits&filterB.MaskBits) != 0
	return collide
}

/// Called for each fixture found by a ray cast. You control how the ray cast
/// proceeds by returning a float:
/// return -1: ignore this fixture and continue
/// return 0: terminate the ray cast
/// return fraction: clip the ray to this point
/// return 1: don't clip the ray and continue
/// @param fixture the fixture hit by the ray
/// @param point the point of initial intersection
/// @param normal the normal vector at the point of intersection
/// @return -1 to filter, 0 to terminate, fraction to clip the ray for
/// closest hit, 1 to continue
type B2RaycastCallback func(fixture *B2Fixture, point B2Vec2, normal B2Vec2, fraction float64) float64
