package box2d

/// A controller applies forces to a set of bodies once per step, before the
/// islands are solved. Implementations embed B2ControllerBase for the body
/// list and supply Step.
type B2Controller interface {
	/// Called by the world with the current time step. Only called for
	/// positive time steps.
	Step(step B2TimeStep)

	AddBody(body *B2Body)

	/// Detach a body. Returns false if it was not attached.
	RemoveBody(body *B2Body) bool

	/// Detach every body.
	Clear()

	GetWorld() *B2World

	setWorld(world *B2World)
}

/// Body bookkeeping shared by controllers. Bodies are kept in insertion order
/// so that forces are applied deterministically.
type B2ControllerBase struct {
	M_world  *B2World
	M_bodies []*B2Body
}

func (controller *B2ControllerBase) AddBody(body *B2Body) {
	for _, b := range controller.M_bodies {
		if b == body {
			return
		}
	}
	controller.M_bodies = append(controller.M_bodies, body)
}

func (controller *B2ControllerBase) RemoveBody(body *B2Body) bool {
	for i, b := range controller.M_bodies {
		if b == body {
			controller.M_bodies = append(controller.M_bodies[:i], controller.M_bodies[i+1:]...)
			return true
		}
	}
	return false
}

func (controller *B2ControllerBase) Clear() {
	controller.M_bodies = controller.M_bodies[:0]
}

func (controller B2ControllerBase) GetBodyList() []*B2Body {
	return controller.M_bodies
}

func (controller B2ControllerBase) GetBodyCount() int {
	return len(controller.M_bodies)
}

func (controller B2ControllerBase) GetWorld() *B2World {
	return controller.M_world
}

func (controller *B2ControllerBase) setWorld(world *B2World) {
	controller.M_world = world
}

/// Fluid parameters for a buoyancy controller.
type B2BuoyancyControllerDef struct {
	/// The outer surface normal.
	Normal B2Vec2

	/// The height of the fluid surface along the normal.
	Offset float64

	/// The fluid density.
	Density float64

	/// Fluid velocity, for drag calculations.
	Velocity B2Vec2

	LinearDrag  float64
	AngularDrag float64

	/// When false bodies are treated as uniformly dense, otherwise the
	/// fixture densities locate the center of buoyancy.
	UseDensity bool

	/// Take gravity from the world instead of Gravity.
	UseWorldGravity bool

	Gravity B2Vec2
}

func MakeB2BuoyancyControllerDef() B2BuoyancyControllerDef {
	return B2BuoyancyControllerDef{
		Normal:          MakeB2Vec2(0.0, 1.0),
		Offset:          0.0,
		Density:         0.0,
		LinearDrag:      0.0,
		AngularDrag:     0.0,
		UseDensity:      false,
		UseWorldGravity: true,
	}
}

/// Applies buoyancy and drag to bodies below a flat fluid surface. The
/// submerged region of each body comes from ComputeSubmergedArea on its
/// fixtures.
type B2BuoyancyController struct {
	B2ControllerBase

	M_normal          B2Vec2
	M_offset          float64
	M_density         float64
	M_velocity        B2Vec2
	M_linearDrag      float64
	M_angularDrag     float64
	M_useDensity      bool
	M_useWorldGravity bool
	M_gravity         B2Vec2
}

func NewB2BuoyancyController(def B2BuoyancyControllerDef) *B2BuoyancyController {
	return &B2BuoyancyController{
		M_normal:          def.Normal,
		M_offset:          def.Offset,
		M_density:         def.Density,
		M_velocity:        def.Velocity,
		M_linearDrag:      def.LinearDrag,
		M_angularDrag:     def.AngularDrag,
		M_useDensity:      def.UseDensity,
		M_useWorldGravity: def.UseWorldGravity,
		M_gravity:         def.Gravity,
	}
}

/// Move the fluid surface.
func (controller *B2BuoyancyController) SetSurface(normal B2Vec2, offset float64) {
	controller.M_normal = normal
	controller.M_offset = offset
}

func (controller *B2BuoyancyController) Step(step B2TimeStep) {
	if len(controller.M_bodies) == 0 {
		return
	}

	gravity := controller.M_gravity
	if controller.M_useWorldGravity && controller.M_world != nil {
		gravity = controller.M_world.GetGravity()
	}

	for _, body := range controller.M_bodies {
		// Buoyancy depends only on position, so sleeping bodies can be skipped.
		if !body.IsAwake() || body.IsStatic() {
			continue
		}

		xf := body.GetTransform()
		var areac, massc B2Vec2
		area := 0.0
		mass := 0.0
		for f := body.GetFixtureList(); f != nil; f = f.GetNext() {
			var sc B2Vec2
			sarea := f.GetShape().ComputeSubmergedArea(controller.M_normal, controller.M_offset, xf, &sc)
			area += sarea
			areac.OperatorPlusInplace(B2Vec2MulScalar(sarea, sc))

			shapeDensity := 1.0
			if controller.M_useDensity {
				shapeDensity = f.GetDensity()
			}
			mass += sarea * shapeDensity
			massc.OperatorPlusInplace(B2Vec2MulScalar(sarea*shapeDensity, sc))
		}

		if area < B2_epsilon || mass < B2_epsilon {
			continue
		}
		areac = B2Vec2MulScalar(1.0/area, areac)
		massc = B2Vec2MulScalar(1.0/mass, massc)

		// Buoyancy
		buoyancyForce := B2Vec2MulScalar(-controller.M_density*area, gravity)
		body.ApplyForce(buoyancyForce, massc, false)

		// Linear drag
		dragForce := B2Vec2Sub(body.GetLinearVelocityFromWorldPoint(areac), controller.M_velocity)
		dragForce = B2Vec2MulScalar(-controller.M_linearDrag*area, dragForce)
		body.ApplyForce(dragForce, areac, false)

		// Angular drag
		body.ApplyTorque(-body.GetInertia()/body.GetMass()*area*body.GetAngularVelocity()*controller.M_angularDrag, false)
	}
}
