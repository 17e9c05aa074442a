package box2d

import "errors"

// Construction and capacity errors. Callers match them with errors.Is; the
// returned values usually wrap one of these with the offending detail.
var (
	ErrProxyCapacity  = errors.New("box2d: proxy pool exhausted")
	ErrPairCapacity   = errors.New("box2d: pair pool exhausted")
	ErrInvalidAABB    = errors.New("box2d: invalid AABB")
	ErrInvalidPolygon = errors.New("box2d: invalid polygon")
	ErrInvalidEdge    = errors.New("box2d: invalid edge")
	ErrJointSameBody  = errors.New("box2d: joint connects a body to itself")
	ErrGearJointType  = errors.New("box2d: gear joint needs revolute or prismatic joints")
	ErrWorldLocked    = errors.New("box2d: world is locked during a time step")
	ErrInvalidConfig  = errors.New("box2d: invalid configuration")
	ErrBodyFrozen     = errors.New("box2d: body is outside the world bounds")
)
