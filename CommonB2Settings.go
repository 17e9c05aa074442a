package box2d

import (
	"fmt"
	"io"
	"log"
	"math"
)

const B2DEBUG = false

func B2Assert(a bool) {
	if !a {
		panic("B2Assert")
	}
}

const B2_maxFloat = math.MaxFloat64

/// Single precision machine epsilon. The geometric tolerances below were
/// tuned against it, so it is kept even though the engine runs in float64.
const B2_epsilon = 1.1920928955078125e-7
const B2_pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Collision

/// The maximum number of contact points between two convex shapes.
const B2_maxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const B2_maxPolygonVertices = 8

/// Default capacity of the broad-phase proxy pool. This must be a power of two.
const B2_maxProxies = 2048

/// Default capacity of the pair pool. This must be a power of two.
const B2_maxPairs = 8 * B2_maxProxies

/// A small length used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005

/// A small angle used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_angularSlop = (2.0 / 180.0 * B2_pi)

/// Continuous collision detection (CCD) works with core, shrunken shapes. This is the
/// amount by which shapes are automatically shrunk to work with CCD. This must be
/// larger than B2_linearSlop.
const B2_toiSlop = 8.0 * B2_linearSlop

/// Maximum number of contacts to be handled to solve a TOI island.
const B2_maxTOIContactsPerIsland = 32

/// Maximum number of joints to be handled to solve a TOI island.
const B2_maxTOIJointsPerIsland = 32

// Dynamics

/// A velocity threshold for elastic collisions. Any collision with a relative linear
/// velocity below this threshold will be treated as inelastic.
const B2_velocityThreshold = 1.0

/// The maximum linear position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxLinearCorrection = 0.2

/// The maximum angular position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxAngularCorrection = (8.0 / 180.0 * B2_pi)

/// The maximum linear velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxLinearVelocity = 200.0
const B2_maxLinearVelocitySquared = (B2_maxLinearVelocity * B2_maxLinearVelocity)

/// The maximum angular velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxAngularVelocity = 250.0
const B2_maxAngularVelocitySquared = (B2_maxAngularVelocity * B2_maxAngularVelocity)

/// This scale factor controls how fast overlap is resolved. Ideally this would be 1 so
/// that overlap is removed in one time step. However using values close to 1 often lead
/// to overshoot.
const B2_contactBaumgarte = 0.2
const B2_toiBaumgarte = 0.75

// Sleep

/// The time that a body must be still before it will go to sleep.
const B2_timeToSleep = 0.5

/// A body cannot sleep if its linear velocity is above this tolerance.
const B2_linearSleepTolerance = 0.01

/// A body cannot sleep if its angular velocity is above this tolerance.
const B2_angularSleepTolerance = (2.0 / 180.0 * B2_pi)

///////////////////////////////////////////////////////////////////////////////
// Logging
///////////////////////////////////////////////////////////////////////////////

var b2Logger = log.New(io.Discard, "box2d: ", log.LstdFlags)

/// Install the logger used for operational messages (boundary violations,
/// pool exhaustion). Passing nil silences the package again.
func SetB2Logger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	b2Logger = l
}

func b2Logf(format string, args ...interface{}) {
	b2Logger.Output(2, fmt.Sprintf(format, args...))
}
