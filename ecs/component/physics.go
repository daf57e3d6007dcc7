package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. Body
// and Shape are filled in by the physics system the first tick it sees the
// entity.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool
	// IgnoreGravity suspends gravity for the next step, e.g. while dashing.
	IgnoreGravity bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity is the linear velocity in units per second. Gameplay systems write
// it; the physics system pushes it into the body before stepping and reads it
// back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
