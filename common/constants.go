package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; ebiten calls Update this many times a
	// second.
	TPS      = 60
	Timestep = 1.0 / TPS

	// PixelsPerUnit maps world units (y-up) to screen pixels.
	PixelsPerUnit = 32.0

	// Gravity in world units per second squared, pointing down.
	Gravity = -25.0
)
