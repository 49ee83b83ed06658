package vehicle

// Body is the physics body the control model drives. Positions, velocities
// and forces are in world units (pixels, Y-up); angles are radians, counter
// clockwise, with 0 meaning the car points up the screen.
type Body interface {
	Position() Vec2
	Velocity() Vec2
	SetVelocity(v Vec2)
	Angle() float64
	SetAngle(a float64)
	// Forward is the unit vector the nose of the car points along.
	Forward() Vec2
	// ApplyLocalForce applies a force given in the body's local frame,
	// where +Y is forward, for the next physics step.
	ApplyLocalForce(f Vec2)
}
