package physics

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"github.com/golangdaddy/racer/pkg/vehicle"
)

var _ vehicle.Body = (*Body)(nil)

// Body is a box2d body seen in pixel units
type Body struct {
	world       *World
	body        *box2d.B2Body
	damping     float64
	maxVelocity float64
}

func (b *Body) ppm() float64 { return b.world.opts.PixelsPerMeter }

// Position returns the body centre in pixels
func (b *Body) Position() vehicle.Vec2 {
	p := b.body.GetPosition()
	return vehicle.Vec2{X: p.X * b.ppm(), Y: p.Y * b.ppm()}
}

// Velocity returns the linear velocity in pixels per second
func (b *Body) Velocity() vehicle.Vec2 {
	v := b.body.GetLinearVelocity()
	return vehicle.Vec2{X: v.X * b.ppm(), Y: v.Y * b.ppm()}
}

// SetVelocity sets the linear velocity in pixels per second
func (b *Body) SetVelocity(v vehicle.Vec2) {
	b.body.SetLinearVelocity(box2d.MakeB2Vec2(v.X/b.ppm(), v.Y/b.ppm()))
}

// Angle returns the heading in radians
func (b *Body) Angle() float64 {
	return b.body.GetAngle()
}

// SetAngle sets the heading, keeping the position
func (b *Body) SetAngle(a float64) {
	b.body.SetTransform(b.body.GetPosition(), a)
}

// Forward returns the unit vector along the car's nose
func (b *Body) Forward() vehicle.Vec2 {
	f := b.body.GetWorldVector(box2d.MakeB2Vec2(0, 1))
	return vehicle.Vec2{X: f.X, Y: f.Y}
}

// ApplyLocalForce applies a force given in the body frame at the centre of mass
func (b *Body) ApplyLocalForce(f vehicle.Vec2) {
	world := b.body.GetWorldVector(box2d.MakeB2Vec2(f.X/b.ppm(), f.Y/b.ppm()))
	b.body.ApplyForceToCenter(world, true)
}

// Reset moves the body to p with the given heading and no motion
func (b *Body) Reset(p vehicle.Vec2, angle float64) {
	b.body.SetTransform(box2d.MakeB2Vec2(p.X/b.ppm(), p.Y/b.ppm()), angle)
	b.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	b.body.SetAngularVelocity(0)
}

func (b *Body) clampVelocity() {
	if b.maxVelocity <= 0 {
		return
	}
	v := b.Velocity()
	if speed := v.Len(); speed > b.maxVelocity {
		b.SetVelocity(v.Scale(b.maxVelocity / speed))
	}
}

func (b *Body) check() error {
	p, v, a := b.Position(), b.Velocity(), b.Angle()
	for _, f := range []float64{p.X, p.Y, v.X, v.Y, a} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("body at (%v, %v) velocity (%v, %v) angle %v: %w", p.X, p.Y, v.X, v.Y, a, ErrUnstable)
		}
	}
	return nil
}
