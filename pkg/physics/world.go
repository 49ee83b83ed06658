package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"github.com/golangdaddy/racer/pkg/road"
	"github.com/golangdaddy/racer/pkg/vehicle"
)

// CollisionTypePlayer tags the fixture of the player's car.
const CollisionTypePlayer = "player"

var (
	// ErrInvalidStep is returned for a non-positive or non-finite time step.
	ErrInvalidStep = errors.New("invalid time step")
	// ErrUnstable is returned when a body ends a step in a non-finite state.
	ErrUnstable = errors.New("physics state is not finite")
)

// Options configures a World
type Options struct {
	// PixelsPerMeter converts world pixels into box2d meters. box2d limits a
	// body to 2 m of travel per step, so this also sets the top speed the
	// solver allows.
	PixelsPerMeter     float64
	VelocityIterations int
	PositionIterations int
}

// DefaultOptions returns the options the game uses.
func DefaultOptions() Options {
	return Options{
		PixelsPerMeter:     50,
		VelocityIterations: 8,
		PositionIterations: 3,
	}
}

// World is a zero-gravity box2d world measured in pixels
type World struct {
	opts   Options
	world  box2d.B2World
	bodies []*Body
}

// NewWorld creates an empty world
func NewWorld(opts Options) *World {
	if opts.PixelsPerMeter <= 0 {
		opts.PixelsPerMeter = DefaultOptions().PixelsPerMeter
	}
	if opts.VelocityIterations <= 0 {
		opts.VelocityIterations = DefaultOptions().VelocityIterations
	}
	if opts.PositionIterations <= 0 {
		opts.PositionIterations = DefaultOptions().PositionIterations
	}
	return &World{
		opts:  opts,
		world: box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
	}
}

// AddCar creates a dynamic body for the car at the given position, facing
// up the screen and at rest.
func (w *World) AddCar(car vehicle.Car, at road.Point) *Body {
	ppm := w.opts.PixelsPerMeter

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position = box2d.MakeB2Vec2(at.X/ppm, at.Y/ppm)
	def.FixedRotation = true
	def.AllowSleep = false
	def.Awake = true
	b := w.world.CreateBody(&def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(car.Width/2/ppm, car.Height/2/ppm)
	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = &shape
	fixture.Density = 1
	fixture.IsSensor = true
	fixture.UserData = CollisionTypePlayer
	b.CreateFixtureFromDef(&fixture)

	// The fixture density gives box2d a shape-derived mass; the car's own
	// mass replaces it.
	b.SetMassData(&box2d.B2MassData{Mass: car.Mass})

	body := &Body{
		world:       w,
		body:        b,
		damping:     car.Damping,
		maxVelocity: car.MaxVelocity,
	}
	w.bodies = append(w.bodies, body)
	return body
}

// Step advances the world by dt seconds
func (w *World) Step(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("step %v: %w", dt, ErrInvalidStep)
	}
	for _, b := range w.bodies {
		b.body.SetLinearDamping(linearDamping(b.damping, dt))
	}

	w.world.Step(dt, w.opts.VelocityIterations, w.opts.PositionIterations)

	for _, b := range w.bodies {
		b.clampVelocity()
		if err := b.check(); err != nil {
			return err
		}
	}
	return nil
}

// linearDamping converts a "fraction of velocity kept per second" damping
// into the box2d damping coefficient for a step of dt. box2d scales the
// velocity by 1/(1+dt*c) each step; solving 1/(1+dt*c) = damping^dt gives c.
func linearDamping(damping, dt float64) float64 {
	if damping >= 1 || damping <= 0 {
		return 0
	}
	return (math.Pow(damping, -dt) - 1) / dt
}
