// Package race runs the per-tick simulation: containment check, player
// controls, physics step.
package race

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/golangdaddy/racer/pkg/physics"
	"github.com/golangdaddy/racer/pkg/road"
	"github.com/golangdaddy/racer/pkg/vehicle"
)

// ErrNoTrack is returned when a race is started without a track.
var ErrNoTrack = errors.New("race needs a track")

// Status is whether the car is still on the track. Once a race goes
// StatusOffTrack it stays there until Reset.
type Status int

const (
	StatusOnTrack Status = iota
	StatusOffTrack
)

func (s Status) String() string {
	switch s {
	case StatusOnTrack:
		return "on_track"
	case StatusOffTrack:
		return "off_track"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label is the HUD text for the status
func (s Status) Label() string {
	if s == StatusOffTrack {
		return "On Track: No"
	}
	return "On Track: Yes"
}

// DefaultAngle is the heading a car gets on reset, pointing up the screen.
const DefaultAngle = 0.0

// Settings are the tunables a race is built from
type Settings struct {
	Car      vehicle.Car
	Handling vehicle.Handling
	Physics  physics.Options
}

// DefaultSettings returns the arcade defaults.
func DefaultSettings() Settings {
	return Settings{
		Car:      vehicle.DefaultCar(),
		Handling: vehicle.DefaultHandling(),
		Physics:  physics.DefaultOptions(),
	}
}

// CarState is a read-only snapshot of the car for drawing
type CarState struct {
	Position vehicle.Vec2
	Velocity vehicle.Vec2
	Angle    float64
}

// Race is one attempt at driving a track
type Race struct {
	id       string
	track    *road.Track
	settings Settings
	world    *physics.World
	car      *physics.Body
	status   Status
	ticks    int
	log      zerolog.Logger
}

// New starts a race on the track with the car at the start position
func New(track *road.Track, settings Settings, log zerolog.Logger) (*Race, error) {
	if err := settings.Handling.Validate(); err != nil {
		return nil, err
	}
	r := &Race{settings: settings, log: log}
	if err := r.Reset(track); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset rebuilds the race on the given track: the car goes back to the start
// point with no velocity and the default heading, and the status clears.
// Passing the current track restarts it.
func (r *Race) Reset(track *road.Track) error {
	if track == nil {
		return ErrNoTrack
	}
	start := track.Start()

	r.id = uuid.NewString()
	r.track = track
	r.world = physics.NewWorld(r.settings.Physics)
	r.car = r.world.AddCar(r.settings.Car, start)
	r.car.Reset(vehicle.Vec2{X: start.X, Y: start.Y}, DefaultAngle)
	r.status = StatusOnTrack
	r.ticks = 0

	r.log.Info().
		Str("race", r.id).
		Str("track", track.Name()).
		Float64("x", start.X).
		Float64("y", start.Y).
		Msg("race started")
	return nil
}

// Update runs one tick. The containment check uses the position from before
// any control input; while off track no controls are applied and the car
// coasts under damping. A returned error means the physics state can no
// longer be trusted and the race should be abandoned.
func (r *Race) Update(in vehicle.Input, dt float64) error {
	pos := r.car.Position()
	if r.status == StatusOnTrack && !r.track.IsOnTrack(road.Point{X: pos.X, Y: pos.Y}) {
		r.status = StatusOffTrack
		r.log.Warn().
			Str("race", r.id).
			Int("tick", r.ticks).
			Float64("x", pos.X).
			Float64("y", pos.Y).
			Msg("car left the track")
	}

	if r.status == StatusOnTrack {
		vehicle.Drive(in, r.car, r.settings.Handling)
	}

	if err := r.world.Step(dt); err != nil {
		r.log.Error().Err(err).Str("race", r.id).Int("tick", r.ticks).Msg("physics step failed")
		return fmt.Errorf("race %s tick %d: %w", r.id, r.ticks, err)
	}
	r.ticks++
	return nil
}

// ID returns the unique id of the current attempt
func (r *Race) ID() string { return r.id }

// Track returns the track being driven
func (r *Race) Track() *road.Track { return r.track }

// Status returns the current status
func (r *Race) Status() Status { return r.status }

// OutOfTrack reports whether the car has left the track in this attempt
func (r *Race) OutOfTrack() bool { return r.status == StatusOffTrack }

// Ticks returns the number of ticks since the last reset
func (r *Race) Ticks() int { return r.ticks }

// Car returns a snapshot of the car
func (r *Race) Car() CarState {
	return CarState{
		Position: r.car.Position(),
		Velocity: r.car.Velocity(),
		Angle:    r.car.Angle(),
	}
}
