package race

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/racer/pkg/physics"
	"github.com/golangdaddy/racer/pkg/road"
	"github.com/golangdaddy/racer/pkg/vehicle"
)

const dt = 1.0 / 60

// ringTrack is a 400×400 square with a 200×200 hole; the start sits in the
// bottom left corner, facing up the left straight.
func ringTrack(t *testing.T) *road.Track {
	t.Helper()
	track, err := road.NewTrack(road.Definition{
		Name:  "ring",
		Start: road.Point{X: 50, Y: 50},
		Outer: road.Polygon{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 400}, {X: 0, Y: 400}},
		Inner: road.Polygon{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}},
	})
	require.NoError(t, err)
	return track
}

func newRace(t *testing.T) *Race {
	t.Helper()
	r, err := New(ringTrack(t), DefaultSettings(), zerolog.Nop())
	require.NoError(t, err)
	return r
}

// driveOff accelerates up the left straight until the car leaves the track
// through the top of the outer ring.
func driveOff(t *testing.T, r *Race) {
	t.Helper()
	for i := 0; i < 600 && !r.OutOfTrack(); i++ {
		require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
	}
	require.True(t, r.OutOfTrack(), "car never left the track")
}

func TestNew(t *testing.T) {
	r := newRace(t)

	assert.Equal(t, StatusOnTrack, r.Status())
	assert.False(t, r.OutOfTrack())
	assert.NotEmpty(t, r.ID())
	assert.Zero(t, r.Ticks())

	car := r.Car()
	assert.InDelta(t, 50, car.Position.X, 1e-9)
	assert.InDelta(t, 50, car.Position.Y, 1e-9)
	assert.Equal(t, vehicle.Vec2{}, car.Velocity)
	assert.Equal(t, DefaultAngle, car.Angle)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, DefaultSettings(), zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoTrack)

	settings := DefaultSettings()
	settings.Handling.Drift = 1.5
	_, err = New(ringTrack(t), settings, zerolog.Nop())
	assert.ErrorIs(t, err, vehicle.ErrInvalidHandling)
}

func TestUpdate_AccelerationMatchesDampedIntegration(t *testing.T) {
	r := newRace(t)
	s := DefaultSettings()
	const ticks = 20

	keep := math.Pow(s.Car.Damping, dt)
	want := 0.0
	for i := 0; i < ticks; i++ {
		require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
		want = (want + dt*s.Handling.AccelerateForce/s.Car.Mass) * keep
	}

	require.False(t, r.OutOfTrack())
	v := r.Car().Velocity
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InEpsilon(t, want, v.Y, 1e-6)
	assert.Equal(t, ticks, r.Ticks())
}

func TestUpdate_OffTrackIsSticky(t *testing.T) {
	r := newRace(t)
	driveOff(t, r)

	speed := r.Car().Velocity.Len()
	angle := r.Car().Angle
	inputs := []vehicle.Input{
		{Accelerate: true},
		{Accelerate: true, TurnLeft: true},
		{Brake: true},
		{TurnRight: true},
		{},
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, r.Update(inputs[i%len(inputs)], dt))
		assert.True(t, r.OutOfTrack())
		assert.Equal(t, StatusOffTrack, r.Status())

		// no controls: heading frozen, car only slows down
		car := r.Car()
		assert.Equal(t, angle, car.Angle)
		assert.Less(t, car.Velocity.Len(), speed)
		speed = car.Velocity.Len()
	}
}

func TestUpdate_StaysOffEvenBackOnSurface(t *testing.T) {
	r := newRace(t)
	driveOff(t, r)

	// Put the car back in the middle of the straight: still off track.
	r.car.Reset(vehicle.Vec2{X: 50, Y: 200}, DefaultAngle)
	require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
	assert.True(t, r.OutOfTrack())
	assert.Equal(t, vehicle.Vec2{}, r.Car().Velocity)
}

func TestReset(t *testing.T) {
	r := newRace(t)
	firstID := r.ID()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Update(vehicle.Input{Accelerate: true, TurnLeft: true}, dt))
	}
	driveOff(t, r)

	require.NoError(t, r.Reset(r.Track()))

	assert.Equal(t, StatusOnTrack, r.Status())
	assert.False(t, r.OutOfTrack())
	assert.NotEqual(t, firstID, r.ID())
	assert.Zero(t, r.Ticks())
	car := r.Car()
	assert.InDelta(t, 50, car.Position.X, 1e-9)
	assert.InDelta(t, 50, car.Position.Y, 1e-9)
	assert.Equal(t, vehicle.Vec2{}, car.Velocity)
	assert.Equal(t, DefaultAngle, car.Angle)

	// and the race is drivable again
	require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
	assert.Greater(t, r.Car().Velocity.Y, 0.0)

	assert.ErrorIs(t, r.Reset(nil), ErrNoTrack)
}

func TestUpdate_BrakeStopsSlowCar(t *testing.T) {
	r := newRace(t)
	require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
	v := r.Car().Velocity
	require.Greater(t, v.Y, 0.0)
	require.Less(t, v.Y, DefaultSettings().Handling.StopSpeed)

	before := r.Car().Position
	require.NoError(t, r.Update(vehicle.Input{Brake: true}, dt))

	car := r.Car()
	assert.Equal(t, vehicle.Vec2{}, car.Velocity)
	assert.InDelta(t, before.Y, car.Position.Y, 1e-9)
}

func TestUpdate_BrakeSlowsFastCar(t *testing.T) {
	r := newRace(t)
	for i := 0; i < 30; i++ {
		require.NoError(t, r.Update(vehicle.Input{Accelerate: true}, dt))
	}
	fast := r.Car().Velocity.Y

	require.NoError(t, r.Update(vehicle.Input{Brake: true}, dt))
	v := r.Car().Velocity.Y
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, fast*math.Pow(DefaultSettings().Car.Damping, dt))
}

func TestUpdate_TurnWhileStationary(t *testing.T) {
	r := newRace(t)
	h := DefaultSettings().Handling

	require.NoError(t, r.Update(vehicle.Input{TurnLeft: true}, dt))
	assert.InDelta(t, h.TurnSpeed, r.Car().Angle, 1e-12)
	assert.Equal(t, vehicle.Vec2{}, r.Car().Velocity)

	require.NoError(t, r.Update(vehicle.Input{TurnRight: true}, dt))
	assert.InDelta(t, 0, r.Car().Angle, 1e-12)
}

func TestUpdate_InvalidStep(t *testing.T) {
	r := newRace(t)
	err := r.Update(vehicle.Input{}, 0)
	assert.ErrorIs(t, err, physics.ErrInvalidStep)
	assert.Zero(t, r.Ticks())
}

func TestUpdate_LogsLeavingOnce(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(ringTrack(t), DefaultSettings(), zerolog.New(&buf))
	require.NoError(t, err)

	driveOff(t, r)
	for i := 0; i < 10; i++ {
		require.NoError(t, r.Update(vehicle.Input{}, dt))
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "car left the track"))
	assert.Contains(t, buf.String(), r.ID())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "on_track", StatusOnTrack.String())
	assert.Equal(t, "off_track", StatusOffTrack.String())
	assert.Equal(t, "On Track: Yes", StatusOnTrack.Label())
	assert.Equal(t, "On Track: No", StatusOffTrack.Label())
}
