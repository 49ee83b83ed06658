package vehicle

import (
	"errors"
	"fmt"
)

// Control is one of the logical driving controls
type Control int

const (
	ControlAccelerate Control = iota
	ControlBrake
	ControlTurnLeft
	ControlTurnRight
)

func (c Control) String() string {
	switch c {
	case ControlAccelerate:
		return "accelerate"
	case ControlBrake:
		return "brake"
	case ControlTurnLeft:
		return "turn_left"
	case ControlTurnRight:
		return "turn_right"
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// Input is the state of the driving controls for one tick
type Input struct {
	Accelerate bool
	Brake      bool
	TurnLeft   bool
	TurnRight  bool
}

// Set switches a control on or off
func (in *Input) Set(c Control, on bool) {
	switch c {
	case ControlAccelerate:
		in.Accelerate = on
	case ControlBrake:
		in.Brake = on
	case ControlTurnLeft:
		in.TurnLeft = on
	case ControlTurnRight:
		in.TurnRight = on
	}
}

// ReadInput builds the control state from key bindings. A control is on when
// any of its keys is pressed.
func ReadInput[K comparable](bindings map[Control][]K, pressed func(K) bool) Input {
	var in Input
	for control, keys := range bindings {
		for _, k := range keys {
			if pressed(k) {
				in.Set(control, true)
				break
			}
		}
	}
	return in
}

// Handling holds the tunable constants of the control model
type Handling struct {
	AccelerateForce float64 // Forward force while accelerating
	BrakeForce      float64 // Backward force while braking
	StopSpeed       float64 // Forward speed in px/s below which braking stops the car dead
	TurnSpeed       float64 // Heading change per tick in radians
	Drift           float64 // How much the velocity lags the heading, in [0, 1)
}

// ErrInvalidHandling is returned by Handling.Validate
var ErrInvalidHandling = errors.New("invalid handling")

// DefaultHandling returns the arcade tuning.
func DefaultHandling() Handling {
	return Handling{
		AccelerateForce: 1250,
		BrakeForce:      1250,
		StopSpeed:       25,
		TurnSpeed:       0.075,
		Drift:           0.35,
	}
}

// Validate checks the constants are usable
func (h Handling) Validate() error {
	switch {
	case h.AccelerateForce < 0:
		return fmt.Errorf("accelerate force %v is negative: %w", h.AccelerateForce, ErrInvalidHandling)
	case h.BrakeForce < 0:
		return fmt.Errorf("brake force %v is negative: %w", h.BrakeForce, ErrInvalidHandling)
	case h.StopSpeed < 0:
		return fmt.Errorf("stop speed %v is negative: %w", h.StopSpeed, ErrInvalidHandling)
	case h.Drift < 0 || h.Drift >= 1:
		return fmt.Errorf("drift %v outside [0, 1): %w", h.Drift, ErrInvalidHandling)
	}
	return nil
}

// Drive applies one tick of player input to the body. It only edits forces,
// velocity and angle; the caller advances the physics afterwards.
//
// Accelerate wins over brake and turn left wins over turn right, but a
// turn combines with either pedal.
func Drive(in Input, body Body, h Handling) {
	if in.Accelerate {
		body.ApplyLocalForce(Vec2{0, h.AccelerateForce})
	} else if in.Brake {
		brake(body, h)
	}

	if in.TurnLeft {
		turn(body, h.TurnSpeed, h.Drift)
	} else if in.TurnRight {
		turn(body, -h.TurnSpeed, h.Drift)
	}
}

// brake stops the car outright once it is slow or rolling backwards, so the
// brake force can never push it into reverse.
func brake(body Body, h Handling) {
	forward := body.Velocity().Dot(body.Forward())
	if forward < h.StopSpeed {
		body.SetVelocity(Vec2{})
		return
	}
	body.ApplyLocalForce(Vec2{0, -h.BrakeForce})
}

// turn rotates the heading by angle and the velocity by only part of it.
func turn(body Body, angle, drift float64) {
	body.SetAngle(body.Angle() + angle)
	body.SetVelocity(body.Velocity().Rotated(angle * (1 - drift)))
}
