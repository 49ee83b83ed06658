package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/racer/pkg/vehicle"
)

// bindings maps each control to the keys that hold it. Arrows and WASD both work.
var bindings = map[vehicle.Control][]ebiten.Key{
	vehicle.ControlAccelerate: {ebiten.KeyArrowUp, ebiten.KeyW},
	vehicle.ControlBrake:      {ebiten.KeyArrowDown, ebiten.KeyS},
	vehicle.ControlTurnLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	vehicle.ControlTurnRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
}

func readInput(pressed func(ebiten.Key) bool) vehicle.Input {
	return vehicle.ReadInput(bindings, pressed)
}
