package vehicle

// Car describes the rigid body created for the player's car
type Car struct {
	Mass        float64 // Body mass
	Damping     float64 // Fraction of velocity kept after one second of coasting
	MaxVelocity float64 // Speed cap in pixels per second
	Width       float64 // Sprite width in pixels
	Height      float64 // Sprite length in pixels
}

// DefaultCar is a 20×35 pixel car with unit mass.
func DefaultCar() Car {
	return Car{
		Mass:        1,
		Damping:     0.05,
		MaxVelocity: 100000,
		Width:       20,
		Height:      35,
	}
}
