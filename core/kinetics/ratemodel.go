// core/kinetics/ratemodel.go
// Rate laws mapping an energy change to a transition rate. Both built-in
// models satisfy detailed balance: Rate(ΔE)/Rate(−ΔE) = exp(−ΔE/kT).
package kinetics

import (
	"fmt"
	"math"
)

// KB is the Boltzmann constant in kcal/(mol·K).
const KB = 0.001987204285

// K0 is the Kelvin offset of 0°C.
const K0 = 273.15

// energyUnit converts the integer energy unit (0.01 kcal/mol) to kcal/mol.
const energyUnit = 0.01

// RateModel maps the energy change of a move, in 0.01 kcal/mol, to a rate
// in units of the model's attempt frequency.
type RateModel interface {
	Rate(deltaE int) float64
}

// Metropolis rates: downhill moves proceed at the full attempt frequency,
// uphill moves are exponentially suppressed.
type Metropolis struct {
	k0 float64
	kt float64 // kcal/mol
}

func NewMetropolis(k0, tempC float64) (*Metropolis, error) {
	if err := checkRateParams(k0, tempC); err != nil {
		return nil, err
	}
	return &Metropolis{k0: k0, kt: KB * (tempC + K0)}, nil
}

func (m *Metropolis) Rate(deltaE int) float64 {
	if deltaE <= 0 {
		return m.k0
	}
	return m.k0 * math.Exp(-float64(deltaE)*energyUnit/m.kt)
}

// Kawasaki rates: the barrier is split symmetrically, so downhill moves
// accelerate as much as uphill moves slow down.
type Kawasaki struct {
	k0 float64
	kt float64
}

func NewKawasaki(k0, tempC float64) (*Kawasaki, error) {
	if err := checkRateParams(k0, tempC); err != nil {
		return nil, err
	}
	return &Kawasaki{k0: k0, kt: KB * (tempC + K0)}, nil
}

func (m *Kawasaki) Rate(deltaE int) float64 {
	return m.k0 * math.Exp(-float64(deltaE)*energyUnit/(2*m.kt))
}

func checkRateParams(k0, tempC float64) error {
	if k0 <= 0 {
		return fmt.Errorf("attempt frequency must be positive, got %g", k0)
	}
	if tempC+K0 <= 0 {
		return fmt.Errorf("temperature %g°C is at or below absolute zero", tempC)
	}
	return nil
}
