package crane

import (
	"errors"
	"fmt"
	"math"
)

// BaseRopeHeight is the rope length at RopeScale 1.
const BaseRopeHeight = 5.0

// ErrInvalidDimensions is returned when a dimension table cannot produce a crane.
var ErrInvalidDimensions = errors.New("invalid crane dimensions")

// Dimensions is the crane's table of named lengths.
//
// Prefixes follow the axis the length is measured along: H is height (Y),
// L is depth across the tower (Z, or the side of a square section), C is
// length along the jib (X) and R is a radius.
type Dimensions struct {
	HBase              float64 `mapstructure:"hBase"`
	LBase              float64 `mapstructure:"lBase"`
	HTower             float64 `mapstructure:"hTower"`
	LTower             float64 `mapstructure:"lTower"`
	LCab               float64 `mapstructure:"lCab"`
	HCounterWeight     float64 `mapstructure:"hCounterWeight"`
	CCounterWeight     float64 `mapstructure:"cCounterWeight"`
	CCounterJib        float64 `mapstructure:"cCounterJib"`
	HJib               float64 `mapstructure:"hJib"`
	CJib               float64 `mapstructure:"cJib"`
	HDifference        float64 `mapstructure:"hDifference"`
	HInferiorTowerPeak float64 `mapstructure:"hInferiorTowerPeak"`
	HSuperiorTowerPeak float64 `mapstructure:"hSuperiorTowerPeak"`
	HTrolley           float64 `mapstructure:"hTrolley"`
	CTrolley           float64 `mapstructure:"cTrolley"`
	LClawBase          float64 `mapstructure:"lClawBase"`
	HClawBase          float64 `mapstructure:"hClawBase"`
	RRope              float64 `mapstructure:"rRope"`
	RPendant           float64 `mapstructure:"rPendant"`
	// FingerScale scales the claw finger outline.
	FingerScale float64 `mapstructure:"fingerScale"`
}

// DefaultDimensions returns the stock crane.
func DefaultDimensions() Dimensions {
	return Dimensions{
		HBase:              5,
		LBase:              10,
		HTower:             20,
		LTower:             5,
		LCab:               5,
		HCounterWeight:     5,
		CCounterWeight:     10,
		CCounterJib:        15,
		HJib:               5,
		CJib:               30,
		HDifference:        10,
		HInferiorTowerPeak: 20,
		HSuperiorTowerPeak: 5,
		HTrolley:           3,
		CTrolley:           6,
		LClawBase:          3,
		HClawBase:          1,
		RRope:              0.5,
		RPendant:           0.1,
		FingerScale:        0.4,
	}
}

// Validate reports whether every structural length is positive and the
// trolley fits on the jib.
func (d Dimensions) Validate() error {
	lengths := []struct {
		name  string
		value float64
	}{
		{"hBase", d.HBase},
		{"lBase", d.LBase},
		{"hTower", d.HTower},
		{"lTower", d.LTower},
		{"lCab", d.LCab},
		{"hCounterWeight", d.HCounterWeight},
		{"cCounterWeight", d.CCounterWeight},
		{"cCounterJib", d.CCounterJib},
		{"hJib", d.HJib},
		{"cJib", d.CJib},
		{"hDifference", d.HDifference},
		{"hInferiorTowerPeak", d.HInferiorTowerPeak},
		{"hSuperiorTowerPeak", d.HSuperiorTowerPeak},
		{"hTrolley", d.HTrolley},
		{"cTrolley", d.CTrolley},
		{"lClawBase", d.LClawBase},
		{"hClawBase", d.HClawBase},
		{"rRope", d.RRope},
		{"rPendant", d.RPendant},
		{"fingerScale", d.FingerScale},
	}
	for _, l := range lengths {
		if !(l.value > 0) || math.IsInf(l.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidDimensions, l.name, l.value)
		}
	}
	if d.CTrolley > d.CJib {
		return fmt.Errorf("%w: trolley (%v) longer than jib (%v)", ErrInvalidDimensions, d.CTrolley, d.CJib)
	}
	if d.HTower+d.HDifference <= d.HTrolley {
		return fmt.Errorf("%w: no room for the rope under the trolley", ErrInvalidDimensions)
	}
	return nil
}

// ClawYForRope returns the claw offset below the trolley for a rope scale.
// Raising or lowering the claw moves both values along this line.
func (d Dimensions) ClawYForRope(ropeScale float64) float64 {
	return -(d.HTrolley + BaseRopeHeight*ropeScale + d.HClawBase)
}

// RopeLength returns the hoist rope length for a rope scale.
func (d Dimensions) RopeLength(ropeScale float64) float64 {
	return BaseRopeHeight * ropeScale
}

// Limits holds the bounds of every kinematic parameter.
type Limits struct {
	MinTrolleyX, MaxTrolleyX     float64
	MinTowerAngle, MaxTowerAngle float64
	MinRopeScale, MaxRopeScale   float64
	MinClawY, MaxClawY           float64
	MinFingerAngle, MaxFingerAngle float64
}

// Limits derives the parameter bounds from the dimension table.
func (d Dimensions) Limits() Limits {
	l := Limits{
		MinTrolleyX:    d.LTower/2 + d.CTrolley/2,
		MaxTrolleyX:    d.CJib + d.LTower/2 - d.CTrolley/2,
		MinTowerAngle:  0,
		MaxTowerAngle:  math.Pi,
		MinRopeScale:   0,
		MaxRopeScale:   (d.HTower + d.HDifference - d.HTrolley) / BaseRopeHeight,
		MinFingerAngle: 0,
		MaxFingerAngle: math.Pi / 4,
	}
	// the rope and claw bounds describe the same two poses
	l.MaxClawY = d.ClawYForRope(l.MinRopeScale)
	l.MinClawY = d.ClawYForRope(l.MaxRopeScale)
	return l
}

// Range returns the bounds of p.
func (l Limits) Range(p Param) (min, max float64) {
	switch p {
	case TrolleyX:
		return l.MinTrolleyX, l.MaxTrolleyX
	case TowerAngle:
		return l.MinTowerAngle, l.MaxTowerAngle
	case RopeScale:
		return l.MinRopeScale, l.MaxRopeScale
	case ClawY:
		return l.MinClawY, l.MaxClawY
	case FingerAngle:
		return l.MinFingerAngle, l.MaxFingerAngle
	default:
		panic(fmt.Sprintf("crane: unknown parameter %d", p))
	}
}
