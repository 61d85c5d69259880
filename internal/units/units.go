// Package units provides shared physical constants and conversions for
// lumbar inertial gait data.
package units

// Acceleration unit constants
const (
	G    = "g"
	MPS2 = "mps2"
)

// StandardGravity converts accelerations in g to m/s². Displacements obtained
// by double-integrating g-valued signals are scaled by it to give metres.
const StandardGravity = 9.81

// DefaultHeightFactor is the ratio of leg length to standing height.
const DefaultHeightFactor = 0.53

// ValidAccelUnits contains all valid acceleration unit values
var ValidAccelUnits = []string{G, MPS2}

// IsValidAccelUnit checks if the given unit is in the list of valid units
func IsValidAccelUnit(unit string) bool {
	for _, validUnit := range ValidAccelUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ToG converts an acceleration in the given units to g. Unknown units are
// assumed to already be in g.
func ToG(accel float64, unit string) float64 {
	switch unit {
	case MPS2:
		return accel / StandardGravity
	default:
		return accel
	}
}

// LegLength estimates leg length in metres from standing height.
func LegLength(height, heightFactor float64) float64 {
	return heightFactor * height
}
