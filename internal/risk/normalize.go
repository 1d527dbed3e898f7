package risk

import "math"

type Orientation string

const (
	HigherIsWorse Orientation = "higher_is_worse"
	LowerIsWorse  Orientation = "lower_is_worse"
	Binary        Orientation = "binary"
)

const baselineEpsilon = 1e-6

// Normalize maps a raw measurement onto a [0,1] severity fraction relative to
// its baseline. Out-of-range values are clamped, never rejected.
func Normalize(value float64, baseline float64, min float64, max float64, orientation Orientation) float64 {
	if math.IsNaN(value) || math.IsNaN(baseline) {
		return 0
	}

	switch orientation {
	case Binary:
		if value > baseline {
			return 1
		}
		return 0
	case LowerIsWorse:
		if max <= min {
			return 0
		}
		if baseline <= min {
			baseline = min + baselineEpsilon
		}
		if value >= baseline {
			return 0
		}
		return clamp01((baseline - value) / (baseline - min))
	default:
		if max <= min {
			return 0
		}
		if baseline >= max {
			baseline = max - baselineEpsilon
		}
		if value <= baseline {
			return 0
		}
		return clamp01((value - baseline) / (max - baseline))
	}
}

func clamp01(value float64) float64 {
	return clamp(value, 0, 1)
}

func clamp(value float64, low float64, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
