package lifestyle

import (
	"math"

	"github.com/samber/lo"
)

// Pearson returns the sample correlation coefficient of two aligned series.
// Mismatched lengths, fewer than two samples and zero variance all yield 0.
func Pearson(xs []float64, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	meanX := mean(xs)
	meanY := mean(ys)

	covariance := 0.0
	varianceX := 0.0
	varianceY := 0.0
	for index := range xs {
		dx := xs[index] - meanX
		dy := ys[index] - meanY
		covariance += dx * dy
		varianceX += dx * dx
		varianceY += dy * dy
	}

	denominator := math.Sqrt(varianceX * varianceY)
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}

	correlation := covariance / denominator
	if correlation > 1 {
		return 1
	}
	if correlation < -1 {
		return -1
	}
	return correlation
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return lo.Sum(values) / float64(len(values))
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func describeCorrelation(correlation float64) string {
	strength := math.Abs(correlation)
	switch {
	case strength >= 0.5:
		return "strong"
	case strength >= 0.3:
		return "moderate"
	case strength > 0:
		return "weak"
	default:
		return "no"
	}
}
