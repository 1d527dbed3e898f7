package risk

import "math"

type UVStatus string

const (
	UVLow      UVStatus = "low"
	UVNormal   UVStatus = "normal"
	UVHigh     UVStatus = "high"
	UVVeryHigh UVStatus = "veryHigh"
	UVDanger   UVStatus = "danger"
)

var UVTimeSlots = []string{"06-09", "09-12", "12-15", "15-18"}

type UVLevel string

const (
	UVLevelLow      UVLevel = "low"
	UVLevelMedium   UVLevel = "medium"
	UVLevelHigh     UVLevel = "high"
	UVLevelVeryHigh UVLevel = "veryHigh"
	UVLevelCritical UVLevel = "critical"
)

const (
	uvExposureThresholdHours = 2.0
	uvExposurePointsPerHour  = 5.0
	uvConsecutivePenalty     = 20.0
	uvScoreCap               = 100.0
)

type UVSlot struct {
	TimeRange string   `json:"time_range"`
	Index     float64  `json:"index"`
	Status    UVStatus `json:"status"`
}

type UVDay struct {
	Date  string   `json:"date"`
	Slots []UVSlot `json:"slots"`
}

type UVHighRiskSlot struct {
	Date      string   `json:"date"`
	TimeRange string   `json:"time_range"`
	Status    UVStatus `json:"status"`
}

type UVPrediction struct {
	RawScore           float64          `json:"raw_score"`
	Score              float64          `json:"score"`
	Level              UVLevel          `json:"level"`
	Probability        int              `json:"probability"`
	HighRiskSlots      []UVHighRiskSlot `json:"high_risk_slots"`
	ConsecutivePattern bool             `json:"consecutive_pattern"`
	Recommendations    []string         `json:"recommendations"`
}

var uvBaselineRecommendations = []string{
	"Apply broad-spectrum sunscreen (SPF 50+) every two hours outdoors.",
	"Wear protective clothing, a wide-brimmed hat and UV-blocking sunglasses.",
	"Stay in the shade whenever possible, especially around midday.",
}

// ClassifyUVIndex maps a numeric UV index onto the five forecast statuses.
func ClassifyUVIndex(index float64) UVStatus {
	switch {
	case index < 3:
		return UVLow
	case index < 6:
		return UVNormal
	case index < 8:
		return UVHigh
	case index < 11:
		return UVVeryHigh
	default:
		return UVDanger
	}
}

func (status UVStatus) points() float64 {
	switch status {
	case UVDanger:
		return 25
	case UVVeryHigh:
		return 15
	case UVHigh:
		return 10
	case UVNormal:
		return 5
	default:
		return 0
	}
}

func (status UVStatus) isHighRisk() bool {
	return status == UVHigh || status == UVVeryHigh || status == UVDanger
}

// PredictUVFlare scores a lupus flare risk from a multi-day slot forecast and
// the reported sun exposure in minutes. RawScore is left uncapped.
func PredictUVFlare(forecast []UVDay, exposureMinutes float64) UVPrediction {
	raw := 0.0
	highRiskSlots := make([]UVHighRiskSlot, 0)
	daysWithRepeatedHighUV := 0

	for _, day := range forecast {
		highInDay := 0
		for _, slot := range day.Slots {
			raw += slot.Status.points()
			if !slot.Status.isHighRisk() {
				continue
			}
			highInDay++
			highRiskSlots = append(highRiskSlots, UVHighRiskSlot{
				Date:      day.Date,
				TimeRange: slot.TimeRange,
				Status:    slot.Status,
			})
		}
		if highInDay >= 2 {
			daysWithRepeatedHighUV++
		}
	}

	exposureHours := exposureMinutes / 60
	if exposureHours > uvExposureThresholdHours {
		raw += uvExposurePointsPerHour * exposureHours
	}

	consecutive := daysWithRepeatedHighUV >= 2
	if consecutive {
		raw += uvConsecutivePenalty
	}

	score := math.Min(raw, uvScoreCap)
	level, probability := uvBand(score)

	recommendations := append(uvLevelRecommendations(level, consecutive), uvBaselineRecommendations...)

	return UVPrediction{
		RawScore:           raw,
		Score:              score,
		Level:              level,
		Probability:        probability,
		HighRiskSlots:      highRiskSlots,
		ConsecutivePattern: consecutive,
		Recommendations:    recommendations,
	}
}

func uvBand(score float64) (UVLevel, int) {
	switch {
	case score >= 80:
		return UVLevelCritical, 85
	case score >= 60:
		return UVLevelVeryHigh, 70
	case score >= 40:
		return UVLevelHigh, 50
	case score >= 20:
		return UVLevelMedium, 30
	default:
		return UVLevelLow, 10
	}
}

func uvLevelRecommendations(level UVLevel, consecutive bool) []string {
	recommendations := make([]string, 0, 4)
	switch level {
	case UVLevelCritical:
		recommendations = append(recommendations,
			"Avoid going outside during the listed high-risk time slots.",
			"Contact your clinician early if a rash, fever or joint pain appears.",
		)
	case UVLevelVeryHigh:
		recommendations = append(recommendations,
			"Limit time outdoors during the listed high-risk time slots.",
		)
	case UVLevelHigh:
		recommendations = append(recommendations,
			"Plan outdoor activities for early morning or late afternoon.",
		)
	case UVLevelMedium:
		recommendations = append(recommendations,
			"Keep outdoor exposure short around midday.",
		)
	}
	if consecutive {
		recommendations = append(recommendations,
			"High UV repeats over several days; keep skin covered for the whole period.",
		)
	}
	return recommendations
}
