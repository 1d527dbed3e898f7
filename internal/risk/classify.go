package risk

type Tier string

const (
	TierStable  Tier = "stable"
	TierCaution Tier = "caution"
	TierFlare   Tier = "flare"
)

type Thresholds struct {
	Caution float64 `json:"caution"`
	Flare   float64 `json:"flare"`
}

var (
	DefaultThresholds    = Thresholds{Caution: 30, Flare: 60}
	RheumatoidThresholds = Thresholds{Caution: 35, Flare: 65}
)

type Classification struct {
	Tier    Tier   `json:"tier"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func Classify(score float64, thresholds Thresholds) Classification {
	if thresholds.Caution <= 0 && thresholds.Flare <= 0 {
		thresholds = DefaultThresholds
	}

	switch {
	case score >= thresholds.Flare:
		return Classification{
			Tier:    TierFlare,
			Label:   "Flare risk",
			Message: "Your symptoms suggest a possible flare. Please contact your clinician.",
		}
	case score >= thresholds.Caution:
		return Classification{
			Tier:    TierCaution,
			Label:   "Caution",
			Message: "Some symptoms are above your usual level. Rest and keep tracking closely.",
		}
	default:
		return Classification{
			Tier:    TierStable,
			Label:   "Stable",
			Message: "Your symptoms are within your usual range.",
		}
	}
}
