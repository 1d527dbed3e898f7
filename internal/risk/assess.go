package risk

import "fmt"

type Assessment struct {
	Disease        Disease        `json:"disease"`
	Score          float64        `json:"score"`
	Classification Classification `json:"classification"`
	Contributions  []Contribution `json:"contributions,omitempty"`
	Drivers        []Driver       `json:"drivers,omitempty"`
}

// Assess scores one disease from an observation. Six diseases report the full
// contribution list, Sjögren's and thyroid disease report top drivers only.
func Assess(observation Observation, disease Disease) (Assessment, error) {
	config, err := disease.Config()
	if err != nil {
		return Assessment{}, err
	}

	inputs, ok := observation.Inputs(disease)
	if !ok {
		return Assessment{}, fmt.Errorf("%w: no %s record", ErrInsufficientData, disease)
	}

	assessment := Assessment{Disease: disease}
	if disease.UsesTopDrivers() {
		assessment.applyDrivers(config, inputs)
	} else {
		assessment.applyContributions(config, inputs)
	}
	assessment.Classification = config.Classify(assessment.Score)
	return assessment, nil
}

func (assessment *Assessment) applyContributions(model FullContributionModel, inputs map[string]float64) {
	result := model.Score(inputs)
	assessment.Score = result.Score
	assessment.Contributions = result.Contributions
	assessment.Drivers = nil
}

func (assessment *Assessment) applyDrivers(model TopDriverModel, inputs map[string]float64) {
	result := model.ScoreDrivers(inputs)
	assessment.Score = result.Score
	assessment.Drivers = result.Drivers
	assessment.Contributions = nil
}

// TopContributors returns the first n non-zero contributions of a sorted
// result.
func TopContributors(result RiskResult, n int) []Contribution {
	top := make([]Contribution, 0, n)
	for _, contribution := range result.Contributions {
		if len(top) >= n {
			break
		}
		if contribution.Contribution <= 0 {
			continue
		}
		top = append(top, contribution)
	}
	return top
}
