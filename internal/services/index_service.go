package services

import (
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/risk"
)

const (
	IndexComponentDisease     = "disease"
	IndexComponentProdromal   = "prodromal"
	IndexComponentLifestyle   = "lifestyle"
	IndexComponentEnvironment = "environment"
)

var indexWeights = map[string]float64{
	IndexComponentDisease:     0.35,
	IndexComponentProdromal:   0.20,
	IndexComponentLifestyle:   0.30,
	IndexComponentEnvironment: 0.15,
}

var indexComponentOrder = []string{
	IndexComponentDisease,
	IndexComponentProdromal,
	IndexComponentLifestyle,
	IndexComponentEnvironment,
}

type DiseaseRiskSource interface {
	AssessSelected() ([]DiseaseRisk, error)
	Prodromal() (ProdromalReport, error)
}

type LifestyleRiskSource interface {
	Analysis(now time.Time) (lifestyle.Report, error)
}

type IndexComponent struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Available bool    `json:"available"`
}

type DailyIndex struct {
	Score          float64              `json:"score"`
	Classification *risk.Classification `json:"classification,omitempty"`
	Insufficient   bool                 `json:"insufficient_data"`
	Message        string               `json:"message,omitempty"`
	Components     []IndexComponent     `json:"components"`
}

type IndexService struct {
	diseases  DiseaseRiskSource
	lifestyle LifestyleRiskSource
}

func NewIndexService(diseases DiseaseRiskSource, lifestyleSource LifestyleRiskSource) *IndexService {
	return &IndexService{diseases: diseases, lifestyle: lifestyleSource}
}

// Today blends the disease, prodromal, lifestyle and environment scores into
// one 0-100 index. Components without data are left out and the remaining
// weights are rescaled to sum to one.
func (service *IndexService) Today(now time.Time, environmentScore *float64) (DailyIndex, error) {
	scores := make(map[string]float64, len(indexWeights))

	assessments, err := service.diseases.AssessSelected()
	if err != nil {
		return DailyIndex{}, err
	}
	scored := lo.Filter(assessments, func(result DiseaseRisk, _ int) bool { return !result.Insufficient && result.Assessment != nil })
	if len(scored) > 0 {
		scores[IndexComponentDisease] = lo.SumBy(scored, func(result DiseaseRisk) float64 { return result.Assessment.Score }) / float64(len(scored))
	}

	prodromal, err := service.diseases.Prodromal()
	if err != nil {
		return DailyIndex{}, err
	}
	if !prodromal.Insufficient && prodromal.Result != nil {
		scores[IndexComponentProdromal] = float64(prodromal.Result.Probability)
	}

	report, err := service.lifestyle.Analysis(now)
	if err != nil {
		return DailyIndex{}, err
	}
	if !report.Stress.Insufficient || !report.Food.Insufficient || !report.Sleep.Insufficient || report.Risk.Score > 0 {
		scores[IndexComponentLifestyle] = float64(report.Risk.Score)
	}

	if environmentScore != nil {
		scores[IndexComponentEnvironment] = clampScore(*environmentScore)
	}

	return blendIndex(scores), nil
}

func blendIndex(scores map[string]float64) DailyIndex {
	index := DailyIndex{Components: make([]IndexComponent, 0, len(indexComponentOrder))}

	totalWeight := 0.0
	for _, name := range indexComponentOrder {
		if _, ok := scores[name]; ok {
			totalWeight += indexWeights[name]
		}
	}

	weighted := 0.0
	for _, name := range indexComponentOrder {
		score, ok := scores[name]
		component := IndexComponent{Name: name, Available: ok}
		if ok {
			component.Score = math.Round(score*10) / 10
			component.Weight = indexWeights[name] / totalWeight
			weighted += score * component.Weight
		}
		index.Components = append(index.Components, component)
	}

	if totalWeight == 0 {
		index.Insufficient = true
		index.Message = "Not enough data yet to compute today's index."
		return index
	}

	index.Score = math.Round(weighted*10) / 10
	classification := risk.Classify(index.Score, risk.DefaultThresholds)
	index.Classification = &classification
	return index
}

func clampScore(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(100, value))
}
