package analytics

import "github.com/sumry-app/SUMRY-sub001/model"

// Trend classifications.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// ProgressTrend describes one record's score trajectory across a sequence
// of assessments.
type ProgressTrend struct {
	ID         string   `json:"id"`
	Trend      string   `json:"trend"`
	AvgChange  float64  `json:"avg_change"`
	FirstScore *float64 `json:"first_score,omitempty"`
	LastScore  *float64 `json:"last_score,omitempty"`
}

// ProgressTrends compares each record's first and last parseable scores
// across scoreFields, given in chronological order. Records with fewer than
// two scores are classified as having insufficient data.
func ProgressTrends(records []model.Record, idField string, scoreFields []string) []ProgressTrend {
	trends := make([]ProgressTrend, 0, len(records))

	for _, rec := range records {
		var id string
		if val, ok := rec.Get(idField); ok {
			id = val.Text()
		}

		scores := make([]float64, 0, len(scoreFields))
		for _, field := range scoreFields {
			if val, ok := rec.Get(field); ok {
				if num, parsed := val.Num(); parsed {
					scores = append(scores, num)
				}
			}
		}

		trend := ProgressTrend{ID: id, Trend: TrendInsufficientData}
		if len(scores) >= 2 {
			first, last := scores[0], scores[len(scores)-1]
			switch {
			case last > first:
				trend.Trend = TrendImproving
			case last < first:
				trend.Trend = TrendDeclining
			default:
				trend.Trend = TrendStable
			}
			trend.AvgChange = (last - first) / float64(len(scores))
			trend.FirstScore = &first
			trend.LastScore = &last
		} else if len(scores) == 1 {
			only := scores[0]
			trend.FirstScore = &only
			trend.LastScore = &only
		}

		trends = append(trends, trend)
	}

	return trends
}
