package analytics

import (
	"math"
	"sort"

	"github.com/sumry-app/SUMRY-sub001/model"
)

// Default thresholds for pass/fail and struggling-student reports.
const (
	DefaultPassingScore       = 60.0
	DefaultStrugglingCutoff   = 50.0
	DefaultPerformerListLimit = 10
)

// ScoreStats summarizes the distribution of a numeric field. Records whose
// field is missing or unparseable are skipped, not errors.
type ScoreStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// PassFail summarizes pass/fail counts against a passing score.
type PassFail struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"` // percent
	FailRate float64 `json:"fail_rate"` // percent
}

// SubjectAverage holds the score summary for one subject field.
type SubjectAverage struct {
	Subject string     `json:"subject"`
	Stats   ScoreStats `json:"stats"`
}

// AttendanceImpact relates attendance to performance via Pearson
// correlation, with a qualitative interpretation.
type AttendanceImpact struct {
	Correlation    float64 `json:"correlation"`
	Interpretation string  `json:"interpretation"`
	SampleSize     int     `json:"sample_size"`
}

// LetterGrade converts a numeric score to a letter grade on the standard
// 90/80/70/60 scale.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// numericValues extracts the parseable numeric values of a field across
// records.
func numericValues(records []model.Record, field string) []float64 {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if val, ok := rec.Get(field); ok {
			if num, parsed := val.Num(); parsed {
				values = append(values, num)
			}
		}
	}
	return values
}

// ComputeScoreStats summarizes the numeric values of field across records.
func ComputeScoreStats(records []model.Record, field string) ScoreStats {
	values := numericValues(records, field)
	if len(values) == 0 {
		return ScoreStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	variance := 0.0
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return ScoreStats{
		Count:  len(sorted),
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: math.Sqrt(variance),
	}
}

// GradeDistribution counts letter grades derived from a numeric score
// field. Records without a parseable score are skipped.
func GradeDistribution(records []model.Record, scoreField string) map[string]int {
	distribution := make(map[string]int)
	for _, score := range numericValues(records, scoreField) {
		distribution[LetterGrade(score)]++
	}
	return distribution
}

// PassFailRate computes pass/fail statistics for a score field. A
// non-positive passingScore falls back to DefaultPassingScore.
func PassFailRate(records []model.Record, scoreField string, passingScore float64) PassFail {
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}

	values := numericValues(records, scoreField)
	result := PassFail{Total: len(values)}
	for _, v := range values {
		if v >= passingScore {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	if result.Total > 0 {
		result.PassRate = float64(result.Passed) / float64(result.Total) * 100
		result.FailRate = float64(result.Failed) / float64(result.Total) * 100
	}
	return result
}

// TopPerformers returns the n records with the highest values in scoreField,
// highest first. Records without a parseable score are excluded.
func TopPerformers(records []model.Record, scoreField string, n int) []model.Record {
	return rankedByScore(records, scoreField, n, true)
}

// StrugglingStudents returns up to n records scoring below threshold,
// lowest first. A non-positive threshold falls back to
// DefaultStrugglingCutoff.
func StrugglingStudents(records []model.Record, scoreField string, threshold float64, n int) []model.Record {
	if threshold <= 0 {
		threshold = DefaultStrugglingCutoff
	}

	below := make([]model.Record, 0)
	for _, rec := range records {
		if val, ok := rec.Get(scoreField); ok {
			if num, parsed := val.Num(); parsed && num < threshold {
				below = append(below, rec)
			}
		}
	}
	return rankedByScore(below, scoreField, n, false)
}

// rankedByScore sorts records by a numeric field and truncates to n.
func rankedByScore(records []model.Record, scoreField string, n int, descending bool) []model.Record {
	if n <= 0 {
		n = DefaultPerformerListLimit
	}

	type scored struct {
		rec model.Record
		val float64
	}
	ranked := make([]scored, 0, len(records))
	for _, rec := range records {
		if val, ok := rec.Get(scoreField); ok {
			if num, parsed := val.Num(); parsed {
				ranked = append(ranked, scored{rec: rec, val: num})
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].val > ranked[j].val
		}
		return ranked[i].val < ranked[j].val
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	result := make([]model.Record, len(ranked))
	for i, r := range ranked {
		result[i] = r.rec
	}
	return result
}

// SubjectAverages summarizes each subject field across records, sorted by
// descending mean. Subjects with no parseable values are omitted.
func SubjectAverages(records []model.Record, subjectFields []string) []SubjectAverage {
	averages := make([]SubjectAverage, 0, len(subjectFields))
	for _, subject := range subjectFields {
		stats := ComputeScoreStats(records, subject)
		if stats.Count > 0 {
			averages = append(averages, SubjectAverage{Subject: subject, Stats: stats})
		}
	}

	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].Stats.Mean > averages[j].Stats.Mean
	})
	return averages
}

// ComputeAttendanceImpact correlates an attendance field with a score field
// across the records carrying parseable values for both.
func ComputeAttendanceImpact(records []model.Record, scoreField, attendanceField string) AttendanceImpact {
	var scores, attendance []float64
	for _, rec := range records {
		scoreVal, okScore := rec.Get(scoreField)
		attVal, okAtt := rec.Get(attendanceField)
		if !okScore || !okAtt {
			continue
		}
		score, parsedScore := scoreVal.Num()
		att, parsedAtt := attVal.Num()
		if !parsedScore || !parsedAtt {
			continue
		}
		scores = append(scores, score)
		attendance = append(attendance, att)
	}

	corr := pearson(attendance, scores)
	return AttendanceImpact{
		Correlation:    corr,
		Interpretation: interpretCorrelation(corr),
		SampleSize:     len(scores),
	}
}

// pearson computes the Pearson correlation coefficient of two equal-length
// samples. Degenerate inputs (fewer than two points, zero variance) yield 0.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// interpretCorrelation maps a correlation coefficient to a qualitative
// description like "strong positive".
func interpretCorrelation(corr float64) string {
	abs := math.Abs(corr)
	var strength string
	switch {
	case abs >= 0.7:
		strength = "strong"
	case abs >= 0.4:
		strength = "moderate"
	case abs >= 0.2:
		strength = "weak"
	default:
		strength = "very weak"
	}

	direction := "positive"
	if corr < 0 {
		direction = "negative"
	}
	return strength + " " + direction
}
