// Package performance aggregates a user's attempts into dashboard stats.
// It only reads; attempts are written by the grader.
package performance

import (
	"math"
	"slices"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

// DefaultTrendWindow is how many recent attempts the trend covers.
const DefaultTrendWindow = 7

// Performance is the full dashboard view for one user.
type Performance struct {
	Overall       Overall           `json:"overall"`
	ByContentType []ContentTypeStat `json:"by_content_type"`
	RecentTrend   Trend             `json:"recent_trend"`
}

// Overall summarizes every attempt. When HasData is false the averages are
// meaningless and should be shown as "no data" rather than zero.
type Overall struct {
	TotalAttempts int     `json:"total_attempts"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     int     `json:"best_score"`
	HasData       bool    `json:"has_data"`
}

// ContentTypeStat is the average percentage for one content type.
type ContentTypeStat struct {
	ContentType analysis.ContentType `json:"content_type"`
	Attempts    int                  `json:"attempts"`
	AvgScore    float64              `json:"avg_score"`
}

// TrendPoint is one attempt on the trend chart.
type TrendPoint struct {
	AttemptID  string `json:"attempt_id"`
	QuizTitle  string `json:"quiz_title"`
	Percentage int    `json:"percentage"`
}

// Trend holds the most recent attempts in chronological order.
type Trend struct {
	Points    []TrendPoint `json:"points"`
	Average   float64      `json:"average"`
	Chartable bool         `json:"chartable"`
}

// Compute aggregates attempts, which must be ordered newest first as
// returned by the store. A non-positive window uses DefaultTrendWindow.
func Compute(attempts []quiz.AttemptSummary, window int) *Performance {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	p := &Performance{
		ByContentType: []ContentTypeStat{},
		RecentTrend:   Trend{Points: []TrendPoint{}},
	}
	if len(attempts) == 0 {
		return p
	}

	sum, best := 0, 0
	groups := make(map[analysis.ContentType][]int)
	for _, a := range attempts {
		sum += a.Percentage
		best = max(best, a.Percentage)
		ct := analysis.ParseContentType(string(a.ContentType))
		groups[ct] = append(groups[ct], a.Percentage)
	}
	p.Overall = Overall{
		TotalAttempts: len(attempts),
		AvgScore:      round1(float64(sum) / float64(len(attempts))),
		BestScore:     best,
		HasData:       true,
	}

	for _, ct := range analysis.ContentTypes {
		scores := groups[ct]
		if len(scores) == 0 {
			continue
		}
		p.ByContentType = append(p.ByContentType, ContentTypeStat{
			ContentType: ct,
			Attempts:    len(scores),
			AvgScore:    mean(scores),
		})
	}

	recent := attempts[:min(window, len(attempts))]
	points := make([]TrendPoint, 0, len(recent))
	scores := make([]int, 0, len(recent))
	for _, a := range recent {
		points = append(points, TrendPoint{AttemptID: a.ID, QuizTitle: a.QuizTitle, Percentage: a.Percentage})
		scores = append(scores, a.Percentage)
	}
	slices.Reverse(points)
	p.RecentTrend = Trend{
		Points:    points,
		Average:   mean(scores),
		Chartable: len(points) >= 2,
	}
	return p
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return round1(float64(sum) / float64(len(xs)))
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
