package performance

import (
	"fmt"
	"testing"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

// summaries builds attempts newest first from the given percentages,
// which are listed oldest first for readability.
func summaries(ct analysis.ContentType, pcts ...int) []quiz.AttemptSummary {
	out := make([]quiz.AttemptSummary, len(pcts))
	for i, p := range pcts {
		out[len(pcts)-1-i] = quiz.AttemptSummary{
			Attempt:     quiz.Attempt{ID: fmt.Sprintf("a%d", i), Percentage: p},
			QuizTitle:   fmt.Sprintf("Quiz %d", i),
			ContentType: ct,
		}
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	p := Compute(nil, 0)
	if p.Overall.HasData || p.Overall.TotalAttempts != 0 {
		t.Errorf("overall = %+v, want no data", p.Overall)
	}
	if p.Overall.AvgScore != 0 || p.Overall.BestScore != 0 {
		t.Errorf("overall = %+v", p.Overall)
	}
	if len(p.ByContentType) != 0 {
		t.Errorf("by content type = %+v", p.ByContentType)
	}
	if p.RecentTrend.Chartable || len(p.RecentTrend.Points) != 0 {
		t.Errorf("trend = %+v", p.RecentTrend)
	}
}

func TestCompute_Overall(t *testing.T) {
	p := Compute(summaries(analysis.ContentText, 50, 67, 100), 7)
	o := p.Overall
	if !o.HasData || o.TotalAttempts != 3 || o.BestScore != 100 {
		t.Errorf("overall = %+v", o)
	}
	if o.AvgScore != 72.3 {
		t.Errorf("AvgScore = %v, want 72.3", o.AvgScore)
	}
}

func TestCompute_GenuineZeroHasData(t *testing.T) {
	p := Compute(summaries(analysis.ContentMath, 0), 7)
	if !p.Overall.HasData || p.Overall.AvgScore != 0 {
		t.Errorf("overall = %+v", p.Overall)
	}
}

func TestCompute_ByContentType(t *testing.T) {
	attempts := append(summaries(analysis.ContentAptitude, 40, 60), summaries(analysis.ContentText, 90)...)
	attempts = append(attempts, summaries("unknown", 70)...)

	p := Compute(attempts, 7)
	if len(p.ByContentType) != 2 {
		t.Fatalf("groups = %+v", p.ByContentType)
	}
	// Enum order: text before aptitude; unknown folds into text.
	if got := p.ByContentType[0]; got.ContentType != analysis.ContentText || got.Attempts != 2 || got.AvgScore != 80 {
		t.Errorf("text = %+v", got)
	}
	if got := p.ByContentType[1]; got.ContentType != analysis.ContentAptitude || got.Attempts != 2 || got.AvgScore != 50 {
		t.Errorf("aptitude = %+v", got)
	}
}

func TestCompute_TrendWindowAscending(t *testing.T) {
	p := Compute(summaries(analysis.ContentText, 10, 20, 30, 40, 50), 3)
	tr := p.RecentTrend
	if len(tr.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(tr.Points))
	}
	want := []int{30, 40, 50}
	for i, w := range want {
		if tr.Points[i].Percentage != w {
			t.Errorf("point %d = %d, want %d", i, tr.Points[i].Percentage, w)
		}
	}
	if tr.Average != 40 || !tr.Chartable {
		t.Errorf("trend = %+v", tr)
	}
	// Overall still covers every attempt.
	if p.Overall.TotalAttempts != 5 {
		t.Errorf("TotalAttempts = %d", p.Overall.TotalAttempts)
	}
}

func TestCompute_TrendFewerThanWindow(t *testing.T) {
	p := Compute(summaries(analysis.ContentText, 80), 0)
	if len(p.RecentTrend.Points) != 1 || p.RecentTrend.Chartable {
		t.Errorf("trend = %+v", p.RecentTrend)
	}
}
