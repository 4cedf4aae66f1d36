package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
)

type InsightKind string

const (
	InsightCelebrate InsightKind = "celebrate"
	InsightPraise    InsightKind = "praise"
	InsightNudge     InsightKind = "nudge"
	InsightWarning   InsightKind = "warning"
)

type Insight struct {
	Kind    InsightKind
	Message string
}

const (
	MaxInsights         = 4
	streakCelebrateDays = 7
	imbalancePercent    = 40.0
	diversityMinWorkout = 5
)

type insightInput struct {
	records  []models.WorkoutRecord
	now      time.Time
	loc      *time.Location
	workouts int
	dist     []CategoryShare
}

type insightRule func(in insightInput) (Insight, bool)

// insightRules run in this order; each looks at the input independently.
var insightRules = []insightRule{
	streakInsight,
	balanceInsight,
	diversityInsight,
	weekVolumeInsight,
}

// Insights evaluates every rule over the records and returns at most
// MaxInsights messages in rule order.
func Insights(records []models.WorkoutRecord, now time.Time, loc *time.Location) []Insight {
	in := insightInput{
		records: records,
		now:     now,
		loc:     loc,
		dist:    CategoryDistribution(records),
	}
	for _, r := range records {
		if r.IsCompleted() {
			in.workouts++
		}
	}

	var out []Insight
	for _, rule := range insightRules {
		if len(out) == MaxInsights {
			break
		}
		if insight, ok := rule(in); ok {
			out = append(out, insight)
		}
	}
	return out
}

func streakInsight(in insightInput) (Insight, bool) {
	streak := Streak(in.records, in.now, in.loc)
	switch {
	case streak >= streakCelebrateDays:
		return Insight{InsightCelebrate, fmt.Sprintf("%d-day streak, keep it going!", streak)}, true
	case streak == 0 && in.workouts > 0:
		return Insight{InsightNudge, "Your streak is broken. A short workout today starts a new one."}, true
	}
	return Insight{}, false
}

func balanceInsight(in insightInput) (Insight, bool) {
	if len(in.dist) < 3 || in.dist[0].Percent <= imbalancePercent {
		return Insight{}, false
	}
	top := in.dist[0]
	return Insight{InsightWarning, fmt.Sprintf(
		"%s makes up %.0f%% of your sets. Consider balancing your training.",
		categoryLabel(top.Category), top.Percent,
	)}, true
}

func diversityInsight(in insightInput) (Insight, bool) {
	if in.workouts < diversityMinWorkout {
		return Insight{}, false
	}
	switch n := len(in.dist); {
	case n >= 3:
		return Insight{InsightPraise, fmt.Sprintf("You trained %d different categories. Nice variety.", n)}, true
	case n == 1:
		return Insight{InsightNudge, fmt.Sprintf(
			"All your sets are %s. Try mixing in another category.",
			categoryLabel(in.dist[0].Category),
		)}, true
	}
	return Insight{}, false
}

func weekVolumeInsight(in insightInput) (Insight, bool) {
	cmp := CompareWeeks(in.records, in.now, in.loc)
	if cmp.Previous.Volume <= 0 || cmp.Current.Volume <= cmp.Previous.Volume {
		return Insight{}, false
	}
	return Insight{InsightCelebrate, fmt.Sprintf("Volume is up %d%% over last week.", cmp.VolumeChange)}, true
}

func categoryLabel(c models.Category) string {
	s := strings.ReplaceAll(string(c), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
