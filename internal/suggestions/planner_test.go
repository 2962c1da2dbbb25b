package suggestions

import (
	"strings"
	"testing"
	"time"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

func TestPlanForSeasonMidMarch(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	spring := PlanForSeason(enums.SeasonSpring, now)
	if spring.Priority != enums.SuggestionPriorityHigh {
		t.Fatalf("spring in window should be high, got %s", spring.Priority)
	}
	if !spring.SuggestedDate.Equal(now.AddDate(0, 0, 7)) {
		t.Fatalf("in-window date should be now+7d, got %v", spring.SuggestedDate)
	}
	if !strings.HasPrefix(spring.Reason, "Optimal period right now!") {
		t.Fatalf("unexpected reason %q", spring.Reason)
	}

	summer := PlanForSeason(enums.SeasonSummer, now)
	if summer.Priority != enums.SuggestionPriorityHigh {
		t.Fatalf("summer one month out should be high, got %s", summer.Priority)
	}
	if !summer.SuggestedDate.Equal(now.AddDate(0, 0, 14)) {
		t.Fatalf("minDiff 1 date should be now+14d, got %v", summer.SuggestedDate)
	}
	if !strings.HasPrefix(summer.Reason, "Optimal period very close!") {
		t.Fatalf("unexpected reason %q", summer.Reason)
	}

	autumn := PlanForSeason(enums.SeasonAutumn, now)
	if autumn.Priority != enums.SuggestionPriorityMedium {
		t.Fatalf("autumn four months out should be medium, got %s", autumn.Priority)
	}
	wantJuly := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !autumn.SuggestedDate.Equal(wantJuly) {
		t.Fatalf("expected July 1, got %v", autumn.SuggestedDate)
	}

	winter := PlanForSeason(enums.SeasonWinter, now)
	if winter.Priority != enums.SuggestionPriorityLow {
		t.Fatalf("winter six months out should be low, got %s", winter.Priority)
	}
	wantSeptember := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !winter.SuggestedDate.Equal(wantSeptember) {
		t.Fatalf("expected September 1 of the same year, got %v", winter.SuggestedDate)
	}
}

func TestPlanForSeasonRollsWindowIntoNextYear(t *testing.T) {
	now := time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC)

	summer := PlanForSeason(enums.SeasonSummer, now)
	wantApril := time.Date(2027, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !summer.SuggestedDate.Equal(wantApril) {
		t.Fatalf("expected April 1 next year, got %v", summer.SuggestedDate)
	}
	if summer.Priority != enums.SuggestionPriorityLow {
		t.Fatalf("five months out should be low, got %s", summer.Priority)
	}
}

func TestPlanForSeasonWithoutWindow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, season := range []enums.Season{enums.SeasonAllSeasons, enums.SeasonUndefined, "mystery"} {
		plan := PlanForSeason(season, now)
		if plan.Priority != enums.SuggestionPriorityHigh {
			t.Fatalf("season %q should always be high, got %s", season, plan.Priority)
		}
		if !plan.SuggestedDate.Equal(now.AddDate(0, 0, 7)) {
			t.Fatalf("season %q should list in 7 days, got %v", season, plan.SuggestedDate)
		}
		if !strings.Contains(plan.Reason, "All-season item") {
			t.Fatalf("season %q unexpected reason %q", season, plan.Reason)
		}
	}
}

func TestPlanForSeasonWindowEdges(t *testing.T) {
	// Late October: winter window {Sep, Oct} is still open.
	october := time.Date(2026, time.October, 28, 0, 0, 0, 0, time.UTC)
	winter := PlanForSeason(enums.SeasonWinter, october)
	if winter.Priority != enums.SuggestionPriorityHigh {
		t.Fatalf("second window month should still be high, got %s", winter.Priority)
	}
	if !winter.SuggestedDate.Equal(october.AddDate(0, 0, 7)) {
		t.Fatalf("in-window date should be now+7d, got %v", winter.SuggestedDate)
	}

	// November: window just closed, next opening is 10 months away.
	november := time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC)
	winter = PlanForSeason(enums.SeasonWinter, november)
	if winter.Priority != enums.SuggestionPriorityLow {
		t.Fatalf("window just closed should be low, got %s", winter.Priority)
	}
	wantSeptember := time.Date(2027, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !winter.SuggestedDate.Equal(wantSeptember) {
		t.Fatalf("expected September 1 next year, got %v", winter.SuggestedDate)
	}
}
