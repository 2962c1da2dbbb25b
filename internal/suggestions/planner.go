package suggestions

import (
	"time"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// Plan is the scored outcome for one article.
type Plan struct {
	SuggestedDate time.Time
	Priority      enums.SuggestionPriority
	Reason        string
}

// seasonWindows maps each season to its 0-based target sale months
// (January = 0). Listings sell best one to two months before the season.
var seasonWindows = map[enums.Season][]int{
	enums.SeasonSpring: {1, 2},
	enums.SeasonSummer: {3, 4},
	enums.SeasonAutumn: {6, 7},
	enums.SeasonWinter: {8, 9},
}

var seasonReasons = map[enums.Season]string{
	enums.SeasonSpring: "Spring items - best selling window is February to March",
	enums.SeasonSummer: "Summer items - best selling window is April to May",
	enums.SeasonAutumn: "Autumn items - best selling window is July to August",
	enums.SeasonWinter: "Winter items - best selling window is September to October",
}

const (
	allSeasonsReason     = "All-season item - can be listed right away"
	prefixOptimalNow     = "Optimal period right now! "
	prefixOptimalSoon    = "Optimal period very close! "
	daysUntilSoonListing = 7
	daysUntilNearListing = 14
)

// PlanForSeason scores a season against the reference time. Seasons without
// a fixed window (all-seasons, undefined, anything unrecognized) are always
// immediately sellable.
func PlanForSeason(season enums.Season, now time.Time) Plan {
	window, ok := seasonWindows[season]
	if !ok {
		return Plan{
			SuggestedDate: now.AddDate(0, 0, daysUntilSoonListing),
			Priority:      enums.SuggestionPriorityHigh,
			Reason:        prefixOptimalNow + allSeasonsReason,
		}
	}

	month := int(now.Month()) - 1
	minDiff := 12
	for _, w := range window {
		diff := (w - month + 12) % 12
		if diff < minDiff {
			minDiff = diff
		}
	}

	var priority enums.SuggestionPriority
	reason := seasonReasons[season]
	switch {
	case minDiff == 0:
		priority = enums.SuggestionPriorityHigh
		reason = prefixOptimalNow + reason
	case minDiff == 1:
		priority = enums.SuggestionPriorityHigh
		reason = prefixOptimalSoon + reason
	case minDiff <= 4:
		priority = enums.SuggestionPriorityMedium
	default:
		priority = enums.SuggestionPriorityLow
	}

	return Plan{
		SuggestedDate: suggestedDate(window, minDiff, now),
		Priority:      priority,
		Reason:        reason,
	}
}

func suggestedDate(window []int, minDiff int, now time.Time) time.Time {
	switch minDiff {
	case 0:
		return now.AddDate(0, 0, daysUntilSoonListing)
	case 1:
		return now.AddDate(0, 0, daysUntilNearListing)
	}

	target := time.Date(now.Year(), time.Month(window[0]+1), 1, 0, 0, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(1, 0, 0)
	}
	return target
}
