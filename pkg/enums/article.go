package enums

import "fmt"

// ArticleStatus represents the listing lifecycle states.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusReady     ArticleStatus = "ready"
	ArticleStatusScheduled ArticleStatus = "scheduled"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusSold      ArticleStatus = "sold"
)

var validArticleStatuses = []ArticleStatus{
	ArticleStatusDraft,
	ArticleStatusReady,
	ArticleStatusScheduled,
	ArticleStatusPublished,
	ArticleStatusSold,
}

// String implements fmt.Stringer.
func (s ArticleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ArticleStatus.
func (s ArticleStatus) IsValid() bool {
	for _, candidate := range validArticleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ArticleStatus) IsTerminal() bool {
	return s == ArticleStatusSold
}

// ParseArticleStatus converts raw input into an ArticleStatus.
func ParseArticleStatus(value string) (ArticleStatus, error) {
	for _, candidate := range validArticleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid article status %q", value)
}

// ArticleCondition represents the declared wear state of an item.
// The two "new with/without tag" spellings both occur in stored data,
// so both are accepted.
type ArticleCondition string

const (
	ArticleConditionNewWithTag     ArticleCondition = "new_with_tag"
	ArticleConditionNewWithoutTag  ArticleCondition = "new_without_tag"
	ArticleConditionNewWithTags    ArticleCondition = "new_with_tags"
	ArticleConditionNewWithoutTags ArticleCondition = "new_without_tags"
	ArticleConditionVeryGood       ArticleCondition = "very_good"
	ArticleConditionGood           ArticleCondition = "good"
	ArticleConditionSatisfactory   ArticleCondition = "satisfactory"
)

var validArticleConditions = []ArticleCondition{
	ArticleConditionNewWithTag,
	ArticleConditionNewWithoutTag,
	ArticleConditionNewWithTags,
	ArticleConditionNewWithoutTags,
	ArticleConditionVeryGood,
	ArticleConditionGood,
	ArticleConditionSatisfactory,
}

// String implements fmt.Stringer.
func (c ArticleCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ArticleCondition.
func (c ArticleCondition) IsValid() bool {
	for _, candidate := range validArticleConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseArticleCondition converts raw input into an ArticleCondition.
func ParseArticleCondition(value string) (ArticleCondition, error) {
	for _, candidate := range validArticleConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid article condition %q", value)
}

// Season represents the wearing season a listing is declared for.
type Season string

const (
	SeasonSpring     Season = "spring"
	SeasonSummer     Season = "summer"
	SeasonAutumn     Season = "autumn"
	SeasonWinter     Season = "winter"
	SeasonAllSeasons Season = "all-seasons"
	SeasonUndefined  Season = "undefined"
)

var validSeasons = []Season{
	SeasonSpring,
	SeasonSummer,
	SeasonAutumn,
	SeasonWinter,
	SeasonAllSeasons,
	SeasonUndefined,
}

// String implements fmt.Stringer.
func (s Season) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Season.
func (s Season) IsValid() bool {
	for _, candidate := range validSeasons {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeason converts raw input into a Season.
func ParseSeason(value string) (Season, error) {
	for _, candidate := range validSeasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid season %q", value)
}
