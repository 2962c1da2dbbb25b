package enums

import "fmt"

// SuggestionPriority ranks how urgently an article should be listed.
type SuggestionPriority string

const (
	SuggestionPriorityHigh   SuggestionPriority = "high"
	SuggestionPriorityMedium SuggestionPriority = "medium"
	SuggestionPriorityLow    SuggestionPriority = "low"
)

var validSuggestionPriorities = []SuggestionPriority{
	SuggestionPriorityHigh,
	SuggestionPriorityMedium,
	SuggestionPriorityLow,
}

// String implements fmt.Stringer.
func (p SuggestionPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known SuggestionPriority.
func (p SuggestionPriority) IsValid() bool {
	for _, candidate := range validSuggestionPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// Rank orders priorities for display, high first.
func (p SuggestionPriority) Rank() int {
	switch p {
	case SuggestionPriorityHigh:
		return 0
	case SuggestionPriorityMedium:
		return 1
	default:
		return 2
	}
}

// ParseSuggestionPriority converts raw input into a SuggestionPriority.
func ParseSuggestionPriority(value string) (SuggestionPriority, error) {
	for _, candidate := range validSuggestionPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid suggestion priority %q", value)
}

// SuggestionStatus tracks the workflow of a selling suggestion.
// The scheduled value exists in stored data but the engine only ever
// writes accepted.
type SuggestionStatus string

const (
	SuggestionStatusPending   SuggestionStatus = "pending"
	SuggestionStatusAccepted  SuggestionStatus = "accepted"
	SuggestionStatusRejected  SuggestionStatus = "rejected"
	SuggestionStatusScheduled SuggestionStatus = "scheduled"
)

var validSuggestionStatuses = []SuggestionStatus{
	SuggestionStatusPending,
	SuggestionStatusAccepted,
	SuggestionStatusRejected,
	SuggestionStatusScheduled,
}

// String implements fmt.Stringer.
func (s SuggestionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SuggestionStatus.
func (s SuggestionStatus) IsValid() bool {
	for _, candidate := range validSuggestionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSuggestionStatus converts raw input into a SuggestionStatus.
func ParseSuggestionStatus(value string) (SuggestionStatus, error) {
	for _, candidate := range validSuggestionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid suggestion status %q", value)
}
