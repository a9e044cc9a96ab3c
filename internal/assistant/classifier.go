// Package assistant turns free-text scheduling queries into structured
// requests for the availability engine.
//
// Everything here is heuristic keyword matching, deliberately replaceable:
// the Classifier interface is the seam where a smarter implementation can
// be swapped in without touching the engine.
package assistant

import (
	"strings"

	"github.com/example/group-scheduler/internal/availability"
)

// Intent distinguishes a request to schedule something from a request to
// see availability.
type Intent string

const (
	// IntentScheduling asks the assistant to propose concrete slots.
	IntentScheduling Intent = "scheduling"
	// IntentAvailability asks when people are free, without committing.
	IntentAvailability Intent = "availability"
)

// Request is the structured form of a parsed scheduling query.
type Request struct {
	EventType       string
	DurationMinutes int
	TimePreference  availability.TimePreference
	DatePreference  string
	GroupHints      []string
}

// Classifier extracts intent and structured parameters from free text.
type Classifier interface {
	DetectIntent(input string) Intent
	ParseRequest(input string, groupNames []string) Request
}

// KeywordClassifier is the default Classifier, built on substring keyword
// tables. It never fails; unknown input falls back to defaults.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default keyword-based classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var availabilityKeywords = []string{
	"when is everyone free",
	"when are people free",
	"show availability",
	"check availability",
	"who is free",
	"what times work",
	"when can we meet",
	"free time",
	"available times",
	"when is",
	"who's free",
	"check when",
}

var schedulingKeywords = []string{
	"schedule",
	"plan",
	"book",
	"set up",
	"arrange",
	"organize",
	"create event",
	"make appointment",
	"let's meet",
}

// DetectIntent classifies the query. Availability phrasings are checked
// first because they are the more specific patterns; anything unmatched is
// treated as an availability query, the safer default.
func (c *KeywordClassifier) DetectIntent(input string) Intent {
	lower := strings.ToLower(input)

	for _, keyword := range availabilityKeywords {
		if strings.Contains(lower, keyword) {
			return IntentAvailability
		}
	}
	for _, keyword := range schedulingKeywords {
		if strings.Contains(lower, keyword) {
			return IntentScheduling
		}
	}
	return IntentAvailability
}

// ParseRequest extracts event type, duration, time and date preferences
// and group hints from the query. groupNames are the caller's known group
// names, used for hint extraction.
func (c *KeywordClassifier) ParseRequest(input string, groupNames []string) Request {
	lower := strings.ToLower(input)

	return Request{
		EventType:       detectEventType(lower),
		DurationMinutes: detectDuration(lower),
		TimePreference:  detectTimePreference(lower),
		DatePreference:  detectDatePreference(lower),
		GroupHints:      extractGroupHints(lower, groupNames),
	}
}

func detectEventType(lower string) string {
	switch {
	case containsAny(lower, "dinner", "meal", "lunch", "breakfast"):
		return "Meal"
	case containsAny(lower, "coffee", "drinks", "hangout"):
		return "Social"
	case containsAny(lower, "workout", "gym", "exercise"):
		return "Workout"
	case containsAny(lower, "book club", "reading"):
		return "Book Club"
	default:
		return "Meeting"
	}
}

func detectDuration(lower string) int {
	switch {
	case containsAny(lower, "30 min", "half hour", "quick", "brief"):
		return 30
	case containsAny(lower, "2 hour", "two hour", "long", "extended"):
		return 120
	case containsAny(lower, "3 hour", "three hour"):
		return 180
	default:
		return 60
	}
}

// detectTimePreference honours an explicit time-of-day word first, then
// falls back to what the event type implies (dinner in the evening, coffee
// in the morning, and so on).
func detectTimePreference(lower string) availability.TimePreference {
	switch {
	case strings.Contains(lower, "morning"):
		return availability.TimePreferenceMorning
	case strings.Contains(lower, "afternoon"):
		return availability.TimePreferenceAfternoon
	case strings.Contains(lower, "evening"):
		return availability.TimePreferenceEvening
	case strings.Contains(lower, "night"):
		return availability.TimePreferenceNight
	}

	switch {
	case strings.Contains(lower, "dinner"):
		return availability.TimePreferenceEvening
	case strings.Contains(lower, "breakfast"):
		return availability.TimePreferenceMorning
	case strings.Contains(lower, "lunch"):
		return availability.TimePreferenceAfternoon
	case strings.Contains(lower, "coffee"):
		return availability.TimePreferenceMorning
	case containsAny(lower, "drinks", "bar", "happy hour"):
		return availability.TimePreferenceEvening
	case containsAny(lower, "workout", "gym"):
		return availability.TimePreferenceMorning
	case containsAny(lower, "book club", "reading"):
		return availability.TimePreferenceEvening
	}
	return availability.TimePreferenceNone
}

func detectDatePreference(lower string) string {
	preferences := []string{
		"today", "tomorrow", "this week", "next week", "weekend",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}
	for _, pref := range preferences {
		if strings.Contains(lower, pref) {
			return strings.ReplaceAll(pref, " ", "_")
		}
	}
	return ""
}

// extractGroupHints matches the query against known group names: whole-name
// substring first, then individual words of each name (skipping short
// words), then a synonym table mapping common category words to group
// names that contain the category.
func extractGroupHints(lower string, groupNames []string) []string {
	var hints []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		hints = append(hints, name)
	}

	for _, name := range groupNames {
		lowerName := strings.ToLower(name)
		if strings.Contains(lower, lowerName) {
			add(lowerName)
			continue
		}
		for _, word := range strings.Fields(lowerName) {
			if len(word) <= 2 {
				continue
			}
			if strings.Contains(lower, word) {
				add(lowerName)
				break
			}
		}
	}

	if len(hints) > 0 {
		return hints
	}

	synonyms := map[string][]string{
		"family":  {"family", "relatives", "parents", "siblings", "home"},
		"work":    {"work", "team", "office", "colleagues", "business", "company"},
		"friends": {"friends", "buddies", "pals", "social"},
		"book":    {"book", "reading", "literature", "novel"},
		"club":    {"club", "group", "society", "meetup"},
		"study":   {"study", "homework", "learning", "school", "education"},
		"fitness": {"fitness", "gym", "workout", "exercise", "training"},
		"hobby":   {"hobby", "interest", "passion"},
	}

	for _, name := range groupNames {
		lowerName := strings.ToLower(name)
		for category, keywords := range synonyms {
			if !strings.Contains(lowerName, category) {
				continue
			}
			if containsAny(lower, keywords...) {
				add(lowerName)
			}
		}
	}

	return hints
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
