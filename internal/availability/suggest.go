package availability

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// MaxSuggestionsPerGroup caps how many slots are proposed per group.
	MaxSuggestionsPerGroup = 2
	// MaxSuggestionsTotal caps the merged suggestion list across groups.
	MaxSuggestionsTotal = 5
	// MinSuggestionGap is the minimum separation between the end of one
	// selected slot and the start of the next, measured on absolute
	// instants so the rule holds across dates.
	MinSuggestionGap = 60 * time.Minute
)

// TimePreference restricts candidates to a time-of-day band.
type TimePreference string

const (
	// TimePreferenceNone applies no time-of-day filter.
	TimePreferenceNone TimePreference = ""
	// TimePreferenceMorning covers slot starts from 06:00 to 12:00.
	TimePreferenceMorning TimePreference = "morning"
	// TimePreferenceAfternoon covers slot starts from 12:00 to 17:00.
	TimePreferenceAfternoon TimePreference = "afternoon"
	// TimePreferenceEvening covers slot starts from 17:00 to 21:00.
	TimePreferenceEvening TimePreference = "evening"
	// TimePreferenceNight covers slot starts from 21:00 wrapping to 06:00.
	TimePreferenceNight TimePreference = "night"
)

// Matches reports whether a slot starting at the given minute-of-day falls
// within the preference band.
func (p TimePreference) Matches(startMinute int) bool {
	hour := startMinute / 60
	switch p {
	case TimePreferenceMorning:
		return hour >= 6 && hour < 12
	case TimePreferenceAfternoon:
		return hour >= 12 && hour < 17
	case TimePreferenceEvening:
		return hour >= 17 && hour < 21
	case TimePreferenceNight:
		return hour >= 21 || hour < 6
	default:
		return true
	}
}

// Suggestion is a ranked, user-presentable candidate slot. It is derived
// per request and becomes an event only if explicitly confirmed.
type Suggestion struct {
	ID               string
	Title            string
	GroupID          string
	GroupName        string
	Start            time.Time
	End              time.Time
	DurationMinutes  int
	Confidence       int
	AvailableMembers []string
	ConflictSummary  []string
}

// SelectParams configures suggestion selection for one group.
type SelectParams struct {
	GroupID    string
	GroupName  string
	EventType  string
	Preference TimePreference
	// Now is the explicit reference instant; slots starting at or before
	// it are dropped.
	Now      time.Time
	Location *time.Location
}

// FilterByPreference keeps the candidates whose start falls in the band.
func FilterByPreference(slots []CandidateSlot, pref TimePreference) []CandidateSlot {
	if pref == TimePreferenceNone {
		return slots
	}
	filtered := make([]CandidateSlot, 0, len(slots))
	for _, slot := range slots {
		if pref.Matches(slot.StartMinute) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// Confidence converts an available/total member ratio to a rounded percent.
func Confidence(available, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(available) / float64(total) * 100))
}

// SelectSuggestions ranks a group's candidates and greedily picks a small,
// temporally spread subset.
//
// Candidates are filtered by preference and the Now cutoff, then ordered by
// available-member count descending with earliest start as the tie-break
// (a deterministic secondary key rather than relying on sort stability).
// Selection stops at MaxSuggestionsPerGroup and rejects any candidate
// closer than MinSuggestionGap to an already selected slot.
func SelectSuggestions(slots []CandidateSlot, totalMembers int, params SelectParams) []Suggestion {
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}

	candidates := FilterByPreference(slots, params.Preference)

	upcoming := make([]CandidateSlot, 0, len(candidates))
	for _, slot := range candidates {
		if slot.StartAt(loc).After(params.Now) {
			upcoming = append(upcoming, slot)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if len(upcoming[i].AvailableMembers) != len(upcoming[j].AvailableMembers) {
			return len(upcoming[i].AvailableMembers) > len(upcoming[j].AvailableMembers)
		}
		if cmp := upcoming[i].Date.Compare(upcoming[j].Date); cmp != 0 {
			return cmp < 0
		}
		return upcoming[i].StartMinute < upcoming[j].StartMinute
	})

	var selected []CandidateSlot
	for _, slot := range upcoming {
		if !hasMinimumGap(selected, slot, loc) {
			continue
		}
		selected = append(selected, slot)
		if len(selected) >= MaxSuggestionsPerGroup {
			break
		}
	}

	suggestions := make([]Suggestion, 0, len(selected))
	for i, slot := range selected {
		suggestions = append(suggestions, Suggestion{
			ID:               fmt.Sprintf("%s-%s-%s-%d", params.GroupID, slot.Date, slot.StartTime(), i),
			Title:            fmt.Sprintf("%s - %s", params.EventType, params.GroupName),
			GroupID:          params.GroupID,
			GroupName:        params.GroupName,
			Start:            slot.StartAt(loc),
			End:              slot.EndAt(loc),
			DurationMinutes:  slot.EndMinute - slot.StartMinute,
			Confidence:       Confidence(len(slot.AvailableMembers), totalMembers),
			AvailableMembers: memberNames(slot.AvailableMembers),
			ConflictSummary:  conflictSummary(slot.ConflictingMembers),
		})
	}

	return suggestions
}

// MergeSuggestions combines per-group suggestion lists, orders them by
// confidence descending with earliest start as the tie-break, and truncates
// to MaxSuggestionsTotal.
func MergeSuggestions(groups ...[]Suggestion) []Suggestion {
	var merged []Suggestion
	for _, suggestions := range groups {
		merged = append(merged, suggestions...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Start.Before(merged[j].Start)
	})

	if len(merged) > MaxSuggestionsTotal {
		merged = merged[:MaxSuggestionsTotal]
	}
	return merged
}

// hasMinimumGap checks the candidate against every already selected slot.
// The gap is the distance between the end of the earlier slot and the start
// of the later one.
func hasMinimumGap(selected []CandidateSlot, candidate CandidateSlot, loc *time.Location) bool {
	candidateStart := candidate.StartAt(loc)
	candidateEnd := candidate.EndAt(loc)

	for _, other := range selected {
		otherStart := other.StartAt(loc)
		otherEnd := other.EndAt(loc)

		var gap time.Duration
		if !candidateStart.After(otherStart) {
			gap = otherStart.Sub(candidateEnd)
		} else {
			gap = candidateStart.Sub(otherEnd)
		}
		if gap < MinSuggestionGap {
			return false
		}
	}
	return true
}

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.DisplayName)
	}
	return names
}

// conflictSummary names up to two conflicting members plus a count, the
// way the assistant presents partial availability.
func conflictSummary(conflicting []Member) []string {
	if len(conflicting) == 0 {
		return nil
	}
	names := memberNames(conflicting)
	shown := names
	if len(shown) > 2 {
		shown = shown[:2]
	}
	return []string{fmt.Sprintf("%d member(s) unavailable: %s", len(conflicting), strings.Join(shown, ", "))}
}
