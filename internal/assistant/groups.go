package assistant

import "strings"

// GroupSummary is the slice of group data the resolver needs.
type GroupSummary struct {
	ID          string
	Name        string
	Description string
}

// ResolveGroups narrows the caller's groups to those matching the parsed
// hints.
//
// Matching order: name-or-description substring match wins; failing that,
// individual words of each hint are tried against group names. When hints
// were given but nothing matched at all, the first group is used as a
// fallback rather than failing. Empty hints return every group unchanged,
// so the resolver never errors on empty input.
func ResolveGroups(hints []string, groups []GroupSummary) []GroupSummary {
	if len(hints) == 0 || len(groups) == 0 {
		return groups
	}

	var direct []GroupSummary
	for _, group := range groups {
		name := strings.ToLower(group.Name)
		description := strings.ToLower(group.Description)
		for _, hint := range hints {
			if strings.Contains(name, hint) || strings.Contains(description, hint) {
				direct = append(direct, group)
				break
			}
		}
	}
	if len(direct) > 0 {
		return direct
	}

	var partial []GroupSummary
	for _, group := range groups {
		name := strings.ToLower(group.Name)
		for _, hint := range hints {
			if hintWordMatches(name, hint) {
				partial = append(partial, group)
				break
			}
		}
	}
	if len(partial) > 0 {
		return partial
	}

	return groups[:1]
}

func hintWordMatches(groupName, hint string) bool {
	for _, word := range strings.Fields(hint) {
		if strings.Contains(groupName, word) {
			return true
		}
	}
	return false
}
