package availability

import "sort"

// ReportDurationMinutes is the fixed window used for availability reports.
// The report answers "when is anyone free" generically, independent of the
// duration a caller might later schedule.
const ReportDurationMinutes = 60

// DayAvailability lists the viable windows of one calendar day together
// with the union of member names available in at least one of them.
type DayAvailability struct {
	Date             Date
	TimeSlots        []string
	AvailableMembers []string
}

// BuildDayReports groups viable candidates by date for informational
// display. Every candidate is reported; there is no gap enforcement or
// truncation on this path. Slots within a day are time-sorted and days are
// returned in ascending date order. Days without any viable slot produce
// no entry; the caller decides how to present an entirely free-less group.
func BuildDayReports(slots []CandidateSlot, pref TimePreference) []DayAvailability {
	filtered := FilterByPreference(slots, pref)

	byDate := make(map[Date][]CandidateSlot)
	for _, slot := range filtered {
		byDate[slot.Date] = append(byDate[slot.Date], slot)
	}

	dates := make([]Date, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Compare(dates[j]) < 0 })

	reports := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		daySlots := byDate[date]
		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].StartMinute < daySlots[j].StartMinute })

		times := make([]string, 0, len(daySlots))
		seen := make(map[string]struct{})
		var names []string
		for _, slot := range daySlots {
			times = append(times, slot.StartTime()+"-"+slot.EndTime())
			for _, member := range slot.AvailableMembers {
				if _, ok := seen[member.UserID]; ok {
					continue
				}
				seen[member.UserID] = struct{}{}
				names = append(names, member.DisplayName)
			}
		}

		reports = append(reports, DayAvailability{
			Date:             date,
			TimeSlots:        times,
			AvailableMembers: names,
		})
	}

	return reports
}
