package posimport

import (
	"sort"
	"time"

	"github.com/carlsburger/gastrocore/utils"
)

// RecordGroup is one register's lines for one business day.
type RecordGroup struct {
	Register    string
	BusinessDay string
	Records     []Record
	GrossCents  int64
	NetCents    int64
}

func (rg *RecordGroup) FirstBooked() time.Time {
	if len(rg.Records) == 0 {
		return time.Time{}
	}
	return rg.Records[0].BookedAt
}

func (rg *RecordGroup) LastBooked() time.Time {
	if len(rg.Records) == 0 {
		return time.Time{}
	}
	return rg.Records[len(rg.Records)-1].BookedAt
}

func GroupRecords(records []Record) []*RecordGroup {
	// group by business day - exports usually hold a single day, the util is generic
	var groups []*RecordGroup
	dategroups := utils.GroupBy(records, func(r Record) string { return r.BusinessDay.Format("2006-01-02") })

	for date, recs := range dategroups {
		// group by register
		registergroups := utils.GroupBy(recs, func(r Record) string { return r.Register })
		for register, lines := range registergroups {
			// Sort lines by booking time so First and Last are correct
			sort.Slice(lines, func(i, j int) bool {
				return lines[i].BookedAt.Before(lines[j].BookedAt)
			})

			rg := &RecordGroup{
				Register:    register,
				BusinessDay: date,
				Records:     lines,
			}
			for _, line := range lines {
				rg.GrossCents += line.GrossCents
				rg.NetCents += line.NetCents
			}
			groups = append(groups, rg)
		}
	}

	// map iteration order is random; keep output stable
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].BusinessDay != groups[j].BusinessDay {
			return groups[i].BusinessDay < groups[j].BusinessDay
		}
		return groups[i].Register < groups[j].Register
	})

	return groups
}

// Dedupe drops lines whose key was already seen, keeping the first
// occurrence. The server holds the authoritative duplicate count; this
// trims re-exported lines before upload.
func Dedupe(records []Record) ([]Record, int) {
	seen := make(map[string]bool, len(records))
	unique := make([]Record, 0, len(records))
	dupes := 0
	for _, r := range records {
		key := r.Key()
		if seen[key] {
			dupes++
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique, dupes
}
