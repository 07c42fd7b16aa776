package pipeline

import "github.com/drillwise/mwd-backend-go/internal/models"

// BuildCycleTimes derives the per-attempt timing and productivity fields
// from hole summaries already ordered by (pattern, rig, sequence), as
// returned by SummarizeHoles. The last hole of each group keeps nil
// next-start/cycle fields: that marks the end of the sequence, not
// missing data. Cycle-time records carry no state between runs; the full
// set is rebuilt from the current summaries every time.
func BuildCycleTimes(summaries []models.HoleSummary) []models.CycleTimeRecord {
	records := make([]models.CycleTimeRecord, len(summaries))
	for i, s := range summaries {
		r := models.CycleTimeRecord{HoleSummary: s}

		drilling := s.EndTime.Sub(s.StartTime).Seconds()
		r.DrillingTimeSeconds = drilling
		r.DrillingTimeMinutes = drilling / 60

		if i+1 < len(summaries) {
			next := summaries[i+1]
			if next.PatternName == s.PatternName && next.RigSerial == s.RigSerial {
				start := next.StartTime
				r.NextHoleStartTime = &start

				cycle := start.Sub(s.StartTime).Seconds()
				r.CycleTimeSeconds = &cycle

				// Negative when log windows overlap; surfaced as-is.
				nonDrilling := cycle - drilling
				r.NonDrillingTimeSeconds = &nonDrilling
			}
		}

		if drilling > 0 {
			rop := s.HoleDepthM / (drilling / 3600)
			r.DrillingROPMPerHour = &rop
		}
		if r.CycleTimeSeconds != nil && *r.CycleTimeSeconds > 0 {
			rop := s.HoleDepthM / (*r.CycleTimeSeconds / 3600)
			r.CycleROPMPerHour = &rop
		}

		records[i] = r
	}
	return records
}
