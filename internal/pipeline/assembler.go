package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

// holeAttemptID builds the human-readable composite key that separates
// drilling attempts sharing a nominal hole id by their actual spatial
// starting point: rig-serial-pattern-hole(05d)-bit(04d)-X*1000-Y*1000-Z*1000.
// A context without a bit diameter renders the component as 0000; the
// numeric bit-diameter field itself stays nil.
func holeAttemptID(rigName, rigSerial, pattern string, holeID int64, bitMM *float64, first r3.Vector) string {
	bit := int64(0)
	if bitMM != nil {
		bit = int64(math.Round(*bitMM))
	}
	return fmt.Sprintf("%s-%s-%s-%05d-%04d-%d-%d-%d",
		rigName, rigSerial, pattern, holeID, bit,
		int64(math.Round(first.X*1000)),
		int64(math.Round(first.Y*1000)),
		int64(math.Round(first.Z*1000)),
	)
}

// Assemble left-joins coarse bins with cycle-time records and the
// shallowest-interval coordinate lookup into one row per (hole attempt,
// depth interval). Every coarse bin appears in the output even when a
// lookup misses. Rows are ordered by pattern, rig, hole sequence, depth
// interval ascending; since sequence ranks start time with the same
// tiebreak as the attempt sort, ordering on the attempt key is identical.
func Assemble(coarse []models.DepthBin, cycles []models.CycleTimeRecord, holes []models.HoleContext) []models.ProfileRecord {
	cycleByKey := make(map[models.AttemptKey]models.CycleTimeRecord, len(cycles))
	for _, c := range cycles {
		cycleByKey[c.Key] = c
	}

	ctxByKey := make(map[models.AttemptKey]models.HoleContext, len(holes))
	for _, h := range holes {
		ctxByKey[models.NewAttemptKey(h)] = h
	}

	// Shallowest coarse interval per attempt, for the attempt id.
	firstBin := make(map[models.AttemptKey]models.DepthBin)
	for _, b := range coarse {
		if cur, ok := firstBin[b.Key]; !ok || b.BinIndex < cur.BinIndex {
			firstBin[b.Key] = b
		}
	}

	records := make([]models.ProfileRecord, 0, len(coarse))
	for _, b := range coarse {
		rec := models.ProfileRecord{Bin: b}

		if c, ok := cycleByKey[b.Key]; ok {
			cc := c
			rec.Cycle = &cc
		}

		if h, ok := ctxByKey[b.Key]; ok {
			if fb, ok := firstBin[b.Key]; ok {
				rec.HoleAttemptID = holeAttemptID(
					h.RigName, h.RigSerial, h.PatternName,
					h.HoleID, h.BitDiameterMM, fb.Position,
				)
			}
		}

		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Bin, records[j].Bin
		if a.Key != b.Key {
			return lessAttemptKey(a.Key, b.Key)
		}
		return a.BinIndex < b.BinIndex
	})

	return records
}
