package pipeline

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

// rigSequenceStride spaces the per-rig sequence blocks in the combined
// sequence id: rigSuffix*stride + sequence.
const rigSequenceStride = 100000

// MalformedRigNameError reports a rig name without the trailing numeric
// suffix needed to build a combined sequence id. Defaulting the suffix to
// zero would collide sequence blocks across rigs, so sequencing fails
// loudly instead.
type MalformedRigNameError struct {
	Pattern string
	RigName string
	HoleID  int64
}

func (e *MalformedRigNameError) Error() string {
	return fmt.Sprintf("rig name %q has no numeric suffix (pattern=%s hole=%d)",
		e.RigName, e.Pattern, e.HoleID)
}

// rigNumericSuffix parses the trailing digits of a rig name, e.g.
// "DR0094" -> 94.
func rigNumericSuffix(name string) (int64, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) {
		return 0, false
	}
	n, err := strconv.ParseInt(name[i:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SummarizeHoles collapses coarse bins to one summary per hole attempt
// and assigns RigHoleSequence as the 1-based rank by ascending start time
// within each (pattern, rig) group. Ties on start time break by hole id,
// then bit diameter, so re-runs order identically. The returned slice is
// sorted by pattern, rig, then sequence.
func SummarizeHoles(holes []models.HoleContext, coarse []models.DepthBin, coarseWidthM float64) ([]models.HoleSummary, error) {
	maxIdx := make(map[models.AttemptKey]int)
	for _, b := range coarse {
		if cur, ok := maxIdx[b.Key]; !ok || b.BinIndex > cur {
			maxIdx[b.Key] = b.BinIndex
		}
	}

	summaries := make([]models.HoleSummary, 0, len(maxIdx))
	for _, h := range holes {
		key := models.NewAttemptKey(h)
		idx, ok := maxIdx[key]
		if !ok {
			// Attempt produced no bins; nothing to profile.
			continue
		}
		summaries = append(summaries, models.HoleSummary{
			Key:           key,
			PatternName:   h.PatternName,
			HoleID:        h.HoleID,
			RigName:       h.RigName,
			RigSerial:     h.RigSerial,
			BitDiameterMM: h.BitDiameterMM,
			StartTime:     h.StartTime,
			EndTime:       h.EndTime,
			HoleDepthM:    float64(idx+1) * coarseWidthM,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.PatternName != b.PatternName {
			return a.PatternName < b.PatternName
		}
		if a.RigSerial != b.RigSerial {
			return a.RigSerial < b.RigSerial
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.HoleID != b.HoleID {
			return a.HoleID < b.HoleID
		}
		return a.Key.BitDiameterMM < b.Key.BitDiameterMM
	})

	var pattern, rig string
	seq := 0
	for i := range summaries {
		s := &summaries[i]
		if s.PatternName != pattern || s.RigSerial != rig {
			pattern, rig = s.PatternName, s.RigSerial
			seq = 0
		}
		seq++
		s.RigHoleSequence = seq

		suffix, ok := rigNumericSuffix(s.RigName)
		if !ok {
			return nil, &MalformedRigNameError{
				Pattern: s.PatternName,
				RigName: s.RigName,
				HoleID:  s.HoleID,
			}
		}
		s.CombinedSequenceID = suffix*rigSequenceStride + int64(seq)
	}

	return summaries, nil
}
