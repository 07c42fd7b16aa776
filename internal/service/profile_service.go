package service

import (
	"fmt"
	"log"
	"time"

	"github.com/drillwise/mwd-backend-go/internal/models"
	"github.com/drillwise/mwd-backend-go/internal/pipeline"
	"github.com/drillwise/mwd-backend-go/internal/repository"
)

// ProfileService coordinates a profile run: read the source rows for a
// pattern, execute the pipeline, replace the stored profile, and report
// the run counts.
type ProfileService struct {
	telemetryRepo *repository.TelemetryRepository
	profileRepo   *repository.ProfileRepository
	pipeline      *pipeline.Pipeline
}

// NewProfileService creates a new profile service
func NewProfileService(telemetryRepo *repository.TelemetryRepository, profileRepo *repository.ProfileRepository, p *pipeline.Pipeline) *ProfileService {
	return &ProfileService{
		telemetryRepo: telemetryRepo,
		profileRepo:   profileRepo,
		pipeline:      p,
	}
}

// RunProfile rebuilds the depth profile for one pattern. The run is
// deterministic and idempotent: identical input produces identical rows,
// and the pattern's previous rows are replaced wholesale.
func (s *ProfileService) RunProfile(req models.RunRequest) (*models.RunReport, error) {
	if req.Pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}
	if req.StartTime > 0 && req.EndTime > 0 && req.StartTime > req.EndTime {
		return nil, fmt.Errorf("start time must be before end time")
	}

	started := time.Now()

	holes, err := s.telemetryRepo.GetHoleContexts(req.Pattern, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to load hole contexts: %w", err)
	}
	samples, err := s.telemetryRepo.GetRawSamples(req.Pattern, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw samples: %w", err)
	}

	result, err := s.pipeline.Run(holes, samples)
	if err != nil {
		return nil, fmt.Errorf("profile pipeline failed: %w", err)
	}

	if err := s.profileRepo.ReplaceProfile(req.Pattern, result.Records); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}

	log.Printf("[ProfileService] pattern=%s holes=%d samples=%d orphans=%d records=%d in %v",
		req.Pattern, result.HoleCount, result.SampleCount, result.OrphanSamples,
		len(result.Records), time.Since(started))

	return &models.RunReport{
		PatternName:   req.Pattern,
		SampleCount:   result.SampleCount,
		OrphanSamples: result.OrphanSamples,
		HoleCount:     result.HoleCount,
		RecordCount:   len(result.Records),
		DurationMS:    time.Since(started).Milliseconds(),
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// GetProfile retrieves stored profile rows
func (s *ProfileService) GetProfile(filter models.ProfileFilter) ([]models.ProfileRecord, int64, error) {
	return s.profileRepo.GetProfile(filter)
}

// GetCycles retrieves stored cycle-time rows
func (s *ProfileService) GetCycles(filter models.CycleFilter) ([]models.CycleTimeRecord, int64, error) {
	return s.profileRepo.GetCycles(filter)
}
