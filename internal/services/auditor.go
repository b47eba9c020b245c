package services

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
)

// ConsistencyAuditor re-verifies the engine invariants on a schedule: every
// derived stat must equal its defining ratio, and team totals must stay
// within tolerance of summed roster projections. Ratio violations are
// deterministic to fix and are recomputed in place; team divergence is only
// reported; fill-player generation is an explicit operation.
type ConsistencyAuditor struct {
	db        *database.DB
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	season    int
	mu        sync.Mutex
	isRunning bool
}

func NewConsistencyAuditor(db *database.DB, logger *logrus.Logger, schedule string, season int) *ConsistencyAuditor {
	return &ConsistencyAuditor{
		db:       db,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		season:   season,
	}
}

// Start schedules the recurring audit.
func (s *ConsistencyAuditor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("consistency auditor is already running")
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Audit(s.season, nil); err != nil {
			s.logger.Errorf("Scheduled consistency audit failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule consistency audit: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Consistency auditor started")
	return nil
}

// Stop halts the schedule.
func (s *ConsistencyAuditor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	s.logger.Info("Consistency auditor stopped")
}

// teamResidualTolerance is how far a team aggregate may drift from its summed
// roster projections before the divergence is reported.
const teamResidualTolerance = 10.0

// Audit sweeps every projection in the season (and scenario scope) for ratio
// violations, recomputing where broken, then checks each team's aggregate
// against its roster sums. Issues are counted, never thrown.
func (s *ConsistencyAuditor) Audit(season int, scenarioID *uint) (*engine.Result, error) {
	var result engine.Result

	query := s.db.Where("season = ?", season)
	if scenarioID != nil {
		query = query.Where("scenario_id = ?", *scenarioID)
	} else {
		query = query.Where("scenario_id IS NULL")
	}

	var projections []models.Projection
	if err := query.Find(&projections).Error; err != nil {
		return nil, err
	}

	for i := range projections {
		p := &projections[i]
		issues := engine.RatioInvariantIssues(p)
		if issues.IssuesFound > 0 {
			if err := s.db.Save(p).Error; err != nil {
				return nil, err
			}
			s.logger.WithFields(logrus.Fields{
				"projection_id": p.ID,
				"violations":    issues.IssuesFound,
			}).Warn("Recomputed derived stats out of sync with raw stats")
		}
		result.Merge(issues)
	}

	var teamStats []models.TeamStat
	if err := s.db.Where("season = ?", season).Find(&teamStats).Error; err != nil {
		return nil, err
	}

	byTeam := make(map[string][]*models.Projection)
	for i := range projections {
		byTeam[projections[i].Team] = append(byTeam[projections[i].Team], &projections[i])
	}

	for _, ts := range teamStats {
		roster := byTeam[ts.Team]
		if len(roster) == 0 {
			continue
		}
		residuals := engine.Residuals(ts, roster)
		for name, diff := range residuals {
			if diff > teamResidualTolerance || diff < -teamResidualTolerance {
				result.IssuesFound++
				result.AddNote("team %s %s diverges from roster sum by %.1f", ts.Team, name, diff)
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"season":       season,
		"projections":  len(projections),
		"issues_found": result.IssuesFound,
		"issues_fixed": result.IssuesFixed,
	}).Info("Consistency audit complete")

	return &result, nil
}
