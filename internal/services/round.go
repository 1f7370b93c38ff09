package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/profile"
)

// RoundStore persists rounds.
type RoundStore interface {
	SaveRound(ctx context.Context, r *preferences.ActiveRound) error
	ActiveRound(ctx context.Context) (*preferences.ActiveRound, error)
}

// StartRoundRequest is the round setup form.
type StartRoundRequest struct {
	TeeIndex   int    `json:"tee_index"`
	GoalScore  int    `json:"goal_score"`
	PlanFirst3 string `json:"plan_first_3"`
	ProfileID  string `json:"profile,omitempty"`
}

// RoundService starts rounds on the configured course.
type RoundService struct {
	course         *course.Course
	profiles       profile.Source
	store          RoundStore
	defaultProfile string
	logger         *logrus.Logger
	now            func() time.Time
}

func NewRoundService(c *course.Course, profiles profile.Source, store RoundStore, defaultProfile string, logger *logrus.Logger) *RoundService {
	return &RoundService{
		course:         c,
		profiles:       profiles,
		store:          store,
		defaultProfile: defaultProfile,
		logger:         logger,
		now:            time.Now,
	}
}

// StartRound snapshots the chosen tee and profile into a new active round.
// A missing profile leaves the summary empty rather than failing.
func (s *RoundService) StartRound(ctx context.Context, req StartRoundRequest) (*preferences.ActiveRound, error) {
	if req.TeeIndex < 0 || req.TeeIndex >= len(s.course.Tees) {
		return nil, fmt.Errorf("tee index %d out of range [0,%d)", req.TeeIndex, len(s.course.Tees))
	}
	if req.GoalScore < 0 {
		return nil, fmt.Errorf("goal score must not be negative")
	}
	tee := s.course.Tees[req.TeeIndex]

	round := &preferences.ActiveRound{
		ID:         uuid.New().String(),
		StartedAt:  s.now().UTC(),
		Course:     s.course.Name,
		Tee:        tee.Name,
		Holes:      preferences.RoundHoles(append([]course.TeeHole(nil), tee.Holes...)),
		GoalScore:  req.GoalScore,
		PlanFirst3: req.PlanFirst3,
	}

	profileID := req.ProfileID
	if profileID == "" {
		profileID = s.defaultProfile
	}
	if bag, err := s.profiles.Load(ctx, profileID); err == nil {
		round.ProfileOwner = bag.Owner
		round.ProfileClubs = len(bag.Clubs)
	} else {
		s.logger.WithError(err).WithField("profile", profileID).Warn("Starting round without profile summary")
	}

	if err := s.store.SaveRound(ctx, round); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"round_id": round.ID,
		"tee":      round.Tee,
		"goal":     round.GoalScore,
	}).Info("Round started")
	return round, nil
}

// ActiveRound returns the round in progress or preferences.ErrNoActiveRound.
func (s *RoundService) ActiveRound(ctx context.Context) (*preferences.ActiveRound, error) {
	return s.store.ActiveRound(ctx)
}
