package service

import (
	"context"
	"fmt"
	"time"

	"scoutscore_backend/internal/events"
	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/ports"
	"scoutscore_backend/platform/apperr"
	"scoutscore_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	// leaseTTL bounds how long a recompute may hold the per-prospect
	// lease before it is presumed dead.
	leaseTTL = 30 * time.Second
	// cacheTTL keeps fused scores hot between recomputes.
	cacheTTL = 15 * time.Minute
)

// Service owns score computation for the API and the worker: it
// serializes recomputes per prospect, persists history, caches the
// fused result, and publishes score events.
type Service struct {
	log   *logger.Logger
	orch  *Orchestrator
	store ports.Store
	lease ports.Leaser
	cache ports.Cache
	bus   events.Bus
}

// NewService wires the scoring service. lease and cache may be nil in
// tests; a nil lease means recomputes are not serialized.
func NewService(log *logger.Logger, orch *Orchestrator, store ports.Store, lease ports.Leaser, cache ports.Cache, bus events.Bus) *Service {
	return &Service{log: log, orch: orch, store: store, lease: lease, cache: cache, bus: bus}
}

// ErrRecomputeInProgress is returned when another recompute holds the
// prospect's lease.
var ErrRecomputeInProgress = fmt.Errorf("a recompute for this prospect is already running")

// Compute runs a scoring pass without touching the lease, cache, or
// score history. Used for ad-hoc what-if requests.
func (s *Service) Compute(ctx context.Context, req ScoreRequest) (domain.FinalScore, error) {
	return s.orch.Score(ctx, req)
}

// Recompute runs a full scoring pass under the prospect's lease,
// persists the result, refreshes the cache, and publishes
// ProspectScored. Concurrent recomputes for the same prospect are
// rejected, not queued.
func (s *Service) Recompute(ctx context.Context, req ScoreRequest) (domain.FinalScore, error) {
	log := s.log.WithContext(ctx)
	prospectID := req.Input.ProspectID

	if s.lease != nil {
		key := leaseKey(prospectID)
		acquired, err := s.lease.Acquire(ctx, key, leaseTTL)
		if err != nil {
			// A broken lease backend degrades to unserialized recompute
			// rather than blocking scoring entirely.
			log.Warn("score_lease_unavailable", "prospect_id", prospectID.String(), "error", err.Error())
		} else if !acquired {
			return domain.FinalScore{}, ErrRecomputeInProgress
		} else {
			defer func() {
				if err := s.lease.Release(context.WithoutCancel(ctx), key); err != nil {
					log.Warn("score_lease_release_failed", "prospect_id", prospectID.String(), "error", err.Error())
				}
			}()
		}
	}

	result, err := s.orch.Score(ctx, req)
	if err != nil {
		return domain.FinalScore{}, err
	}

	if result.Success {
		rec := ports.ScoreRecord{
			ProspectID: prospectID,
			UserID:     req.Input.UserID,
			Version:    int(req.Version),
			Result:     result,
			ComputedAt: req.Input.At(),
		}
		if err := s.store.SaveScore(ctx, rec); err != nil {
			log.Error("score_history_save_failed", "prospect_id", prospectID.String(), "error", err.Error())
			return domain.FinalScore{}, err
		}

		if s.cache != nil {
			if err := s.cache.SetScore(ctx, prospectID, req.Input.UserID, result, cacheTTL); err != nil {
				log.Warn("score_cache_write_failed", "prospect_id", prospectID.String(), "error", err.Error())
			}
		}

		s.publishScored(ctx, req, result)
	}

	return result, nil
}

// CachedScore returns the latest fused score from the cache, if any.
// Entries are scoped to the owning user, so another user's cached run
// for the same prospect ID reads as a miss.
func (s *Service) CachedScore(ctx context.Context, prospectID, userID uuid.UUID) (domain.FinalScore, bool) {
	if s.cache == nil {
		return domain.FinalScore{}, false
	}
	score, ok, err := s.cache.GetScore(ctx, prospectID, userID)
	if err != nil {
		s.log.WithContext(ctx).Warn("score_cache_read_failed", "prospect_id", prospectID.String(), "error", err.Error())
		return domain.FinalScore{}, false
	}
	return score, ok
}

// AdjustWeights nudges the user's v2 feature weights after an outcome:
// features that were strong when the outcome landed move toward (or
// away from) the outcome's direction, then the vector is renormalized
// and persisted. Unknown outcomes are a no-op.
func (s *Service) AdjustWeights(ctx context.Context, prospectID, userID uuid.UUID, outcome domain.Outcome) error {
	snap, err := s.store.Snapshot(ctx, prospectID, userID)
	if err != nil {
		return err
	}

	current := snap.Weights
	if current.Sum() <= 0 {
		current = s.orch.engine.Tables().DefaultFeatures
	}

	values := engine.ExtractFeatures(snap.Stats)
	next := engine.AdjustWeightsFromOutcome(current.Normalize(), values, outcome)
	if next == current.Normalize() {
		return nil
	}

	if err := s.store.SaveFeatureWeights(ctx, userID, next); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("score_weights_adjusted",
		"user_id", userID.String(),
		"prospect_id", prospectID.String(),
		"outcome", string(outcome))
	return nil
}

// LatestScore returns the most recent persisted run's fused result.
func (s *Service) LatestScore(ctx context.Context, prospectID, userID uuid.UUID) (domain.FinalScore, error) {
	records, err := s.store.ScoreHistory(ctx, prospectID, userID, 1)
	if err != nil {
		return domain.FinalScore{}, err
	}
	if len(records) == 0 {
		return domain.FinalScore{}, apperr.NotFound("prospect has not been scored yet")
	}
	return records[0].Result, nil
}

// History lists past scoring runs, newest first.
func (s *Service) History(ctx context.Context, prospectID, userID uuid.UUID, limit int) ([]ports.ScoreRecord, error) {
	return s.store.ScoreHistory(ctx, prospectID, userID, limit)
}

func (s *Service) publishScored(ctx context.Context, req ScoreRequest, result domain.FinalScore) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ProspectScored{
		BaseEvent:       events.NewBaseEvent(),
		ProspectID:      req.Input.ProspectID,
		UserID:          req.Input.UserID,
		Version:         int(req.Version),
		Score:           result.FinalScore,
		LeadTemperature: string(result.FinalLeadTemperature),
	})
}

func leaseKey(prospectID uuid.UUID) string {
	return "scoring:recompute:" + prospectID.String()
}
