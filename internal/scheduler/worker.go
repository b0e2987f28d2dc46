package scheduler

import (
	"context"
	"errors"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/service"
	"scoutscore_backend/platform/config"
	"scoutscore_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// WorkerConfig combines the config interfaces the worker needs.
type WorkerConfig interface {
	config.RedisConfig
	config.WorkerConfig
}

// ScoringService is the slice of the scoring service the worker drives.
type ScoringService interface {
	Recompute(ctx context.Context, req service.ScoreRequest) (domain.FinalScore, error)
	AdjustWeights(ctx context.Context, prospectID, userID uuid.UUID, outcome domain.Outcome) error
}

var _ ScoringService = (*service.Service)(nil)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	scoring ScoringService
	log     *logger.Logger
}

func NewWorker(cfg WorkerConfig, scoringSvc ScoringService, log *logger.Logger) *Worker {
	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(redisClientOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		scoring: scoringSvc,
		log:     log,
	}

	mux.HandleFunc(TaskRescoreProspect, w.handleRescoreProspect)
	mux.HandleFunc(TaskAdjustWeights, w.handleAdjustWeights)

	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleRescoreProspect recomputes the composite score with all
// overlays enabled. A recompute already holding the lease means the
// work is being done; the task is dropped, not retried.
func (w *Worker) handleRescoreProspect(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRescoreProspectPayload(task)
	if err != nil {
		return err
	}

	prospectID, err := uuid.Parse(payload.ProspectID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}

	version := engine.Version(payload.Version)
	if !version.Valid() {
		version = engine.V5
	}

	result, err := w.scoring.Recompute(ctx, service.ScoreRequest{
		Input: domain.ScoreInput{
			ProspectID: prospectID,
			UserID:     userID,
		},
		Version:          version,
		EnablePersonaFit: true,
		EnableCTAFit:     true,
		EnableEmotional:  true,
	})
	if errors.Is(err, service.ErrRecomputeInProgress) {
		w.log.Info("rescore_skipped_lease_held", "prospect_id", payload.ProspectID)
		return nil
	}
	if err != nil {
		return err
	}

	w.log.Info("rescore_completed",
		"prospect_id", payload.ProspectID,
		"reason", payload.Reason,
		"score", result.FinalScore,
		"success", result.Success)
	return nil
}

func (w *Worker) handleAdjustWeights(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAdjustWeightsPayload(task)
	if err != nil {
		return err
	}

	prospectID, err := uuid.Parse(payload.ProspectID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}

	return w.scoring.AdjustWeights(ctx, prospectID, userID, domain.Outcome(payload.Outcome))
}
