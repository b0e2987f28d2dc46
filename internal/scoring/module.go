// Package scoring wires the scoring bounded context: table loading,
// service construction, route registration, and the event
// subscriptions that trigger background rescoring.
package scoring

import (
	"context"

	"scoutscore_backend/internal/events"
	apphttp "scoutscore_backend/internal/http"
	"scoutscore_backend/internal/scheduler"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/handler"
	"scoutscore_backend/internal/scoring/lease"
	"scoutscore_backend/internal/scoring/patterns"
	"scoutscore_backend/internal/scoring/ports"
	"scoutscore_backend/internal/scoring/repository"
	"scoutscore_backend/internal/scoring/service"
	"scoutscore_backend/internal/scoring/tables"
	"scoutscore_backend/platform/config"
	"scoutscore_backend/platform/logger"
	"scoutscore_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the scoring bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	tables  *tables.Tables
}

// NewModule creates and initializes the scoring module with all its
// dependencies. redisClient and enqueuer may be nil; the module then
// runs without lease/cache and without background rescoring.
func NewModule(
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	enqueuer scheduler.RescoreEnqueuer,
	eventBus events.Bus,
	val *validator.Validator,
	cfg config.ScoringConfig,
	log *logger.Logger,
) (*Module, error) {
	tbl, err := tables.Load(cfg.GetScoringConfigDir())
	if err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	eng := engine.New(tbl)
	matcher := patterns.New(tbl, repo)
	orch := service.NewOrchestrator(log, repo, eng, matcher)

	var (
		leaser ports.Leaser
		cache  ports.Cache
	)
	if redisClient != nil {
		leaser = lease.NewRedisLeaser(redisClient)
		cache = lease.NewRedisCache(redisClient)
	}

	svc := service.NewService(log, orch, repo, leaser, cache, eventBus)

	subscribeRescoreTriggers(eventBus, enqueuer, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		tables:  tbl,
	}, nil
}

// subscribeRescoreTriggers schedules background work off the domain
// event stream: new signals debounce into a rescore, outcomes nudge
// the user's weights and then rescore.
func subscribeRescoreTriggers(eventBus events.Bus, enqueuer scheduler.RescoreEnqueuer, log *logger.Logger) {
	if eventBus == nil || enqueuer == nil {
		return
	}

	eventBus.Subscribe(events.SignalCaptured{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.SignalCaptured)
		if !ok {
			return nil
		}
		if err := enqueuer.EnqueueRescore(ctx, scheduler.RescoreProspectPayload{
			ProspectID: e.ProspectID.String(),
			UserID:     e.UserID.String(),
			Reason:     "signal_captured",
		}); err != nil {
			log.Error("rescore enqueue failed", "error", err, "prospectId", e.ProspectID)
		}
		return nil
	}))

	eventBus.Subscribe(events.OutcomeRecorded{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.OutcomeRecorded)
		if !ok {
			return nil
		}
		if err := enqueuer.EnqueueAdjustWeights(ctx, scheduler.AdjustWeightsPayload{
			ProspectID: e.ProspectID.String(),
			UserID:     e.UserID.String(),
			Outcome:    e.Outcome,
		}); err != nil {
			log.Error("weight adjustment enqueue failed", "error", err, "prospectId", e.ProspectID)
		}
		if err := enqueuer.EnqueueRescore(ctx, scheduler.RescoreProspectPayload{
			ProspectID: e.ProspectID.String(),
			UserID:     e.UserID.String(),
			Reason:     "outcome_recorded",
		}); err != nil {
			log.Error("rescore enqueue failed", "error", err, "prospectId", e.ProspectID)
		}
		return nil
	}))
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scoring"
}

// Service returns the scoring service for external use (the worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts scoring routes on the provided router context.
// Score endpoints hang off the prospects resource.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/prospects")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
