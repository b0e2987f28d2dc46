// Package ports defines the interfaces the scoring domain requires
// from external systems: persistence, the recompute lease, and the
// score cache. Implementations live in the repository and lease
// packages; the orchestrator and service depend only on these
// interfaces.
package ports

import (
	"context"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/socialgraph"
	"scoutscore_backend/internal/scoring/tables"

	"github.com/google/uuid"
)

// Store is the persistence port the orchestrator reads from and the
// service writes score history to.
type Store interface {
	// Snapshot assembles the scoring input for a prospect: request
	// fields, stored aggregates, click history, and the owning user's
	// persisted feature weights. Returns apperr.KindNotFound when the
	// prospect does not exist or belongs to another user.
	Snapshot(ctx context.Context, prospectID, userID uuid.UUID) (engine.Snapshot, error)

	// TimelineEvents returns the prospect's behavioral event stream,
	// oldest first.
	TimelineEvents(ctx context.Context, prospectID uuid.UUID) ([]domain.TimelineEvent, error)

	// Graph returns the user's stored social graph.
	Graph(ctx context.Context, userID uuid.UUID) (socialgraph.Graph, error)

	// SaveScore appends a score history row and updates the prospect's
	// current score columns.
	SaveScore(ctx context.Context, rec ScoreRecord) error

	// ScoreHistory lists a prospect's past scoring runs, newest first.
	ScoreHistory(ctx context.Context, prospectID, userID uuid.UUID, limit int) ([]ScoreRecord, error)

	// SaveFeatureWeights persists the user's nudged v2 weight vector.
	SaveFeatureWeights(ctx context.Context, userID uuid.UUID, weights tables.FeatureWeights) error
}

// Leaser serializes recomputation per prospect. Acquire returns false
// when another recompute currently holds the lease.
type Leaser interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Cache stores the latest fused result per prospect for cheap reads.
// Entries are keyed by owning user as well as prospect, so one user's
// cached score is never visible to another.
type Cache interface {
	GetScore(ctx context.Context, prospectID, userID uuid.UUID) (domain.FinalScore, bool, error)
	SetScore(ctx context.Context, prospectID, userID uuid.UUID, score domain.FinalScore, ttl time.Duration) error
}

// ScoreRecord is one persisted scoring run.
type ScoreRecord struct {
	ProspectID uuid.UUID
	UserID     uuid.UUID
	Version    int
	Result     domain.FinalScore
	ComputedAt time.Time
}
