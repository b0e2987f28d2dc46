// Package repository is the pgx-backed persistence layer of the
// scoring context. It assembles scoring snapshots from the prospect
// tables and owns the score history and per-user weight vectors.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/patterns"
	"scoutscore_backend/internal/scoring/ports"
	"scoutscore_backend/internal/scoring/socialgraph"
	"scoutscore_backend/internal/scoring/tables"
	"scoutscore_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// snapshotMessageLimit caps how many recent messages feed the text
	// scorers.
	snapshotMessageLimit = 20
	// snapshotClickWindowDays bounds the click history pulled for v3.
	snapshotClickWindowDays = 90
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Snapshot assembles the full scoring input for a prospect.
func (r *Repository) Snapshot(ctx context.Context, prospectID, userID uuid.UUID) (engine.Snapshot, error) {
	var (
		snap              engine.Snapshot
		industry          *string
		textContent       *string
		lastCTAType       *string
		lastInteractionAt *time.Time
		trendSlope        *float64
	)

	err := r.pool.QueryRow(ctx, `
		SELECT name, industry, text_content, last_cta_type,
			engagement_events, business_interest_hits, pain_point_hits,
			life_event_hits, leadership_signals, relationship_depth,
			reply_rate, median_reply_minutes, emotional_trend_slope,
			last_interaction_at
		FROM prospects
		WHERE id = $1 AND user_id = $2
	`, prospectID, userID).Scan(
		&snap.ProspectName,
		&industry,
		&textContent,
		&lastCTAType,
		&snap.Stats.EngagementEvents,
		&snap.Stats.BusinessInterestHits,
		&snap.Stats.PainPointHits,
		&snap.Stats.LifeEventHits,
		&snap.Stats.LeadershipSignals,
		&snap.Stats.RelationshipDepth,
		&snap.Stats.ReplyRate,
		&snap.Stats.MedianReplyMinutes,
		&trendSlope,
		&lastInteractionAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.Snapshot{}, apperr.NotFound("prospect not found")
	}
	if err != nil {
		return engine.Snapshot{}, err
	}

	snap.Input.ProspectID = prospectID
	snap.Input.UserID = userID
	if industry != nil {
		ind, _ := domain.ParseIndustry(*industry)
		snap.Input.Industry = ind
	}
	if textContent != nil {
		snap.Input.TextContent = *textContent
	}
	if lastCTAType != nil {
		snap.Input.LastCTAType = *lastCTAType
	}
	if trendSlope != nil {
		snap.Stats.EmotionalTrendSlope = *trendSlope
	}
	if lastInteractionAt != nil {
		days := int(time.Since(*lastInteractionAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		snap.Stats.LastInteractionDaysAgo = days
	} else {
		snap.Stats.LastInteractionDaysAgo = 999
	}

	messages, err := r.recentMessages(ctx, prospectID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Input.LastMessages = messages

	clicks, err := r.recentClicks(ctx, prospectID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Stats.Clicks = clicks

	weights, err := r.featureWeights(ctx, userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Weights = weights

	return snap, nil
}

func (r *Repository) recentMessages(ctx context.Context, prospectID uuid.UUID) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sender, body, sent_at
		FROM prospect_messages
		WHERE prospect_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`, prospectID, snapshotMessageLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, snapshotMessageLimit)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Sender, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	// Oldest first, the order the analyzers expect.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *Repository) recentClicks(ctx context.Context, prospectID uuid.UUID) ([]engine.ClickEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT type, occurred_at
		FROM prospect_clicks
		WHERE prospect_id = $1 AND occurred_at > now() - make_interval(days => $2)
		ORDER BY occurred_at ASC
	`, prospectID, snapshotClickWindowDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := make([]engine.ClickEvent, 0)
	for rows.Next() {
		var c engine.ClickEvent
		if err := rows.Scan(&c.Type, &c.Timestamp); err != nil {
			return nil, err
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (r *Repository) featureWeights(ctx context.Context, userID uuid.UUID) (tables.FeatureWeights, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT weights FROM user_feature_weights WHERE user_id = $1
	`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return tables.FeatureWeights{}, nil
	}
	if err != nil {
		return tables.FeatureWeights{}, err
	}

	var weights tables.FeatureWeights
	if err := json.Unmarshal(raw, &weights); err != nil {
		// A corrupt vector falls back to the defaults rather than
		// blocking scoring.
		return tables.FeatureWeights{}, nil
	}
	return weights, nil
}

// SaveFeatureWeights upserts the user's v2 weight vector.
func (r *Repository) SaveFeatureWeights(ctx context.Context, userID uuid.UUID, weights tables.FeatureWeights) error {
	raw, err := json.Marshal(weights)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO user_feature_weights (user_id, weights, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET weights = EXCLUDED.weights, updated_at = now()
	`, userID, raw)
	return err
}

// TimelineEvents returns the prospect's behavioral events, oldest first.
func (r *Repository) TimelineEvents(ctx context.Context, prospectID uuid.UUID) ([]domain.TimelineEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT occurred_at, source, type, sentiment, opportunity_signal, pain_point_signal, keywords
		FROM prospect_timeline_events
		WHERE prospect_id = $1
		ORDER BY occurred_at ASC
	`, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.TimelineEvent, 0)
	for rows.Next() {
		var (
			ev       domain.TimelineEvent
			keywords []byte
		)
		if err := rows.Scan(&ev.Timestamp, &ev.Source, &ev.Type, &ev.Sentiment, &ev.OpportunitySignal, &ev.PainPointSignal, &keywords); err != nil {
			return nil, err
		}
		if len(keywords) > 0 {
			_ = json.Unmarshal(keywords, &ev.Keywords)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Graph loads the user's stored social graph.
func (r *Repository) Graph(ctx context.Context, userID uuid.UUID) (socialgraph.Graph, error) {
	g := socialgraph.Graph{Nodes: make(map[string]*socialgraph.Node)}

	rows, err := r.pool.Query(ctx, `
		SELECT node_id, name, interaction_count, opportunity_signals
		FROM graph_nodes
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return socialgraph.Graph{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var n socialgraph.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.InteractionCount, &n.OpportunitySignals); err != nil {
			return socialgraph.Graph{}, err
		}
		n.ClusterID = -1
		g.Nodes[n.ID] = &n
	}
	if rows.Err() != nil {
		return socialgraph.Graph{}, rows.Err()
	}

	edgeRows, err := r.pool.Query(ctx, `
		SELECT from_id, to_id, weight, type, recency_score
		FROM graph_edges
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return socialgraph.Graph{}, err
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e socialgraph.Edge
		if err := edgeRows.Scan(&e.From, &e.To, &e.Weight, &e.Type, &e.RecencyScore); err != nil {
			return socialgraph.Graph{}, err
		}
		g.Edges = append(g.Edges, e)
	}
	return g, edgeRows.Err()
}

// SaveScore appends a history row and refreshes the prospect's current
// score columns in one transaction.
func (r *Repository) SaveScore(ctx context.Context, rec ports.ScoreRecord) error {
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO score_history (prospect_id, user_id, version, score, lead_temperature, result, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ProspectID, rec.UserID, rec.Version, rec.Result.FinalScore, string(rec.Result.FinalLeadTemperature), result, rec.ComputedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE prospects
		SET current_score = $3, current_temperature = $4, scored_at = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, rec.ProspectID, rec.UserID, rec.Result.FinalScore, string(rec.Result.FinalLeadTemperature), rec.ComputedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ScoreHistory lists past runs, newest first.
func (r *Repository) ScoreHistory(ctx context.Context, prospectID, userID uuid.UUID, limit int) ([]ports.ScoreRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT prospect_id, user_id, version, result, computed_at
		FROM score_history
		WHERE prospect_id = $1 AND user_id = $2
		ORDER BY computed_at DESC
		LIMIT $3
	`, prospectID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]ports.ScoreRecord, 0, limit)
	for rows.Next() {
		var (
			rec ports.ScoreRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ProspectID, &rec.UserID, &rec.Version, &raw, &rec.ComputedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &rec.Result); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListClosedWon returns the user's closed-won prospects for pattern
// mining.
func (r *Repository) ListClosedWon(ctx context.Context, userID uuid.UUID) ([]patterns.WonProspect, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(persona, ''), COALESCE(industry, ''), COALESCE(steps_taken, '[]'::jsonb),
			COALESCE(days_to_close, 0), closed_at
		FROM prospects
		WHERE user_id = $1 AND outcome = 'won' AND closed_at IS NOT NULL
		ORDER BY closed_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	won := make([]patterns.WonProspect, 0)
	for rows.Next() {
		var (
			w        patterns.WonProspect
			industry string
			steps    []byte
			closedAt *time.Time
		)
		if err := rows.Scan(&w.Persona, &industry, &steps, &w.DaysToClose, &closedAt); err != nil {
			return nil, err
		}
		if industry != "" {
			ind, _ := domain.ParseIndustry(industry)
			w.Industry = ind
		}
		_ = json.Unmarshal(steps, &w.StepsTaken)
		if closedAt != nil {
			w.ClosedAt = *closedAt
		}
		won = append(won, w)
	}
	return won, rows.Err()
}

// Compile-time interface checks.
var (
	_ ports.Store    = (*Repository)(nil)
	_ patterns.Store = (*Repository)(nil)
)
