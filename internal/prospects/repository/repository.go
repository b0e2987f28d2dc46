// Package repository is the pgx-backed persistence layer of the
// prospects context. It owns the prospect rows, their signal streams
// (messages, clicks, timeline events), and the per-user social graph
// tables the scoring side reads.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"scoutscore_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Prospect is the persistence model for one prospect row.
type Prospect struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	Phone              string
	Email              string
	Industry           string
	Persona            string
	Source             string
	TextContent        string
	LastCTAType        string
	CurrentScore       *int
	CurrentTemperature *string
	ScoredAt           *time.Time
	Outcome            *string
	ClosedAt           *time.Time
	LastInteractionAt  *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProspectUpdate is a partial update; nil fields are left unchanged.
type ProspectUpdate struct {
	Name        *string
	Phone       *string
	Email       *string
	Industry    *string
	Persona     *string
	TextContent *string
	LastCTAType *string
}

// StatsUpdate overwrites behavioral aggregates; nil fields are left
// unchanged.
type StatsUpdate struct {
	EngagementEvents     *int
	BusinessInterestHits *int
	PainPointHits        *int
	LifeEventHits        *int
	LeadershipSignals    *int
	RelationshipDepth    *int
	ReplyRate            *float64
	MedianReplyMinutes   *float64
	EmotionalTrendSlope  *float64
}

// ListFilter narrows List results.
type ListFilter struct {
	Industry    string
	Temperature string
	Limit       int
	Offset      int
}

const prospectColumns = `
	id, user_id, name, phone, email, industry, persona, source,
	text_content, last_cta_type, current_score, current_temperature,
	scored_at, outcome, closed_at, last_interaction_at, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, p Prospect) (Prospect, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO prospects (
			id, user_id, name, phone, email, industry, persona, source,
			text_content, last_cta_type, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $11)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Name, p.Phone, p.Email, p.Industry, p.Persona,
		p.Source, p.TextContent, p.LastCTAType, p.CreatedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Prospect{}, err
	}
	return p, nil
}

func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+prospectColumns+`
		FROM prospects
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanProspect(row)
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]Prospect, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM prospects
		WHERE user_id = $1
			AND ($2 = '' OR industry = $2)
			AND ($3 = '' OR current_temperature = $3)
	`, userID, filter.Industry, filter.Temperature).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+prospectColumns+`
		FROM prospects
		WHERE user_id = $1
			AND ($2 = '' OR industry = $2)
			AND ($3 = '' OR current_temperature = $3)
		ORDER BY COALESCE(current_score, -1) DESC, created_at DESC
		LIMIT $4 OFFSET $5
	`, userID, filter.Industry, filter.Temperature, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	prospects := make([]Prospect, 0, filter.Limit)
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, 0, err
		}
		prospects = append(prospects, p)
	}
	return prospects, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID uuid.UUID, upd ProspectUpdate) (Prospect, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prospects SET
			name = COALESCE($3, name),
			phone = COALESCE($4, phone),
			email = COALESCE($5, email),
			industry = COALESCE(NULLIF($6, ''), industry),
			persona = COALESCE($7, persona),
			text_content = COALESCE($8, text_content),
			last_cta_type = COALESCE($9, last_cta_type),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+prospectColumns+`
	`, id, userID, upd.Name, upd.Phone, upd.Email, upd.Industry,
		upd.Persona, upd.TextContent, upd.LastCTAType)
	return scanProspect(row)
}

func (r *Repository) UpdateStats(ctx context.Context, id, userID uuid.UUID, upd StatsUpdate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects SET
			engagement_events = COALESCE($3, engagement_events),
			business_interest_hits = COALESCE($4, business_interest_hits),
			pain_point_hits = COALESCE($5, pain_point_hits),
			life_event_hits = COALESCE($6, life_event_hits),
			leadership_signals = COALESCE($7, leadership_signals),
			relationship_depth = COALESCE($8, relationship_depth),
			reply_rate = COALESCE($9, reply_rate),
			median_reply_minutes = COALESCE($10, median_reply_minutes),
			emotional_trend_slope = COALESCE($11, emotional_trend_slope),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, id, userID, upd.EngagementEvents, upd.BusinessInterestHits,
		upd.PainPointHits, upd.LifeEventHits, upd.LeadershipSignals,
		upd.RelationshipDepth, upd.ReplyRate, upd.MedianReplyMinutes,
		upd.EmotionalTrendSlope)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM prospects WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}
	return nil
}

// InsertMessage appends a message and, for prospect-sent messages,
// advances the interaction clock and engagement counter.
func (r *Repository) InsertMessage(ctx context.Context, prospectID, userID uuid.UUID, sender, body string, sentAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO prospect_messages (prospect_id, sender, body, sent_at)
		SELECT $1, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM prospects WHERE id = $1 AND user_id = $2)
	`, prospectID, userID, sender, body, sentAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}

	if sender == "user" {
		_, err = tx.Exec(ctx, `
			UPDATE prospects
			SET engagement_events = engagement_events + 1,
				last_interaction_at = GREATEST(COALESCE(last_interaction_at, $3), $3),
				updated_at = now()
			WHERE id = $1 AND user_id = $2
		`, prospectID, userID, sentAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// InsertClick records a link interaction and advances the interaction
// clock.
func (r *Repository) InsertClick(ctx context.Context, prospectID, userID uuid.UUID, clickType string, occurredAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO prospect_clicks (prospect_id, type, occurred_at)
		SELECT $1, $3, $4
		WHERE EXISTS (SELECT 1 FROM prospects WHERE id = $1 AND user_id = $2)
	`, prospectID, userID, clickType, occurredAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}

	_, err = tx.Exec(ctx, `
		UPDATE prospects
		SET engagement_events = engagement_events + 1,
			last_interaction_at = GREATEST(COALESCE(last_interaction_at, $3), $3),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, prospectID, userID, occurredAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// InsertTimelineEvent appends one behavioral event.
func (r *Repository) InsertTimelineEvent(ctx context.Context, prospectID, userID uuid.UUID, ev TimelineEventRow) error {
	keywords, err := json.Marshal(ev.Keywords)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO prospect_timeline_events
			(prospect_id, occurred_at, source, type, sentiment, opportunity_signal, pain_point_signal, keywords)
		SELECT $1, $3, $4, $5, $6, $7, $8, $9
		WHERE EXISTS (SELECT 1 FROM prospects WHERE id = $1 AND user_id = $2)
	`, prospectID, userID, ev.OccurredAt, ev.Source, ev.Type, ev.Sentiment,
		ev.OpportunitySignal, ev.PainPointSignal, keywords)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}
	return nil
}

// TimelineEventRow is one behavioral event to persist.
type TimelineEventRow struct {
	OccurredAt        time.Time
	Source            string
	Type              string
	Sentiment         float64
	OpportunitySignal bool
	PainPointSignal   bool
	Keywords          []string
}

// GraphCaptureRow is one captured interaction pair to persist.
type GraphCaptureRow struct {
	PersonKey         string
	PersonName        string
	ConnectionID      string
	ConnectionName    string
	InteractionType   string
	InteractionCount  int
	OpportunitySignal bool
	RecencyScore      float64
}

// UpsertGraphCaptures merges captures into the user's stored graph:
// nodes accumulate interaction counts and opportunity signals, each
// capture adds one edge.
func (r *Repository) UpsertGraphCaptures(ctx context.Context, userID uuid.UUID, captures []GraphCaptureRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range captures {
		count := c.InteractionCount
		if count < 1 {
			count = 1
		}
		oppInc := 0
		if c.OpportunitySignal {
			oppInc = 1
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO graph_nodes (user_id, node_id, name, interaction_count, opportunity_signals)
			VALUES ($1, $2, $3, $4, 0)
			ON CONFLICT (user_id, node_id) DO UPDATE
			SET interaction_count = graph_nodes.interaction_count + EXCLUDED.interaction_count
		`, userID, c.PersonKey, c.PersonName, count)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO graph_nodes (user_id, node_id, name, interaction_count, opportunity_signals)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, node_id) DO UPDATE
			SET interaction_count = graph_nodes.interaction_count + EXCLUDED.interaction_count,
				opportunity_signals = graph_nodes.opportunity_signals + EXCLUDED.opportunity_signals
		`, userID, c.ConnectionID, c.ConnectionName, count, oppInc)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO graph_edges (user_id, from_id, to_id, weight, type, recency_score)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, c.PersonKey, c.ConnectionID, count, c.InteractionType, c.RecencyScore)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RecordOutcome closes a prospect. Won and lost outcomes set the close
// timestamp and the days-to-close span used by pattern mining.
func (r *Repository) RecordOutcome(ctx context.Context, prospectID, userID uuid.UUID, outcome string, stepsTaken []string, at time.Time) error {
	steps, err := json.Marshal(stepsTaken)
	if err != nil {
		return err
	}

	closes := outcome == "won" || outcome == "lost"
	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects SET
			outcome = $3,
			steps_taken = CASE WHEN $4::jsonb <> '[]'::jsonb THEN $4::jsonb ELSE steps_taken END,
			closed_at = CASE WHEN $5 THEN $6 ELSE closed_at END,
			days_to_close = CASE WHEN $5 THEN GREATEST(0, EXTRACT(day FROM $6 - created_at))::int ELSE days_to_close END,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, prospectID, userID, outcome, steps, closes, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("prospect not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (Prospect, error) {
	var (
		p        Prospect
		phone    *string
		email    *string
		industry *string
		persona  *string
		source   *string
		text     *string
		cta      *string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &phone, &email, &industry, &persona,
		&source, &text, &cta, &p.CurrentScore, &p.CurrentTemperature,
		&p.ScoredAt, &p.Outcome, &p.ClosedAt, &p.LastInteractionAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, apperr.NotFound("prospect not found")
	}
	if err != nil {
		return Prospect{}, err
	}
	p.Phone = deref(phone)
	p.Email = deref(email)
	p.Industry = deref(industry)
	p.Persona = deref(persona)
	p.Source = deref(source)
	p.TextContent = deref(text)
	p.LastCTAType = deref(cta)
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
