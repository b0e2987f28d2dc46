// Package service holds the prospects business logic: capture,
// enrichment of signal streams, and outcome recording. Every signal
// write publishes an event the scoring side turns into a rescore.
package service

import (
	"context"
	"strings"
	"time"

	"scoutscore_backend/internal/events"
	"scoutscore_backend/internal/prospects/repository"
	"scoutscore_backend/internal/prospects/transport"
	"scoutscore_backend/platform/phone"
	"scoutscore_backend/platform/sanitize"

	"github.com/google/uuid"
)

// edgeRecencyWindowDays mirrors the graph analyzer's linear recency
// decay so stored edges carry the score they had at capture time.
const edgeRecencyWindowDays = 60.0

// Service provides business logic for prospects.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
}

// New creates a new prospects service.
func New(repo *repository.Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateProspectRequest) (transport.ProspectResponse, error) {
	now := time.Now().UTC()
	prospect := repository.Prospect{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        sanitize.Text(req.Name),
		Phone:       phone.NormalizeE164(req.Phone),
		Email:       normalizeEmail(req.Email),
		Industry:    strings.TrimSpace(req.Industry),
		Persona:     sanitize.Text(req.Persona),
		Source:      sanitize.Text(req.Source),
		TextContent: sanitize.Text(req.TextContent),
		LastCTAType: strings.TrimSpace(req.LastCTAType),
		CreatedAt:   now,
	}

	created, err := s.repo.Create(ctx, prospect)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.ProspectCreated{
			BaseEvent:  events.NewBaseEvent(),
			ProspectID: created.ID,
			UserID:     userID,
			Industry:   created.Industry,
			Source:     created.Source,
		})
	}

	return mapProspectResponse(created), nil
}

func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (transport.ProspectResponse, error) {
	prospect, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return transport.ProspectResponse{}, err
	}
	return mapProspectResponse(prospect), nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, req transport.ListProspectsRequest) (transport.ListProspectsResponse, error) {
	filter := repository.ListFilter{
		Industry:    req.Industry,
		Temperature: req.Temperature,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	prospects, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return transport.ListProspectsResponse{}, err
	}

	resp := transport.ListProspectsResponse{
		Prospects: make([]transport.ProspectResponse, len(prospects)),
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}
	for i, p := range prospects {
		resp.Prospects[i] = mapProspectResponse(p)
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req transport.UpdateProspectRequest) (transport.ProspectResponse, error) {
	upd := repository.ProspectUpdate{
		Name:        applyOptional(req.Name, sanitize.Text),
		Phone:       applyOptional(req.Phone, phone.NormalizeE164),
		Email:       applyOptional(req.Email, normalizeEmail),
		Industry:    applyOptional(req.Industry, strings.TrimSpace),
		Persona:     applyOptional(req.Persona, sanitize.Text),
		TextContent: applyOptional(req.TextContent, sanitize.Text),
		LastCTAType: applyOptional(req.LastCTAType, strings.TrimSpace),
	}

	updated, err := s.repo.Update(ctx, id, userID, upd)
	if err != nil {
		return transport.ProspectResponse{}, err
	}
	return mapProspectResponse(updated), nil
}

func (s *Service) UpdateStats(ctx context.Context, id, userID uuid.UUID, req transport.UpdateStatsRequest) error {
	err := s.repo.UpdateStats(ctx, id, userID, repository.StatsUpdate{
		EngagementEvents:     req.EngagementEvents,
		BusinessInterestHits: req.BusinessInterestHits,
		PainPointHits:        req.PainPointHits,
		LifeEventHits:        req.LifeEventHits,
		LeadershipSignals:    req.LeadershipSignals,
		RelationshipDepth:    req.RelationshipDepth,
		ReplyRate:            req.ReplyRate,
		MedianReplyMinutes:   req.MedianReplyMinutes,
		EmotionalTrendSlope:  req.EmotionalTrendSlope,
	})
	if err != nil {
		return err
	}
	s.publishSignal(ctx, id, userID, "stats_update")
	return nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

// CaptureMessage appends one message to the prospect's history.
func (s *Service) CaptureMessage(ctx context.Context, prospectID, userID uuid.UUID, req transport.CaptureMessageRequest) error {
	sentAt := req.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}
	if err := s.repo.InsertMessage(ctx, prospectID, userID, req.Sender, sanitize.Text(req.Text), sentAt); err != nil {
		return err
	}
	// Owner-sent messages carry no prospect intent; they do not trigger
	// a rescore.
	if req.Sender == "user" {
		s.publishSignal(ctx, prospectID, userID, "message")
	}
	return nil
}

// CaptureClick records one link interaction.
func (s *Service) CaptureClick(ctx context.Context, prospectID, userID uuid.UUID, req transport.CaptureClickRequest) error {
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	if err := s.repo.InsertClick(ctx, prospectID, userID, strings.TrimSpace(req.Type), occurredAt); err != nil {
		return err
	}
	s.publishSignal(ctx, prospectID, userID, "click")
	return nil
}

// CaptureTimelineEvent records one behavioral event.
func (s *Service) CaptureTimelineEvent(ctx context.Context, prospectID, userID uuid.UUID, req transport.CaptureTimelineEventRequest) error {
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	err := s.repo.InsertTimelineEvent(ctx, prospectID, userID, repository.TimelineEventRow{
		OccurredAt:        occurredAt,
		Source:            strings.TrimSpace(req.Source),
		Type:              strings.TrimSpace(req.Type),
		Sentiment:         req.Sentiment,
		OpportunitySignal: req.OpportunitySignal,
		PainPointSignal:   req.PainPointSignal,
		Keywords:          req.Keywords,
	})
	if err != nil {
		return err
	}
	s.publishSignal(ctx, prospectID, userID, "timeline_event")
	return nil
}

// CaptureGraph merges observed interactions into the user's stored
// social graph. Captures without a connection ID are rejected at the
// transport layer; the graph never invents connections.
func (s *Service) CaptureGraph(ctx context.Context, prospectID, userID uuid.UUID, req transport.CaptureGraphRequest) error {
	now := time.Now().UTC()
	rows := make([]repository.GraphCaptureRow, 0, len(req.Captures))
	for _, c := range req.Captures {
		personKey := nodeKey(c.PersonName)
		if personKey == "" || personKey == c.ConnectionID {
			continue
		}
		capturedAt := c.CapturedAt
		if capturedAt.IsZero() {
			capturedAt = now
		}
		rows = append(rows, repository.GraphCaptureRow{
			PersonKey:         personKey,
			PersonName:        strings.TrimSpace(c.PersonName),
			ConnectionID:      c.ConnectionID,
			ConnectionName:    strings.TrimSpace(c.ConnectionName),
			InteractionType:   strings.TrimSpace(c.InteractionType),
			InteractionCount:  c.InteractionCount,
			OpportunitySignal: c.OpportunitySignal,
			RecencyScore:      edgeRecency(capturedAt, now),
		})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.repo.UpsertGraphCaptures(ctx, userID, rows); err != nil {
		return err
	}
	s.publishSignal(ctx, prospectID, userID, "graph_capture")
	return nil
}

// RecordOutcome closes the loop on a prospect and publishes the event
// that nudges the user's scoring weights.
func (s *Service) RecordOutcome(ctx context.Context, prospectID, userID uuid.UUID, req transport.RecordOutcomeRequest) error {
	if err := s.repo.RecordOutcome(ctx, prospectID, userID, req.Outcome, req.StepsTaken, time.Now().UTC()); err != nil {
		return err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.OutcomeRecorded{
			BaseEvent:  events.NewBaseEvent(),
			ProspectID: prospectID,
			UserID:     userID,
			Outcome:    req.Outcome,
		})
	}
	return nil
}

func (s *Service) publishSignal(ctx context.Context, prospectID, userID uuid.UUID, signalType string) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.SignalCaptured{
		BaseEvent:  events.NewBaseEvent(),
		ProspectID: prospectID,
		UserID:     userID,
		SignalType: signalType,
	})
}

// nodeKey matches the graph builder's identity rule for nodes captured
// without an ID: the lowercased, whitespace-normalized name.
func nodeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func edgeRecency(capturedAt, now time.Time) float64 {
	days := now.Sub(capturedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	score := 1 - days/edgeRecencyWindowDays
	if score < 0 {
		return 0
	}
	return score
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func applyOptional(s *string, fn func(string) string) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}

func mapProspectResponse(p repository.Prospect) transport.ProspectResponse {
	resp := transport.ProspectResponse{
		ID:                p.ID,
		Name:              p.Name,
		Phone:             p.Phone,
		Email:             p.Email,
		Industry:          p.Industry,
		Persona:           p.Persona,
		Source:            p.Source,
		LastCTAType:       p.LastCTAType,
		CurrentScore:      p.CurrentScore,
		ScoredAt:          p.ScoredAt,
		ClosedAt:          p.ClosedAt,
		LastInteractionAt: p.LastInteractionAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.CurrentTemperature != nil {
		resp.CurrentTemperature = *p.CurrentTemperature
	}
	if p.Outcome != nil {
		resp.Outcome = *p.Outcome
	}
	return resp
}
