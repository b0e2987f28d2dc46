// Package service orchestrates the base scorers, the overlay scorers,
// and the supporting analyzers into a single fused prospect score, and
// owns recomputation: leasing, persistence, caching, and the score
// event stream.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"
	"scoutscore_backend/internal/scoring/overlay"
	"scoutscore_backend/internal/scoring/patterns"
	"scoutscore_backend/internal/scoring/ports"
	"scoutscore_backend/internal/scoring/predict"
	"scoutscore_backend/internal/scoring/socialgraph"
	"scoutscore_backend/internal/scoring/timeline"
	"scoutscore_backend/platform/apperr"
	"scoutscore_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// subCallTimeout bounds every store and analyzer call so one slow
// dependency cannot stall the whole scoring request.
const subCallTimeout = 5 * time.Second

// defaultHorizonDays is the predictor horizon when the caller does not
// supply one.
const defaultHorizonDays = 7

// ScoreRequest selects which base strategy runs and which overlays are
// layered on top.
type ScoreRequest struct {
	Input            domain.ScoreInput
	Version          engine.Version
	EnablePersonaFit bool
	EnableCTAFit     bool
	EnableEmotional  bool
	HorizonDays      int
	Debug            bool
}

// Orchestrator runs a full scoring pass: snapshot assembly, behavioral
// and graph analysis, the selected base scorer, the enabled overlays,
// and fusion. Every sub-engine fails soft: a missing signal degrades to
// its neutral default instead of failing the request.
type Orchestrator struct {
	log     *logger.Logger
	store   ports.Store
	engine  *engine.Engine
	matcher *patterns.Matcher
}

// NewOrchestrator wires the orchestrator. matcher may be nil, in which
// case the pattern signal stays at its neutral default.
func NewOrchestrator(log *logger.Logger, store ports.Store, eng *engine.Engine, matcher *patterns.Matcher) *Orchestrator {
	return &Orchestrator{log: log, store: store, engine: eng, matcher: matcher}
}

// Score runs the pass. A prospect that cannot be resolved at all yields
// the neutral success:false result rather than an error; the error
// return is reserved for invalid requests.
func (o *Orchestrator) Score(ctx context.Context, req ScoreRequest) (domain.FinalScore, error) {
	if !req.Version.Valid() {
		return domain.FinalScore{}, apperr.Validation(fmt.Sprintf("unknown scorer version %d", req.Version))
	}

	log := o.log.WithContext(ctx)

	snap, err := o.loadSnapshot(ctx, req)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			log.Warn("score_total_failure",
				"prospect_id", req.Input.ProspectID.String(),
				"reason", err.Error())
			return neutralResult("prospect data unavailable"), nil
		}
		return domain.FinalScore{}, err
	}

	var skips []domain.OverlaySkip
	skips = append(skips, o.enrichSnapshot(ctx, req, &snap)...)

	base, err := o.engine.Score(req.Version, snap)
	if err != nil {
		return domain.FinalScore{}, err
	}

	overlays, overlaySkips := o.runOverlays(ctx, req, snap, base)
	skips = append(skips, overlaySkips...)
	for _, skip := range skips {
		log.Warn("score_overlay_skipped",
			"prospect_id", req.Input.ProspectID.String(),
			"overlay", skip.Overlay,
			"reason", skip.Reason)
	}

	final := fuse(base, overlays, skips, req.Debug)
	log.ScoreComputed(req.Input.ProspectID.String(), int(req.Version),
		final.FinalScore, string(final.FinalLeadTemperature), final.IndustryIsolationApplied)
	return final, nil
}

// loadSnapshot pulls the stored aggregates and merges the request's
// transient fields over them. Request fields win: a live message blob
// beats a stale stored one.
func (o *Orchestrator) loadSnapshot(ctx context.Context, req ScoreRequest) (engine.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, subCallTimeout)
	defer cancel()

	snap, err := o.store.Snapshot(ctx, req.Input.ProspectID, req.Input.UserID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	stored := snap.Input
	snap.Input = req.Input
	if snap.Input.Industry == "" {
		snap.Input.Industry = stored.Industry
	}
	if snap.Input.TextContent == "" {
		snap.Input.TextContent = stored.TextContent
	}
	if len(snap.Input.LastMessages) == 0 {
		snap.Input.LastMessages = stored.LastMessages
	}
	if snap.Input.LastCTAType == "" {
		snap.Input.LastCTAType = stored.LastCTAType
	}
	return snap, nil
}

// enrichSnapshot runs the timeline and graph analyzers concurrently and
// folds their signals into the snapshot. Only the momentum-based
// strategies consume them, so the fan-out is skipped for v1-v3.
func (o *Orchestrator) enrichSnapshot(ctx context.Context, req ScoreRequest, snap *engine.Snapshot) []domain.OverlaySkip {
	if req.Version < engine.V4 {
		return nil
	}

	now := snap.Input.At()
	var (
		tl       timeline.Analysis
		tlOK     bool
		graphRes socialgraph.Analysis
		graphOK  bool
	)

	// Each fetch runs under its own deadline derived from the request
	// context. One failing or timing out leaves the other untouched, and
	// every failure records its own skip.
	skipCh := make(chan domain.OverlaySkip, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, subCallTimeout)
		defer cancel()
		events, err := o.store.TimelineEvents(cctx, req.Input.ProspectID)
		if err != nil {
			serr := domain.NewScoringError(domain.FailureDataUnavailable, "timeline", err)
			skipCh <- domain.OverlaySkip{Overlay: serr.Engine, Reason: serr.Error()}
			return
		}
		tl = timeline.Analyze(events, now)
		tlOK = true
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, subCallTimeout)
		defer cancel()
		stored, err := o.store.Graph(cctx, req.Input.UserID)
		if err != nil {
			serr := domain.NewScoringError(domain.FailureDataUnavailable, "socialgraph", err)
			skipCh <- domain.OverlaySkip{Overlay: serr.Engine, Reason: serr.Error()}
			return
		}
		built := socialgraph.Build(stored, req.Input.CaptureData, now)
		graphRes = socialgraph.Analyze(built)
		graphOK = true
	}()
	wg.Wait()
	close(skipCh)

	var skips []domain.OverlaySkip
	for skip := range skipCh {
		skips = append(skips, skip)
	}

	if tlOK {
		snap.Stats.EngagementMomentum = tl.EngagementMomentum
		snap.Stats.OpportunityMomentum = tl.OpportunityMomentum
		snap.Stats.PainIntensity = tl.PainPointIntensity
		snap.Stats.TrendDirection = tl.TrendDirection
		if tl.LastInteractionDaysAgo < 999 {
			snap.Stats.LastInteractionDaysAgo = tl.LastInteractionDaysAgo
		}
	}
	if graphOK {
		// Graph nodes are keyed by connection ID or normalized person
		// name, never by prospect UUID; the snapshot carries the name.
		if node, ok := graphRes.Graph.Nodes[socialgraph.NormalizeName(snap.ProspectName)]; ok {
			snap.Stats.GraphCentrality = node.CentralityScore
			snap.Stats.SocialInfluence = node.InfluenceScore
		}
	}

	if req.Version == engine.V5 {
		snap.V5 = o.compositeSignals(ctx, req, *snap, tl)
	}
	return skips
}

// compositeSignals fills the v5 upstream signals from the predictor and
// the pattern matcher. Either signal degrades to its neutral default.
func (o *Orchestrator) compositeSignals(ctx context.Context, req ScoreRequest, snap engine.Snapshot, tl timeline.Analysis) engine.V5Signals {
	sig := engine.V5Signals{
		BehavioralMomentum: engine.BehaviorMomentum(snap.Stats.EngagementMomentum, snap.Stats.EmotionalTrendSlope) * 100,
		SocialInfluence:    snap.Stats.SocialInfluence * 100,
	}

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}
	prior := o.engine.ScoreV4(snap)
	sig.OpportunityReadiness = predict.Predict(predict.Input{
		BaseScore:       prior.Score,
		Timeline:        tl,
		GraphCentrality: snap.Stats.GraphCentrality,
		HorizonDays:     horizon,
	}).Probability

	if o.matcher != nil {
		_, isolated := domain.IsolationCheck(snap.Input.Industry, snap.Input.ActiveIndustry)
		persona := overlay.PersonaFit(o.engine.Tables(), snap.Input, snap.Input.Industry).PersonaProfile
		cctx, cancel := context.WithTimeout(ctx, subCallTimeout)
		defer cancel()
		match, err := o.matcher.BestMatch(cctx, snap.Input.UserID, persona, snap.Input.Industry, !isolated)
		if err == nil {
			sig.PatternMatch = match.Score
		}
	}
	return sig
}

// overlayResults carries whatever overlays completed.
type overlayResults struct {
	persona   *domain.PersonaFit
	cta       *domain.CTAFit
	emotional *domain.EmotionalRead
}

// runOverlays fans the enabled overlays out concurrently. Overlays are
// independent of each other, fail soft, and a panic inside one is
// contained and recorded as a skip.
func (o *Orchestrator) runOverlays(ctx context.Context, req ScoreRequest, snap engine.Snapshot, base domain.BaseScore) (overlayResults, []domain.OverlaySkip) {
	var results overlayResults
	skipCh := make(chan domain.OverlaySkip, 3)

	industry, _ := domain.IsolationCheck(snap.Input.Industry, snap.Input.ActiveIndustry)
	tbl := o.engine.Tables()

	g, _ := errgroup.WithContext(ctx)
	if req.EnablePersonaFit {
		g.Go(recoverable("v6", skipCh, func() {
			if snap.Input.Industry == "" {
				skipCh <- domain.OverlaySkip{Overlay: "v6", Reason: "prospect has no industry"}
				return
			}
			fit := overlay.PersonaFit(tbl, snap.Input, industry)
			results.persona = &fit
		}))
	}
	if req.EnableCTAFit {
		g.Go(recoverable("v7", skipCh, func() {
			if snap.Input.Industry == "" {
				skipCh <- domain.OverlaySkip{Overlay: "v7", Reason: "prospect has no industry"}
				return
			}
			fit := overlay.CTAFit(tbl, snap.Input, base, industry)
			results.cta = &fit
		}))
	}
	if req.EnableEmotional {
		g.Go(recoverable("v8", skipCh, func() {
			read := overlay.EmotionalRead(tbl, snap.Input)
			results.emotional = &read
		}))
	}

	_ = g.Wait() // overlay goroutines never return errors, only skips
	close(skipCh)

	var skips []domain.OverlaySkip
	for skip := range skipCh {
		skips = append(skips, skip)
	}
	return results, skips
}

// recoverable wraps an overlay computation so a panic becomes a skip
// instead of tearing the request down.
func recoverable(name string, skipCh chan<- domain.OverlaySkip, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				skipCh <- domain.OverlaySkip{
					Overlay: name,
					Reason:  fmt.Sprintf("panic: %v", r),
				}
			}
		}()
		fn()
		return nil
	}
}

// neutralResult is the total-failure fallback: score 50, warm, no
// overlays, success false.
func neutralResult(reason string) domain.FinalScore {
	return domain.FinalScore{
		Success: false,
		Base: domain.BaseScore{
			Score:           50,
			LeadTemperature: domain.TemperatureWarm,
		},
		FinalScore:           50,
		FinalLeadTemperature: domain.TemperatureWarm,
		FinalInsights:        []string{reason},
	}
}
