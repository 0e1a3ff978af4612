package service

import (
	"context"
	"strings"
	"time"

	"github.com/konigunited/restdelbot/internal/catalog"
	"github.com/konigunited/restdelbot/internal/correction"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/estimate"
	"github.com/konigunited/restdelbot/internal/extract"
	"github.com/konigunited/restdelbot/internal/intent"
	"github.com/konigunited/restdelbot/internal/llm"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/repo"
	"github.com/konigunited/restdelbot/internal/selector"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const defaultLLMTimeout = 20 * time.Second

// Renderer turns an estimate into a document and returns its path.
type Renderer interface {
	Render(ctx context.Context, est domain.Estimate) (string, error)
}

// EstimatePublisher hands a produced estimate to the record store.
type EstimatePublisher interface {
	Publish(ctx context.Context, est domain.Estimate, eventType string) error
}

type Reply struct {
	Intent   domain.Intent           `json:"intent"`
	Text     string                  `json:"reply"`
	Estimate *domain.Estimate        `json:"estimate,omitempty"`
	Document string                  `json:"document,omitempty"`
	Params   *domain.EventParameters `json:"params,omitempty"`
}

type AssistantService struct {
	catalog    *catalog.Store
	selector   *selector.Selector
	calculator *estimate.Calculator
	llm        llms.Model
	llmTimeout time.Duration
	renderer   Renderer
	records    EstimatePublisher
	sessions   repo.SessionRepository
	metrics    *metrics.Metrics
	logger     *zap.SugaredLogger
	locks      *keyedMutex
}

// NewAssistantService builds the conversation handler. llmModel and renderer
// may be nil, which disables enrichment and document output respectively.
func NewAssistantService(
	store *catalog.Store,
	sel *selector.Selector,
	calculator *estimate.Calculator,
	llmModel llms.Model,
	llmTimeout time.Duration,
	renderer Renderer,
	records EstimatePublisher,
	sessions repo.SessionRepository,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *AssistantService {
	if llmTimeout <= 0 {
		llmTimeout = defaultLLMTimeout
	}

	return &AssistantService{
		catalog:    store,
		selector:   sel,
		calculator: calculator,
		llm:        llmModel,
		llmTimeout: llmTimeout,
		renderer:   renderer,
		records:    records,
		sessions:   sessions,
		metrics:    m,
		logger:     logger,
		locks:      newKeyedMutex(),
	}
}

// HandleMessage runs one turn for a conversation. Turns of the same conversation
// run one at a time; the session is loaded before and saved after the turn.
func (s *AssistantService) HandleMessage(ctx context.Context, conversationID, text string) (reply Reply) {
	unlock := s.locks.lock(conversationID)
	defer unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("turn panicked", "conversation_id", conversationID, "panic", r)
			reply = Reply{Intent: domain.IntentGeneral, Text: apologyText}
		}
		if s.metrics != nil {
			s.metrics.Turns.WithLabelValues(string(reply.Intent)).Inc()
			s.metrics.TurnDuration.Observe(time.Since(start).Seconds())
		}
	}()

	session, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		s.logger.Warnw("failed to load session, starting fresh", "conversation_id", conversationID, "error", err)
		session = domain.Session{ConversationID: conversationID}
	}
	session.ConversationID = conversationID

	reply, next := s.ProcessTurn(ctx, session, text)

	next.Turns++
	next.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, next); err != nil {
		s.logger.Errorw("failed to save session", "conversation_id", conversationID, "error", err)
	}

	return reply
}

// ProcessTurn answers text given the conversation state and returns the state
// for the next turn. It never fails: every degraded path yields a reply.
func (s *AssistantService) ProcessTurn(ctx context.Context, session domain.Session, text string) (Reply, domain.Session) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Intent: domain.IntentGeneral, Text: greetingText}, session
	}

	if session.CurrentEstimate != nil {
		if updated, c, ok := correction.Apply(*session.CurrentEstimate, text); ok {
			s.logger.Infow("correction applied", "estimate_id", updated.ID, "kind", c.Kind)
			session.CurrentEstimate = &updated
			return Reply{Intent: domain.IntentCorrection, Text: formatCorrection(updated), Estimate: &updated}, session
		}
	}

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, searchPrefix) {
		query := strings.TrimSpace(text[len(searchPrefix):])
		return Reply{Intent: domain.IntentSearch, Text: formatSearch(query, s.catalog.Search(query))}, session
	}

	switch intent.Classify(text) {
	case domain.IntentNewEstimate:
		return s.estimateTurn(ctx, session, text)
	case domain.IntentMenuInfo:
		snap := s.catalog.Snapshot()
		return Reply{Intent: domain.IntentMenuInfo, Text: formatMenuInfo(snap.Categories(), snap.Stats())}, session
	case domain.IntentPricing:
		params := extract.Extract(text)
		return Reply{Intent: domain.IntentPricing, Text: formatPricing(params), Params: &params}, session
	case domain.IntentServiceInfo:
		return Reply{Intent: domain.IntentServiceInfo, Text: serviceInfoText}, session
	case domain.IntentOrderStatus:
		return Reply{Intent: domain.IntentOrderStatus, Text: formatOrderStatus(session)}, session
	}

	if session.PendingParams != nil {
		return s.estimateTurn(ctx, session, text)
	}

	return Reply{Intent: domain.IntentGeneral, Text: s.generalReply(ctx, text)}, session
}

func (s *AssistantService) estimateTurn(ctx context.Context, session domain.Session, text string) (Reply, domain.Session) {
	params := extract.Extract(text)
	if session.PendingParams != nil {
		params = params.Merge(*session.PendingParams)
	}

	params, explanation := s.enrich(ctx, text, params)

	if !params.HasGuests() {
		session.PendingParams = &params
		return Reply{Intent: domain.IntentNewEstimate, Text: clarifyGuests(params), Params: &params}, session
	}

	guessed := false
	if params.EventType == domain.EventUnset {
		params.EventType = extract.GuessEventType(params)
		guessed = true
	}

	items := s.selector.Select(params.EventType, params.GuestCount, params.BudgetPerGuest)
	if len(items) == 0 {
		session.PendingParams = &params
		return Reply{Intent: domain.IntentNewEstimate, Text: relaxText, Params: &params}, session
	}

	est := s.calculator.Calculate(items, params.GuestCount, params.EventType, params.BudgetTotal)
	if explanation != "" {
		est.Explanation = explanation
	}

	session.CurrentEstimate = &est
	session.PendingParams = nil

	s.observeEstimate(est)
	document := s.render(ctx, est)
	s.publish(ctx, est)

	s.logger.Infow("estimate computed",
		"estimate_id", est.ID,
		"event_type", est.EventType,
		"guests", est.GuestCount,
		"total_cost", est.TotalCost.String(),
		"emergency", est.Emergency,
	)

	return Reply{
		Intent:   domain.IntentNewEstimate,
		Text:     formatEstimate(est, params, guessed, document != ""),
		Estimate: &est,
		Document: document,
		Params:   &params,
	}, session
}

// enrich asks the language model to fill what keyword extraction left unset.
// Any failure keeps params as they are.
func (s *AssistantService) enrich(ctx context.Context, text string, params domain.EventParameters) (domain.EventParameters, string) {
	if s.llm == nil || (params.HasGuests() && params.EventType != domain.EventUnset) {
		return params, ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	start := time.Now()
	draft, err := llm.RequestDraft(ctx, s.llm, llm.BuildEstimatePrompt(text, s.catalog.Snapshot().All()))
	if s.metrics != nil {
		s.metrics.LLMDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.logger.Warnw("llm enrichment failed, using keyword extraction", "error", err)
		s.fallback(metrics.FallbackLLM)
		return params, ""
	}

	if !params.HasGuests() && draft.GuestCount > 0 && draft.GuestCount <= domain.MaxGuestCount {
		params.GuestCount = draft.GuestCount
	}
	if params.EventType == domain.EventUnset {
		params.EventType = domain.ParseEventType(draft.EventType)
	}

	return params.Derive(), draft.Explanation
}

func (s *AssistantService) generalReply(ctx context.Context, text string) string {
	if s.llm == nil {
		return greetingText
	}

	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	answer, err := llm.Complete(ctx, s.llm, llm.BuildChatPrompt(text))
	if err != nil {
		s.logger.Warnw("llm chat reply failed, using greeting", "error", err)
		s.fallback(metrics.FallbackLLM)
		return greetingText
	}

	return answer
}

func (s *AssistantService) render(ctx context.Context, est domain.Estimate) string {
	if s.renderer == nil {
		return ""
	}

	path, err := s.renderer.Render(ctx, est)
	if err != nil {
		s.logger.Errorw("failed to render estimate", "estimate_id", est.ID, "error", err)
		s.fallback(metrics.FallbackRenderer)
		return ""
	}

	return path
}

func (s *AssistantService) publish(ctx context.Context, est domain.Estimate) {
	if s.records == nil {
		return
	}

	if err := s.records.Publish(ctx, est, domain.EventEstimateCreated); err != nil {
		s.logger.Errorw("failed to publish estimate record", "estimate_id", est.ID, "error", err)
		s.fallback(metrics.FallbackRecordStore)
	}
}

func (s *AssistantService) observeEstimate(est domain.Estimate) {
	if est.Emergency {
		s.fallback(metrics.FallbackEmergencyEstimate)
	}
	if s.metrics == nil {
		return
	}

	emergency := "false"
	if est.Emergency {
		emergency = "true"
	}
	s.metrics.Estimates.WithLabelValues(string(est.EventType), emergency).Inc()
	s.metrics.EstimateTotals.Observe(est.TotalCost.InexactFloat64())
}

func (s *AssistantService) fallback(kind string) {
	if s.metrics != nil {
		s.metrics.Fallback(kind)
	}
}
