package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
	"github.com/bnema/fanthom/internal/logging"
	"github.com/bnema/fanthom/internal/ports"
	"github.com/bnema/fanthom/internal/prompt"
	"github.com/bnema/fanthom/internal/sanitize"
	"github.com/google/uuid"
)

const (
	// GenerationCost is charged once per generation attempt.
	GenerationCost int64 = 2
	// MaxCompletionTokens caps the configured token budget.
	MaxCompletionTokens = 12000
)

var errEmptyCompletion = errors.New("empty completion response")

type State string

const (
	StateIdle               State = "idle"
	StateValidating         State = "validating"
	StateAuthorizing        State = "authorizing"
	StatePrompting          State = "prompting"
	StateAwaitingCompletion State = "awaiting_completion"
	StateParsing            State = "parsing"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Transition is reported to an Observer on every state change. Err is set
// when To is StateFailed.
type Transition struct {
	From State
	To   State
	Err  error
}

type Observer func(Transition)

type CompletionSettings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type GenerationResult struct {
	Fields  domain.EmailFields
	Drafts  []domain.Draft
	Balance int64
}

type Generator struct {
	ledger     *Ledger
	completion ports.CompletionService
	drafts     ports.DraftStore
	clock      ports.Clock
	logger     *slog.Logger
	settings   CompletionSettings
	observer   Observer
}

func NewGenerator(ledger *Ledger, completion ports.CompletionService, draftStore ports.DraftStore, clock ports.Clock, logger *slog.Logger, settings CompletionSettings) *Generator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Generator{
		ledger:     ledger,
		completion: completion,
		drafts:     draftStore,
		clock:      clock,
		logger:     logger,
		settings:   settings,
	}
}

// WithObserver returns a copy of g that reports state transitions to observer.
func (g *Generator) WithObserver(observer Observer) *Generator {
	clone := *g
	clone.observer = observer
	return &clone
}

// Generate validates raw, charges GenerationCost, and returns up to two drafts.
// The charge is not reversed when a later step fails.
func (g *Generator) Generate(ctx context.Context, userID domain.UserID, raw domain.EmailFields) (GenerationResult, error) {
	run := &generationRun{state: StateIdle, observer: g.observer}

	run.enter(StateValidating)
	fields, err := sanitize.Fields(raw)
	if err != nil {
		return GenerationResult{Fields: fields}, run.fail(err)
	}

	run.enter(StateAuthorizing)
	balance, err := g.ledger.Charge(ctx, userID, GenerationCost, domain.EntryTypeGeneration)
	if err != nil {
		if errors.Is(err, domain.ErrStorage) {
			g.logger.ErrorContext(ctx, "charge generation", logging.UserID(string(userID)), logging.Error(err))
		}
		return GenerationResult{Fields: fields, Balance: balance}, run.fail(err)
	}

	run.enter(StatePrompting)
	req := prompt.NewRequest(fields, prompt.Build(fields))
	completionReq := domain.CompletionRequest{
		System:         prompt.SystemInstruction,
		Prompt:         prompt.DraftRequest(req),
		Model:          g.settings.Model,
		Temperature:    g.settings.Temperature,
		MaxTokens:      g.maxTokens(),
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Goal:           req.Goal,
		Tone:           req.Tone,
	}

	run.enter(StateAwaitingCompletion)
	text, err := g.completion.Complete(ctx, completionReq)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		completionErr := &domain.CompletionServiceError{Provider: g.completion.Provider(), Err: err}
		g.logger.ErrorContext(ctx, "complete drafts",
			logging.UserID(string(userID)),
			slog.String("provider", completionErr.Provider),
			logging.Error(err),
		)
		return GenerationResult{Fields: fields, Balance: balance}, run.fail(completionErr)
	}

	run.enter(StateParsing)
	parsed := drafts.Parse(text)

	run.enter(StateDone)
	return GenerationResult{Fields: fields, Drafts: parsed, Balance: balance}, nil
}

func (g *Generator) maxTokens() int {
	if g.settings.MaxTokens <= 0 {
		return MaxCompletionTokens
	}
	return min(g.settings.MaxTokens, MaxCompletionTokens)
}

// SaveDraft sanitizes fields and appends one draft record for the user.
func (g *Generator) SaveDraft(ctx context.Context, userID domain.UserID, raw domain.EmailFields, text string) (domain.SavedDraft, error) {
	if err := validateUserID(userID); err != nil {
		return domain.SavedDraft{}, err
	}

	fields, err := sanitize.Fields(raw)
	var violations []domain.Violation
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		violations = validation.Violations
	} else if err != nil {
		return domain.SavedDraft{}, fmt.Errorf("sanitize draft fields: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		violations = append(violations, domain.Violation{Field: "generatedText", Label: "Draft", Message: "is required"})
	}
	if len(violations) > 0 {
		return domain.SavedDraft{}, &domain.ValidationError{Violations: violations}
	}

	record := domain.SavedDraft{
		ID:            uuid.NewString(),
		UserID:        userID,
		Fields:        fields,
		Tone:          prompt.RequestTone,
		GeneratedText: text,
		Timestamp:     g.clock.Now(),
	}

	if err := g.drafts.Append(ctx, record); err != nil {
		failure := storeFailure("append draft", err)
		if errors.Is(failure, domain.ErrStorage) {
			g.logger.ErrorContext(ctx, "save draft", logging.UserID(string(userID)), logging.Error(err))
		}
		return domain.SavedDraft{}, failure
	}

	return record, nil
}

type generationRun struct {
	state    State
	observer Observer
}

func (r *generationRun) enter(next State) {
	r.transition(next, nil)
}

func (r *generationRun) fail(err error) error {
	r.transition(StateFailed, err)
	return err
}

func (r *generationRun) transition(next State, err error) {
	prev := r.state
	r.state = next
	if r.observer != nil {
		r.observer(Transition{From: prev, To: next, Err: err})
	}
}
