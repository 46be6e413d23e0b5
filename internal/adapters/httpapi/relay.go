package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bnema/fanthom/internal/adapters/completion/relay"
	"github.com/bnema/fanthom/internal/application"
	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
	"github.com/bnema/fanthom/internal/logging"
)

const (
	relaySystemInstruction = "You are an expert sales email generator. Generate a concise, effective sales email draft."
	relayDefaultMaxTokens  = 600
	relayDefaultModel      = "gpt-4o"
	relayDefaultTemp       = 0.7
)

// POST /api/generate-email
//
// Stateless relay: no ledger charge happens here, the calling pipeline has
// already paid for the generation.
func (s *Server) relayGenerate(c *gin.Context) {
	var req relay.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, relay.Response{Error: "Missing required fields"})
		return
	}
	if req.RecipientName == "" || req.RecipientEmail == "" || req.Context == "" || req.Goal == "" || req.Tone == "" {
		c.JSON(http.StatusBadRequest, relay.Response{Error: "Missing required fields"})
		return
	}

	text, err := s.completion.Complete(c.Request.Context(), s.relayCompletionRequest(req))
	if err != nil {
		s.logger.Error("relay completion failed",
			slog.String("provider", s.completion.Provider()),
			logging.Error(err),
		)
		c.JSON(http.StatusInternalServerError, relay.Response{Error: "Failed to generate email draft"})
		return
	}

	parsed := drafts.Parse(text)
	if parsed == nil {
		parsed = []string{}
	}
	c.JSON(http.StatusOK, relay.Response{Drafts: parsed})
}

func (s *Server) relayCompletionRequest(req relay.Request) domain.CompletionRequest {
	model := req.Model
	if model == "" {
		model = s.settings.Model
	}
	if model == "" {
		model = relayDefaultModel
	}

	temperature := req.Config.Temperature
	if temperature == 0 {
		temperature = relayDefaultTemp
	}

	maxTokens := req.Config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = relayDefaultMaxTokens
	}
	maxTokens = min(maxTokens, application.MaxCompletionTokens)

	return domain.CompletionRequest{
		System:         relaySystemInstruction,
		Prompt:         fmt.Sprintf("Recipient: %s <%s>\nContext: %s\nGoal: %s\nTone: %s", req.RecipientName, req.RecipientEmail, req.Context, req.Goal, req.Tone),
		Model:          model,
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Goal:           req.Goal,
		Tone:           req.Tone,
	}
}
