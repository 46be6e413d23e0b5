package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/logging"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type historyItem struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Change       int64     `json:"change"`
	BalanceAfter int64     `json:"balanceAfter"`
	Timestamp    time.Time `json:"timestamp"`
}

type generateResponse struct {
	Drafts  []string           `json:"drafts"`
	Balance int64              `json:"balance"`
	Fields  domain.EmailFields `json:"fields"`
}

type saveDraftRequest struct {
	Fields        domain.EmailFields `json:"fields"`
	GeneratedText string             `json:"generatedText"`
}

// GET /api/credits
func (s *Server) getCredits(c *gin.Context) {
	userID := domain.UserID(c.GetString(userIDKey))

	credits, err := s.ledger.Balance(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": credits})
}

// GET /api/credits/history?limit=20
func (s *Server) getHistory(c *gin.Context) {
	userID := domain.UserID(c.GetString(userIDKey))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	limit = min(limit, maxHistoryLimit)

	entries, err := s.ledger.History(c.Request.Context(), userID, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			ID:           e.ID,
			Type:         string(e.Type),
			Change:       e.Change,
			BalanceAfter: e.BalanceAfter,
			Timestamp:    e.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": items})
}

// POST /api/generate
func (s *Server) generate(c *gin.Context) {
	userID := domain.UserID(c.GetString(userIDKey))

	var fields domain.EmailFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := s.generator.Generate(c.Request.Context(), userID, fields)
	if err != nil {
		s.writeError(c, err)
		return
	}

	drafts := result.Drafts
	if drafts == nil {
		drafts = []string{}
	}
	c.JSON(http.StatusOK, generateResponse{Drafts: drafts, Balance: result.Balance, Fields: result.Fields})
}

// POST /api/drafts
func (s *Server) saveDraft(c *gin.Context) {
	userID := domain.UserID(c.GetString(userIDKey))

	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	saved, err := s.generator.SaveDraft(c.Request.Context(), userID, req.Fields, req.GeneratedText)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": saved.ID, "timestamp": saved.Timestamp})
}

// writeError maps domain failures to status codes. Only unexpected failures
// are logged here; the application layer already logs provider and storage
// incidents.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		validation   *domain.ValidationError
		insufficient *domain.InsufficientCreditsError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      domain.UserMessage(err),
			"violations": validation.Violations,
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    domain.UserMessage(err),
			"balance":  insufficient.Balance,
			"required": insufficient.Required,
		})
	case errors.Is(err, domain.ErrInvalidUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
	case errors.Is(err, domain.ErrCompletionService):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.UserMessage(err)})
	case errors.Is(err, domain.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.UserMessage(err)})
	default:
		s.logger.Error("request failed", slog.String("path", c.FullPath()), logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.UserMessage(err)})
	}
}
