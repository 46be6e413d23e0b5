// Package mock returns canned drafts without calling a model, for local runs
// without provider credentials.
package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
	"github.com/bnema/fanthom/internal/ports"
)

const ProviderName = "mock"

type Client struct {
	delay time.Duration
}

var _ ports.CompletionService = (*Client)(nil)

// New returns a mock client that waits delay before answering, so spinners
// and timeouts behave as they would against a real provider.
func New(delay time.Duration) *Client {
	return &Client{delay: delay}
}

func (c *Client) Provider() string { return ProviderName }

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := req.RecipientName
	if name == "" {
		name = "there"
	}
	goal := req.Goal
	if goal == "" {
		goal = string(domain.CTAColdOutreach)
	}
	lowerGoal := strings.ToLower(goal)

	first := fmt.Sprintf(`Subject: %s - Let's Connect

Hi %s,

I hope this email finds you well. I wanted to reach out regarding %s. Based on what I know about your work, there could be a great opportunity for us to collaborate.

Would you be available for a brief conversation this week?

Best regards`, goal, name, lowerGoal)

	second := fmt.Sprintf(`Subject: Quick Question for %s

Hello %s,

I'm reaching out about %s. I have some insights that could be useful for you and your team.

Could we schedule a 15-minute call this week? I'll keep it brief.

Warm regards`, name, name, lowerGoal)

	return drafts.Join([]domain.Draft{first, second}), nil
}
