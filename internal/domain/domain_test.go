package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCTAType(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   CTAType
		wantOK bool
	}{
		{name: "blank defaults to cold outreach", raw: "  ", want: CTAColdOutreach, wantOK: true},
		{name: "exact", raw: "Demo Request", want: CTADemoRequest, wantOK: true},
		{name: "case insensitive", raw: "follow-up", want: CTAFollowUp, wantOK: true},
		{name: "unknown", raw: "Webinar Invite", want: CTAType("Webinar Invite"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCTAType(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestEntryTypeIsGrant(t *testing.T) {
	assert.True(t, EntryTypeManual.IsGrant())
	assert.True(t, EntryTypeRefund.IsGrant())
	assert.False(t, EntryTypeGeneration.IsGrant())
	assert.False(t, EntryTypeInitial.IsGrant())
	assert.False(t, EntryType("").Valid())
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("connection reset")

	validation := &ValidationError{Violations: []Violation{{Field: "companyName", Label: "Company name", Message: "is required"}}}
	insufficient := &InsufficientCreditsError{UserID: "u1", Balance: 1, Required: 2}
	completion := &CompletionServiceError{Provider: "openai", Err: cause}
	storage := &StorageError{Op: "charge", Err: cause}

	assert.ErrorIs(t, fmt.Errorf("generate: %w", validation), ErrValidation)
	assert.ErrorIs(t, fmt.Errorf("generate: %w", insufficient), ErrInsufficientCredits)
	assert.ErrorIs(t, completion, ErrCompletionService)
	assert.ErrorIs(t, completion, cause)
	assert.ErrorIs(t, storage, ErrStorage)
	assert.ErrorIs(t, storage, cause)

	assert.Equal(t, "validation failed: Company name is required", validation.Error())
	assert.Equal(t, "insufficient credits: balance 1, required 2", insufficient.Error())
}

func TestUserMessageHidesCause(t *testing.T) {
	cause := errors.New("401 invalid api key sk-123")

	msg := UserMessage(fmt.Errorf("complete: %w", &CompletionServiceError{Provider: "openai", Err: cause}))
	require.NotEmpty(t, msg)
	assert.NotContains(t, msg, "sk-123")

	msg = UserMessage(&StorageError{Op: "balance", Err: cause})
	assert.NotContains(t, msg, "sk-123")

	assert.Equal(t, "Insufficient credits. Please purchase more.", UserMessage(&InsufficientCreditsError{}))
	assert.Equal(t,
		"Please fix the following: Company name is required, Prospect title is required",
		UserMessage(&ValidationError{Violations: []Violation{
			{Field: "companyName", Label: "Company name", Message: "is required"},
			{Field: "prospectTitle", Label: "Prospect title", Message: "is required"},
		}}),
	)
	assert.Empty(t, UserMessage(nil))
}
