package domain

import "time"

// Draft is one candidate email body.
type Draft = string

// MaxDrafts is the number of drafts requested from the completion service per generation.
const MaxDrafts = 2

// SavedDraft is the record handed to the draft persistence collaborator.
type SavedDraft struct {
	ID            string
	UserID        UserID
	Fields        EmailFields
	Tone          string
	GeneratedText string
	Timestamp     time.Time
}

// CompletionRequest is everything a completion service needs for one call.
// The recipient fields are only consumed by transports that forward them
// (the HTTP relay); direct model clients ignore them.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int

	RecipientName  string
	RecipientEmail string
	Goal           string
	Tone           string
}

// DraftDelimiter separates drafts in a raw completion response.
const DraftDelimiter = "<<<DRAFT_SPLIT>>>"
