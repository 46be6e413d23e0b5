package drafts

import (
	"testing"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []domain.Draft
	}{
		{
			name: "splits on delimiter and trims",
			raw:  "Hi Alex...<<<DRAFT_SPLIT>>>Hey Alex...",
			want: []domain.Draft{"Hi Alex...", "Hey Alex..."},
		},
		{
			name: "delimiter on its own line",
			raw:  "\n  Hi Alex,\nthanks.  \n<<<DRAFT_SPLIT>>>\n\nHey Alex,\nquick one.\n",
			want: []domain.Draft{"Hi Alex,\nthanks.", "Hey Alex,\nquick one."},
		},
		{
			name: "no delimiter yields single trimmed draft",
			raw:  "   Hello Alex, one draft only.  ",
			want: []domain.Draft{"Hello Alex, one draft only."},
		},
		{
			name: "drops label lines",
			raw:  "Draft 1\nSubject: Quick idea\n# Heading\n* bullet\nHi Alex,\nbody\n<<<DRAFT_SPLIT>>>\n**Draft 2**\nHey Alex,\nbody two",
			want: []domain.Draft{"Hi Alex,\nbody", "Hey Alex,\nbody two"},
		},
		{
			name: "drops preamble lines mentioning drafts",
			raw:  "Here are your drafts:\nHi Alex, body one.\n<<<DRAFT_SPLIT>>>\nDrafted for you:\nHey Alex, body two.",
			want: []domain.Draft{"Hi Alex, body one.", "Hey Alex, body two."},
		},
		{
			name: "drops any line containing draft",
			raw:  "Hi Alex,\nWe redrafted the sequence for you.\nTalk soon",
			want: []domain.Draft{"Hi Alex,\nTalk soon"},
		},
		{
			name: "removes horizontal rules",
			raw:  "Hi Alex\n---\n<<<DRAFT_SPLIT>>>\n-----\nHey Alex",
			want: []domain.Draft{"Hi Alex", "Hey Alex"},
		},
		{
			name: "drops empty segments",
			raw:  "<<<DRAFT_SPLIT>>>\n\n<<<DRAFT_SPLIT>>>Only one",
			want: []domain.Draft{"Only one"},
		},
		{
			name: "truncates to two drafts",
			raw:  "one<<<DRAFT_SPLIT>>>two<<<DRAFT_SPLIT>>>three",
			want: []domain.Draft{"one", "two"},
		},
		{
			name: "label only text without delimiter falls back to full text",
			raw:  "Subject: Hello",
			want: []domain.Draft{"Subject: Hello"},
		},
		{
			name: "label only segments with delimiter yield nothing",
			raw:  "Draft A<<<DRAFT_SPLIT>>>Draft B",
			want: nil,
		},
		{
			name: "blank input",
			raw:  "  \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestJoinParseRoundTrip(t *testing.T) {
	t.Parallel()

	drafts := []domain.Draft{"Hi Alex,\nfirst body", "Hey Alex,\nsecond body"}
	assert.Equal(t, drafts, Parse(Join(drafts)))
}
