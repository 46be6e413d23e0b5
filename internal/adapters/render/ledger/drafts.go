package ledger

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fanthom/internal/domain"
)

// Generation is the outcome of one generate run as shown in the terminal.
type Generation struct {
	Drafts  []domain.Draft
	Credits int64
}

func renderGeneration(gen Generation, s styles) string {
	lines := []string{s.title.Render("Generated Drafts")}

	if len(gen.Drafts) == 0 {
		lines = append(lines, s.empty.Render("The model returned no usable drafts."))
	}
	for i, draft := range gen.Drafts {
		block := lipgloss.JoinVertical(
			lipgloss.Left,
			s.draftTitle.Render(fmt.Sprintf("Draft %d", i+1)),
			s.draftBody.Render(draft),
		)
		lines = append(lines, s.section.Render(block))
	}

	lines = append(lines, s.section.Render(s.header.Render(fmt.Sprintf("credits remaining: %d", gen.Credits))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
