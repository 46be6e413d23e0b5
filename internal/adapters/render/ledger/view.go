package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fanthom/internal/domain"
)

const barWidth = 24

// Summary is what the credits view shows for one user.
type Summary struct {
	UserID   domain.UserID
	Credits  int64
	Starting int64
	Cost     int64
	History  []domain.HistoryEntry
}

type RenderOptions struct {
	Now time.Time
}

func renderSummary(sum Summary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Fanthom Credits"),
		s.header.Render("user: ") + s.user.Render(string(sum.UserID)),
		balanceLine(sum, s),
	}

	if sum.Cost > 0 && sum.Credits < sum.Cost {
		lines = append(lines, s.warning.Render("not enough credits for another generation"))
	}

	if sum.History == nil {
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	historyLines := []string{s.header.Render(fmt.Sprintf("history: %d", len(sum.History)))}
	if len(sum.History) == 0 {
		historyLines = append(historyLines, s.empty.Render("No credit activity yet."))
	}
	for _, entry := range sum.History {
		historyLines = append(historyLines, historyLine(entry, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, historyLines...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func balanceLine(sum Summary, s styles) string {
	percent := balancePercent(sum.Credits, sum.Starting)
	count := s.detail.Render(fmt.Sprintf("%d credits", sum.Credits))

	parts := []string{s.key.Render("balance:"), " ", renderProgressBar(percent, barWidth, s), " ", count}
	if sum.Cost > 0 {
		remaining := sum.Credits / sum.Cost
		color := interpolateColor(percent, 0, 100)
		parts = append(parts, " ", lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("(%d %s left)", remaining, plural(remaining, "generation"))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func historyLine(entry domain.HistoryEntry, opts RenderOptions, s styles) string {
	change := fmt.Sprintf("%+d", entry.Change)
	changeStyle := s.debit
	if entry.Change >= 0 {
		changeStyle = s.credit
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.meta.Render(formatWhen(entry.Timestamp, opts.Now)),
		"  ",
		s.key.Render(fmt.Sprintf("%-16s", entry.Type)),
		" ",
		changeStyle.Render(fmt.Sprintf("%4s", change)),
		s.meta.Render(fmt.Sprintf("  -> %d", entry.BalanceAfter)),
	)
}

func balancePercent(credits, starting int64) float64 {
	if starting <= 0 {
		starting = domain.DefaultStartingCredits
	}
	return clampPercent(float64(credits) / float64(starting) * 100)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	filled = max(0, min(filled, width))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format("2006-01-02 15:04")
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		minutes := int(elapsed.Minutes())
		return fmt.Sprintf("%d %s ago", minutes, plural(int64(minutes), "minute"))
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		return fmt.Sprintf("%d %s ago", hours, plural(int64(hours), "hour"))
	default:
		return at.Format("15:04 on 02 Jan")
	}
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// interpolateColor maps value onto the 240-255 greyscale ramp.
func interpolateColor(value, lo, hi float64) lipgloss.Color {
	if hi == lo {
		return lipgloss.Color("255")
	}

	normalized := (value - lo) / (hi - lo)
	normalized = max(0, min(normalized, 1))

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
