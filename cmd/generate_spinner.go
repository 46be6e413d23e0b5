package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fanthom/internal/application"
)

type generateDoneMsg struct {
	err error
}

type generateStateMsg struct {
	state application.State
}

type generateSpinnerModel struct {
	spinner  spinner.Model
	label    string
	generate tea.Cmd
	err      error
	done     bool
}

func newGenerateSpinnerModel(generate tea.Cmd) generateSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return generateSpinnerModel{
		spinner:  s,
		label:    stateLabel(application.StateIdle),
		generate: generate,
	}
}

func (m generateSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generate)
}

func (m generateSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case generateStateMsg:
		m.label = stateLabel(msg.state)
		return m, nil
	case generateDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m generateSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func stateLabel(state application.State) string {
	switch state {
	case application.StateValidating:
		return "Checking fields..."
	case application.StateAuthorizing:
		return "Charging credits..."
	case application.StatePrompting:
		return "Building prompt..."
	case application.StateAwaitingCompletion:
		return "Writing drafts..."
	case application.StateParsing:
		return "Splitting drafts..."
	default:
		return "Starting..."
	}
}

// runGenerateSpinner runs generate while a spinner on output follows the
// pipeline state reported through the observer it is handed.
func runGenerateSpinner(ctx context.Context, output io.Writer, generate func(context.Context, application.Observer) error) error {
	var p *tea.Program

	generateCmd := func() tea.Msg {
		observer := func(tr application.Transition) {
			p.Send(generateStateMsg{state: tr.To})
		}
		return generateDoneMsg{err: generate(ctx, observer)}
	}

	p = tea.NewProgram(
		newGenerateSpinnerModel(generateCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(generateSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
