package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/silviuClosca/languageForge/internal/engine"
)

func RunDashboard(svc *engine.Service, out io.Writer) error {
	m := newDashboardModel(svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
