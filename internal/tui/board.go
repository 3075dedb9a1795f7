package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/octagorm/priorities/internal/config"
	"github.com/octagorm/priorities/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, cfg config.Config, out io.Writer) error {
	m := newBoardModel(ctx, svc, cfg)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
