package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/zerr"
)

// Run starts the dashboard and blocks until the user quits or the context is
// cancelled. While it runs, every observed cell is mounted: background action
// results recompute their derivations eagerly and repaint the screen.
func Run(ctx context.Context, vms VMs) error {
	p := tea.NewProgram(NewModel(vms), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := bridge(vms, func() { p.Send(cellsChanged{}) })
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return zerr.Wrap(err, "running dashboard")
	}
	return nil
}

// bridge subscribes the notify callback to every cell the views read and
// returns the combined unsubscribe.
func bridge(vms VMs, notify func()) func() {
	cells := []reactive.AnyCell{
		vms.Wallet.State,
		vms.Identity.State,
		vms.Identity.Submit,
		vms.Consents.List,
		vms.Consents.Items,
		vms.Consents.Submit,
		vms.Consents.LastError,
		vms.Audit.Entries,
		vms.Audit.Filter,
		vms.Audit.Window,
		vms.Audit.Visible,
		vms.Audit.LastError,
	}
	cancels := make([]func(), 0, len(cells))
	for _, c := range cells {
		cancels = append(cancels, vms.Registry.Subscribe(c, notify))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
