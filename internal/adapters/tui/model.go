// Package tui renders the consent dashboard with bubbletea. The model holds
// no domain state of its own: every View reads the current cell values, and a
// subscription bridge converts cell changes into messages so the program
// repaints when a background action lands.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
)

// Pane identifies the focused dashboard section.
type Pane int

const (
	// PaneIdentity shows the wallet session and identity record.
	PaneIdentity Pane = iota
	// PaneConsents shows the consent list and grant form state.
	PaneConsents
	// PaneAudit shows the filtered, paginated audit trail.
	PaneAudit

	paneCount
)

// VMs bundles the resolved view-models the dashboard renders.
type VMs struct {
	Registry *reactive.Registry
	Wallet   *vm.WalletVM
	Identity *vm.IdentityVM
	Consents *vm.ConsentVM
	Audit    *vm.AuditVM
}

// cellsChanged is sent by the subscription bridge after any observed cell
// changes. It carries no payload; View re-reads everything it shows.
type cellsChanged struct{}

// Model is the bubbletea model for the dashboard.
type Model struct {
	vms  VMs
	spin spinner.Model

	pane     Pane
	selected int

	width  int
	height int
}

// NewModel creates the dashboard model.
func NewModel(vms VMs) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle
	return Model{vms: vms, spin: sp}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles key input, cell-change notifications and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case cellsChanged:
		m.clampSelection()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.pane = (m.pane + 1) % paneCount
		m.selected = 0

	case "c":
		m.vms.Wallet.Connect()

	case "d":
		m.vms.Wallet.Disconnect()

	case "r":
		switch m.pane {
		case PaneIdentity:
			m.vms.Identity.Refresh()
		case PaneConsents:
			m.vms.Consents.Refresh()
		case PaneAudit:
			m.vms.Audit.Refresh()
		}

	case "f":
		if m.pane == PaneAudit {
			m.vms.Audit.CycleFilter()
		}

	case "left", "h":
		if m.pane == PaneAudit {
			m.vms.Audit.PrevPage()
		}

	case "right", "l":
		if m.pane == PaneAudit {
			m.vms.Audit.NextPage()
		}

	case "up", "k":
		if m.pane == PaneConsents && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.pane == PaneConsents {
			m.selected++
			m.clampSelection()
		}

	case "g":
		if m.pane == PaneConsents {
			m.vms.Consents.Grant()
		}

	case "x":
		if m.pane == PaneConsents {
			if items := m.consentItems(); m.selected < len(items) {
				items[m.selected].Revoke()
			}
		}
	}
	return m, nil
}

func (m *Model) clampSelection() {
	if n := len(m.consentItems()); m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m Model) consentItems() []*vm.ConsentItemVM {
	return reactive.Get(m.vms.Registry, m.vms.Consents.Items)
}
