package tui

import (
	"fmt"
	"strings"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/reactive"
)

// View renders the dashboard from the current cell values.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("veri · consent dashboard"))
	b.WriteString("\n\n")

	b.WriteString(m.renderPane(PaneIdentity, m.viewIdentity()))
	b.WriteString("\n")
	b.WriteString(m.renderPane(PaneConsents, m.viewConsents()))
	b.WriteString("\n")
	b.WriteString(m.renderPane(PaneAudit, m.viewAudit()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab panes · c connect · d disconnect · g grant · x revoke · f filter · ←/→ page · r refresh · q quit"))
	return b.String()
}

func (m Model) renderPane(p Pane, content string) string {
	style := paneStyle
	if m.pane == p {
		style = activePaneStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(content)
}

func (m Model) viewIdentity() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Wallet & Identity"))
	b.WriteString("\n")

	switch s := reactive.Get(m.vms.Registry, m.vms.Wallet.State).(type) {
	case domain.WalletDisconnected:
		b.WriteString(mutedStyle.Render("wallet disconnected, press c to connect"))
	case domain.WalletConnecting:
		b.WriteString(m.spin.View() + warnStyle.Render(" connecting…"))
	case domain.WalletConnected:
		b.WriteString(okStyle.Render("connected ") + s.Address.Short() + mutedStyle.Render(fmt.Sprintf(" · chain %d", s.ChainID)))
	}
	b.WriteString("\n")

	switch s := reactive.Get(m.vms.Registry, m.vms.Identity.State).(type) {
	case domain.IdentityLoading:
		b.WriteString(m.spin.View() + mutedStyle.Render(" loading identity…"))
	case domain.IdentityNotRegistered:
		b.WriteString(warnStyle.Render("no identity record"))
	case domain.IdentityRegistered:
		b.WriteString("identity " + okStyle.Render(s.Display))
		b.WriteString(mutedStyle.Render(
			" · income " + s.Record.IncomeBracket + " · debt " + s.Record.DebtRatioBracket))
	case domain.IdentityError:
		b.WriteString(errStyle.Render("identity: " + s.Message))
	}

	if line := submitLine(reactive.Get(m.vms.Registry, m.vms.Identity.Submit)); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (m Model) viewConsents() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Consents"))
	b.WriteString("\n")

	list := reactive.Get(m.vms.Registry, m.vms.Consents.List)
	if !list.IsReady() {
		b.WriteString(m.spin.View() + mutedStyle.Render(" loading consents…"))
		return b.String()
	}

	items := m.consentItems()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no consents granted"))
	}
	for i, it := range items {
		cursor := "  "
		line := fmt.Sprintf("%s → %s · %s",
			it.Record.Lender.Short(), it.Record.Scopes.String(), statusBadge(it.Status()))
		if reactive.Get(m.vms.Registry, it.Revoking) {
			line += " " + m.spin.View() + warnStyle.Render("revoking…")
		}
		if m.pane == PaneConsents && i == m.selected {
			cursor = selectedStyle.Render("> ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if msg := reactive.Get(m.vms.Registry, m.vms.Consents.LastError); msg != "" {
		b.WriteString(errStyle.Render(msg) + "\n")
	}
	if line := submitLine(reactive.Get(m.vms.Registry, m.vms.Consents.Submit)); line != "" {
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewAudit() string {
	var b strings.Builder
	filter := reactive.Get(m.vms.Registry, m.vms.Audit.Filter)
	window := reactive.Get(m.vms.Registry, m.vms.Audit.Window)
	b.WriteString(headingStyle.Render("Audit Trail"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  filter %s · page %d/%d · %d entries",
		filter, window.Page, window.TotalPages, window.TotalCount)))
	b.WriteString("\n")

	entries := reactive.Get(m.vms.Registry, m.vms.Audit.Entries)
	if !entries.IsReady() {
		b.WriteString(m.spin.View() + mutedStyle.Render(" loading audit trail…"))
		return b.String()
	}

	visible := reactive.Get(m.vms.Registry, m.vms.Audit.Visible)
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("no matching entries"))
	}
	for _, e := range visible {
		b.WriteString(e.Title() + "\n" + mutedStyle.Render("  "+e.Summary()) + "\n")
	}

	if msg := reactive.Get(m.vms.Registry, m.vms.Audit.LastError); msg != "" {
		b.WriteString(errStyle.Render(msg))
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusBadge(s domain.ConsentStatus) string {
	switch s {
	case domain.ConsentActive:
		return okStyle.Render("active")
	case domain.ConsentExpired:
		return warnStyle.Render("expired")
	case domain.ConsentRevoked:
		return errStyle.Render("revoked")
	default:
		return string(s)
	}
}

func submitLine(s domain.SubmitState) string {
	switch s := s.(type) {
	case domain.Submitting:
		return warnStyle.Render("submitting…")
	case domain.SubmitSucceeded:
		if s.Ref != "" {
			return okStyle.Render("submitted · " + s.Ref.Short())
		}
		return okStyle.Render("submitted")
	case domain.SubmitFailed:
		return errStyle.Render("failed: " + s.Message)
	default:
		return ""
	}
}
