// Package wiring is the composition root: it declares the capability tags of
// the application and the layers that provide them. Nothing here holds state;
// layers are recipes, built per scope by the app.
package wiring

import (
	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/adapters/chain"
	"go.trai.ch/veri/internal/adapters/config"
	"go.trai.ch/veri/internal/adapters/offchain"
	"go.trai.ch/veri/internal/adapters/tui"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/vm"
)

// Capability tags. One per injectable; created once at package scope so tag
// identity is stable across layer compositions.
var (
	TagConfig = di.NewTag[config.Config]("config")
	TagLogger = di.NewTag[ports.Logger]("logger")
	TagTracer = di.NewTag[ports.Tracer]("tracer")
	TagClock  = di.NewTag[clockwork.Clock]("clock")

	TagLedger   = di.NewTag[*chain.Ledger]("chain.ledger")
	TagWallet   = di.NewTag[ports.Wallet]("ports.wallet")
	TagIdentity = di.NewTag[ports.IdentityRegistry]("ports.identity")
	TagConsents = di.NewTag[ports.ConsentRegistry]("ports.consents")
	TagAudit    = di.NewTag[ports.AuditLog]("ports.audit")
	TagStore    = di.NewTag[*offchain.Store]("offchain.store")

	TagRuntime    = di.NewTag[vm.Runtime]("vm.runtime")
	TagWalletVM   = di.NewTag[*vm.WalletVM]("vm.wallet")
	TagIdentityVM = di.NewTag[*vm.IdentityVM]("vm.identity")
	TagConsentVM  = di.NewTag[*vm.ConsentVM]("vm.consent")
	TagAuditVM    = di.NewTag[*vm.AuditVM]("vm.audit")
	TagDashboard  = di.NewTag[tui.VMs]("vm.dashboard")
)
