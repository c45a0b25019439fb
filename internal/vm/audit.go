package vm

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/reactive"
)

// DefaultAuditPageSize is used when no page size is configured.
const DefaultAuditPageSize = 20

// AuditVM owns the audit trail view: the fetched entries, the kind filter and
// the page index as root cells, and the filtered list, pagination window and
// visible page as derivations. Changing the filter resets to page one;
// paging past either end is a no-op.
type AuditVM struct {
	rt    Runtime
	audit ports.AuditLog

	Entries   *reactive.Cell[reactive.Loadable[[]domain.AuditEntry]]
	LastError *reactive.Cell[string]

	// Filter and Page are root cells written only by the actions below.
	Filter *reactive.Cell[domain.AuditFilter]
	Page   *reactive.Cell[int]

	// Filtered is Entries narrowed by Filter, in ledger order.
	Filtered *reactive.Cell[[]domain.AuditEntry]

	// Window is the pagination over Filtered. The page index is clamped here,
	// so a filter change that shrinks the list can never show an out-of-range
	// page even before the reset lands.
	Window *reactive.Cell[domain.Pagination]

	// Visible is the current page of entry view-models.
	Visible *reactive.Cell[[]*AuditEntryVM]

	pageSize int
	family   *reactive.Family[domain.AuditEntry, *AuditEntryVM]
}

// NewAuditVM constructs the view-model and starts the initial fetch. A
// pageSize below one falls back to DefaultAuditPageSize.
func NewAuditVM(rt Runtime, audit ports.AuditLog, pageSize int) *AuditVM {
	if pageSize < 1 {
		pageSize = DefaultAuditPageSize
	}
	vm := &AuditVM{
		rt:        rt,
		audit:     audit,
		Entries:   reactive.New("audit.entries", reactive.Pending[[]domain.AuditEntry](rt.Clock.Now())),
		LastError: reactive.New("audit.lastError", ""),
		Filter:    reactive.New("audit.filter", domain.FilterAll),
		Page:      reactive.New("audit.page", 1),
		pageSize:  pageSize,
	}
	vm.family = reactive.NewFamily(func(e domain.AuditEntry) *AuditEntryVM {
		return &AuditEntryVM{Entry: e}
	})

	vm.Filtered = reactive.Derive("audit.filtered", func(g reactive.Getter) []domain.AuditEntry {
		entries := reactive.Value(g, vm.Entries).OrElse(nil)
		filter := reactive.Value(g, vm.Filter)
		out := make([]domain.AuditEntry, 0, len(entries))
		for _, e := range entries {
			if filter.Matches(e.Kind) {
				out = append(out, e)
			}
		}
		return out
	})

	vm.Window = reactive.Derive("audit.window", func(g reactive.Getter) domain.Pagination {
		total := len(reactive.Value(g, vm.Filtered))
		page := reactive.Value(g, vm.Page)
		return domain.NewPagination(page, vm.pageSize, total)
	})

	vm.Visible = reactive.Derive("audit.visible", func(g reactive.Getter) []*AuditEntryVM {
		filtered := reactive.Value(g, vm.Filtered)
		from, to := reactive.Value(g, vm.Window).Bounds()
		page := filtered[from:to]
		items := make([]*AuditEntryVM, len(page))
		for i, e := range page {
			items[i] = vm.family.Get(e)
		}
		vm.family.Retain(page)
		return items
	})

	rt.Scope.Go(vm.load)
	return vm
}

// load fetches the connected account's access history.
func (vm *AuditVM) load(ctx context.Context) {
	ctx, span := vm.rt.Tracer.Start(ctx, "audit.load")
	defer span.End()

	entries, err := vm.audit.OwnAccessHistory(ctx)
	if err != nil {
		span.RecordError(err)
		vm.rt.Log.Error(err)
		reactive.Set(vm.rt.Registry, vm.LastError, err.Error())
		reactive.Set(vm.rt.Registry, vm.Entries, reactive.Ready[[]domain.AuditEntry](nil))
		return
	}
	span.SetAttribute("audit.count", len(entries))
	reactive.Set(vm.rt.Registry, vm.LastError, "")
	reactive.Set(vm.rt.Registry, vm.Entries, reactive.Ready(entries))
}

// Refresh reloads the trail, keeping filter and page position.
func (vm *AuditVM) Refresh() {
	vm.rt.Scope.Go(vm.load)
}

// SetFilter switches the kind filter and resets to the first page. Setting
// the current filter again still resets the page.
func (vm *AuditVM) SetFilter(f domain.AuditFilter) {
	reactive.Set(vm.rt.Registry, vm.Filter, f)
	reactive.Set(vm.rt.Registry, vm.Page, 1)
}

// CycleFilter advances to the next filter in the dashboard order.
func (vm *AuditVM) CycleFilter() {
	vm.SetFilter(reactive.Get(vm.rt.Registry, vm.Filter).Next())
}

// NextPage advances one page; at the last page it is a no-op.
func (vm *AuditVM) NextPage() {
	window := reactive.Get(vm.rt.Registry, vm.Window)
	reactive.Update(vm.rt.Registry, vm.Page, func(p int) (int, bool) {
		if !window.HasNext() {
			return p, false
		}
		return window.Page + 1, true
	})
}

// PrevPage goes back one page; at the first page it is a no-op.
func (vm *AuditVM) PrevPage() {
	window := reactive.Get(vm.rt.Registry, vm.Window)
	reactive.Update(vm.rt.Registry, vm.Page, func(p int) (int, bool) {
		if !window.HasPrev() {
			return p, false
		}
		return window.Page - 1, true
	})
}

// AuditEntryVM is the display view-model for one trail row. Identity follows
// the entry's content, so selection-style per-row state added later survives
// page recomputation.
type AuditEntryVM struct {
	Entry domain.AuditEntry
}

// Title returns the one-line row header.
func (e *AuditEntryVM) Title() string {
	return string(e.Entry.Kind) + " · " + e.Entry.Actor.Short()
}

// Summary returns the detail line shown under the title.
func (e *AuditEntryVM) Summary() string {
	s := e.Entry.At.Format("2006-01-02 15:04") + " · " + e.Entry.Subject.Short()
	if e.Entry.Scopes.Len() > 0 {
		s += " · " + e.Entry.Scopes.String()
	}
	if e.Entry.Detail != "" {
		s += " · " + e.Entry.Detail
	}
	return s
}
