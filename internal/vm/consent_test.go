package vm_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports/mocks"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
	"go.uber.org/mock/gomock"
)

var (
	testLender = domain.MustParseAddress("0xffeeddccbbaa99887766554433221100ffeeddcc")

	consentID1 = domain.MustParseHash32("0x1111111111111111111111111111111111111111111111111111111111111111")
	consentID2 = domain.MustParseHash32("0x2222222222222222222222222222222222222222222222222222222222222222")
)

func activeConsent(id domain.ConsentID, now time.Time) domain.ConsentRecord {
	return domain.ConsentRecord{
		ID:        id,
		Borrower:  testAddr,
		Lender:    testLender,
		Scopes:    domain.NewScopeSet("credit_score", "income"),
		GrantedAt: now.Add(-time.Hour),
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// expectLoad wires one full list fetch: the id list, then each record.
func expectLoad(wallet *mocks.MockWallet, consents *mocks.MockConsentRegistry, recs ...domain.ConsentRecord) {
	ids := make([]domain.Hash32, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	wallet.EXPECT().Address(gomock.Any()).Return(testAddr, nil)
	consents.EXPECT().BorrowerConsents(gomock.Any(), testAddr).Return(ids, nil)
	for _, r := range recs {
		consents.EXPECT().Consent(gomock.Any(), r.ID).Return(r, nil)
	}
}

func TestConsentVM_LoadPreservesLedgerOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		now := rt.Clock.Now()
		rec1 := activeConsent(consentID1, now)
		rec2 := activeConsent(consentID2, now)
		expectLoad(wallet, consents, rec1, rec2)

		cv := vm.NewConsentVM(rt, consents, wallet)
		require.False(t, reactive.Get(rt.Registry, cv.List).IsReady())

		synctest.Wait()
		items := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, items, 2)
		require.Equal(t, rec1, items[0].Record)
		require.Equal(t, rec2, items[1].Record)
		require.Equal(t, domain.ConsentActive, items[0].Status())
		require.True(t, items[0].CanRevoke())
	})
}

func TestConsentVM_ItemIdentitySurvivesRefresh(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		now := rt.Clock.Now()
		rec := activeConsent(consentID1, now)
		expectLoad(wallet, consents, rec)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()
		before := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, before, 1)

		expectLoad(wallet, consents, rec)
		cv.Refresh()
		synctest.Wait()

		after := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, after, 1)
		// Unchanged record content, identical view-model instance.
		require.Same(t, before[0], after[0])
	})
}

func TestConsentVM_RevokeReloadsAndReplacesItem(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		now := rt.Clock.Now()
		rec := activeConsent(consentID1, now)
		expectLoad(wallet, consents, rec)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()
		items := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, items, 1)

		revoked := rec
		revoked.Revoked = true
		consents.EXPECT().RevokeByID(gomock.Any(), rec.ID).Return(nil)
		expectLoad(wallet, consents, revoked)

		items[0].Revoke()
		synctest.Wait()

		after := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, after, 1)
		require.NotSame(t, items[0], after[0])
		require.Equal(t, domain.ConsentRevoked, after[0].Status())
		require.False(t, after[0].CanRevoke())
	})
}

func TestConsentVM_RevokeIgnoredWhileInFlight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		now := rt.Clock.Now()
		rec := activeConsent(consentID1, now)
		expectLoad(wallet, consents, rec)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()
		item := reactive.Get(rt.Registry, cv.Items)[0]

		proceed := make(chan struct{})
		consents.EXPECT().RevokeByID(gomock.Any(), rec.ID).DoAndReturn(func(context.Context, domain.Hash32) error {
			<-proceed
			return nil
		}).Times(1)
		revoked := rec
		revoked.Revoked = true
		expectLoad(wallet, consents, revoked)

		item.Revoke()
		item.Revoke() // in flight; ignored
		close(proceed)
		synctest.Wait()
	})
}

func TestConsentVM_GrantSuccess(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		expectLoad(wallet, consents)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()

		reactive.Set(rt.Registry, cv.LenderInput, testLender.String())
		reactive.Set(rt.Registry, cv.ScopesInput, "income, credit_score")
		reactive.Set(rt.Registry, cv.DurationDays, 7)

		now := rt.Clock.Now()
		granted := activeConsent(consentID1, now)
		consents.EXPECT().Grant(gomock.Any(), domain.GrantRequest{
			Lender:   testLender,
			Scopes:   domain.NewScopeSet("credit_score", "income"),
			Duration: 7 * 24 * time.Hour,
		}).Return(consentID1, nil)
		expectLoad(wallet, consents, granted)

		cv.Grant()
		require.Equal(t, domain.Submitting{}, reactive.Get(rt.Registry, cv.Submit))

		synctest.Wait()
		require.Equal(t, domain.SubmitSucceeded{Ref: consentID1}, reactive.Get(rt.Registry, cv.Submit))
		require.Len(t, reactive.Get(rt.Registry, cv.Items), 1)
	})
}

func TestConsentVM_GrantRejectsMalformedLender(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		expectLoad(wallet, consents)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()

		reactive.Set(rt.Registry, cv.LenderInput, "not-an-address")
		cv.Grant()

		st, ok := reactive.Get(rt.Registry, cv.Submit).(domain.SubmitFailed)
		require.True(t, ok)
		require.NotEmpty(t, st.Message)
	})
}

func TestConsentVM_GrantIgnoredWhileSubmitting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		expectLoad(wallet, consents)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()

		reactive.Set(rt.Registry, cv.LenderInput, testLender.String())
		reactive.Set(rt.Registry, cv.ScopesInput, "income")

		proceed := make(chan struct{})
		consents.EXPECT().Grant(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.GrantRequest) (domain.Hash32, error) {
			<-proceed
			return consentID1, nil
		}).Times(1)
		now := rt.Clock.Now()
		expectLoad(wallet, consents, activeConsent(consentID1, now))

		cv.Grant()
		cv.Grant() // in flight; ignored
		close(proceed)
		synctest.Wait()

		require.Equal(t, domain.SubmitSucceeded{Ref: consentID1}, reactive.Get(rt.Registry, cv.Submit))
	})
}

func TestConsentVM_LoadFailureSurfacesOnLastError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		wallet.EXPECT().Address(gomock.Any()).Return(testAddr, nil)
		consents.EXPECT().BorrowerConsents(gomock.Any(), testAddr).Return(nil, domain.ErrCallFailed)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()

		require.NotEmpty(t, reactive.Get(rt.Registry, cv.LastError))
		list := reactive.Get(rt.Registry, cv.List)
		require.True(t, list.IsReady())
		recs, _ := list.Get()
		require.Empty(t, recs)
	})
}

func TestConsentVM_RevokeAll(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rt := newRuntime(t)

		wallet := mocks.NewMockWallet(ctrl)
		consents := mocks.NewMockConsentRegistry(ctrl)
		now := rt.Clock.Now()
		rec := activeConsent(consentID1, now)
		expectLoad(wallet, consents, rec)

		cv := vm.NewConsentVM(rt, consents, wallet)
		synctest.Wait()

		revoked := rec
		revoked.Revoked = true
		consents.EXPECT().RevokeAll(gomock.Any(), testLender).Return(nil)
		expectLoad(wallet, consents, revoked)

		cv.RevokeAll(testLender)
		synctest.Wait()

		items := reactive.Get(rt.Registry, cv.Items)
		require.Len(t, items, 1)
		require.Equal(t, domain.ConsentRevoked, items[0].Status())
	})
}
