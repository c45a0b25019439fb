package di_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/internal/di"
)

type fakeClient struct{ endpoint string }

type fakeService struct{ client *fakeClient }

var (
	clientTag  = di.NewTag[*fakeClient]("test.client")
	serviceTag = di.NewTag[*fakeService]("test.service")
)

func clientLayer(counter *int) di.Layer {
	return di.Provide(clientTag, func(context.Context, *di.Container) (*fakeClient, error) {
		*counter++
		return &fakeClient{endpoint: "mem://ledger"}, nil
	})
}

func serviceLayer() di.Layer {
	return di.Provide(serviceTag, func(ctx context.Context, c *di.Container) (*fakeService, error) {
		client, err := di.Dep(ctx, c, clientTag)
		if err != nil {
			return nil, err
		}
		return &fakeService{client: client}, nil
	}, clientTag.Key())
}

func TestBuildResolvesDependencies(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	built := 0
	layer := serviceLayer().With(clientLayer(&built))

	c, err := di.Build(t.Context(), layer, di.NewMemoMap(), scope)
	require.NoError(t, err)

	svc, err := di.Get(c, serviceTag)
	require.NoError(t, err)
	require.NotNil(t, svc.client)

	// With wires the client in without re-exporting it.
	_, err = di.Get(c, clientTag)
	require.ErrorIs(t, err, di.ErrNotProvided)

	exposed, err := di.Build(t.Context(), serviceLayer().WithExposed(clientLayer(&built)), di.NewMemoMap(), scope)
	require.NoError(t, err)
	_, err = di.Get(exposed, clientTag)
	require.NoError(t, err, "WithExposed re-exports the dependency")
}

func TestSharedDependencyConstructedOnce(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	built := 0
	shared := clientLayer(&built)

	otherTag := di.NewTag[*fakeService]("test.service2")
	other := di.Provide(otherTag, func(ctx context.Context, c *di.Container) (*fakeService, error) {
		client, err := di.Dep(ctx, c, clientTag)
		if err != nil {
			return nil, err
		}
		return &fakeService{client: client}, nil
	}, clientTag.Key())

	layer := di.Merge(serviceLayer().With(shared), other.With(shared))

	c, err := di.Build(t.Context(), layer, di.NewMemoMap(), scope)
	require.NoError(t, err)
	require.Equal(t, 1, built, "diamond dependency must construct once")

	a, err := di.Get(c, serviceTag)
	require.NoError(t, err)
	b, err := di.Get(c, otherTag)
	require.NoError(t, err)
	require.Same(t, a.client, b.client, "both dependents share the instance")
}

func TestMemoMapSharedAcrossBuilds(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	built := 0
	layer := serviceLayer().With(clientLayer(&built))
	memo := di.NewMemoMap()

	_, err := di.Build(t.Context(), layer, memo, scope)
	require.NoError(t, err)
	_, err = di.Build(t.Context(), layer, memo, scope)
	require.NoError(t, err)

	require.Equal(t, 1, built, "second build must reuse the memoized instances")
}

func TestFinalizersRunInReverseOrder(t *testing.T) {
	scope := di.NewScope(t.Context())

	var order []string
	record := func(name string) di.Layer {
		tag := di.NewTag[string]("test.fin." + name)
		return di.Provide(tag, func(_ context.Context, c *di.Container) (string, error) {
			c.Scope().Defer(name, func(context.Context) error {
				order = append(order, name)
				return nil
			})
			return name, nil
		})
	}

	leaf := record("leaf")
	midTag := di.NewTag[string]("test.fin.mid")
	mid := di.Provide(midTag, func(ctx context.Context, c *di.Container) (string, error) {
		c.Scope().Defer("mid", func(context.Context) error {
			order = append(order, "mid")
			return nil
		})
		return "mid", nil
	}, leaf.Exports()...).With(leaf)

	_, err := di.Build(t.Context(), mid, di.NewMemoMap(), scope)
	require.NoError(t, err)

	require.NoError(t, scope.Close(context.Background()))
	require.Equal(t, []string{"mid", "leaf"}, order, "dependents tear down before dependencies")
}

func TestCycleDetection(t *testing.T) {
	aTag := di.NewTag[string]("test.cycle.a")
	bTag := di.NewTag[string]("test.cycle.b")

	a := di.Provide(aTag, func(ctx context.Context, c *di.Container) (string, error) {
		return di.Dep(ctx, c, bTag)
	}, bTag.Key())
	b := di.Provide(bTag, func(ctx context.Context, c *di.Container) (string, error) {
		return di.Dep(ctx, c, aTag)
	}, aTag.Key())

	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	_, err := di.Build(t.Context(), di.Merge(a, b), di.NewMemoMap(), scope)
	require.ErrorIs(t, err, di.ErrCycleDetected)
}

func TestUndeclaredCycleDetectedAtResolution(t *testing.T) {
	// Builders that Get each other without declaring the edge still fail
	// with a cycle error instead of deadlocking.
	aTag := di.NewTag[string]("test.ucycle.a")
	bTag := di.NewTag[string]("test.ucycle.b")

	a := di.Provide(aTag, func(ctx context.Context, c *di.Container) (string, error) {
		return di.Dep(ctx, c, bTag)
	})
	b := di.Provide(bTag, func(ctx context.Context, c *di.Container) (string, error) {
		return di.Dep(ctx, c, aTag)
	})

	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	_, err := di.Build(t.Context(), di.Merge(a, b), di.NewMemoMap(), scope)
	require.ErrorIs(t, err, di.ErrCycleDetected)
}

func TestMissingProvider(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	_, err := di.Build(t.Context(), serviceLayer(), di.NewMemoMap(), scope)
	require.ErrorIs(t, err, di.ErrNotProvided)
}

func TestDuplicateProvider(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	one := di.Supply(clientTag, &fakeClient{endpoint: "one"})
	two := di.Supply(clientTag, &fakeClient{endpoint: "two"})

	_, err := di.Build(t.Context(), di.Merge(one, two), di.NewMemoMap(), scope)
	require.ErrorIs(t, err, di.ErrDuplicateProvider)
}

func TestSameLayerWiredTwiceIsTolerated(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	built := 0
	shared := clientLayer(&built)
	layer := di.Merge(shared, serviceLayer().With(shared))

	_, err := di.Build(t.Context(), layer, di.NewMemoMap(), scope)
	require.NoError(t, err)
	require.Equal(t, 1, built)
}

func TestConstructionFailurePropagates(t *testing.T) {
	scope := di.NewScope(t.Context())
	defer scope.Close(context.Background()) //nolint:errcheck

	boom := di.Provide(clientTag, func(context.Context, *di.Container) (*fakeClient, error) {
		return nil, context.DeadlineExceeded
	})

	_, err := di.Build(t.Context(), boom, di.NewMemoMap(), scope)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScopeCancelsBackgroundWork(t *testing.T) {
	scope := di.NewScope(t.Context())

	stopped := make(chan struct{})
	scope.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	require.NoError(t, scope.Close(context.Background()))

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("background task not cancelled on scope close")
	}

	// Forking after close is a no-op.
	scope.Go(func(context.Context) { t.Error("must not run") })
	time.Sleep(10 * time.Millisecond)
}

func TestTagEqualityIsNominal(t *testing.T) {
	a := di.NewTag[string]("same-name")
	b := di.NewTag[string]("same-name")
	require.NotEqual(t, a.Key(), b.Key(), "identity is per NewTag call, not per name")
	require.Equal(t, a.Key(), a.Key())
}
