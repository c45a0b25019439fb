package vm_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
)

type fakeCap struct {
	n int64
}

func TestResolver_ResolveTransitionsToSuccess(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := newRuntime(t)
		r := vm.NewResolver(rt, di.NewMemoMap())

		var builds atomic.Int64
		tag := di.NewTag[*fakeCap]("test.cap")
		layer := di.Provide(tag, func(context.Context, *di.Container) (*fakeCap, error) {
			return &fakeCap{n: builds.Add(1)}, nil
		})

		cell := vm.Resolve(r, tag, layer)
		require.True(t, reactive.Get(rt.Registry, cell).IsInitial())

		synctest.Wait()
		got, ok := reactive.Get(rt.Registry, cell).Value()
		require.True(t, ok)
		require.Equal(t, int64(1), got.n)
	})
}

func TestResolver_SameTagSharesCellAndInstance(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := newRuntime(t)
		r := vm.NewResolver(rt, di.NewMemoMap())

		var builds atomic.Int64
		tag := di.NewTag[*fakeCap]("test.cap")
		layer := di.Provide(tag, func(context.Context, *di.Container) (*fakeCap, error) {
			return &fakeCap{n: builds.Add(1)}, nil
		})

		first := vm.Resolve(r, tag, layer)
		second := vm.Resolve(r, tag, layer)
		require.Same(t, first, second)

		synctest.Wait()
		third := vm.Resolve(r, tag, layer)
		require.Same(t, first, third)

		got, ok := reactive.Get(rt.Registry, first).Value()
		require.True(t, ok)
		require.Equal(t, int64(1), got.n)
		require.Equal(t, int64(1), builds.Load())
	})
}

func TestResolver_BuildFailureTransitionsToFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := newRuntime(t)
		r := vm.NewResolver(rt, di.NewMemoMap())

		boom := errors.New("ledger unreachable")
		tag := di.NewTag[*fakeCap]("test.failing")
		layer := di.Provide(tag, func(context.Context, *di.Container) (*fakeCap, error) {
			return nil, boom
		})

		cell := vm.Resolve(r, tag, layer)
		synctest.Wait()

		cause, failed := reactive.Get(rt.Registry, cell).Cause()
		require.True(t, failed)
		require.ErrorIs(t, cause, boom)
	})
}

func TestResolver_SharedPrerequisiteBuildsOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := newRuntime(t)
		r := vm.NewResolver(rt, di.NewMemoMap())

		var depBuilds atomic.Int64
		depTag := di.NewTag[*fakeCap]("test.dep")
		depLayer := di.Provide(depTag, func(context.Context, *di.Container) (*fakeCap, error) {
			return &fakeCap{n: depBuilds.Add(1)}, nil
		})

		aTag := di.NewTag[*fakeCap]("test.a")
		aLayer := di.Provide(aTag, func(ctx context.Context, c *di.Container) (*fakeCap, error) {
			return di.Dep(ctx, c, depTag)
		}, depTag.Key()).With(depLayer)

		bTag := di.NewTag[*fakeCap]("test.b")
		bLayer := di.Provide(bTag, func(ctx context.Context, c *di.Container) (*fakeCap, error) {
			return di.Dep(ctx, c, depTag)
		}, depTag.Key()).With(depLayer)

		aCell := vm.Resolve(r, aTag, aLayer)
		bCell := vm.Resolve(r, bTag, bLayer)
		synctest.Wait()

		a, ok := reactive.Get(rt.Registry, aCell).Value()
		require.True(t, ok)
		b, ok := reactive.Get(rt.Registry, bCell).Value()
		require.True(t, ok)
		require.Same(t, a, b)
		require.Equal(t, int64(1), depBuilds.Load())
	})
}

func TestResolver_Peek(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := newRuntime(t)
		r := vm.NewResolver(rt, di.NewMemoMap())

		tag := di.NewTag[*fakeCap]("test.peek")
		_, seen := vm.Peek(r, tag)
		require.False(t, seen)

		vm.Resolve(r, tag, di.Supply(tag, &fakeCap{n: 7}))
		synctest.Wait()

		res, seen := vm.Peek(r, tag)
		require.True(t, seen)
		got, ok := res.Value()
		require.True(t, ok)
		require.Equal(t, int64(7), got.n)
	})
}

func TestResult_Match(t *testing.T) {
	render := func(r vm.Result[*fakeCap]) string {
		return vm.MatchResult(r,
			func() string { return "loading" },
			func(c *fakeCap) string { return "ready" },
			func(err error) string { return "failed: " + err.Error() },
		)
	}

	require.Equal(t, "loading", render(vm.Initial[*fakeCap]()))
	require.Equal(t, "ready", render(vm.Success(&fakeCap{})))
	require.Equal(t, "failed: nope", render(vm.Failure[*fakeCap](errors.New("nope"))))
}
