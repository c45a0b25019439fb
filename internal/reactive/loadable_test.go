package reactive_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/internal/reactive"
)

func TestLoadablePending(t *testing.T) {
	since := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	l := reactive.Pending[int](since)

	require.False(t, l.IsReady())
	require.Equal(t, since, l.Since())

	_, ok := l.Get()
	require.False(t, ok)
	require.Equal(t, -1, l.OrElse(-1))
}

func TestLoadableReady(t *testing.T) {
	l := reactive.Ready(7)
	require.True(t, l.IsReady())
	v, ok := l.Get()
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Equal(t, 7, l.OrElse(-1))
}

func TestLoadableMapNeverTouchesPending(t *testing.T) {
	since := time.Unix(100, 0)
	mapped := reactive.MapLoadable(reactive.Pending[int](since), func(int) string {
		t.Fatal("fn must not run for pending")
		return ""
	})
	require.False(t, mapped.IsReady())
	require.Equal(t, since, mapped.Since())
}

func TestLoadableMapReady(t *testing.T) {
	mapped := reactive.MapLoadable(reactive.Ready(41), func(v int) string {
		return strconv.Itoa(v + 1)
	})
	v, ok := mapped.Get()
	require.True(t, ok)
	require.Equal(t, "42", v)
}

func TestLoadableMatch(t *testing.T) {
	got := reactive.MatchLoadable(reactive.Ready("x"),
		func(time.Time) string { return "pending" },
		func(v string) string { return "ready:" + v },
	)
	require.Equal(t, "ready:x", got)

	got = reactive.MatchLoadable(reactive.Pending[string](time.Unix(5, 0)),
		func(since time.Time) string { return "pending:" + strconv.FormatInt(since.Unix(), 10) },
		func(v string) string { return "ready:" + v },
	)
	require.Equal(t, "pending:5", got)
}
