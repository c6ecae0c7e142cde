package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "not_found", Outcome(domain.NotFoundf("menu %s", "x")))
	assert.Equal(t, "validation", Outcome(domain.NewValidationError("name", "is required")))
	assert.Equal(t, "conflict", Outcome(domain.Conflictf("cycle")))
	assert.Equal(t, "error", Outcome(errors.New("disk I/O error")))
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "move-menu",
		Duration: 3 * time.Millisecond,
		Err:      domain.Conflictf("cycle"),
		Fields:   map[string]any{"id": "abc"},
	})

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=move-menu")
	assert.Contains(t, out, "outcome=conflict")
	assert.Contains(t, out, "id=abc")
	assert.Contains(t, out, "level=ERROR")
}

func TestMetricsUseCaseObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewMetricsUseCaseObserver(reg)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "create-menu", Success: true, Duration: time.Millisecond})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "create-menu", Success: true, Duration: time.Millisecond})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "get-menu", Err: domain.ErrNotFound})

	m := obs.(*metricsUseCaseObserver)
	assert.Equal(t, 2.0, promtest.ToFloat64(m.total.WithLabelValues("create-menu", "ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.total.WithLabelValues("get-menu", "not_found")))

	n, err := promtest.GatherAndCount(reg, "menus_use_case_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one histogram series per use case")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	fanout := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})
	fanout.ObserveUseCase(context.Background(), UseCaseEvent{Name: "tree"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
