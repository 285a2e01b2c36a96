package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/pkg/dsl"
	"github.com/inkforge/inkforge/pkg/observability"
)

func TestMetrics_PlayCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	game := dsl.New("Counter Walk").
		Scene("start").
		Text("Begin.").
		Choice("Onward", "end").
		End().
		Scene("end").
		Text("Done.").
		End().
		Build()

	engine := inkforge.NewEngine(game, inkforge.WithLifecycleHooks(m.Hooks()))

	ctx := context.Background()
	state, err := engine.Start(ctx, "counter-session")
	require.NoError(t, err)

	_, err = engine.Choose(ctx, state, 0)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SceneVisits.WithLabelValues("start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SceneVisits.WithLabelValues("end")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChoicesTaken.WithLabelValues("start")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ChoicesTaken.WithLabelValues("end")))
}

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.SceneVisits.WithLabelValues("start").Inc()
	m.ChoicesTaken.WithLabelValues("start").Inc()
	m.ParseFailures.Inc()
	m.ParseDuration.Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.GetName()
	}
	assert.ElementsMatch(t, []string{
		"inkforge_scene_visits_total",
		"inkforge_choices_taken_total",
		"inkforge_parse_failures_total",
		"inkforge_parse_duration_seconds",
	}, names)
}
