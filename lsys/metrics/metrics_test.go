package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

func TestObserverCountsPlayback(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := New(reg)
	require.NoError(t, err)

	now := time.Unix(0, 0)
	g, err := grammar.Parse("F]F", map[string]string{"F": "FF"})
	require.NoError(t, err)
	d, err := playback.New(
		expansion.New(g, expansion.Limits{MaxGeneration: 1}),
		turtle.New(turtle.Config{Step: 1, Heading: quarkgl.V3(1, 0, 0), Axis: quarkgl.V3(0, 1, 0)}),
		path.NewRecorder(time.Second),
		playback.Options{
			Clock:     func() time.Time { return now },
			Observers: []playback.Observer{o},
		},
	)
	require.NoError(t, err)

	// Generation 1 is "FF]FF": the cursor resumes at index 3.
	for i := 0; i < 6; i++ {
		_, err := d.Tick()
		require.NoError(t, err)
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(o.Symbols.WithLabelValues("F")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Symbols.WithLabelValues("]")))
	assert.Equal(t, 4.0, testutil.ToFloat64(o.Segments))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Underflows))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Expansions))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.FrozenTicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Generation))
	assert.Equal(t, 5.0, testutil.ToFloat64(o.Length))
	assert.Equal(t, 5.0, testutil.ToFloat64(o.Progress))
	assert.Equal(t, 4.0, testutil.ToFloat64(o.ActiveGauge))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.Settled))

	now = now.Add(time.Second)
	_, err = d.Tick()
	require.NoError(t, err)
	assert.Equal(t, 4.0, testutil.ToFloat64(o.Settled))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.ActiveGauge))
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
}
