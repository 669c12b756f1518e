package introspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/logging"
	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
	"arbor/lsys/metrics"
	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

type fixture struct {
	now     time.Time
	pub     *Publisher
	d       *playback.Driver
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Unix(1700000000, 0)}
	clock := func() time.Time { return f.now }

	g, err := grammar.Parse("F+F]F", nil)
	require.NoError(t, err)
	d, err := playback.New(
		expansion.New(g, expansion.Limits{}),
		turtle.New(turtle.Config{
			Angle:   quarkgl.DegToRad(90),
			Step:    5,
			Heading: quarkgl.V3(-1, 0, 0),
			Axis:    quarkgl.V3(0, 1, 0),
		}),
		path.NewRecorder(300*time.Millisecond),
		playback.Options{Clock: clock},
	)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	f.pub = NewPublisher(d.Info(), 4, clock)
	d.Observe(f.pub)
	d.Observe(m)
	f.d = d
	f.handler = NewHandler(f.pub, reg, logging.NewNop())
	return f
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestStateReflectsPlayback(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		_, err := f.d.Tick()
		require.NoError(t, err)
	}

	w := f.get(t, "/state")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var st State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 5, st.Progress)
	assert.Equal(t, 0, st.Generation)
	assert.Equal(t, 3, st.Segments)
	assert.Equal(t, 3, st.Active)
	assert.Equal(t, 1, st.Underflows)
	assert.Equal(t, "+F]F", st.Tail)
	assert.Equal(t, "F+F]F", st.Info.Axiom)
	require.NotNil(t, st.Bounds)
	// F to (-5,0,0), + turns to (0,0,5), F to (-5,0,5), ] ignored, F to (-5,0,10).
	assert.Equal(t, Point{-5, 0, 0}, st.Bounds.Min)
	assert.Equal(t, Point{0, 0, 10}, st.Bounds.Max)
}

func TestSegmentsPaginationAndState(t *testing.T) {
	f := newFixture(t)
	_, err := f.d.Tick()
	require.NoError(t, err)
	f.now = f.now.Add(time.Second)
	for i := 0; i < 2; i++ {
		_, err := f.d.Tick()
		require.NoError(t, err)
	}

	var segs []SegmentView
	w := f.get(t, "/segments")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segs))
	require.Len(t, segs, 2)
	assert.Equal(t, "settled", segs[0].State)
	assert.Equal(t, "active", segs[1].State)

	w = f.get(t, "/segments?from=1&limit=5")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segs))
	require.Len(t, segs, 1)
	assert.Equal(t, 1, segs[0].Index)

	w = f.get(t, "/segments?from=1&limit=9223372036854775807")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segs))
	require.Len(t, segs, 1)

	w = f.get(t, "/segments?from=9")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segs))
	assert.Empty(t, segs)
}

func TestSegmentsRejectsBadParams(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/segments?from=x").Code)
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/segments?limit=-1").Code)
}

func TestSegmentsPageIsBounded(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < MaxSegmentsPage+2; i++ {
		f.pub.OnStep(playback.Step{
			Symbol:   grammar.Forward,
			Consumed: true,
			Emission: turtle.Emission{Kind: turtle.EmitSegment},
			Segment:  path.Segment{SettleAt: f.now},
		})
	}
	assert.Len(t, f.pub.Segments(0, 0), MaxSegmentsPage)
	assert.Len(t, f.pub.Segments(1, MaxSegmentsPage*2), MaxSegmentsPage)
	assert.Len(t, f.pub.Segments(MaxSegmentsPage, 0), 2)
	assert.Equal(t, MaxSegmentsPage+2, f.pub.State().Segments)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	_, err := f.d.Tick()
	require.NoError(t, err)

	w := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "arbor_segments_emitted_total 1"))
}
