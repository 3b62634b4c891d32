package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI returns canned data, or err when set. before runs inside every call
// so tests can observe the store while a fetch is in flight.
type fakeAPI struct {
	mu     sync.Mutex
	err    error
	before func()
	calls  int
}

func (f *fakeAPI) enter() error {
	f.mu.Lock()
	f.calls++
	before, err := f.before, f.err
	f.mu.Unlock()
	if before != nil {
		before()
	}
	return err
}

func (f *fakeAPI) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeAPI) TimelineEvents(ctx context.Context, p api.EventsParams) ([]models.TimelineEvent, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.TimelineEvent{{Date: "2024-01-01", Type: "Political", Title: "Political Event 0", Impact: 0.3}}, nil
}

func (f *fakeAPI) TimelineSummary(ctx context.Context) (*models.TimelineSummary, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return &models.TimelineSummary{TotalEvents: 1, AverageImpact: 0.3}, nil
}

func (f *fakeAPI) ProbabilityAnalysis(ctx context.Context, category string, timeframe int) (*models.ProbabilityData, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return &models.ProbabilityData{Category: category, Timeframe: timeframe, OverallProbability: 0.4}, nil
}

func (f *fakeAPI) ProbabilityCategories(ctx context.Context) ([]string, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []string{"Political", "Economic"}, nil
}

func (f *fakeAPI) ProbabilityHistorical(ctx context.Context, p api.HistoricalParams) ([]models.HistoricalPoint, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.HistoricalPoint{{Date: "2023-06-01", Probability: 0.5}}, nil
}

func (f *fakeAPI) NarrativeClusters(ctx context.Context, p api.ClustersParams) ([]models.NarrativeCluster, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.NarrativeCluster{{ID: "cluster_0", Theme: "Climate Change"}}, nil
}

func (f *fakeAPI) NarrativeTrends(ctx context.Context, timeframe string) (*models.NarrativeTrends, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return &models.NarrativeTrends{Timeframe: timeframe}, nil
}

func (f *fakeAPI) ClusterDetails(ctx context.Context, clusterID string) (*models.NarrativeCluster, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return &models.NarrativeCluster{ID: clusterID}, nil
}

func (f *fakeAPI) GeospatialPoints(ctx context.Context, p api.PointsParams) ([]models.GeospatialPoint, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.GeospatialPoint{{ID: "point_EU_0", Region: "Europe", Intensity: 0.4}}, nil
}

func (f *fakeAPI) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.HeatmapPoint{{Weight: 0.4}}, nil
}

func (f *fakeAPI) Regions(ctx context.Context) ([]models.Region, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.Region{{Name: "Europe"}}, nil
}

func (f *fakeAPI) SpatialClusters(ctx context.Context, p api.SpatialClustersParams) ([]models.SpatialCluster, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.SpatialCluster{{Radius: 300}}, nil
}

type actionCase struct {
	name    string
	group   Group
	msg     string
	invoke  func(ctx context.Context, s *Store)
	hasData func(st State) bool
}

func actionCases() []actionCase {
	return []actionCase{
		{"timeline events", GroupTimeline, MsgTimelineEvents,
			func(ctx context.Context, s *Store) { s.FetchTimelineEvents(ctx, api.EventsParams{}) },
			func(st State) bool { return len(st.Timeline.Events) == 1 }},
		{"timeline summary", GroupTimeline, MsgTimelineSummary,
			func(ctx context.Context, s *Store) { s.FetchTimelineSummary(ctx) },
			func(st State) bool { return st.Timeline.Summary != nil }},
		{"probability analysis", GroupProbability, MsgProbabilityAnalysis,
			func(ctx context.Context, s *Store) { s.FetchProbabilityAnalysis(ctx, "Economic", 30) },
			func(st State) bool { return st.Probability.Analysis != nil }},
		{"categories", GroupProbability, MsgCategories,
			func(ctx context.Context, s *Store) { s.FetchCategories(ctx) },
			func(st State) bool { return len(st.Probability.Categories) == 2 }},
		{"historical", GroupProbability, MsgHistoricalData,
			func(ctx context.Context, s *Store) { s.FetchHistoricalData(ctx, api.HistoricalParams{Category: "Social"}) },
			func(st State) bool { return len(st.Probability.Historical) == 1 }},
		{"narrative clusters", GroupNarratives, MsgNarrativeClusters,
			func(ctx context.Context, s *Store) { s.FetchNarrativeClusters(ctx, api.ClustersParams{}) },
			func(st State) bool { return len(st.Narratives.Clusters) == 1 }},
		{"narrative trends", GroupNarratives, MsgNarrativeTrends,
			func(ctx context.Context, s *Store) { s.FetchNarrativeTrends(ctx, "7d") },
			func(st State) bool { return st.Narratives.Trends != nil }},
		{"cluster details", GroupNarratives, MsgClusterDetails,
			func(ctx context.Context, s *Store) { s.FetchClusterDetails(ctx, "cluster_0") },
			func(st State) bool { return st.Narratives.Selected != nil }},
		{"geospatial points", GroupGeospatial, MsgGeospatialPoints,
			func(ctx context.Context, s *Store) { s.FetchGeospatialPoints(ctx, api.PointsParams{}) },
			func(st State) bool { return len(st.Geospatial.Points) == 1 }},
		{"heatmap", GroupGeospatial, MsgHeatmapData,
			func(ctx context.Context, s *Store) { s.FetchHeatmapData(ctx) },
			func(st State) bool { return len(st.Geospatial.Heatmap) == 1 }},
		{"regions", GroupGeospatial, MsgRegions,
			func(ctx context.Context, s *Store) { s.FetchRegions(ctx) },
			func(st State) bool { return len(st.Geospatial.Regions) == 1 }},
		{"spatial clusters", GroupGeospatial, MsgSpatialClusters,
			func(ctx context.Context, s *Store) { s.FetchSpatialClusters(ctx, api.SpatialClustersParams{}) },
			func(st State) bool { return len(st.Geospatial.SpatialClusters) == 1 }},
	}
}

func TestNew_InitialState(t *testing.T) {
	s := New(&fakeAPI{})
	st := s.Snapshot()

	for _, g := range Groups {
		assert.False(t, st.IsLoading(g), "group %s", g)
	}
	assert.Empty(t, st.Error)
	assert.Nil(t, st.Timeline.Events)
	assert.Nil(t, st.Probability.Analysis)
	assert.False(t, st.AnyLoading())
}

func TestActions_LoadingFlagLifecycle(t *testing.T) {
	for _, tc := range actionCases() {
		for _, fail := range []bool{false, true} {
			name := tc.name + "/success"
			if fail {
				name = tc.name + "/failure"
			}
			t.Run(name, func(t *testing.T) {
				fake := &fakeAPI{}
				if fail {
					fake.err = errBackend
				}
				s := New(fake)

				var inFlight bool
				fake.before = func() { inFlight = s.Snapshot().IsLoading(tc.group) }

				tc.invoke(context.Background(), s)

				st := s.Snapshot()
				assert.True(t, inFlight, "loading flag must be set while the request is in flight")
				assert.False(t, st.IsLoading(tc.group), "loading flag must be cleared after settling")
				if fail {
					assert.Equal(t, tc.msg, st.Error)
					assert.False(t, tc.hasData(st))
				} else {
					assert.Empty(t, st.Error)
					assert.True(t, tc.hasData(st))
				}
			})
		}
	}
}

func TestActions_SuccessClearsPriorError(t *testing.T) {
	for _, tc := range actionCases() {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAPI{err: errBackend}
			s := New(fake)

			s.FetchRegions(context.Background())
			require.Equal(t, MsgRegions, s.Snapshot().Error)

			fake.setErr(nil)
			tc.invoke(context.Background(), s)
			assert.Empty(t, s.Snapshot().Error)
		})
	}
}

func TestActions_FailureKeepsStaleData(t *testing.T) {
	for _, tc := range actionCases() {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAPI{}
			s := New(fake)

			tc.invoke(context.Background(), s)
			before := s.Snapshot()
			require.True(t, tc.hasData(before))

			fake.setErr(errBackend)
			tc.invoke(context.Background(), s)

			after := s.Snapshot()
			assert.True(t, tc.hasData(after), "stale data must remain visible")
			assert.Equal(t, before.Timeline, after.Timeline)
			assert.Equal(t, before.Probability, after.Probability)
			assert.Equal(t, before.Narratives, after.Narratives)
			assert.Equal(t, before.Geospatial, after.Geospatial)
			assert.Equal(t, tc.msg, after.Error)
		})
	}
}

func TestActions_Idempotent(t *testing.T) {
	for _, tc := range actionCases() {
		t.Run(tc.name, func(t *testing.T) {
			once := New(&fakeAPI{})
			tc.invoke(context.Background(), once)

			twice := New(&fakeAPI{})
			tc.invoke(context.Background(), twice)
			tc.invoke(context.Background(), twice)

			assert.Equal(t, once.Snapshot(), twice.Snapshot())
		})
	}
}

func TestSharedErrorSlot_LastFailureWins(t *testing.T) {
	s := New(&fakeAPI{err: errBackend})

	s.FetchTimelineEvents(context.Background(), api.EventsParams{})
	assert.Equal(t, MsgTimelineEvents, s.Snapshot().Error)

	s.FetchGeospatialPoints(context.Background(), api.PointsParams{})
	assert.Equal(t, MsgGeospatialPoints, s.Snapshot().Error)
}

// gatedAPI blocks TimelineEvents per event type until the test releases it.
type gatedAPI struct {
	fakeAPI
	started map[string]chan struct{}
	release map[string]chan struct{}
}

func newGatedAPI(keys ...string) *gatedAPI {
	g := &gatedAPI{started: map[string]chan struct{}{}, release: map[string]chan struct{}{}}
	for _, k := range keys {
		g.started[k] = make(chan struct{})
		g.release[k] = make(chan struct{})
	}
	return g
}

func (g *gatedAPI) TimelineEvents(ctx context.Context, p api.EventsParams) ([]models.TimelineEvent, error) {
	close(g.started[p.EventType])
	<-g.release[p.EventType]
	return []models.TimelineEvent{{Type: p.EventType, Title: p.EventType + " response"}}, nil
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}

func TestRace_LastResolvedWins(t *testing.T) {
	gated := newGatedAPI("X", "Y")
	s := New(gated)
	ctx := context.Background()

	doneX := Async(func() { s.FetchTimelineEvents(ctx, api.EventsParams{EventType: "X"}) })
	waitFor(t, gated.started["X"])
	doneY := Async(func() { s.FetchTimelineEvents(ctx, api.EventsParams{EventType: "Y"}) })
	waitFor(t, gated.started["Y"])

	// Y was issued last but resolves first.
	close(gated.release["Y"])
	waitFor(t, doneY)
	require.Equal(t, "Y", s.Snapshot().Timeline.Events[0].Type)

	// The single loading flag was already cleared by Y even though X is in flight.
	assert.False(t, s.Snapshot().IsLoading(GroupTimeline))

	close(gated.release["X"])
	waitFor(t, doneX)

	st := s.Snapshot()
	require.Len(t, st.Timeline.Events, 1)
	assert.Equal(t, "X", st.Timeline.Events[0].Type, "the response that resolves last overwrites the store")
	assert.False(t, st.IsLoading(GroupTimeline))
}

func TestSubscribe(t *testing.T) {
	s := New(&fakeAPI{})

	var mu sync.Mutex
	var seen []State
	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	s.FetchRegions(context.Background())

	mu.Lock()
	require.Len(t, seen, 3, "loading on, data applied, loading off")
	assert.True(t, seen[0].IsLoading(GroupGeospatial))
	assert.Empty(t, seen[0].Geospatial.Regions)
	assert.True(t, seen[1].IsLoading(GroupGeospatial))
	assert.Len(t, seen[1].Geospatial.Regions, 1)
	assert.False(t, seen[2].IsLoading(GroupGeospatial))
	mu.Unlock()

	unsubscribe()
	s.FetchRegions(context.Background())

	mu.Lock()
	assert.Len(t, seen, 3, "no notifications after unsubscribe")
	mu.Unlock()
}

// gatedPointsAPI blocks GeospatialPoints until release is closed.
type gatedPointsAPI struct {
	fakeAPI
	started  chan struct{}
	release  chan struct{}
	returned chan struct{}
}

func (g *gatedPointsAPI) GeospatialPoints(ctx context.Context, p api.PointsParams) ([]models.GeospatialPoint, error) {
	close(g.started)
	<-g.release
	defer close(g.returned)
	return g.fakeAPI.GeospatialPoints(ctx, p)
}

func TestSubscribe_DeliversInMutationOrder(t *testing.T) {
	gated := &gatedPointsAPI{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		returned: make(chan struct{}),
	}
	s := New(gated)
	ctx := context.Background()

	holding := make(chan struct{})
	resume := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var last State
	s.Subscribe(func(st State) {
		// Stall delivery of the timeline's settled snapshot, taken while
		// points are still loading.
		if !st.IsLoading(GroupTimeline) && len(st.Timeline.Events) == 1 &&
			st.IsLoading(GroupGeospatial) && len(st.Geospatial.Points) == 0 {
			once.Do(func() {
				close(holding)
				<-resume
			})
		}
		mu.Lock()
		last = st
		mu.Unlock()
	})

	donePoints := Async(func() { s.FetchGeospatialPoints(ctx, api.PointsParams{}) })
	waitFor(t, gated.started)
	doneTimeline := Async(func() { s.FetchTimelineEvents(ctx, api.EventsParams{}) })
	waitFor(t, holding)

	// Let the points fetch resolve while the timeline delivery is stalled.
	close(gated.release)
	waitFor(t, gated.returned)
	time.Sleep(50 * time.Millisecond)
	close(resume)

	waitFor(t, doneTimeline)
	waitFor(t, donePoints)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, last.IsLoading(GroupGeospatial), "a stale snapshot was delivered last")
	assert.Len(t, last.Geospatial.Points, 1)
	assert.Equal(t, s.Snapshot(), last)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New(&fakeAPI{})
	st := s.Snapshot()
	st.Loading[GroupTimeline] = true

	assert.False(t, s.Snapshot().IsLoading(GroupTimeline))
}

func TestStoresAreIndependent(t *testing.T) {
	a := New(&fakeAPI{})
	b := New(&fakeAPI{err: errBackend})

	a.FetchCategories(context.Background())
	b.FetchCategories(context.Background())

	assert.Len(t, a.Snapshot().Probability.Categories, 2)
	assert.Empty(t, a.Snapshot().Error)
	assert.Empty(t, b.Snapshot().Probability.Categories)
	assert.Equal(t, MsgCategories, b.Snapshot().Error)
}

func TestFromClient(t *testing.T) {
	var _ API = FromClient(api.New(""))
}
