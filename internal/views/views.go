package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/store"
)

// parallel runs store actions concurrently and waits for all of them to settle.
// Actions never fail; the returned error is only the context's.
func parallel(ctx context.Context, actions ...func(context.Context)) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, action := range actions {
		g.Go(func() error {
			action(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// TimelineFilter is the timeline page's local filter.
type TimelineFilter struct {
	StartDate string
	EndDate   string
	EventType string
}

// TimelineView drives the timeline page.
type TimelineView struct {
	store  *store.Store
	filter TimelineFilter
}

// NewTimelineView creates a timeline view with an empty filter.
func NewTimelineView(s *store.Store) *TimelineView {
	return &TimelineView{store: s}
}

// Filter returns the current filter.
func (v *TimelineView) Filter() TimelineFilter { return v.filter }

// Mount loads events and the summary.
func (v *TimelineView) Mount(ctx context.Context) error {
	return parallel(ctx,
		func(ctx context.Context) { v.store.FetchTimelineEvents(ctx, v.params()) },
		v.store.FetchTimelineSummary,
	)
}

// SetFilter replaces the filter and reloads events.
func (v *TimelineView) SetFilter(ctx context.Context, f TimelineFilter) {
	v.filter = f
	v.store.FetchTimelineEvents(ctx, v.params())
}

func (v *TimelineView) params() api.EventsParams {
	return api.EventsParams{StartDate: v.filter.StartDate, EndDate: v.filter.EndDate, EventType: v.filter.EventType}
}

// ProbabilityFilter is the probability page's local filter.
type ProbabilityFilter struct {
	Category  string
	Timeframe int // days
	StartDate string
	EndDate   string
}

// ProbabilityView drives the probability page.
type ProbabilityView struct {
	store  *store.Store
	filter ProbabilityFilter
}

// NewProbabilityView creates a probability view starting at initial.
func NewProbabilityView(s *store.Store, initial ProbabilityFilter) *ProbabilityView {
	if initial.Timeframe <= 0 {
		initial.Timeframe = api.DefaultTimeframe
	}
	return &ProbabilityView{store: s, filter: initial}
}

// Filter returns the current filter.
func (v *ProbabilityView) Filter() ProbabilityFilter { return v.filter }

// Mount loads categories, the analysis and the history for the current category.
func (v *ProbabilityView) Mount(ctx context.Context) error {
	return parallel(ctx,
		v.store.FetchCategories,
		v.fetchAnalysis,
		v.fetchHistorical,
	)
}

// SetCategory switches category and reloads the analysis and history.
func (v *ProbabilityView) SetCategory(ctx context.Context, category string) error {
	v.filter.Category = category
	return parallel(ctx, v.fetchAnalysis, v.fetchHistorical)
}

// SetTimeframe changes the forecast window and reloads the analysis.
func (v *ProbabilityView) SetTimeframe(ctx context.Context, days int) {
	v.filter.Timeframe = days
	v.fetchAnalysis(ctx)
}

func (v *ProbabilityView) fetchAnalysis(ctx context.Context) {
	v.store.FetchProbabilityAnalysis(ctx, v.filter.Category, v.filter.Timeframe)
}

func (v *ProbabilityView) fetchHistorical(ctx context.Context) {
	v.store.FetchHistoricalData(ctx, api.HistoricalParams{
		Category:  v.filter.Category,
		StartDate: v.filter.StartDate,
		EndDate:   v.filter.EndDate,
	})
}

// NarrativesFilter is the narratives page's local filter.
type NarrativesFilter struct {
	MinSize         *int
	MaxClusters     *int
	TrendsTimeframe string
}

// NarrativesView drives the narrative clusters page.
type NarrativesView struct {
	store  *store.Store
	filter NarrativesFilter
}

// NewNarrativesView creates a narratives view starting at initial.
func NewNarrativesView(s *store.Store, initial NarrativesFilter) *NarrativesView {
	if initial.TrendsTimeframe == "" {
		initial.TrendsTimeframe = api.DefaultTrendsTimeframe
	}
	return &NarrativesView{store: s, filter: initial}
}

// Filter returns the current filter.
func (v *NarrativesView) Filter() NarrativesFilter { return v.filter }

// Mount loads clusters and trends.
func (v *NarrativesView) Mount(ctx context.Context) error {
	return parallel(ctx, v.fetchClusters, v.fetchTrends)
}

// SetClusterLimits changes the cluster query and reloads clusters.
func (v *NarrativesView) SetClusterLimits(ctx context.Context, minSize, maxClusters *int) {
	v.filter.MinSize = minSize
	v.filter.MaxClusters = maxClusters
	v.fetchClusters(ctx)
}

// SetTrendsTimeframe changes the trends window and reloads trends.
func (v *NarrativesView) SetTrendsTimeframe(ctx context.Context, timeframe string) {
	v.filter.TrendsTimeframe = timeframe
	v.fetchTrends(ctx)
}

// SelectCluster loads the details of one cluster.
func (v *NarrativesView) SelectCluster(ctx context.Context, clusterID string) {
	v.store.FetchClusterDetails(ctx, clusterID)
}

func (v *NarrativesView) fetchClusters(ctx context.Context) {
	v.store.FetchNarrativeClusters(ctx, api.ClustersParams{MinSize: v.filter.MinSize, MaxClusters: v.filter.MaxClusters})
}

func (v *NarrativesView) fetchTrends(ctx context.Context) {
	v.store.FetchNarrativeTrends(ctx, v.filter.TrendsTimeframe)
}

// MapMode selects the extra layer the geospatial page shows.
type MapMode string

const (
	ModePoints   MapMode = "points"
	ModeHeatmap  MapMode = "heatmap"
	ModeClusters MapMode = "clusters"
)

// GeospatialFilter is the geospatial page's local filter.
type GeospatialFilter struct {
	Region       string
	Category     string
	MinIntensity *float64
	Mode         MapMode
	MinPoints    *int
	MaxRadius    *float64
}

// GeospatialView drives the map page.
type GeospatialView struct {
	store  *store.Store
	filter GeospatialFilter
}

// NewGeospatialView creates a geospatial view starting at initial.
func NewGeospatialView(s *store.Store, initial GeospatialFilter) *GeospatialView {
	if initial.Mode == "" {
		initial.Mode = ModePoints
	}
	return &GeospatialView{store: s, filter: initial}
}

// Filter returns the current filter.
func (v *GeospatialView) Filter() GeospatialFilter { return v.filter }

// Mount loads points, regions and the layer for the current mode.
func (v *GeospatialView) Mount(ctx context.Context) error {
	actions := []func(context.Context){v.fetchPoints, v.store.FetchRegions}
	if layer := v.layer(); layer != nil {
		actions = append(actions, layer)
	}
	return parallel(ctx, actions...)
}

// SetFilter replaces the point filter and reloads points. The mode is kept.
func (v *GeospatialView) SetFilter(ctx context.Context, region, category string, minIntensity *float64) {
	v.filter.Region = region
	v.filter.Category = category
	v.filter.MinIntensity = minIntensity
	v.fetchPoints(ctx)
}

// SetMode switches the map layer and loads it.
func (v *GeospatialView) SetMode(ctx context.Context, mode MapMode) {
	v.filter.Mode = mode
	if layer := v.layer(); layer != nil {
		layer(ctx)
	}
}

func (v *GeospatialView) layer() func(context.Context) {
	switch v.filter.Mode {
	case ModeHeatmap:
		return v.store.FetchHeatmapData
	case ModeClusters:
		return func(ctx context.Context) {
			v.store.FetchSpatialClusters(ctx, api.SpatialClustersParams{MinPoints: v.filter.MinPoints, MaxRadius: v.filter.MaxRadius})
		}
	default:
		return nil
	}
}

func (v *GeospatialView) fetchPoints(ctx context.Context) {
	v.store.FetchGeospatialPoints(ctx, api.PointsParams{
		Region:       v.filter.Region,
		Category:     v.filter.Category,
		MinIntensity: v.filter.MinIntensity,
	})
}

// Dashboard mounts every page at once.
type Dashboard struct {
	Timeline    *TimelineView
	Probability *ProbabilityView
	Narratives  *NarrativesView
	Geospatial  *GeospatialView
}

// Mount mounts all pages concurrently.
func (d *Dashboard) Mount(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Timeline.Mount(gctx) })
	g.Go(func() error { return d.Probability.Mount(gctx) })
	g.Go(func() error { return d.Narratives.Mount(gctx) })
	g.Go(func() error { return d.Geospatial.Mount(gctx) })
	return g.Wait()
}
