package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/lookingglass/internal/render"
	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// finish renders the settled snapshot and reports the shared error.
func finish(w io.Writer, s *store.Store, page func(io.Writer, store.State)) error {
	st := s.Snapshot()
	reportInvalid(st)
	page(w, st)
	return fetchError(st)
}

func newDashboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show every page at once",
		Long:  `Mount all four pages concurrently and print them together with the last fetch error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a := newApp(cfg)
			if err := a.dashboard().Mount(cmd.Context()); err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), a.store, render.Dashboard)
		},
	}
}

func newTimelineCmd(opts *options) *cobra.Command {
	var filter views.TimelineFilter

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show timeline events and summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a := newApp(cfg)
			v := a.timelineView()
			if filter == (views.TimelineFilter{}) {
				if err := v.Mount(cmd.Context()); err != nil {
					return err
				}
			} else {
				v.SetFilter(cmd.Context(), filter)
				a.store.FetchTimelineSummary(cmd.Context())
			}
			return finish(cmd.OutOrStdout(), a.store, render.Timeline)
		},
	}

	cmd.Flags().StringVar(&filter.EventType, "type", "", "only events of this type")
	cmd.Flags().StringVar(&filter.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func newProbabilityCmd(opts *options) *cobra.Command {
	var (
		category  string
		timeframe int
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "probability",
		Short: "Show the probability analysis of a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a := newApp(cfg)
			filter := views.ProbabilityFilter{
				Category:  cfg.Views.ProbabilityCategory,
				Timeframe: cfg.Views.ProbabilityTimeframe,
				StartDate: start,
				EndDate:   end,
			}
			if cmd.Flags().Changed("category") {
				filter.Category = category
			}
			if cmd.Flags().Changed("timeframe") {
				if timeframe < 1 {
					return fmt.Errorf("--timeframe must be at least 1 day")
				}
				filter.Timeframe = timeframe
			}

			v := views.NewProbabilityView(a.store, filter)
			if err := v.Mount(cmd.Context()); err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), a.store, render.Probability)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category to analyze (default from views.probability_category)")
	cmd.Flags().IntVar(&timeframe, "timeframe", 0, "analysis window in days (default from views.probability_timeframe)")
	cmd.Flags().StringVar(&start, "start", "", "historical data start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "historical data end date (YYYY-MM-DD)")
	return cmd
}

func newNarrativesCmd(opts *options) *cobra.Command {
	var (
		minSize     int
		maxClusters int
		trends      string
		clusterID   string
	)

	cmd := &cobra.Command{
		Use:   "narratives",
		Short: "Show narrative clusters and theme trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a := newApp(cfg)
			filter := views.NarrativesFilter{
				MinSize:         positiveInt(cfg.Views.MinClusterSize),
				MaxClusters:     positiveInt(cfg.Views.MaxClusters),
				TrendsTimeframe: cfg.Views.TrendsTimeframe,
			}
			if cmd.Flags().Changed("min-size") {
				filter.MinSize = &minSize
			}
			if cmd.Flags().Changed("max-clusters") {
				filter.MaxClusters = &maxClusters
			}
			if cmd.Flags().Changed("trends") {
				filter.TrendsTimeframe = trends
			}

			v := views.NewNarrativesView(a.store, filter)
			if err := v.Mount(cmd.Context()); err != nil {
				return err
			}
			if clusterID != "" {
				v.SelectCluster(cmd.Context(), clusterID)
			}
			return finish(cmd.OutOrStdout(), a.store, render.Narratives)
		},
	}

	cmd.Flags().IntVar(&minSize, "min-size", 0, "minimum narratives per cluster")
	cmd.Flags().IntVar(&maxClusters, "max-clusters", 0, "maximum number of clusters")
	cmd.Flags().StringVar(&trends, "trends", "", "trends timeframe: 7d, 30d or 90d")
	cmd.Flags().StringVar(&clusterID, "cluster", "", "also show details of this cluster")
	return cmd
}

func newGeospatialCmd(opts *options) *cobra.Command {
	var (
		filter       views.GeospatialFilter
		mode         string
		minIntensity float64
		minPoints    int
		maxRadius    float64
	)

	cmd := &cobra.Command{
		Use:   "geospatial",
		Short: "Show geospatial activity by region and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			a := newApp(cfg)

			filter.Mode = views.MapMode(cfg.Views.MapMode)
			filter.MinIntensity = positiveFloat(cfg.Views.MinIntensity)
			if cmd.Flags().Changed("mode") {
				switch views.MapMode(mode) {
				case views.ModePoints, views.ModeHeatmap, views.ModeClusters:
					filter.Mode = views.MapMode(mode)
				default:
					return fmt.Errorf("--mode must be one of: points, heatmap, clusters")
				}
			}
			if cmd.Flags().Changed("min-intensity") {
				filter.MinIntensity = &minIntensity
			}
			if cmd.Flags().Changed("min-points") {
				filter.MinPoints = &minPoints
			}
			if cmd.Flags().Changed("max-radius") {
				filter.MaxRadius = &maxRadius
			}

			v := views.NewGeospatialView(a.store, filter)
			if err := v.Mount(cmd.Context()); err != nil {
				return err
			}
			return finish(cmd.OutOrStdout(), a.store, render.Geospatial)
		},
	}

	cmd.Flags().StringVar(&filter.Region, "region", "", "only points in this region")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only points of this category")
	cmd.Flags().Float64Var(&minIntensity, "min-intensity", 0, "minimum point intensity (0-1)")
	cmd.Flags().StringVar(&mode, "mode", "", "map layer: points, heatmap or clusters")
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "minimum points per spatial cluster (clusters mode)")
	cmd.Flags().Float64Var(&maxRadius, "max-radius", 0, "maximum spatial cluster radius (clusters mode)")
	return cmd
}
