package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// Number of rows a page lists before summarizing the rest.
const maxRows = 10

func more(w io.Writer, total int) {
	if total > maxRows {
		fmt.Fprintln(w, Colors.Muted(fmt.Sprintf("  ... and %d more", total-maxRows)))
	}
}

// Timeline writes the timeline page: summary header, then events by date.
func Timeline(w io.Writer, st store.State) {
	heading(w, "Timeline")
	if loadingLine(w, st, store.GroupTimeline) {
		return
	}

	if s := st.Timeline.Summary; s != nil {
		fmt.Fprintf(w, "Events: %d   Avg impact: %.2f   Range: %s .. %s\n",
			s.TotalEvents, s.AverageImpact, s.DateRange.Start, s.DateRange.End)

		types := make([]string, 0, len(s.EventsByType))
		for t := range s.EventsByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(w, "  %-14s %d\n", t, s.EventsByType[t])
		}
	}

	if len(st.Timeline.Events) == 0 {
		fmt.Fprintln(w, Colors.Muted("No events"))
		return
	}
	events := views.EventsByDate(st.Timeline.Events)
	for i, e := range events {
		if i == maxRows {
			break
		}
		fmt.Fprintf(w, "%s %s [%s] %s  impact %s\n",
			Icons.Bullet, e.Date, Colors.Info(e.Type), e.Title, intensity(e.Impact))
	}
	more(w, len(events))
}

// Probability writes the probability page.
func Probability(w io.Writer, st store.State) {
	heading(w, "Probability")
	if loadingLine(w, st, store.GroupProbability) {
		return
	}

	if len(st.Probability.Categories) > 0 {
		fmt.Fprintf(w, "Categories: %v\n", st.Probability.Categories)
	}

	a := st.Probability.Analysis
	if a == nil {
		fmt.Fprintln(w, Colors.Muted("No analysis"))
		return
	}

	fmt.Fprintf(w, "%s over %d days: %s  (CI %s .. %s)\n",
		Colors.Heading(a.Category), a.Timeframe, Colors.Warning(percent(a.OverallProbability)),
		percent(a.ConfidenceInterval.Lower), percent(a.ConfidenceInterval.Upper))

	series := views.ProbabilitySeries(a)
	start := 0
	if len(series) > maxRows {
		start = len(series) - maxRows
	}
	for _, p := range series[start:] {
		fmt.Fprintf(w, "  %s %s %s\n", p.Date, bar(p.Probability, 20), percent(p.Probability))
	}

	if len(a.ContributingFactors) > 0 {
		fmt.Fprintln(w, "Contributing factors:")
		for i, f := range a.ContributingFactors {
			if i == maxRows {
				break
			}
			fmt.Fprintf(w, "  %s %-20s %.2f\n", trendIcon(f.Trend), f.Name, f.Impact)
		}
		more(w, len(a.ContributingFactors))
	}

	if n := len(st.Probability.Historical); n > 0 {
		hits := 0
		for _, h := range st.Probability.Historical {
			if h.ActualOccurrence {
				hits++
			}
		}
		fmt.Fprintf(w, "Historical: %d days, %d occurrences\n", n, hits)
	}
}

// Narratives writes the narratives page: clusters, current theme strengths
// and the selected cluster if any.
func Narratives(w io.Writer, st store.State) {
	heading(w, "Narratives")
	if loadingLine(w, st, store.GroupNarratives) {
		return
	}

	graph := views.BuildClusterGraph(st.Narratives.Clusters)
	if len(st.Narratives.Clusters) == 0 {
		fmt.Fprintln(w, Colors.Muted("No clusters"))
	}
	for _, c := range st.Narratives.Clusters {
		node, _ := graph.Node(c.ID)
		fmt.Fprintf(w, "%s %-24s %d narratives  sentiment %s  growth %+.2f\n",
			Icons.Bullet, c.Theme, node.Size, sentiment(c.SentimentScore), c.GrowthRate)
	}

	if themes := views.CurrentThemeStrengths(st.Narratives.Trends); len(themes) > 0 {
		fmt.Fprintf(w, "Trends (%s):\n", st.Narratives.Trends.Timeframe)
		for _, th := range themes {
			fmt.Fprintf(w, "  %-16s %s %.2f\n", th.Name, bar(th.Strength, 20), th.Strength)
		}
	}

	if c := st.Narratives.Selected; c != nil {
		fmt.Fprintf(w, "Selected: %s (%s)\n", Colors.Heading(c.Theme), c.ID)
		for i, n := range c.Narratives {
			if i == maxRows {
				break
			}
			fmt.Fprintf(w, "  %s %s  %s\n", Icons.Bullet, n.Title, sentiment(n.Sentiment))
		}
		more(w, len(c.Narratives))
		for _, e := range c.TemporalEvolution {
			fmt.Fprintf(w, "  %s size %d sentiment %s\n", e.Date, e.Size, sentiment(e.Sentiment))
		}
	}
}

// Geospatial writes the geospatial page: region and category aggregates,
// followed by the regions and spatial clusters the backend reported.
func Geospatial(w io.Writer, st store.State) {
	heading(w, "Geospatial")
	if loadingLine(w, st, store.GroupGeospatial) {
		return
	}

	geo := st.Geospatial
	fmt.Fprintf(w, "Points: %d   Heatmap cells: %d\n", len(geo.Points), len(geo.Heatmap))

	if stats := views.AggregateRegions(geo.Points); len(stats) > 0 {
		fmt.Fprintln(w, "By region:")
		for _, s := range stats {
			fmt.Fprintf(w, "  %-16s %3d  avg %s\n", s.Region, s.Count, intensity(s.AvgIntensity))
		}
	}
	if shares := views.CategoryPercentages(geo.Points); len(shares) > 0 {
		fmt.Fprintln(w, "By category:")
		for _, s := range shares {
			fmt.Fprintf(w, "  %-16s %3d  %.1f%%\n", s.Category, s.Count, s.Percent)
		}
	}

	if len(geo.Regions) > 0 {
		fmt.Fprintln(w, "Regions:")
		for _, r := range geo.Regions {
			line := fmt.Sprintf("  %-16s activity %s", r.Name, bar(r.ActivityLevel, 10))
			if r.Statistics != nil {
				line += fmt.Sprintf("  %d events %s %s", r.Statistics.TotalEvents,
					trendIcon(r.Statistics.Trend), r.Statistics.DominantCategory)
			}
			fmt.Fprintln(w, line)
		}
	}

	for i, c := range geo.SpatialClusters {
		fmt.Fprintf(w, "Cluster %d at (%.2f, %.2f) r=%.1f: %d points, avg %s\n",
			i+1, c.Center.Lat, c.Center.Lng, c.Radius, c.Statistics.PointCount,
			intensity(c.Statistics.AverageIntensity))
	}
}

// Dashboard writes every page in order, preceded by the shared error if set.
func Dashboard(w io.Writer, st store.State) {
	if st.Error != "" {
		fmt.Fprintf(w, "%s %s\n\n", Colors.Error(Icons.Error), Colors.Error(st.Error))
	}
	pages := []func(io.Writer, store.State){Timeline, Probability, Narratives, Geospatial}
	for i, page := range pages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		page(w, st)
	}
}
