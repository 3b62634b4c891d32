package telegram

import (
	"sort"
	"time"

	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// DefaultTopN is how many regions and clusters a digest lists.
const DefaultTopN = 3

// ClusterLine is a narrative cluster as shown in the digest.
type ClusterLine struct {
	Theme      string
	Narratives int
	Sentiment  float64
	GrowthRate float64
}

// Digest is a compact summary of one dashboard snapshot.
type Digest struct {
	GeneratedAt time.Time

	// Probability is nil when no analysis has loaded.
	Category           string
	Timeframe          int
	OverallProbability *float64

	TotalEvents int
	Regions     []views.RegionStat
	Clusters    []ClusterLine
	Error       string
}

// BuildDigest summarizes st. Regions are ranked by average intensity and
// clusters by growth rate, each truncated to topN.
func BuildDigest(st store.State, at time.Time, topN int) Digest {
	if topN <= 0 {
		topN = DefaultTopN
	}

	d := Digest{GeneratedAt: at, Error: st.Error}

	if a := st.Probability.Analysis; a != nil {
		p := a.OverallProbability
		d.Category = a.Category
		d.Timeframe = a.Timeframe
		d.OverallProbability = &p
	}

	if s := st.Timeline.Summary; s != nil {
		d.TotalEvents = s.TotalEvents
	} else {
		d.TotalEvents = len(st.Timeline.Events)
	}

	regions := views.AggregateRegions(st.Geospatial.Points)
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].AvgIntensity > regions[j].AvgIntensity
	})
	if len(regions) > topN {
		regions = regions[:topN]
	}
	d.Regions = regions

	for _, c := range st.Narratives.Clusters {
		d.Clusters = append(d.Clusters, ClusterLine{
			Theme:      c.Theme,
			Narratives: len(c.Narratives),
			Sentiment:  c.SentimentScore,
			GrowthRate: c.GrowthRate,
		})
	}
	sort.SliceStable(d.Clusters, func(i, j int) bool {
		return d.Clusters[i].GrowthRate > d.Clusters[j].GrowthRate
	})
	if len(d.Clusters) > topN {
		d.Clusters = d.Clusters[:topN]
	}

	return d
}

// Empty reports whether the digest carries nothing worth sending.
func (d Digest) Empty() bool {
	return d.OverallProbability == nil && len(d.Regions) == 0 && len(d.Clusters) == 0 &&
		d.TotalEvents == 0 && d.Error == ""
}
