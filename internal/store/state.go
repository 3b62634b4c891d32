package store

import "github.com/rewired-gh/lookingglass/internal/models"

// Group identifies a resource group. Each group has one loading flag.
type Group string

const (
	GroupTimeline    Group = "timeline"
	GroupProbability Group = "probability"
	GroupNarratives  Group = "narratives"
	GroupGeospatial  Group = "geospatial"
)

// Groups lists every resource group in display order.
var Groups = []Group{GroupTimeline, GroupProbability, GroupNarratives, GroupGeospatial}

// TimelineState holds the latest timeline responses.
type TimelineState struct {
	Events  []models.TimelineEvent
	Summary *models.TimelineSummary
}

// ProbabilityState holds the latest probability responses.
type ProbabilityState struct {
	Analysis   *models.ProbabilityData
	Categories []string
	Historical []models.HistoricalPoint
}

// NarrativesState holds the latest narrative responses.
type NarrativesState struct {
	Clusters []models.NarrativeCluster
	Trends   *models.NarrativeTrends
	Selected *models.NarrativeCluster
}

// GeospatialState holds the latest geospatial responses.
type GeospatialState struct {
	Points          []models.GeospatialPoint
	Heatmap         []models.HeatmapPoint
	Regions         []models.Region
	SpatialClusters []models.SpatialCluster
}

// State is a snapshot of the store. Data slices are replaced wholesale on
// every successful fetch and must be treated as read-only.
type State struct {
	Timeline    TimelineState
	Probability ProbabilityState
	Narratives  NarrativesState
	Geospatial  GeospatialState

	Loading map[Group]bool
	// Error is the last failure message from any group, "" when the most
	// recent settled fetch succeeded.
	Error string
}

// IsLoading reports whether g has a fetch in flight.
func (s State) IsLoading(g Group) bool {
	return s.Loading[g]
}

// AnyLoading reports whether any group has a fetch in flight.
func (s State) AnyLoading() bool {
	for _, loading := range s.Loading {
		if loading {
			return true
		}
	}
	return false
}

func initialState() State {
	loading := make(map[Group]bool, len(Groups))
	for _, g := range Groups {
		loading[g] = false
	}
	return State{Loading: loading}
}

func (s State) clone() State {
	out := s
	out.Loading = make(map[Group]bool, len(s.Loading))
	for g, v := range s.Loading {
		out.Loading[g] = v
	}
	return out
}
