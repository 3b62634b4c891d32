package cli

import (
	"errors"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/config"
	"github.com/rewired-gh/lookingglass/internal/logger"
	"github.com/rewired-gh/lookingglass/internal/models"
	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// app wires one API client and one store for a command run.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *store.Store
}

func newApp(cfg *config.Config) *app {
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(cfg.API.UserAgent),
	)
	return &app{
		cfg:    cfg,
		client: client,
		store:  store.New(store.FromClient(client)),
	}
}

func (a *app) timelineView() *views.TimelineView {
	return views.NewTimelineView(a.store)
}

func (a *app) probabilityView() *views.ProbabilityView {
	return views.NewProbabilityView(a.store, views.ProbabilityFilter{
		Category:  a.cfg.Views.ProbabilityCategory,
		Timeframe: a.cfg.Views.ProbabilityTimeframe,
	})
}

func (a *app) narrativesView() *views.NarrativesView {
	return views.NewNarrativesView(a.store, views.NarrativesFilter{
		MinSize:         positiveInt(a.cfg.Views.MinClusterSize),
		MaxClusters:     positiveInt(a.cfg.Views.MaxClusters),
		TrendsTimeframe: a.cfg.Views.TrendsTimeframe,
	})
}

func (a *app) geospatialView() *views.GeospatialView {
	return views.NewGeospatialView(a.store, views.GeospatialFilter{
		Mode:         views.MapMode(a.cfg.Views.MapMode),
		MinIntensity: positiveFloat(a.cfg.Views.MinIntensity),
	})
}

func (a *app) dashboard() *views.Dashboard {
	return &views.Dashboard{
		Timeline:    a.timelineView(),
		Probability: a.probabilityView(),
		Narratives:  a.narrativesView(),
		Geospatial:  a.geospatialView(),
	}
}

// positiveInt treats zero config values as "not set".
func positiveInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return api.Int(v)
}

func positiveFloat(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return api.Float(v)
}

// fetchError turns the shared error slot into a command error.
func fetchError(st store.State) error {
	if st.Error == "" {
		return nil
	}
	return errors.New(st.Error)
}

// reportInvalid logs responses that break documented data invariants.
// Data is kept and rendered regardless.
func reportInvalid(st store.State) {
	for i := range st.Timeline.Events {
		if err := st.Timeline.Events[i].Validate(); err != nil {
			logger.Warn("Timeline event %d: %v", i, err)
		}
	}
	if s := st.Timeline.Summary; s != nil {
		if err := s.Validate(); err != nil {
			logger.Warn("Timeline summary: %v", err)
		}
	}
	if p := st.Probability.Analysis; p != nil {
		if err := p.Validate(); err != nil {
			logger.Warn("Probability analysis: %v", err)
		}
	}
	for i := range st.Narratives.Clusters {
		if err := st.Narratives.Clusters[i].Validate(); err != nil {
			logger.Warn("Narrative cluster %d: %v", i, err)
		}
	}
	if c := st.Narratives.Selected; c != nil {
		if err := c.Validate(); err != nil {
			logger.Warn("Selected cluster: %v", err)
		}
	}
	if err := models.ValidatePoints(st.Geospatial.Points); err != nil {
		logger.Warn("Geospatial points: %v", err)
	}
}
