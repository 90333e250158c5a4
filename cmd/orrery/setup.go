package main

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
	"github.com/lixenwraith/orrery/solar"
)

// loadConfig reads --config and applies overrides for flags the user set
func loadConfig(cmd *cobra.Command, override func(cfg *config.Config, changed func(string) bool)) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg, cmd.Flags().Changed)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
	}
	return cfg, nil
}

// world is one placed solar system and its supporting services
type world struct {
	scene     *scene.Scene
	system    *solar.System
	speeds    *settings.SpeedSettings
	catalog   *asset.Catalog
	collector *metrics.Collector
}

// buildWorld places a solar system in a fresh scene
// reg may be nil to skip metrics
func buildWorld(cfg *config.Config, logger hclog.Logger, reg prometheus.Registerer, toggle solar.ToggleFunc) (*world, error) {
	w := &world{speeds: settings.NewSpeedSettings()}
	w.speeds.SetOrbitSpeedMultiplier(cfg.Speed.Orbit)
	w.speeds.SetRotationSpeedMultiplier(cfg.Speed.Rotation)

	if reg != nil {
		collector, err := metrics.NewCollector(reg)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		w.collector = collector
	}

	catalogOpts := []asset.CatalogOption{
		asset.WithLatency(cfg.Assets.Latency),
		asset.WithLogger(logger.Named("asset")),
	}
	if w.collector != nil {
		catalogOpts = append(catalogOpts, asset.WithRecorder(w.collector))
	}
	if cfg.Assets.Catalog != "" {
		catalog, err := asset.LoadCatalogFile(cfg.Assets.Catalog, catalogOpts...)
		if err != nil {
			return nil, err
		}
		w.catalog = catalog
	} else {
		w.catalog = asset.DefaultCatalog(catalogOpts...)
	}

	opts := []solar.Option{
		solar.WithLogger(logger.Named("solar")),
		solar.WithAUScale(cfg.Scene.AUScale),
		solar.WithToggle(toggle),
	}
	if w.collector != nil {
		opts = append(opts, solar.WithRecorder(w.collector))
	}

	w.scene = scene.New()
	if w.collector != nil {
		w.scene.SetObserver(w.collector)
	}
	w.system = solar.BuildSolarSystem(w.speeds, w.catalog, opts...)
	w.scene.AddChild(w.system.Root)

	logger.Debug("solar system placed", "bodies", len(w.system.Bodies), "au_scale", cfg.Scene.AUScale)
	return w, nil
}
