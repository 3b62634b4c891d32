package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rewired-gh/lookingglass/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect lookingglass configuration",
		Long: `Inspect the effective configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (LOOKING_GLASS_*, including a .env file)
3. Config file (--config, or configs/config.yaml)
4. Defaults`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(displayConfig(cfg))
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return configCmd
}

// displayConfig mirrors the file layout with durations as strings and the
// bot token redacted.
func displayConfig(cfg *config.Config) map[string]any {
	token := ""
	if cfg.Telegram.BotToken != "" {
		token = "********"
	}
	return map[string]any{
		"api": map[string]any{
			"base_url":   cfg.API.BaseURL,
			"timeout":    cfg.API.Timeout.String(),
			"user_agent": cfg.API.UserAgent,
		},
		"views": map[string]any{
			"probability_category":  cfg.Views.ProbabilityCategory,
			"probability_timeframe": cfg.Views.ProbabilityTimeframe,
			"trends_timeframe":      cfg.Views.TrendsTimeframe,
			"min_cluster_size":      cfg.Views.MinClusterSize,
			"max_clusters":          cfg.Views.MaxClusters,
			"map_mode":              cfg.Views.MapMode,
			"min_intensity":         cfg.Views.MinIntensity,
		},
		"watch": map[string]any{
			"interval": cfg.Watch.Interval.String(),
		},
		"telegram": map[string]any{
			"enabled":          cfg.Telegram.Enabled,
			"bot_token":        token,
			"chat_id":          cfg.Telegram.ChatID,
			"max_retries":      cfg.Telegram.MaxRetries,
			"retry_delay_base": cfg.Telegram.RetryDelayBase.String(),
		},
		"logging": map[string]any{
			"level":  cfg.Logging.Level,
			"format": cfg.Logging.Format,
		},
	}
}
