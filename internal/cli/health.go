package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/render"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			client := api.New(cfg.API.BaseURL,
				api.WithTimeout(cfg.API.Timeout),
				api.WithUserAgent(cfg.API.UserAgent),
			)

			status, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			mark := render.Colors.Success("✓")
			if !status.Healthy() {
				mark = render.Colors.Error(render.Icons.Error)
			}
			fmt.Fprintf(w, "%s %s (%s)\n", mark, client.BaseURL(), status.Status)

			names := make([]string, 0, len(status.Components))
			for name := range status.Components {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "  %-12s %s\n", name, status.Components[name])
			}

			if !status.Healthy() {
				return fmt.Errorf("backend is %s", status.Status)
			}
			return nil
		},
	}
}
