package cli

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/taxi/internal/taxi/app"
)

func serveCmd(envFiles *[]string) *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			application, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	c.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides PORT)")
	return c
}
