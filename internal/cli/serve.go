package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/internal/server"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve radars from the dataset store over HTTP",
		Long: `Serve radars from the dataset store over HTTP.

Routes:
  GET    /                                    HTML page of the default dataset (?dataset= to pick one)
  GET    /healthz                             liveness and version
  GET    /api/v1/datasets                     dataset summaries
  GET    /api/v1/datasets/{name}              dataset JSON
  PUT    /api/v1/datasets/{name}              store a dataset (any import format)
  DELETE /api/v1/datasets/{name}              delete a dataset
  GET    /api/v1/datasets/{name}/layout       computed layout
  GET    /api/v1/datasets/{name}/radar.{fmt}  rendered svg, html, png, pdf or json

Deployment settings can be given as TECHRADAR_ADDR, TECHRADAR_BASE_URL,
TECHRADAR_STORE, TECHRADAR_MONGO_URI, TECHRADAR_REDIS_ADDR,
TECHRADAR_DEFAULT_DATASET and the TECHRADAR_*_TIMEOUT durations.`,
		Example: `  techradar serve --addr :9000
  TECHRADAR_MONGO_URI=mongodb://localhost/techradar TECHRADAR_REDIS_ADDR=localhost:6379 techradar serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			env, err := config.ParseServerEnv()
			if err != nil {
				return err
			}
			env.Apply(cfg)

			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			cc, err := newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, newKeyer(cfg), c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Store:          st,
				Runner:         runner,
				Logger:         c.Logger,
				Defaults:       cfg.PipelineOptions(),
				DefaultDataset: cfg.Store.DefaultDataset,
				BaseURL:        cfg.Server.BaseURL,
				ReadTimeout:    env.ReadTimeout,
				WriteTimeout:   env.WriteTimeout,
				ShutdownGrace:  env.ShutdownGrace,
			})
			c.Logger.Info("serving datasets", "store", cfg.Store.Location, "cache", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("base-url", "/", "public base URL of the service")
	cmd.Flags().String("store", "", "dataset store location (directory, .db file or mongodb:// URI)")

	return cmd
}
