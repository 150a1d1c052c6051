package cli

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jstammers/companies-house-abm/internal/api"
	"github.com/jstammers/companies-house-abm/internal/persistence"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port       int
	Database   string
	ConfigPath string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Launch the economy simulator HTTP API",
		Long: `Launch the HTTP API that runs simulations on demand.

With --db, completed runs can be archived and browsed through the
/api/v1/runs endpoints; without it the archive endpoints report the
feature as disabled.

Example:
  econsim serve --port 8000 --db runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 8000, "port to bind the server to")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database for the run archive")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML parameter file")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	server := &api.Server{
		Port: opts.Port,
		Base: cfg,
	}

	if opts.Database != "" {
		db, err := persistence.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		server.DB = db
	}

	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting economy simulator at http://localhost:%d\n", opts.Port)
	if err := server.Run(); err != nil {
		return WrapExitError(ExitCommandError, "server stopped", err)
	}
	return nil
}
