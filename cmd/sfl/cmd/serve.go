package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/sfl/internal/checkservice"
	"github.com/msto63/sfl/pkg/core/logging"
)

var (
	serveHost       string
	servePort       int
	serveReflection bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den gRPC-Prüfdienst",
	Long: `Startet den Prüfdienst sfl.v1.Checker mit gRPC-Health-Service.

Adresse und Timeouts kommen aus der Config ([server]) und können mit
Flags überschrieben werden.

Beispiele:
  sfl serve
  sfl serve --port 9400 --reflection`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen-Host (default: aus Config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen-Port (default: aus Config)")
	serveCmd.Flags().BoolVar(&serveReflection, "reflection", false, "gRPC-Reflection aktivieren")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	cfg := checkservice.Config{
		Host:             rt.config.Server.Host,
		Port:             rt.config.Server.Port,
		EnableReflection: rt.config.Server.EnableReflection || serveReflection,
		ShutdownTimeout:  rt.config.Server.ShutdownTimeout.Duration,
		CacheSize:        rt.config.Server.CacheSize,
		CacheTTL:         rt.config.Server.CacheTTL.Duration,
		Engine:           rt.engine,
		Logger:           logging.Wrap(rt.logger, "check-service"),
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	server, err := checkservice.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := newStyles(cmd.ErrOrStderr())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", st.title.Render("sfl.v1.Checker"), st.muted.Render("auf "+server.Address()))

	return server.Run(ctx)
}
