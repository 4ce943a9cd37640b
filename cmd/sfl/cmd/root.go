package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	mdwlog "github.com/msto63/sfl/foundation/core/log"
	"github.com/msto63/sfl/foundation/sfl"
	"github.com/msto63/sfl/foundation/sfl/lexer"
	"github.com/msto63/sfl/pkg/core/config"
	"github.com/msto63/sfl/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	lexerName string
)

// errChecksFailed makes the process exit with status 1 without printing
// anything beyond the verdict lines
var errChecksFailed = errors.New("one or more files failed the check")

var rootCmd = &cobra.Command{
	Use:   "sfl [datei]",
	Short: "SFL - Prüfer für die Start-Finish-Sprache",
	Long: `sfl prüft Programme der Start-Finish-Sprache auf Syntax und Typen.

Mit einer Datei als Argument wird genau "ok" oder "error" ausgegeben.
Ohne Argument erfolgt keine Ausgabe.

Befehle:
  check    - mehrere Dateien parallel prüfen
  tokens   - Token einer Datei anzeigen
  watch    - Datei bei jeder Änderung neu prüfen
  serve    - gRPC-Prüfdienst starten
  version  - Version anzeigen`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errChecksFailed) {
		printError(rootCmd, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $SFL_CONFIG oder ./configs/sfl.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug-Logging auf stderr")
	rootCmd.PersistentFlags().StringVar(&lexerName, "lexer", "", "Lexer-Modus: legacy oder scanning (default: aus Config)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		rt.logger.WarnWithErr("Source not readable", err, mdwlog.Fields{"path": args[0]})
		fmt.Fprintln(cmd.OutOrStdout(), verdict(false))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), verdict(rt.engine.Check(string(content))))
	return nil
}

// session bundles what every command needs after startup
type session struct {
	config *config.Config
	logger *mdwlog.Logger
	engine *sfl.Engine
}

// loadSession loads configuration, builds the stderr logger and the engine
func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      cmd.ErrOrStderr(),
	})

	mode := cfg.LexerMode()
	if lexerName != "" {
		mode, err = lexer.ParseMode(lexerName)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid --lexer").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("cmd.loadSession")
		}
	}

	engine, err := sfl.New(sfl.Options{
		Logger:         logger,
		LexerMode:      mode,
		MaxSourceBytes: cfg.Checker.MaxSourceBytes,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Runtime ready", mdwlog.Fields{
		"lexer":            mode.String(),
		"max_source_bytes": cfg.Checker.MaxSourceBytes,
	})

	return &session{config: cfg, logger: logger, engine: engine}, nil
}

// verdict renders a check result as the literal output word
func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Fehler: %v\n", err)
}
