package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	"github.com/msto63/sfl/foundation/sfl/checker"
	"github.com/msto63/sfl/internal/batch"
	"github.com/msto63/sfl/internal/checkservice"
	coreGrpc "github.com/msto63/sfl/pkg/core/grpc"
	"github.com/msto63/sfl/pkg/core/logging"
)

var (
	checkRemote  string
	checkWorkers int
	checkDetails bool
)

var checkCmd = &cobra.Command{
	Use:   "check DATEI...",
	Short: "Prüft mehrere Dateien",
	Long: `Prüft jede angegebene Datei und gibt pro Datei "pfad: ok" oder
"pfad: error" aus. Der Exit-Code ist 1, wenn mindestens eine Datei
abgelehnt wurde.

Mit --remote wird die Prüfung an einen laufenden Prüfdienst
(sfl serve) delegiert.

Beispiele:
  sfl check prog1.sf prog2.sf
  sfl check --details *.sf
  sfl check --remote 127.0.0.1:9310 prog.sf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkRemote, "remote", "", "Adresse eines Prüfdienstes (host:port)")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "Anzahl paralleler Prüfungen (default: aus Config)")
	checkCmd.Flags().BoolVarP(&checkDetails, "details", "d", false, "Fehlerart und Position ausgeben")
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	var results []batch.Result
	if checkRemote != "" {
		results, err = checkRemotely(cmd.Context(), rt, args)
	} else {
		workers := rt.config.Batch.Workers
		if checkWorkers > 0 {
			workers = checkWorkers
		}
		runner := batch.New(rt.engine, batch.Config{
			Workers: workers,
			Logger:  logging.Wrap(rt.logger, "batch"),
		})
		results, err = runner.Run(cmd.Context(), args)
	}
	if err != nil {
		return err
	}

	printResults(cmd.OutOrStdout(), results, checkDetails)

	if batch.Failed(results) > 0 {
		return errChecksFailed
	}
	return nil
}

// checkRemotely sends each file to a check service, one call per file
func checkRemotely(ctx context.Context, rt *session, paths []string) ([]batch.Result, error) {
	clientCfg := coreGrpc.DefaultClientConfig(checkRemote)
	clientCfg.Logger = logging.Wrap(rt.logger, "check-client")

	conn, err := coreGrpc.Dial(clientCfg)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to connect to check service").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithDetail("target", checkRemote)
	}
	defer conn.Close()

	client := checkservice.NewClient(conn)
	results := make([]batch.Result, len(paths))

	for i, path := range paths {
		results[i] = batch.Result{Path: path}

		content, err := os.ReadFile(path)
		if err != nil {
			results[i].Err = mdwerror.Wrap(err, "failed to read source").
				WithCode(mdwerror.CodeReadFailed).
				WithDetail("path", path)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, clientCfg.Timeout)
		res, err := client.Check(callCtx, string(content))
		cancel()
		if err != nil {
			return nil, mdwerror.Wrap(err, "remote check failed").
				WithCode(mdwerror.CodeServiceUnavailable).
				WithDetail("target", checkRemote).
				WithDetail("path", path)
		}

		results[i].OK = res.OK
		if !res.OK {
			results[i].Err = mdwerror.New("program rejected").
				WithCode(mdwerror.CodeRejected).
				WithDetail("kind", res.Kind)
		}
	}

	return results, nil
}

// printResults writes one "path: verdict" line per result
func printResults(w io.Writer, results []batch.Result, details bool) {
	st := newStyles(w)
	for _, r := range results {
		line := fmt.Sprintf("%s: %s", r.Path, st.verdict(r.OK))
		if details && r.Err != nil {
			line += " " + st.muted.Render(describe(r.Err))
		}
		fmt.Fprintln(w, line)
	}
}

// describe renders the rejection cause for --details
func describe(err error) string {
	var cerr *checker.Error
	if errors.As(err, &cerr) {
		return "(" + cerr.Error() + ")"
	}
	var merr *mdwerror.Error
	if errors.As(err, &merr) {
		if kind, ok := merr.Details()["kind"]; ok {
			return fmt.Sprintf("(%v)", kind)
		}
		return "(" + merr.Message() + ")"
	}
	return "(" + err.Error() + ")"
}
