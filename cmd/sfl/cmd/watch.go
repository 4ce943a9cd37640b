package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/sfl/internal/watch"
	"github.com/msto63/sfl/pkg/core/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch DATEI",
	Short: "Prüft eine Datei bei jeder Änderung",
	Long: `Prüft die Datei sofort und danach nach jeder Änderung erneut.
Pro Prüfung wird eine Zeile "zeit pfad: ok|error" ausgegeben.
Beenden mit Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(rt.engine, watch.Config{
		Debounce: rt.config.Watch.Debounce.Duration,
		Logger:   logging.Wrap(rt.logger, "watch"),
	})

	out := cmd.OutOrStdout()
	st := newStyles(out)

	return w.Watch(ctx, args[0], func(ev watch.Event) {
		fmt.Fprintf(out, "%s %s: %s\n",
			st.muted.Render(ev.At.Format("15:04:05")), ev.Path, st.verdict(ev.OK))
	})
}
