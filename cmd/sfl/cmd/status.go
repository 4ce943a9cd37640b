package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	"github.com/msto63/sfl/internal/checkservice"
	coreGrpc "github.com/msto63/sfl/pkg/core/grpc"
	"github.com/msto63/sfl/pkg/core/logging"
)

var statusAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Zeigt den Status eines Prüfdienstes",
	Long: `Fragt den gRPC-Health-Service eines laufenden Prüfdienstes ab.
Ohne --addr wird die Adresse aus der Config verwendet.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusAddr, "addr", "", "Adresse des Prüfdienstes (host:port)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	target := statusAddr
	if target == "" {
		target = rt.config.ServerAddress()
	}

	clientCfg := coreGrpc.DefaultClientConfig(target)
	clientCfg.Logger = logging.Wrap(rt.logger, "status")
	conn, err := coreGrpc.Dial(clientCfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	st := newStyles(out)

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: checkservice.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(out, "%s: %s\n", target, st.err.Render("nicht erreichbar"))
		return mdwerror.Wrap(err, "health check failed").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithDetail("target", target)
	}

	serving := resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	label := st.err.Render(resp.GetStatus().String())
	if serving {
		label = st.ok.Render(resp.GetStatus().String())
	}
	fmt.Fprintf(out, "%s: %s\n", target, label)

	if !serving {
		return errChecksFailed
	}
	return nil
}
