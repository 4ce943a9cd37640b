package checkservice

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	mdwlog "github.com/msto63/sfl/foundation/core/log"
	"github.com/msto63/sfl/foundation/sfl"
	coreGrpc "github.com/msto63/sfl/pkg/core/grpc"
	"github.com/msto63/sfl/pkg/core/logging"
)

func newTestServer(t *testing.T, opts sfl.Options) *grpc.ClientConn {
	t.Helper()

	opts.Logger = mdwlog.NewNop()
	engine, err := sfl.New(opts)
	if err != nil {
		t.Fatalf("sfl.New() error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Engine = engine
	cfg.Logger = logging.Wrap(mdwlog.NewNop(), "test")
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	clientCfg := coreGrpc.DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = cfg.Logger
	conn, err := coreGrpc.Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestServer_Check(t *testing.T) {
	client := NewClient(newTestServer(t, sfl.Options{}))

	tests := []struct {
		name   string
		source string
		want   Result
	}{
		{"accepted", `start integer x ; x <- 1 ; finish`, Result{OK: true}},
		{"type mismatch", `start integer x ; x <- "a" ; finish`, Result{Kind: "type_mismatch"}},
		{"relational print", `start integer x ; print x .eq. 1 finish`, Result{OK: true}},
		{"redeclared", `start integer x , x ; finish`, Result{Kind: "redeclared"}},
		{"trailing", `start finish extra`, Result{Kind: "trailing_input"}},
		{"empty", ``, Result{Kind: "unexpected_eof"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := client.Check(ctx, tt.source)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Check(%q) = %+v, want %+v", tt.source, got, tt.want)
			}
		})
	}
}

func TestServer_CheckTooLarge(t *testing.T) {
	client := NewClient(newTestServer(t, sfl.Options{MaxSourceBytes: 16}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Check(ctx, "start "+strings.Repeat(" ", 32)+"finish")
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Check() code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestServer_Health(t *testing.T) {
	conn := newTestServer(t, sfl.Options{})
	health := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Status is set before Serve accepts the first connection
	resp, err := health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName}, grpc.WaitForReady(true))
	if err != nil {
		t.Fatalf("Health.Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Status = %v, want SERVING", resp.GetStatus())
	}
}

func TestServer_Run(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.ShutdownTimeout = time.Second
	cfg.Logger = logging.Wrap(mdwlog.NewNop(), "test")

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestServer_VerdictCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = logging.Wrap(mdwlog.NewNop(), "test")

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(srv.Stop)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		resp, err := srv.Check(ctx, wrapperspb.String("start finish"))
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !resp.GetFields()["ok"].GetBoolValue() {
			t.Fatalf("Check() = %v, want ok", resp)
		}
	}
	resp, err := srv.Check(ctx, wrapperspb.String("start finish extra"))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got := resp.GetFields()["kind"].GetStringValue(); got != "trailing_input" {
		t.Errorf("kind = %q, want trailing_input", got)
	}

	hits, misses, _ := srv.cache.Stats()
	if hits != 2 || misses != 2 {
		t.Errorf("cache stats = %d hits, %d misses, want 2, 2", hits, misses)
	}

	cfg.CacheSize = 0
	uncached, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(uncached.Stop)
	if uncached.cache != nil {
		t.Error("CacheSize 0 should disable the cache")
	}
}
