package checkservice

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	"github.com/msto63/sfl/foundation/sfl"
	"github.com/msto63/sfl/foundation/sfl/checker"
	"github.com/msto63/sfl/pkg/core/cache"
	coreGrpc "github.com/msto63/sfl/pkg/core/grpc"
	"github.com/msto63/sfl/pkg/core/logging"
)

// Ensure Server implements CheckerServer
var _ CheckerServer = (*Server)(nil)

// Server is the sfl.v1.Checker gRPC server
type Server struct {
	engine *sfl.Engine
	grpc   *coreGrpc.Server
	logger *logging.Logger
	cache  *cache.Cache[string]
	config Config
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	ShutdownTimeout  time.Duration

	// CacheSize bounds the verdict cache; zero or negative disables it
	CacheSize int
	CacheTTL  time.Duration

	Engine *sfl.Engine
	Logger *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            9310,
		ShutdownTimeout: 10 * time.Second,
		CacheSize:       1024,
		CacheTTL:        10 * time.Minute,
	}
}

// New creates a new check server
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("check-service")
	}

	engine := cfg.Engine
	if engine == nil {
		var err error
		engine, err = sfl.New(sfl.Options{Logger: logger.Logger})
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to create engine").
				WithCode(mdwerror.CodeServiceInitialization).
				WithOperation("checkservice.New")
		}
	}

	// Create gRPC server
	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcCfg.Logger = logger

	server := &Server{
		engine: engine,
		grpc:   coreGrpc.NewServer(grpcCfg),
		logger: logger,
		config: cfg,
	}
	if cfg.CacheSize > 0 {
		server.cache = cache.New[string](cache.Config{MaxItems: cfg.CacheSize, TTL: cfg.CacheTTL})
	}

	// Register gRPC service
	RegisterCheckerServer(server.grpc.GRPCServer(), server)

	return server, nil
}

// Check implements CheckerServer.Check
func (s *Server) Check(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	requestID := coreGrpc.GetRequestID(ctx)

	kind, cached, err := s.verdict(req.GetValue())
	switch {
	case err == nil && kind == "":
		s.logger.Debug("Check accepted", "request_id", requestID, "cached", cached)
		return structpb.NewStruct(map[string]interface{}{"ok": true})

	case err == nil:
		s.logger.Debug("Check rejected", "request_id", requestID, "kind", kind, "cached", cached)
		return structpb.NewStruct(map[string]interface{}{"ok": false, "kind": kind})

	case mdwerror.HasCode(err, mdwerror.CodeInputTooLarge):
		return nil, status.Error(codes.InvalidArgument, err.Error())

	default:
		s.logger.Error("Check failed", "request_id", requestID, "error", err.Error())
		return nil, status.Error(codes.Internal, err.Error())
	}
}

// verdict returns the rejection kind for source, empty when accepted.
// Verdicts are cached by source; errors are not.
func (s *Server) verdict(source string) (string, bool, error) {
	compute := func() (string, error) {
		err := s.engine.Verify(source)
		switch {
		case err == nil:
			return "", nil
		case mdwerror.HasCode(err, mdwerror.CodeRejected):
			return checker.KindOf(err).String(), nil
		default:
			return "", err
		}
	}

	if s.cache == nil {
		kind, err := compute()
		return kind, false, err
	}
	return s.cache.GetOrSet(cache.Key(source), compute)
}

// Serve marks the service healthy and serves on lis until stopped
func (s *Server) Serve(lis net.Listener) error {
	s.grpc.SetServing(ServiceName, true)
	return s.grpc.Serve(lis)
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down within the configured timeout
func (s *Server) Run(ctx context.Context) error {
	lis, err := s.grpc.Listen()
	if err != nil {
		return mdwerror.Wrap(err, "failed to listen").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("checkservice.Run").
			WithDetail("address", s.grpc.Address())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down check service")
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = DefaultConfig().ShutdownTimeout
		}
		stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.grpc.StopWithTimeout(stopCtx)
		s.closeCache()
		return nil
	}
}

// Stop gracefully stops the server
func (s *Server) Stop() {
	s.grpc.Stop()
	s.closeCache()
}

func (s *Server) closeCache() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}
