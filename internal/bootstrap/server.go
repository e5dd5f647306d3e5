package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airplanes/api"
	"github.com/Domenick1991/airplanes/config"
	"github.com/Domenick1991/airplanes/docs"
	airplanesapi "github.com/Domenick1991/airplanes/internal/api/airplanes_service_api"
	"github.com/Domenick1991/airplanes/internal/metrics"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
)

const swaggerDocPath = "/docs/airplanes.swagger.json"

type Dependencies struct {
	Airplanes airplanes.AirplaneUseCase
	Metrics   *metrics.Metrics
	Checks    map[string]api.Check
	Log       *logrus.Logger
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC and HTTP servers and blocks until context is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, deps Dependencies) error {
	s := newServers(cfg, deps)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	deps.Log.WithFields(logrus.Fields{"http": cfg.HTTP.Address, "grpc": cfg.GRPC.Address}).Info("servers started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		deps.Log.Info("servers stopped")
		return nil
	}
}

func newServers(cfg *config.Config, deps Dependencies) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(deps.Log)))
	airplanesapi.RegisterAirplanesServiceServer(grpcSrv, airplanesapi.NewServer(deps.Airplanes, deps.Log))

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg.HTTP, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}
}

// NewRouter wires every HTTP route. The airplanes resource is served at /airplanes and /api/airplanes.
func NewRouter(cfg config.HTTPConfig, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	}

	handler := api.NewAirplaneHandler(deps.Airplanes, deps.Log)
	handler.Register(router.Group("/airplanes"))
	handler.Register(router.Group("/api/airplanes"))

	api.NewHealthHandler(deps.Checks).Register(router)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET(swaggerDocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.AirplanesSwagger)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDocPath))))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}

func unaryLogger(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := log.WithFields(logrus.Fields{"method": info.FullMethod, "duration": time.Since(start).String()})
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Info("rpc handled")
		return resp, err
	}
}
