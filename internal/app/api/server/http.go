package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/pulsekit/pulse/docs"
	"github.com/pulsekit/pulse/internal/app/api/handlers"
	mw "github.com/pulsekit/pulse/internal/app/api/middleware"
	connsvc "github.com/pulsekit/pulse/internal/app/service/connection"
	contentsvc "github.com/pulsekit/pulse/internal/app/service/content"
	"github.com/pulsekit/pulse/internal/app/service/identity"
	plansvc "github.com/pulsekit/pulse/internal/app/service/plan"
	recsvc "github.com/pulsekit/pulse/internal/app/service/recommendation"
	reportsvc "github.com/pulsekit/pulse/internal/app/service/report"
	syncsvc "github.com/pulsekit/pulse/internal/app/service/sync"
	wssvc "github.com/pulsekit/pulse/internal/app/service/workspace"
	cfgpkg "github.com/pulsekit/pulse/pkg/config"
	"github.com/pulsekit/pulse/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request tracing only; request logger & access log are attached per group
	// in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log       *zap.SugaredLogger
	Cfg       *cfgpkg.Config
	Metrics   *metrics.Metrics
	Verifier  identity.TokenVerifier
	Gate      identity.Authorizer
	Sync      syncsvc.Orchestrator
	Evaluator plansvc.Evaluator
	Workspace *wssvc.Service
	Conns     *connsvc.Service
	Reports   *reportsvc.Service
	Recs      *recsvc.Service
	Content   *contentsvc.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.Use(d.Metrics.Middleware())

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())

	handlers.RegisterSyncRoutes(apiV1, d.Gate, d.Sync)
	handlers.RegisterWorkspaceRoutes(apiV1, d.Verifier, d.Gate, d.Workspace, d.Evaluator)
	handlers.RegisterConnectionRoutes(apiV1, d.Gate, d.Conns)
	handlers.RegisterReportRoutes(apiV1, d.Gate, d.Reports)
	handlers.RegisterRecommendationRoutes(apiV1, d.Gate, d.Recs)
	handlers.RegisterContentRoutes(apiV1, d.Gate, d.Content)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, m *metrics.Metrics, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	var metricsSrv *http.Server

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.MetricsAddr != "" {
				metricsSrv = m.Serve(cfg.MetricsAddr, log)
				log.Infow("metrics started", "addr", cfg.MetricsAddr)
			}
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			if metricsSrv != nil {
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
