package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/pulsekit/pulse/internal/app/api/server"
	"github.com/pulsekit/pulse/internal/app/service/connection"
	"github.com/pulsekit/pulse/internal/app/service/content"
	"github.com/pulsekit/pulse/internal/app/service/identity"
	"github.com/pulsekit/pulse/internal/app/service/plan"
	"github.com/pulsekit/pulse/internal/app/service/provider"
	"github.com/pulsekit/pulse/internal/app/service/recommendation"
	"github.com/pulsekit/pulse/internal/app/service/report"
	"github.com/pulsekit/pulse/internal/app/service/sync"
	"github.com/pulsekit/pulse/internal/app/service/workspace"
	"github.com/pulsekit/pulse/internal/platform/db"
	"github.com/pulsekit/pulse/pkg/config"
	"github.com/pulsekit/pulse/pkg/logger"
	"github.com/pulsekit/pulse/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	metrics.Module,
	server.Module,
	identity.Module,
	provider.Module,
	sync.Module,
	plan.Module,
	workspace.Module,
	connection.Module,
	report.Module,
	recommendation.Module,
	content.Module,
)
