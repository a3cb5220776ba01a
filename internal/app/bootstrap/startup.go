// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	thresholdstore "github.com/dalemusser/castwatch/internal/app/store/thresholds"
	"github.com/dalemusser/castwatch/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// thresholdStore holds every operator session's specification limits in
// memory. It is created here so background cleanup can reference it before
// the HTTP handler exists; BuildHandler hands it to the features.
var thresholdStore *thresholdstore.Store

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	thresholdStore = thresholdstore.New()

	taskRunner = tasks.New(logger)
	taskRunner.Register(tasks.ReadingsRetentionJob(deps.MongoDatabase, logger, appCfg.ReadingsRetention))
	taskRunner.Register(tasks.StaleTrainingRunsJob(deps.MongoDatabase, logger, appCfg.TrainingRunTimeout))
	taskRunner.Register(tasks.IdleSessionCleanupJob(thresholdStore, logger, appCfg.SessionIdleTimeout))
	taskRunner.Start()

	return nil
}
