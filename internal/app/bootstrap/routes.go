// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	chartfeature "github.com/dalemusser/castwatch/internal/app/features/chart"
	healthfeature "github.com/dalemusser/castwatch/internal/app/features/health"
	machinesfeature "github.com/dalemusser/castwatch/internal/app/features/machines"
	thresholdsfeature "github.com/dalemusser/castwatch/internal/app/features/thresholds"
	trainingfeature "github.com/dalemusser/castwatch/internal/app/features/training"
	uploadfeature "github.com/dalemusser/castwatch/internal/app/features/upload"
	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed.
//
// Two authentication surfaces share the router:
//   - Operator endpoints (chart, thresholds, machines) ride the signed
//     session cookie so each browser keeps its own threshold overrides.
//   - Machine endpoints (data upload, training) use Bearer API key auth
//     with permissive CORS and no session.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware. CORS must run early to handle preflights.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Operator endpoints (session-scoped)
	chartHandler := chartfeature.NewHandler(deps.MongoDatabase, thresholdStore, logger)
	r.Mount("/api/chart", chartfeature.Routes(chartHandler, sessionMgr))

	thresholdsHandler := thresholdsfeature.NewHandler(thresholdStore, logger)
	r.Mount("/api/thresholds", thresholdsfeature.Routes(thresholdsHandler, sessionMgr))

	machinesHandler := machinesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/machines", machinesfeature.Routes(machinesHandler))

	// Machine endpoints (API key)
	uploadHandler := uploadfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, logger)
	r.Mount("/api/data", uploadfeature.Routes(uploadHandler, appCfg.APIKey, logger))

	trainingHandler := trainingfeature.NewHandler(deps.MongoDatabase, appCfg.TrainerURL, logger)
	r.Mount("/api/training", trainingfeature.Routes(trainingHandler, appCfg.APIKey, logger))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Archived upload files (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
