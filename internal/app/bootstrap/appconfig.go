// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS, body limits); AppConfig is everything specific to
// castwatch. The struct is passed to most lifecycle hooks, so any
// configuration needed during startup, request handling, or shutdown
// lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Operator session configuration. Sessions carry no identity; the signed
	// cookie only scopes the in-memory threshold store per browser.
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: castwatch-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// SessionIdleTimeout controls when an idle session's threshold overrides
	// are dropped server-side (default: 8h, roughly one shift).
	SessionIdleTimeout time.Duration

	// API key authentication for the machine-facing surfaces (data upload,
	// training trigger, trainer callback). Leave empty to reject all of them.
	APIKey string

	// File storage for archived upload files
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// TrainerURL is the model service endpoint POSTed when a retraining run
	// is triggered. Empty means runs are recorded but nobody is notified.
	TrainerURL string

	// ReadingsRetention bounds how long queryable readings are kept
	// (default: 2160h / 90 days). Raw upload files are not affected.
	ReadingsRetention time.Duration

	// TrainingRunTimeout is how long a queued/running training run may go
	// without a trainer callback before it is failed (default: 2h).
	TrainingRunTimeout time.Duration
}
