package endpoints

import (
	"github.com/labworks/labextract/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// Routes lists the registered routes for the status endpoint.
	Routes func() []string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{Routes: cfg.Routes},

		// Bloodwork endpoints
		&UploadEndpoint{},
		&RawUploadEndpoint{},
		&ResolveRowsEndpoint{},

		// Result and reference endpoints
		&GetResultEndpoint{},
		&ListAnalytesEndpoint{},

		// Metrics endpoints
		&ListMetricsEndpoint{},
		&MetricsSummaryEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},

		// Documentation
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}
