package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/config"
	"github.com/saludmental/mindtrack/internal/service"
	"github.com/saludmental/mindtrack/pkg/auth"
	"github.com/saludmental/mindtrack/pkg/metrics"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Import  *service.ImportService
	Export  *service.ExportService
	Patient *service.PatientService
	Stats   *service.StatsService
}

// NewRouter wires the full HTTP surface: the versioned API, health check
// and the Prometheus scrape endpoint.
func NewRouter(cfg *config.Config, svcs Services, verifier *auth.Verifier, m *metrics.Collector, log *zap.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics(m))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	importHandler := NewImportHandler(svcs.Import, verifier, cfg.Import.MaxUploadBytes, log)
	exportHandler := NewExportHandler(svcs.Export, verifier)
	patientHandler := NewPatientHandler(svcs.Patient)
	statsHandler := NewStatsHandler(svcs.Stats)

	api := r.Group("/api/v1")
	{
		api.POST("/imports", importHandler.Import)
		api.GET("/exports/patients", exportHandler.ExportPatients)
		api.GET("/patients", patientHandler.List)
		api.GET("/patients/:id", patientHandler.Get)
		api.GET("/stats", statsHandler.Get)
	}

	return r
}
