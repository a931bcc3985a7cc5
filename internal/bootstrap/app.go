package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/config"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/datasource"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/handler"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/logger"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/service"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

type App struct {
	Echo      *echo.Echo
	DB        *sql.DB
	Datastore *datastore.Client
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	registry := reportgen.NewRegistry()

	templates, err := service.NewTemplateService(config.DefaultEnvConfig.TEMPLATE_DIR)
	if err != nil {
		return fmt.Errorf("failed to load report templates: %w", err)
	}
	logger.InfoLog(ctx, fmt.Sprintf("Loaded %d report templates", len(templates.ListTemplates())))

	jobs := service.NewJobService(registry)

	sources, err := a.buildSources(ctx)
	if err != nil {
		return err
	}

	reportHandler := handler.NewReportHandler(registry, templates, jobs, sources, config.DefaultEnvConfig.STREAM_BATCH_SIZE)

	a.RegisterMiddlewares()
	a.RegisterRoutes(reportHandler)

	return nil
}

// buildSources wires the named data sources used by template-driven and
// streaming endpoints. Each backend is optional and only registered when
// its environment variable is set; the in-memory demo source is always
// available.
func (a *App) buildSources(ctx context.Context) (map[string]chunkflow.Fetcher, error) {
	sources := map[string]chunkflow.Fetcher{
		"demo": chunkflow.SliceFetcher(demoRows()),
	}

	if dsn := config.DefaultEnvConfig.DB_DSN; dsn != "" {
		db, err := datasource.OpenPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.DB = db
		sources["postgres"] = datasource.PostgresFetcher(db, "SELECT * FROM report_rows ORDER BY id")
	}

	if url := config.DefaultEnvConfig.ELASTIC_URL; url != "" {
		es, err := datasource.NewElasticClient(url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to elasticsearch: %w", err)
		}
		sources["elastic"] = datasource.ElasticFetcher(es, "report_rows", nil)
	}

	if project := config.DefaultEnvConfig.GCP_PROJECT_ID; project != "" {
		ds, err := datasource.NewDatastoreClient(ctx, project)
		if err != nil {
			logger.ErrorLog(ctx, fmt.Sprintf("failed to initialize datastore client: %v", err))
		} else {
			a.Datastore = ds
			sources["datastore"] = datasource.DatastoreFetcher(ds, "ReportRow")
		}
	}

	return sources, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(h *handler.ReportHandler) {
	a.Echo.POST("/export/:format", h.ExportHandler)
	a.Echo.POST("/print/:format", h.PrintHandler)

	tplGroup := a.Echo.Group("/templates")
	tplGroup.GET("", h.ListTemplatesHandler)
	tplGroup.GET("/:id/export", h.TemplateExportHandler)
	tplGroup.GET("/:id/stream/csv", h.StreamCSVHandler)
	tplGroup.GET("/:id/stream/excel", h.StreamExcelHandler)

	jobGroup := a.Echo.Group("/jobs")
	jobGroup.POST("/:format", h.SubmitJobHandler)
	jobGroup.GET("/:id", h.JobStatusHandler)
	jobGroup.GET("/:id/result", h.JobResultHandler)
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Datastore != nil {
		a.Datastore.Close()
	}
}

// demoRows backs the built-in "demo" source so the streaming and template
// endpoints work out of the box without any backend configured.
func demoRows() []interface{} {
	rows := make([]interface{}, 0, 50)
	departments := []string{"Engineering", "Marketing", "Sales", "Support", "Finance"}
	for i := 1; i <= 50; i++ {
		rows = append(rows, map[string]interface{}{
			"id":         i,
			"name":       fmt.Sprintf("Employee %02d", i),
			"department": departments[(i-1)%len(departments)],
			"salary":     50000 + float64(i)*750,
			"active":     i%7 != 0,
		})
	}
	return rows
}
