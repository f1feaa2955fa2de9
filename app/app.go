package app

import (
	"fmt"
	"os"

	"stitchquote/app/controller"
	"stitchquote/app/router"
	"stitchquote/db"
	"stitchquote/logging"
	"stitchquote/repository"
	"stitchquote/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Pick the store matching the configured backend
	var store repository.Store
	switch db.ActiveBackend {
	case db.BackendCloud:
		store = repository.NewPostgresStore(db.DB)
	default:
		store = repository.NewSQLiteStore(db.DB)
	}

	// Base URL used by the PDF renderer to reach our own render endpoint
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	// Drive integration is optional; quotes can be priced, saved and exported
	// without it. Only uploads and customer logo serving need credentials.
	var drive service.DriveServiceInterface
	var logos *service.LogoService
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		drive = driveService
		logos = service.NewLogoService(driveService)
		if err := service.EnsureCacheDir(); err != nil {
			return err
		}
	} else {
		logging.Warnf("GOOGLE_APPLICATION_CREDENTIALS not set; Drive upload and logo serving disabled")
	}

	// Initialize services
	snapshots := service.NewSnapshotService(store)
	ingest := service.NewIngestService(store)
	exporter := service.NewQuoteExportService(baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Quote:      controller.NewQuoteController(store, snapshots, exporter, drive),
		Catalog:    controller.NewCatalogController(store, ingest),
		CostConfig: controller.NewCostConfigController(store),
		Logo:       controller.NewLogoController(logos),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
