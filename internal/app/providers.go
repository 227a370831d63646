package app

import (
	"context"
	"log/slog"

	"meeting-scribe/internal/api/v1/routes"
	"meeting-scribe/internal/api/v1/services"
	"meeting-scribe/internal/app/metrics"
	"meeting-scribe/internal/app/repository"
	"meeting-scribe/internal/app/repository/sqlite"
	"meeting-scribe/internal/app/storage"
	"meeting-scribe/internal/config"
)

// provideAnalysisDAO opens the SQLite store; the cleanup closes it.
func provideAnalysisDAO(settings *config.Settings) (repository.AnalysisDAO, func(), error) {
	db, err := sqlite.Open(settings.DBPath)
	if err != nil {
		return nil, nil, err
	}
	dao := sqlite.NewAnalysisDB(db)
	return dao, func() { dao.Close() }, nil
}

// provideCollectors registers Prometheus collectors once per process.
func provideCollectors() *metrics.Collectors {
	return metrics.NewCollectors()
}

// provideArchive connects to object storage when an endpoint is
// configured. Without one, archiving stays off and the archive is nil.
func provideArchive(settings *config.Settings, logger *slog.Logger) storage.AudioArchive {
	if settings.MinioEndpoint == "" {
		return nil
	}
	archive, err := storage.NewMinioArchive(context.Background(), storage.MinioConfig{
		Endpoint:  settings.MinioEndpoint,
		AccessKey: settings.MinioAccessKey,
		SecretKey: settings.MinioSecretKey,
		Bucket:    settings.MinioBucket,
		UseSSL:    settings.MinioUseSSL,
	})
	if err != nil {
		logger.Warn("audio archive disabled", "error", err)
		return nil
	}
	return archive
}

// provideServiceContainer assembles the v1 services for route registration.
func provideServiceContainer(
	settings *config.Settings,
	dao repository.AnalysisDAO,
	collectors *metrics.Collectors,
	archive storage.AudioArchive,
	logger *slog.Logger,
) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		Settings:             settings,
		TranscriptionService: services.NewTranscriptionService(settings, collectors, logger),
		AnalysisService:      services.NewAnalysisService(settings, dao, collectors, logger),
		ExportService:        services.NewExportService(dao),
		Archive:              archive,
		Logger:               logger,
	}
}
