package main

import (
	"context"

	_ "clinic-access-api/docs"
	"clinic-access-api/internal/config"
	"clinic-access-api/internal/handler"
	"clinic-access-api/internal/metrics"
	"clinic-access-api/internal/repository"
	"clinic-access-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title		Clinic Access API
//	@version	1.0
//	@BasePath	/

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	files, err := repository.NewFileRepository(repository.FilePaths{
		Locations:    cfg.LocationsFile,
		Gestational:  cfg.GestationalFile,
		StateAbbrevs: cfg.StateAbbrevsFile,
	}, cfg.FileEncoding)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up file repository")
	}

	var locations service.LocationSource = files
	if cfg.LocationSource == config.SourcePostgres {
		// Database connection
		conn, err := pgxpool.New(context.Background(), cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		locations = repository.NewPostgresRepository(conn)
	}
	log.Info().Str("source", cfg.LocationSource).Msg("location source selected")

	// Initialize layers
	m := metrics.New()

	cityService := service.NewCityService(locations, log.Logger)
	stateService := service.NewStateService(locations, files, cfg.StrictJoin, log.Logger)

	cityHandler := handler.NewCityHandler(cityService, cfg.CityTopN, m)
	stateHandler := handler.NewStateHandler(stateService, m)

	if cfg.Level() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(cityHandler, stateHandler, m)

	log.Info().Str("address", cfg.ServerAddress).Msg("starting server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
