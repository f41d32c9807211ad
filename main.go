package main

import (
	"context"
	"runtime"
	"time"

	"backend/client"
	"backend/config"
	"backend/routes"
	"backend/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	sysConfigs, err := config.LoadConfigs()
	if err != nil {
		log.Fatal().AnErr("Error loading configuration: ", err)
	}

	if sysConfigs.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	secClient := client.NewSECClient(sysConfigs.Config)
	directory := service.NewDirectoryService(secClient)

	loadCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := directory.Load(loadCtx); err != nil {
		log.Warn().Err(err).Msg("Company directory load failed, searches will be empty until the next refresh")
	}
	cancel()

	refresh := time.Duration(sysConfigs.Config.DirectoryRefreshMinutes) * time.Minute
	directory.StartRefresh(context.Background(), refresh)

	router := routes.SetupRouter(sysConfigs, secClient, directory)

	port := sysConfigs.Config.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal().AnErr("Server failed to start: ", err)
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Logger()
}
