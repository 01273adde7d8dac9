package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hanzawa-dev/gobbs/internal/config"
	"github.com/hanzawa-dev/gobbs/internal/logger"
	"github.com/hanzawa-dev/gobbs/internal/router"
	"github.com/hanzawa-dev/gobbs/internal/setup"
)

func main() {
	log.SetFlags(log.Lshortfile)

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()
	defer deps.CancelFunc()

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = cfg.Public.HTTPPort
	}
	if httpPort == "" {
		httpPort = "8080"
	}

	log.Print("Server started")
	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
