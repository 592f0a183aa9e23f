package main

import (
	"os"

	"github.com/DRSN-tech/pricing-api/internal/app"
	config "github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
)

//	@title			Product Pricing API
//	@version		1.0
//	@description	Список продуктов, история цен, скидки и установка новой цены.
//	@BasePath		/
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
