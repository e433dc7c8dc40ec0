package main

import (
	"os"

	"github.com/DRSN-tech/product-admin/internal/app"
	config "github.com/DRSN-tech/product-admin/internal/cfg"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

//	@title			Product Admin API
//	@version		1.0
//	@description	API каталога для редактора товаров: категории, загрузка фото, создание и обновление товаров.
//	@BasePath		/api
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
