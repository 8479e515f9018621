package main

import (
	"fmt"
	"log"

	"productoptions/configs"
	"productoptions/routes"
)

func main() {
	cfg := configs.LoadConfig()
	logger := configs.NewLogger(cfg)

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatal(err)
	}
	// migrate
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedDemoOptions(cfg.SeedShop, logger); err != nil {
		log.Fatalf("seed demo options failed: %v", err)
	}

	// HTTP
	r := routes.NewRouter(configs.DB(), cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server running", "addr", addr, "db_driver", cfg.DBDriver)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
