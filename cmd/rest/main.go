package main

import (
	"context"
	"log"

	"ai-noteflow-be/internal/bootstrap"
	"ai-noteflow-be/internal/config"
	"ai-noteflow-be/internal/server"
	"ai-noteflow-be/internal/tracer"
	"ai-noteflow-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Notifier Service...")
		if err := container.NotifierService.Start(); err != nil {
			log.Printf("Background Notifier Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
