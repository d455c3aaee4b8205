package main

import (
	"log"
	"os"

	"shopsync_api/config"
	shopifyapp "shopsync_api/internal/shopify/app"
	"shopsync_api/pkg/dbconnect/postgres"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	log.Printf("Started app")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Config file %s not loaded (%v), falling back to env", configPath, err)
		appConfig = &config.AppConfig{Postgres: *config.PostgresFromEnv()}
		appConfig.Shopify.Values.ApplyDefaults()
		appConfig.Shopify.Colors.ApplyDefaults()
	}

	connector := postgres.NewPgConnector(&appConfig.Postgres)
	server := shopifyapp.NewShopifyServer(connector, appConfig.Shopify, os.Stdout)
	server.Run()
}
