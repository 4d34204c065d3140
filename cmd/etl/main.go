package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/moshu0517/etl-pipeline/internal/cli"
	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	lg := logger.New(os.Stdout)

	rootCmd := cli.NewRootCmd(cfg, lg)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
