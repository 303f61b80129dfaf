package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"notes-hub/config"
	"notes-hub/db"
	"notes-hub/handlers"
	"notes-hub/logger"
	"notes-hub/server"
	"notes-hub/store"
)

func main() {
	cfg, _, err := config.Load(false)
	if err != nil {
		l := logger.New("companyapi", "info", "json")
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New("companyapi", cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer conn.Close()

	if err := db.MigrateCompanies(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	api := &handlers.CompanyAPI{
		Companies: store.NewCompanies(conn),
		DB:        conn,
		Log:       log,
	}

	if err := server.Run(ctx, log, ":"+cfg.CompanyPort, api.Routes()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
