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
	cfg, envLoaded, err := config.Load(true)
	if err != nil {
		l := logger.New("notesapi", "info", "json")
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New("notesapi", cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		log.Info().Msg("no .env file, using process environment")
	}

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

	if err := db.MigrateNotes(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	api := &handlers.NotesAPI{
		Users:      store.NewUsers(conn),
		Folders:    store.NewFolders(conn),
		Notes:      store.NewNotes(conn),
		Rows:       store.NewRowReader(conn),
		DB:         conn,
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Log:        log,
	}

	if err := server.Run(ctx, log, ":"+cfg.NotesPort, api.Routes()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
