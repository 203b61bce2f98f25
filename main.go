package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/mechstore/go-mechstore/app/broadcast"
	"github.com/mechstore/go-mechstore/app/cmd"
	"github.com/mechstore/go-mechstore/app/configs"
	"github.com/mechstore/go-mechstore/app/routes"
	"github.com/mechstore/go-mechstore/app/services"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	zlog.Info().Msg("database connected")

	hub := broadcast.NewHub()
	mailer := services.NewMailer(services.MailerConfigFromEnv(env))
	notifier := services.NewNotifier(mailer, hub, env.AdminEmail)

	router := routes.NewRouter(db, env, hub, notifier, mailer)

	addr := env.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zlog.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
	hub.Close()
	// Let scheduled notifications drain before the process exits.
	notifier.Wait()
	zlog.Info().Msg("server stopped")
}
