package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandeepkv93/credential-vault-backend/internal/di"
)

func main() {
	a, err := di.InitializeApp()
	if err != nil {
		log.Fatal(err)
	}
	serveErr := a.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		a.Logger.Info("shutdown signal received", "signal", s.String())
	case err := <-serveErr:
		if err != nil {
			a.Logger.Error("http server failed", "error", err)
		}
	}

	if err := a.Shutdown(context.Background()); err != nil {
		a.Logger.Error("shutdown completed with errors", "error", err)
		os.Exit(1)
	}
	a.Logger.Info("shutdown complete")
}
