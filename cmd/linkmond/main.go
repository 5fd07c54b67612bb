package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/datalink-global/datalink/linkmon/config"
	"github.com/datalink-global/datalink/linkmon/daemon"
	"github.com/datalink-global/datalink/linkmon/log"
)

func main() {
	log.InitLogger()
	config.Load()
	log.ResetLogger(config.Home())
	config.Print()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := daemon.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create daemon: %v", err)
	}

	if err := d.Start(); err != nil {
		log.Fatalf("Failed to start daemon: %v", err)
	}

	go d.Monitor()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down request monitor")
	cancel()
	d.Stop()
}
