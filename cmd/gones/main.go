// Package main implements the gones NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gones/internal/app"
	"gones/internal/version"
)

func main() {
	cfg, err := app.ParseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("parse flags: %v", err)
	}

	if cfg.ShowVersion {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	setupGracefulShutdown()

	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	if cfg.ROMPath != "" {
		if err := application.LoadROM(cfg.ROMPath); err != nil {
			log.Fatalf("load ROM %s: %v", cfg.ROMPath, err)
		}
	} else if cfg.Headless {
		log.Fatal("a ROM path is required in headless mode")
	}

	if err := application.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("interrupt received, shutting down")
		os.Exit(0)
	}()
}
