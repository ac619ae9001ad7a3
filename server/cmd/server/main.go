package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envtester/chaos-invaders/server/core"
	"github.com/envtester/chaos-invaders/shared/netconfig"
	"github.com/joho/godotenv"
)

const envAddr = "CHAOS_CONTROLLER_ADDR"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[controller] .env: %v", err)
	}

	defaultAddr := ":8080"
	if v := os.Getenv(envAddr); v != "" {
		defaultAddr = v
	}

	addr := flag.String("addr", defaultAddr, "HTTP listen address")
	backend := flag.String("backend", core.BackendSim, "Target backend: sim or docker")
	label := flag.String("label", core.DefaultTargetLabel, "Docker label selecting target containers")
	targets := flag.Int("targets", 6, "Number of simulated targets")
	tick := flag.Duration("tick", 100*time.Millisecond, "Recovery check interval")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed for recovery delays")
	method := flag.String("method", string(netconfig.KillSIGKILL), "Initial kill method")
	iterations := flag.Int("iterations", 5, "Initial iteration count")
	flag.Parse()

	km, ok := netconfig.ParseKillMethod(*method)
	if !ok || *iterations <= 0 {
		log.Fatalf("[controller] invalid initial match: %s x%d", *method, *iterations)
	}

	server, err := core.NewServer(core.Options{
		Addr:       *addr,
		Backend:    *backend,
		Label:      *label,
		Targets:    *targets,
		Tick:       *tick,
		Seed:       *seed,
		Method:     km,
		Iterations: *iterations,
	})
	if err != nil {
		log.Fatalf("[controller] %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[controller] shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("[controller] shutdown: %v", err)
		}
	}()

	log.Printf("[controller] %s backend, %s x%d", *backend, km, *iterations)
	if err := server.Start(); err != nil {
		log.Fatalf("[controller] fatal: %v", err)
	}
}
