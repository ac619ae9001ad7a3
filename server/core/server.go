package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// Backend names accepted by Options.Backend.
const (
	BackendSim    = "sim"
	BackendDocker = "docker"
)

// Options configures a controller Server.
type Options struct {
	Addr       string
	Backend    string
	Label      string // Docker target label
	Targets    int    // Simulated fleet size
	Tick       time.Duration
	Seed       uint64
	Method     netconfig.KillMethod
	Iterations int
}

// Server wires the match model, a target backend and the HTTP API.
type Server struct {
	model   *GameModel
	backend TargetBackend
	loop    *RecoveryLoop // Only set for the simulated fleet
	http    *http.Server
}

func NewServer(opts Options) (*Server, error) {
	s := &Server{}

	switch opts.Backend {
	case BackendSim, "":
		fleet := NewSimulatedFleet(opts.Targets, opts.Seed)
		s.backend = fleet
		s.loop = NewRecoveryLoop(fleet, opts.Tick)
	case BackendDocker:
		fleet, err := NewDockerFleet(opts.Label)
		if err != nil {
			return nil, err
		}
		s.backend = fleet
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}

	s.model = NewGameModel(s.backend, opts.Method, opts.Iterations)
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           NewMux(s.model),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Start runs the recovery loop, if any, and serves HTTP until Stop is called.
func (s *Server) Start() error {
	if s.loop != nil {
		go s.loop.Run()
	}

	log.Printf("[controller] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the HTTP server down and releases the backend.
func (s *Server) Stop(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.loop != nil {
		s.loop.Stop()
	}
	s.model.Close()
	if closer, ok := s.backend.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil {
			log.Printf("[controller] close backend: %v", cerr)
		}
	}
	return err
}

func (s *Server) Model() *GameModel {
	return s.model
}
