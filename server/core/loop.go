package core

import (
	"log"
	"time"
)

// RecoveryLoop advances the simulated fleet's clock at a fixed rate.
type RecoveryLoop struct {
	fleet    *SimulatedFleet
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

func NewRecoveryLoop(fleet *SimulatedFleet, interval time.Duration) *RecoveryLoop {
	return &RecoveryLoop{
		fleet:    fleet,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *RecoveryLoop) Run() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Printf("[controller] recovery loop started (every %s)", l.interval)

	for {
		select {
		case <-l.stopChan:
			log.Println("[controller] recovery loop stopped")
			return
		case now := <-ticker.C:
			l.fleet.Tick(now)
		}
	}
}

// Stop ends Run and waits for it to return.
func (l *RecoveryLoop) Stop() {
	close(l.stopChan)
	<-l.done
}
