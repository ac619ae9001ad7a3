package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/quasilyte/gdata"
)

// SavedMatchConfig is the last match setup the player started.
type SavedMatchConfig struct {
	Method     string `json:"method"`
	Iterations int    `json:"iterations"`
}

// SavedVictory is one victory summary kept on disk.
type SavedVictory struct {
	Method     string                  `json:"method"`
	Iterations int                     `json:"iterations"`
	Results    []messages.RecoveryData `json:"results"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for match storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "chaos-invaders",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

func loadItem(key string, v any) bool {
	if !gdataInitialized || gdataManager == nil {
		return false
	}
	data, err := gdataManager.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", key, err)
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: Could not parse saved %s: %v", key, err)
		return false
	}
	return true
}

func saveItem(key string, v any) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize %s: %v", key, err)
		return err
	}
	if err := gdataManager.SaveItem(key, data); err != nil {
		log.Printf("Warning: Could not save %s: %v", key, err)
		return err
	}
	return nil
}

// LoadLastMatchConfig returns the last started setup, or nil if none is saved.
func LoadLastMatchConfig() *SavedMatchConfig {
	var saved SavedMatchConfig
	if !loadItem("match", &saved) {
		return nil
	}
	if ValidateStartRequest(messages.StartRequest{Method: saved.Method, Iterations: saved.Iterations}) != nil {
		return nil
	}
	return &saved
}

func SaveLastMatchConfig(c *SavedMatchConfig) {
	_ = saveItem("match", c)
}

// LoadHistory returns saved victories, newest first.
func LoadHistory() []SavedVictory {
	var history []SavedVictory
	loadItem("history", &history)
	return history
}

// AppendHistory records a victory and trims the oldest entries.
func AppendHistory(v SavedVictory) {
	history := append([]SavedVictory{v}, LoadHistory()...)
	if limit := cfg.Match.HistoryLimit; limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	_ = saveItem("history", history)
}
