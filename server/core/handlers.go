package core

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

const maxRequestBody = 1 << 16 // 64 KB

func writeHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func CheckGame(model *GameModel) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeHeaders(w)
		if err := json.NewEncoder(w).Encode(model.CheckGame()); err != nil {
			log.Printf("[controller] checkgame encode error: %v", err)
		}
	}
}

func Shoot(model *GameModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHeaders(w)

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req messages.ShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, `{"error":"id required"}`, http.StatusBadRequest)
			return
		}

		if err := model.Shoot(req.ID); err != nil {
			log.Printf("[controller] shoot %s failed: %v", req.ID, err)
			http.Error(w, `{"error":"shoot failed"}`, http.StatusInternalServerError)
			return
		}

		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func GetShot(model *GameModel) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeHeaders(w)

		if err := model.GetShot(); err != nil {
			http.Error(w, `{"error":"match not in play"}`, http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func StartGame(model *GameModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHeaders(w)

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req messages.StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}

		if err := model.SetGame(req.Method, req.Iterations); err != nil {
			if errors.Is(err, ErrInvalidConfig) {
				http.Error(w, `{"error":"invalid method or iterations"}`, http.StatusBadRequest)
				return
			}
			http.Error(w, `{"error":"start failed"}`, http.StatusInternalServerError)
			return
		}

		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// NewMux routes the controller API onto model.
func NewMux(model *GameModel) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+netconfig.PathCheckGame, CheckGame(model))
	mux.HandleFunc("POST "+netconfig.PathShoot, Shoot(model))
	mux.HandleFunc("POST "+netconfig.PathGetShot, GetShot(model))
	mux.HandleFunc("POST "+netconfig.PathStartGame, StartGame(model))
	mux.HandleFunc("GET /health", Health())
	return mux
}
