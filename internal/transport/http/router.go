package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ai-learning-lab/internal/app"
	"ai-learning-lab/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the health check, anonymous sign-in and the game websocket.
func NewRouter(service *app.LabService, ws *WSHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/auth/anonymous", signInHandler(service))
	r.Get("/ws", ws.ServeWS)
	return r
}

type signInResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func signInHandler(service *app.LabService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, session, err := service.SignIn(r.Context())
		if err != nil {
			log.Printf("anonymous sign-in failed: %v", err)
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrConfigurationMissing) {
				status = http.StatusServiceUnavailable
			}
			respondJSON(w, status, errorPayload{Message: "Sign-in is unavailable. Scores cannot be submitted."})
			return
		}
		respondJSON(w, http.StatusOK, signInResponse{Token: token, UserID: session.ID})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
