// Package webhook is a stub receiver for GitHub webhook deliveries. It only
// acknowledges events; all real work happens in scheduled `run` passes.
package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v45/github"
	"github.com/gorilla/mux"
	"github.com/rucio/ruciobot/server/logging"
)

const githubHeader = "X-Github-Event"

type Server struct {
	logger logging.Logger
	secret []byte
	port   int
}

func NewServer(logger logging.Logger, port int, secret []byte) *Server {
	return &Server{
		logger: logger,
		secret: secret,
		port:   port,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.Healthz).Methods(http.MethodGet)
	router.HandleFunc("/webhook", s.Webhook).Methods(http.MethodPost)
	return router
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("starting webhook server", map[string]interface{}{
		"port": s.port,
	})
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Router())
}

func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Webhook acknowledges a delivery. When a webhook secret is configured the
// payload signature is validated first.
func (s *Server) Webhook(w http.ResponseWriter, r *http.Request) {
	event := r.Header.Get(githubHeader)
	if event == "" {
		event = "ping"
	}

	if len(s.secret) > 0 {
		if _, err := gh.ValidatePayload(r, s.secret); err != nil {
			s.logger.Warn("rejecting webhook with invalid signature", map[string]interface{}{
				"event": event,
				"err":   err.Error(),
			})
			w.WriteHeader(http.StatusForbidden)
			return
		}
	}

	s.logger.Info("received event", map[string]interface{}{
		"event": event,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}
