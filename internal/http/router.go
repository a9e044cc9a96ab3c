package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/group-scheduler/internal/metrics"
)

// RouterConfig collects the handlers and middleware dependencies the
// router needs.
type RouterConfig struct {
	Auth      *AuthHandler
	Groups    *GroupHandler
	Busy      *BusyHandler
	Events    *EventHandler
	Assistant *AssistantHandler
	Calendar  *CalendarHandler
	Validator TokenValidator
	Metrics   *metrics.Registry
	Logger    *slog.Logger
}

// NewRouter assembles the HTTP API. Authentication is enforced for every
// route except registration, login, logout, the liveness probe and the
// metrics endpoint.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)
	respond := responder{logger: logger}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		respond.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Metrics != nil {
		metricsHandler := cfg.Metrics.Handler()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			metricsHandler.ServeHTTP(w, req)
		})
	}

	mux.HandleFunc("/users", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		cfg.Auth.Register(w, req)
	})

	mux.HandleFunc("/users/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		cfg.Auth.Profile(w, req)
	})

	mux.HandleFunc("/sessions", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			cfg.Auth.Login(w, req)
		case http.MethodDelete:
			cfg.Auth.Logout(w, req)
		default:
			methodNotAllowed(w, http.MethodPost, http.MethodDelete)
		}
	})

	mux.HandleFunc("/groups", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			cfg.Groups.List(w, req)
		case http.MethodPost:
			cfg.Groups.Create(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/groups/join", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		cfg.Groups.Join(w, req)
	})

	mux.HandleFunc("/groups/", func(w http.ResponseWriter, req *http.Request) {
		routeGroup(cfg, w, req)
	})

	mux.HandleFunc("/busy", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			cfg.Busy.List(w, req)
		case http.MethodPost:
			cfg.Busy.Declare(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/busy/", func(w http.ResponseWriter, req *http.Request) {
		intervalID := strings.TrimPrefix(req.URL.Path, "/busy/")
		if intervalID == "" || strings.Contains(intervalID, "/") {
			http.NotFound(w, req)
			return
		}
		if req.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		cfg.Busy.Delete(w, req.WithContext(contextWithBusyID(req.Context(), intervalID)))
	})

	mux.HandleFunc("/events", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			cfg.Events.List(w, req)
		case http.MethodPost:
			cfg.Events.Create(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc("/events/", func(w http.ResponseWriter, req *http.Request) {
		eventID := strings.TrimPrefix(req.URL.Path, "/events/")
		if eventID == "" || strings.Contains(eventID, "/") {
			http.NotFound(w, req)
			return
		}
		req = req.WithContext(contextWithEventID(req.Context(), eventID))
		switch req.Method {
		case http.MethodGet:
			cfg.Events.Get(w, req)
		case http.MethodPut:
			cfg.Events.Update(w, req)
		case http.MethodDelete:
			cfg.Events.Delete(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	})

	mux.HandleFunc("/assistant/query", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		cfg.Assistant.Query(w, req)
	})

	mux.HandleFunc("/assistant/confirm", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		cfg.Assistant.Confirm(w, req)
	})

	var handler http.Handler = mux
	if cfg.Validator != nil {
		handler = sessionGuard(cfg.Validator, logger, handler)
	}
	if cfg.Metrics != nil {
		handler = Metrics(cfg.Metrics)(handler)
	}
	handler = RequestLogger(logger)(handler)
	return handler
}

// routeGroup dispatches /groups/{id} and its sub-resources.
func routeGroup(cfg RouterConfig, w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, "/groups/")
	segments := strings.Split(rest, "/")
	if len(segments) == 0 || segments[0] == "" {
		http.NotFound(w, req)
		return
	}

	groupID := segments[0]
	req = req.WithContext(contextWithGroupID(req.Context(), groupID))

	switch {
	case len(segments) == 1:
		switch req.Method {
		case http.MethodGet:
			cfg.Groups.Get(w, req)
		case http.MethodPut:
			cfg.Groups.Update(w, req)
		case http.MethodDelete:
			cfg.Groups.Delete(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	case len(segments) == 2 && segments[1] == "members":
		if req.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		cfg.Groups.ListMembers(w, req)
	case len(segments) == 3 && segments[1] == "members" && segments[2] != "":
		if req.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		req = req.WithContext(contextWithMemberID(req.Context(), segments[2]))
		cfg.Groups.RemoveMember(w, req)
	case len(segments) == 2 && segments[1] == "invites":
		switch req.Method {
		case http.MethodPost:
			cfg.Groups.CreateInvite(w, req)
		case http.MethodDelete:
			cfg.Groups.RevokeInvite(w, req)
		default:
			methodNotAllowed(w, http.MethodPost, http.MethodDelete)
		}
	case len(segments) == 2 && segments[1] == "calendar.ics":
		if req.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		cfg.Calendar.Feed(w, req)
	default:
		http.NotFound(w, req)
	}
}

// sessionGuard applies RequireSession to everything except the public
// endpoints.
func sessionGuard(validator TokenValidator, logger *slog.Logger, next http.Handler) http.Handler {
	protected := RequireSession(validator, logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if isPublicRoute(req) {
			next.ServeHTTP(w, req)
			return
		}
		protected.ServeHTTP(w, req)
	})
}

func isPublicRoute(req *http.Request) bool {
	switch req.URL.Path {
	case "/healthz", "/metrics":
		return req.Method == http.MethodGet
	case "/users":
		return req.Method == http.MethodPost
	case "/sessions":
		return true
	default:
		return false
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
