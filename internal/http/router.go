package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Availability *AvailabilityHandler
	Meetings     *MeetingHandler
	Leaves       *LeaveHandler
	Engagements  *EngagementHandler
	Escalations  *EscalationHandler
	Secretary    *SecretaryHandler
	Statistics   *StatisticsHandler

	// Session guards every route except POST /login and user registration.
	// SecretaryOnly additionally guards the secretary routes and runs
	// behind Session.
	Session       func(http.Handler) http.Handler
	SecretaryOnly func(http.Handler) http.Handler

	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	guard := func(h http.Handler) http.Handler {
		if cfg.Session != nil {
			return cfg.Session(h)
		}
		return h
	}
	secretaryGuard := func(h http.Handler) http.Handler {
		h = applySecretary(cfg, h)
		return guard(h)
	}

	if cfg.Auth != nil {
		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Login(w, r)
		})
		mux.Handle("/logout", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Logout(w, r)
		})))
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				// Registration is open so the first accounts can be created.
				cfg.Users.Register(w, r)
			case http.MethodGet:
				guard(http.HandlerFunc(cfg.Users.List)).ServeHTTP(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.Handle("/users/me", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Users.Me(w, r)
		})))
		mux.Handle("/users/me/schedule", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Users.DaySchedule(w, r)
		})))
	}

	if cfg.Availability != nil {
		mux.Handle("/availability/slots", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Availability.FreeSlots(w, r)
		})))
		mux.Handle("/availability/common-slots", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Availability.CommonSlots(w, r)
		})))
		mux.Handle("/availability/block", secretaryGuard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Availability.Block(w, r)
		})))
	}

	if cfg.Meetings != nil {
		mux.Handle("/meetings", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Meetings.Create(w, r)
		})))
		mux.Handle("/meetings/schedule", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Meetings.DaySchedule(w, r)
		})))
		mux.Handle("/meetings/", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/meetings/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Meetings.Get(w, r, id)
			case http.MethodPut:
				cfg.Meetings.Update(w, r, id)
			case http.MethodDelete:
				cfg.Meetings.Delete(w, r, id)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})))
	}

	if cfg.Leaves != nil {
		mux.Handle("/leaves", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Leaves.Create(w, r)
		})))
		mux.Handle("/leaves/", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/leaves/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Leaves.Get(w, r, id)
			case http.MethodPut:
				cfg.Leaves.Update(w, r, id)
			case http.MethodDelete:
				cfg.Leaves.Delete(w, r, id)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})))
	}

	if cfg.Engagements != nil {
		mux.Handle("/engagements", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Engagements.Create(w, r)
		})))
		mux.Handle("/engagements/", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/engagements/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodPut:
				cfg.Engagements.Update(w, r, id)
			case http.MethodDelete:
				cfg.Engagements.Delete(w, r, id)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})))
	}

	if cfg.Escalations != nil {
		mux.Handle("/escalations", secretaryGuard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Escalations.List(w, r)
		})))
		mux.Handle("/escalations/", secretaryGuard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/escalations/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Escalations.Resolve(w, r, id)
		})))
	}

	if cfg.Secretary != nil {
		mux.Handle("/secretary/emails", secretaryGuard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Secretary.SendEmails(w, r)
		})))
	}

	if cfg.Statistics != nil {
		registerStatistics := func(pattern string, handler http.HandlerFunc) {
			mux.Handle(pattern, guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				handler(w, r)
			})))
		}
		registerStatistics("/statistics/executive-time", cfg.Statistics.ExecutiveTime)
		registerStatistics("/statistics/projects", cfg.Statistics.Projects)
		registerStatistics("/statistics/executive-fraction", cfg.Statistics.ExecutiveFraction)
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func applySecretary(cfg RouterConfig, h http.Handler) http.Handler {
	if cfg.SecretaryOnly != nil {
		return cfg.SecretaryOnly(h)
	}
	return h
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
