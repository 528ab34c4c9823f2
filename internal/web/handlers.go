package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hermine-app/insights/internal/analytics"
)

// parseCriteria reads the filter criteria from query parameters:
// date (YYYY-MM-DD), window (days), role (all/admin/user), email,
// pattern.
func parseCriteria(r *http.Request) (analytics.Criteria, error) {
	var criteria analytics.Criteria
	query := r.URL.Query()

	if raw := query.Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return criteria, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		criteria.PreciseDate = &day
	}

	if raw := query.Get("window"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return criteria, fmt.Errorf("invalid window %q", raw)
		}
		criteria.WindowDays = days
	}

	switch role := query.Get("role"); role {
	case "", "all":
		criteria.Role = analytics.RoleAll
	case "admin":
		criteria.Role = analytics.RoleAdminOnly
	case "user":
		criteria.Role = analytics.RoleUserOnly
	default:
		return criteria, fmt.Errorf("invalid role %q", role)
	}

	criteria.ExactEmail = query.Get("email")
	criteria.EmailPattern = query.Get("pattern")
	return criteria, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// respond runs one aggregation with the request's criteria and writes
// the result or the error.
func respond[T any](w http.ResponseWriter, r *http.Request, fn func(analytics.Criteria) (T, error)) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := fn(criteria)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.Overview, error) {
		return s.service.GetOverview(r.Context(), c)
	})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.FilterResult, error) {
		return s.service.ListConversations(r.Context(), c)
	})
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.CostSummary, error) {
		return s.service.GetCosts(r.Context(), c)
	})
}

func (s *Server) handleCostTimeline(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.TimelineReport, error) {
		return s.service.GetCostTimeline(r.Context(), c)
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.ModelReport, error) {
		return s.service.GetModelStats(r.Context(), c)
	})
}

func (s *Server) handleDurations(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.DurationReport, error) {
		return s.service.GetDurations(r.Context(), c)
	})
}

func (s *Server) handleLongConversations(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.LongReport, error) {
		return s.service.GetLongConversations(r.Context(), c)
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.FeedbackSummary, error) {
		return s.service.GetFeedback(r.Context(), c)
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) (analytics.DocUsageDetail, error) {
		return s.service.GetDocUsage(r.Context(), c)
	})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GetConnections(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEmailGroups(w http.ResponseWriter, r *http.Request) {
	respond(w, r, func(c analytics.Criteria) ([]analytics.EmailGroup, error) {
		return s.service.GetEmailGroups(r.Context(), c)
	})
}
