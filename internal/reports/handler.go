package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Revenue serves GET /revenue?from=YYYY-MM-DD&to=YYYY-MM-DD. The window is
// half-open; a missing range defaults to the last 30 days.
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	to := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -30)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid to date, expected YYYY-MM-DD")
			return
		}
		// Inclusive date in the query, half-open window in the service.
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "from must precede to")
		return
	}

	report, err := h.service.Revenue(r.Context(), from, to)
	if err != nil {
		h.logger.Error("revenue report failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
