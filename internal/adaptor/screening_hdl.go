package adaptor

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
	"github.com/atherlangga/dddtix/internal/dto/response"
	"github.com/atherlangga/dddtix/internal/usecase"
	"github.com/atherlangga/dddtix/pkg/utils"
)

// Dates in query parameters use the short form, e.g. ?after=2015-01-01.
const queryDateLayout = "2006-01-02"

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// ListScreenings handles GET /api/screenings with optional after or from/to
// date filters.
func (h *ScreeningHandler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		screenings []*domain.MovieScreening
		err        error
	)
	switch {
	case query.Get("from") != "" && query.Get("to") != "":
		var begin, end time.Time
		begin, err = time.Parse(queryDateLayout, query.Get("from"))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'from' date", nil)
			return
		}
		end, err = time.Parse(queryDateLayout, query.Get("to"))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'to' date", nil)
			return
		}
		screenings, err = h.service.GetBetween(r.Context(), begin, end)

	case query.Get("after") != "":
		var after time.Time
		after, err = time.Parse(queryDateLayout, query.Get("after"))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'after' date", nil)
			return
		}
		screenings, err = h.service.GetAfter(r.Context(), after)

	default:
		// No filter: everything from the epoch on.
		screenings, err = h.service.GetAfter(r.Context(), time.Time{})
	}
	if err != nil {
		h.log.Error("Failed to list screenings", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", response.ScreeningsToResponse(screenings))
}

// GetScreening handles GET /api/screenings/{movieCode}
func (h *ScreeningHandler) GetScreening(w http.ResponseWriter, r *http.Request) {
	movieCode := chi.URLParam(r, "movieCode")
	if movieCode == "" {
		utils.ResponseBadRequest(w, "Movie code is required", nil)
		return
	}

	screening, err := h.service.GetByCode(r.Context(), movieCode)
	if err != nil {
		if errors.Is(err, domain.ErrScreeningNotFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("Failed to get screening",
			zap.Error(err),
			zap.String("movie_code", movieCode))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", response.ScreeningToResponse(screening))
}
