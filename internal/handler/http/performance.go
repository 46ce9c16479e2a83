package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/satfield/sfa-backend-go/internal/domain/performance"
	"github.com/satfield/sfa-backend-go/internal/handler/http/response"
	"github.com/satfield/sfa-backend-go/internal/pkg/timeutil"
)

type PerformanceHandler interface {
	Achievement(w http.ResponseWriter, r *http.Request)
	Series(w http.ResponseWriter, r *http.Request)
	Targets(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
	loc                *time.Location
	weekStartsOn       time.Weekday
}

func NewPerformanceHandler(performanceService performance.PerformanceService, loc *time.Location, weekStartsOn time.Weekday) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: performanceService,
		loc:                loc,
		weekStartsOn:       weekStartsOn,
	}
}

// Achievement implements PerformanceHandler. Optional start and end query
// parameters ("YYYY-MM-DD", inclusive) default to the current week.
func (h *performanceHandlerImpl) Achievement(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	window := timeutil.WeekBounds(time.Now().In(h.loc), h.weekStartsOn)
	start, end := window.Start, window.End
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			response.BadRequest(w, "Invalid start, expected YYYY-MM-DD", nil)
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			response.BadRequest(w, "Invalid end, expected YYYY-MM-DD", nil)
			return
		}
		end = timeutil.DayBounds(parsed).End
	}

	score, err := h.performanceService.ComputeAchievement(r.Context(), ownerID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, score)
}

// Series implements PerformanceHandler. The period query parameter picks
// the kind; count defaults per kind (5 weeks, 3 or 6 months).
func (h *performanceHandlerImpl) Series(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	kind := performance.PeriodKind(r.URL.Query().Get("period"))
	if kind == "" {
		kind = performance.PeriodWeekly
	}

	count := defaultCount(kind)
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid count", nil)
			return
		}
		count = parsed
	}

	series, err := h.performanceService.ComputeSeries(r.Context(), ownerID, kind, count)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, series)
}

func defaultCount(kind performance.PeriodKind) int {
	switch kind {
	case performance.PeriodQuarterly:
		return 3
	case performance.PeriodHalfYearly:
		return 6
	default:
		return 5
	}
}

// Targets implements PerformanceHandler.
func (h *performanceHandlerImpl) Targets(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	targets, err := h.performanceService.ResolveTargets(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, performance.TargetsResponse{
		OwnerID:               ownerID,
		MeetingsTarget:        targets.MeetingsTarget,
		AttendedTarget:        targets.AttendedTarget,
		DurationTargetSeconds: targets.DurationTargetSeconds,
		ClosingAmountTarget:   targets.ClosingAmountTarget,
	})
}

// Summary implements PerformanceHandler.
func (h *performanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	summary, err := h.performanceService.GetSummary(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
