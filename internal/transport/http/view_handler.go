package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"oceanwatch/internal/dashboard"
	apierrors "oceanwatch/internal/errors"
	"oceanwatch/internal/panel"
	"oceanwatch/internal/projection"
	"oceanwatch/internal/query"
)

// ViewHandler serves view computation and export requests.
type ViewHandler struct {
	service DashboardService
	logger  *slog.Logger
}

// NewViewHandler creates a new view handler.
func NewViewHandler(service DashboardService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "view")),
	}
}

// Routes returns the view routes.
func (h *ViewHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetView)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportExcel)

	return r
}

// GetView handles GET /api/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseViewRequest(r)
	if apiErr != nil {
		h.respondError(w, r, apiErr)
		return
	}

	result, err := h.service.ComputeView(r.Context(), req)
	if err != nil {
		h.respondError(w, r, h.mapError(r, err))
		return
	}

	render.JSON(w, r, result)
}

// ExportCSV handles GET /api/view/export.csv. The download carries the
// raw long-form values; display formatting never reaches exports.
func (h *ViewHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseViewRequest(r)
	if apiErr != nil {
		h.respondError(w, r, apiErr)
		return
	}

	result, err := h.service.ComputeView(r.Context(), req)
	if err != nil {
		h.respondError(w, r, h.mapError(r, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(req, "csv")))

	if err := result.Table.WriteCSV(w); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream CSV export",
			slog.String("error", err.Error()))
	}
}

// ExportExcel handles GET /api/view/export.xlsx
func (h *ViewHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseViewRequest(r)
	if apiErr != nil {
		h.respondError(w, r, apiErr)
		return
	}

	result, err := h.service.ComputeView(r.Context(), req)
	if err != nil {
		h.respondError(w, r, h.mapError(r, err))
		return
	}

	workbook, err := projection.NewWorkbook(result.Table, result.Stats)
	if err != nil {
		h.respondError(w, r, apierrors.InternalError(err))
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(req, "xlsx")))

	if _, err := workbook.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream Excel export",
			slog.String("error", err.Error()))
	}
}

// mapError translates service errors to wire errors.
func (h *ViewHandler) mapError(r *http.Request, err error) *apierrors.APIError {
	switch {
	case errors.Is(err, query.ErrInvalidSpec):
		return apierrors.InvalidSpecError(err)
	case errors.Is(err, panel.ErrPanelNotFound):
		return apierrors.PanelNotFoundError(err)
	default:
		h.logger.ErrorContext(r.Context(), "view computation failed",
			slog.String("error", err.Error()))
		return apierrors.InternalError(err)
	}
}

func (h *ViewHandler) respondError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", err.Error()))
	}
}

// parseViewRequest builds a dashboard request from query parameters.
// Dimension values use display labels; geography and unit default to the
// "everything at this scale/level" sentinel, years default to the full
// panel range (the spec clamps them).
func parseViewRequest(r *http.Request) (dashboard.Request, *apierrors.APIError) {
	q := r.URL.Query()

	scale, err := panel.ParseGeoScale(defaulted(q.Get("scale"), "State"))
	if err != nil {
		return dashboard.Request{}, apierrors.ErrValidation("scale", err.Error())
	}
	level, err := panel.ParseAggLevel(defaulted(q.Get("level"), "Sector"))
	if err != nil {
		return dashboard.Request{}, apierrors.ErrValidation("level", err.Error())
	}
	metric, err := panel.ParseMetricKind(defaulted(q.Get("metric"), "Employment"))
	if err != nil {
		return dashboard.Request{}, apierrors.ErrValidation("metric", err.Error())
	}
	groupBy, err := dashboard.ParseGroupBy(q.Get("group_by"))
	if err != nil {
		return dashboard.Request{}, apierrors.ErrValidation("group_by", err.Error())
	}
	comparison, err := dashboard.ParseComparisonMode(q.Get("comparison"))
	if err != nil {
		return dashboard.Request{}, apierrors.ErrValidation("comparison", err.Error())
	}

	yearMin, apiErr := yearParam(q.Get("year_min"), "year_min", 1)
	if apiErr != nil {
		return dashboard.Request{}, apiErr
	}
	yearMax, apiErr := yearParam(q.Get("year_max"), "year_max", 9999)
	if apiErr != nil {
		return dashboard.Request{}, apiErr
	}

	spec, err := query.NewSpec(scale,
		defaulted(q.Get("geography"), query.All),
		level,
		defaulted(q.Get("unit"), query.All),
		yearMin, yearMax)
	if err != nil {
		return dashboard.Request{}, apierrors.InvalidSpecError(err)
	}

	return dashboard.Request{
		Spec:       spec,
		Metric:     metric,
		GroupBy:    groupBy,
		Comparison: comparison,
	}, nil
}

func defaulted(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func yearParam(v, field string, fallback int) (int, *apierrors.APIError) {
	if v == "" {
		return fallback, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, apierrors.ErrValidation(field, fmt.Sprintf("invalid year %q", v))
	}
	return year, nil
}

func exportFilename(req dashboard.Request, ext string) string {
	return fmt.Sprintf("oceanwatch_%s_%d-%d.%s", req.Metric, req.Spec.YearMin, req.Spec.YearMax, ext)
}
