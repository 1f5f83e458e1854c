package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"oceanwatch/internal/dashboard"
	apierrors "oceanwatch/internal/errors"
	"oceanwatch/internal/panel"
	"oceanwatch/internal/query"
)

// DimensionsHandler serves the dimension catalog and the cross-group
// outlier report.
type DimensionsHandler struct {
	service DashboardService
	logger  *slog.Logger
}

// NewDimensionsHandler creates a new dimensions handler.
func NewDimensionsHandler(service DashboardService, logger *slog.Logger) *DimensionsHandler {
	return &DimensionsHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "dimensions")),
	}
}

// GetDimensions handles GET /api/dimensions
func (h *DimensionsHandler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	dims, err := h.service.Dimensions(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	render.JSON(w, r, dims)
}

// GetOutliers handles GET /api/outliers. It reuses the view query
// parameters plus group_by to pick the comparison population.
func (h *DimensionsHandler) GetOutliers(w http.ResponseWriter, r *http.Request) {
	viewReq, apiErr := parseViewRequest(r)
	if apiErr != nil {
		if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to render error response",
				slog.String("error", err.Error()))
		}
		return
	}

	groupBy := viewReq.GroupBy
	if groupBy == dashboard.GroupNone {
		groupBy = dashboard.GroupUnit
	}

	report, err := h.service.CompareAcrossGroups(r.Context(), dashboard.OutlierRequest{
		Spec:    viewReq.Spec,
		Metric:  viewReq.Metric,
		GroupBy: groupBy,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (h *DimensionsHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	switch {
	case errors.Is(err, query.ErrInvalidSpec):
		apiErr = apierrors.InvalidSpecError(err)
	case errors.Is(err, panel.ErrPanelNotFound):
		apiErr = apierrors.PanelNotFoundError(err)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()))
		apiErr = apierrors.InternalError(err)
	}
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", err.Error()))
	}
}
