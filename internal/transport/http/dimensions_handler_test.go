package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceanwatch/internal/dashboard"
	"oceanwatch/internal/deviation"
	"oceanwatch/internal/panel"
)

func TestGetDimensions(t *testing.T) {
	svc := &stubService{dims: &dashboard.Dimensions{
		Scales:      []string{"State", "County", "Region"},
		Geographies: map[string][]string{"State": {"California"}},
		Levels:      []string{"Sector", "Industry"},
		Units:       map[string][]string{"Sector": {"Tourism and Recreation"}},
		Metrics:     []string{"Employment"},
		Sources:     []string{"ENOW"},
		YearMin:     2016,
		YearMax:     2021,
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dimensions", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dims dashboard.Dimensions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dims))
	assert.Equal(t, []string{"State", "County", "Region"}, dims.Scales)
	assert.Equal(t, 2016, dims.YearMin)
	assert.Equal(t, 2021, dims.YearMax)
}

func TestGetDimensionsPanelMissing(t *testing.T) {
	svc := &stubService{dimsErr: fmt.Errorf("%w: /data/panel.csv", panel.ErrPanelNotFound)}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dimensions", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOutliers(t *testing.T) {
	svc := &stubService{report: &dashboard.OutlierReport{
		Metric: "Employment",
		Fence: deviation.Fence{
			Kept: []deviation.GroupStat{{Group: "California", Value: 1.5}},
			Cut:  []deviation.GroupStat{{Group: "Alaska", Value: 800}},
		},
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/outliers?group_by=geography&unit=Tourism+and+Recreation", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report dashboard.OutlierReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Fence.Cut, 1)
	assert.Equal(t, "Alaska", report.Fence.Cut[0].Group)

	assert.Equal(t, dashboard.GroupGeography, svc.lastOutlier.GroupBy)
	assert.Equal(t, "Tourism and Recreation", svc.lastOutlier.Spec.UnitName)
}

func TestGetOutliersDefaultsToUnitGrouping(t *testing.T) {
	svc := &stubService{report: &dashboard.OutlierReport{IsEmpty: true}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/outliers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dashboard.GroupUnit, svc.lastOutlier.GroupBy)
}

func TestHealthCheck(t *testing.T) {
	svc := &stubService{dims: &dashboard.Dimensions{}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, "ok", body["panel"])
}

func TestHealthCheckPanelUnavailable(t *testing.T) {
	svc := &stubService{dimsErr: fmt.Errorf("%w: /data/panel.csv", panel.ErrPanelNotFound)}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// The process is healthy even when the panel is not loadable.
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEqual(t, "ok", body["panel"])
}
