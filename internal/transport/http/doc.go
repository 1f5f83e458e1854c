// Package http exposes the dashboard query pipeline over a chi REST API:
// view computation, dimension catalogs, cross-group outlier reports, and
// CSV/Excel downloads of the current view.
package http
