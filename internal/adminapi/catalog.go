package adminapi

import (
	"net/http"

	"github.com/dame6k/beatstore/internal/catalog"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerCatalogRoutes() {
	webserver.ApiGET("/catalog", withPage(listCatalog))
	webserver.ApiGET("/catalog/export", withPage(exportCatalog))
}

// listCatalog applies the query's filter controls. Without any it returns
// the current view unchanged.
func listCatalog(c echo.Context, p *page.Page, _ string) error {
	var criteria catalog.Criteria
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &criteria); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse filters", err.Error())
	}
	if criteria == (catalog.Criteria{}) {
		return ok(c, p.Catalog.View())
	}
	return ok(c, p.Catalog.FilterBeats(criteria))
}

func exportCatalog(c echo.Context, p *page.Page, _ string) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="catalog.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return p.Catalog.ExportCSV(c.Response())
}
