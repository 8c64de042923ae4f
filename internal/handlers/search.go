package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/maisonrony/shop_backend/internal/service/search"
	"github.com/maisonrony/shop_backend/internal/util"
)

// SearchHandler answers product full-text queries. It is only mounted when
// an Elasticsearch client was configured.
type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return respondError(c, http.StatusBadRequest, "Le paramètre de recherche est requis.")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Search(c.Request().Context(), h.ES, h.Index, query, from, limit)
	if err != nil {
		return internalError(c, "Erreur lors de la recherche.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"total":     total,
		"resultats": hits,
	})
}
