package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"oakvale/server/config"
	"oakvale/server/internal/geometry"
	"oakvale/server/internal/models"
	"oakvale/server/internal/search"
)

// ListProperties returns the available listings matching the query filters
func (h *Handler) ListProperties(c *gin.Context) {
	catalog, err := h.db.ListProperties(c.Request.Context(), models.StatusAvailable)
	if err != nil {
		h.respondError(c, err, "Failed to get properties")
		return
	}

	spec := search.ParseQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, search.Filter(catalog, spec))
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.db.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// PropertyMap returns the filtered listings as a GeoJSON FeatureCollection
func (h *Handler) PropertyMap(c *gin.Context) {
	catalog, err := h.db.ListProperties(c.Request.Context(), models.StatusAvailable)
	if err != nil {
		h.respondError(c, err, "Failed to get properties")
		return
	}

	spec := search.ParseQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, geometry.ListingsFeatureCollection(search.Filter(catalog, spec)))
}

type neighborhoodView struct {
	config.Neighborhood
	ListingCount int `json:"listing_count"`
}

func (h *Handler) ListNeighborhoods(c *gin.Context) {
	counts, err := h.listingCounts(c)
	if err != nil {
		h.respondError(c, err, "Failed to get neighborhoods")
		return
	}

	views := make([]neighborhoodView, 0, len(config.Neighborhoods))
	for _, n := range config.Neighborhoods {
		views = append(views, neighborhoodView{Neighborhood: n, ListingCount: counts[strings.ToLower(n.Name)]})
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) GetNeighborhood(c *gin.Context) {
	n := config.GetNeighborhoodByName(c.Param("name"))
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Neighborhood not found"})
		return
	}

	counts, err := h.listingCounts(c)
	if err != nil {
		h.respondError(c, err, "Failed to get neighborhood")
		return
	}
	c.JSON(http.StatusOK, neighborhoodView{Neighborhood: *n, ListingCount: counts[strings.ToLower(n.Name)]})
}

// NeighborhoodMap returns the neighborhood centers as GeoJSON
func (h *Handler) NeighborhoodMap(c *gin.Context) {
	fc := geometry.NeighborhoodFeatures(config.Neighborhoods)
	c.JSON(http.StatusOK, gin.H{
		"center":   config.MapCenter,
		"zoom":     config.MapZoomLevel,
		"features": fc,
	})
}

func (h *Handler) PriceBrackets(c *gin.Context) {
	c.JSON(http.StatusOK, search.PriceBrackets)
}

// listingCounts counts available listings per lower-cased area name
func (h *Handler) listingCounts(c *gin.Context) (map[string]int, error) {
	catalog, err := h.db.ListProperties(c.Request.Context(), models.StatusAvailable)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for i := range catalog {
		counts[strings.ToLower(catalog[i].Area)]++
	}
	return counts, nil
}
