package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/models"
	"oakvale/server/internal/search"
)

type propertyRequest struct {
	Title        string                `json:"title"`
	Address      string                `json:"address"`
	Location     models.Location       `json:"location"`
	Price        int64                 `json:"price"`
	Images       []string              `json:"images"`
	VideoURL     string                `json:"video_url"`
	Bedrooms     int                   `json:"bedrooms"`
	Bathrooms    int                   `json:"bathrooms"`
	PropertyType models.PropertyType   `json:"property_type"`
	Amenities    []string              `json:"amenities"`
	Description  string                `json:"description"`
	Area         string                `json:"area"`
	SizeSqft     *float64              `json:"size_sqft"`
	Status       models.PropertyStatus `json:"status"`
}

func (r *propertyRequest) toModel() *models.Property {
	p := &models.Property{
		Title:        strings.TrimSpace(r.Title),
		Address:      strings.TrimSpace(r.Address),
		Location:     r.Location,
		Price:        r.Price,
		Images:       r.Images,
		VideoURL:     strings.TrimSpace(r.VideoURL),
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		PropertyType: models.PropertyType(strings.ToLower(string(r.PropertyType))),
		Amenities:    r.Amenities,
		Description:  strings.TrimSpace(r.Description),
		Area:         strings.TrimSpace(r.Area),
		SizeSqft:     r.SizeSqft,
		Status:       r.Status,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	return p
}

// resolveArea normalizes the area name, inferring the nearest neighborhood
// for located listings that arrive without one.
func (h *Handler) resolveArea(p *models.Property) {
	if p.Area != "" {
		if name, ok := config.CanonicalAreaName(p.Area); ok {
			p.Area = name
		}
		return
	}
	if !p.HasLocation() {
		return
	}
	if name, meters, ok := h.locator.NearestArea(p.Location); ok {
		p.Area = name
		h.logger.WithFields(logrus.Fields{
			"area":   name,
			"meters": meters,
		}).Info("Inferred listing area from coordinates")
	}
}

// AdminListProperties returns listings of every status, filtered like the
// public listing
func (h *Handler) AdminListProperties(c *gin.Context) {
	status := models.PropertyStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	catalog, err := h.db.ListProperties(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err, "Failed to get properties")
		return
	}
	c.JSON(http.StatusOK, search.Filter(catalog, search.ParseQuery(c.Request.URL.Query())))
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property := req.toModel()
	h.resolveArea(property)
	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property := req.toModel()
	property.ID = c.Param("id")
	h.resolveArea(property)
	if err := h.db.UpdateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err, "Failed to update property")
		return
	}

	h.logger.WithField("property_id", property.ID).Info("Updated property")
	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	if err := h.db.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.db.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
