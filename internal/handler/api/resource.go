package api

import (
	"net/http"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/domain/reservation"
	resdto "gasthaus-reservations/internal/handler/dto/response"
	"gasthaus-reservations/internal/handler/httperr"
	"gasthaus-reservations/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	catalog *catalog.Catalog
	engine  *usecase.Engine
}

func NewResourceHandler(cat *catalog.Catalog, engine *usecase.Engine) *ResourceHandler {
	return &ResourceHandler{
		catalog: cat,
		engine:  engine,
	}
}

// @Summary List resources
// @Description All bookable tables and rooms
// @Tags resources
// @Produce json
// @Success 200 {array} resdto.ResourceResponse
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromResources(h.catalog.ListAll()))
}

// @Summary Free time slots
// @Description Free 15-minute slots for a table on a date and shift
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param shift query string false "Shift (mittag|abend)"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/slots [get]
func (h *ResourceHandler) FreeSlots(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.FindByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required",
		})
		return
	}

	slots, err := h.engine.FreeTimeSlots(id, date, reservation.CoerceShift(c.Query("shift")))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, slots)
}
