package api

import (
	"errors"
	"net/http"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/domain/reservation"
	reqdto "gasthaus-reservations/internal/handler/dto/request"
	resdto "gasthaus-reservations/internal/handler/dto/response"
	"gasthaus-reservations/internal/handler/httperr"
	"gasthaus-reservations/internal/pkg/errs"
	"gasthaus-reservations/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservations *usecase.Reservations
	engine       *usecase.Engine
	catalog      *catalog.Catalog
}

func NewReservationHandler(reservations *usecase.Reservations, engine *usecase.Engine, cat *catalog.Catalog) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		engine:       engine,
		catalog:      cat,
	}
}

// @Summary Create reservation
// @Description Create a new reservation after checking resource availability
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := req.ToParams()

	free, err := h.checkAvailability(params)
	if err != nil {
		h.mapError(c, err)
		return
	}
	if !free {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not available for the requested interval",
		})
		return
	}

	res, err := h.reservations.Create(params)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	res, err := h.reservations.Get(c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary List reservations
// @Tags reservations
// @Produce json
// @Success 200 {array} resdto.ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	all, err := h.reservations.List()
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(all))
}

// @Summary Day view
// @Description Per-table reservations and occupancy for a date and shift
// @Tags reservations
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param shift query string false "Shift (mittag|abend)"
// @Success 200 {array} resdto.ResourceDayResponse
// @Router /reservations/day [get]
func (h *ReservationHandler) DayView(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required",
		})
		return
	}

	view, err := h.reservations.DayView(date, reservation.CoerceShift(c.Query("shift")))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayView(view))
}

// @Summary Update reservation
// @Description Partial update; omitted fields keep their value
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	res, err := h.reservations.Update(c.Param("id"), req.ToParams())
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Delete reservation
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	removed, err := h.reservations.Delete(c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Move reservation
// @Description Move a reservation to another resource of the same kind
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.MoveReservationRequest true "Target resource"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/move [post]
func (h *ReservationHandler) MoveReservation(c *gin.Context) {
	var req reqdto.MoveReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	res, err := h.reservations.Move(c.Param("id"), req.ResourceID)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Move targets
// @Description Resources the reservation could be moved to
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/move-targets [get]
func (h *ReservationHandler) MoveTargets(c *gin.Context) {
	res, err := h.reservations.Get(c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	targets, err := h.engine.FindMovableTargets(res)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResources(targets))
}

// @Summary Toggle arrival
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/arrived [post]
func (h *ReservationHandler) ToggleArrived(c *gin.Context) {
	res, err := h.reservations.ToggleArrived(c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Mark departed
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/departed [post]
func (h *ReservationHandler) MarkDeparted(c *gin.Context) {
	res, err := h.reservations.MarkDeparted(c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cleanup old reservations
// @Description Remove reservations older than the retention window
// @Tags maintenance
// @Produce json
// @Success 200 {object} map[string]int
// @Router /maintenance/cleanup [post]
func (h *ReservationHandler) Cleanup(c *gin.Context) {
	removed, err := h.reservations.Cleanup()
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// checkAvailability resolves the target resource and runs the model for its
// kind. Unknown resources surface as not-found, never as available.
func (h *ReservationHandler) checkAvailability(params usecase.CreateParams) (bool, error) {
	res, ok := h.catalog.FindByID(params.ResourceID)
	if !ok {
		return false, errs.ErrResourceNotFound
	}
	iv := usecase.Interval{
		Date:    params.Date,
		EndDate: params.EndDate,
		Time:    params.Time,
		Shift:   reservation.CoerceShift(params.Shift),
	}
	if iv.EndDate == "" {
		iv.EndDate = iv.Date
	}
	return h.engine.IsResourceAvailable(res, iv, "")
}

func (h *ReservationHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrResourceUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not available for the requested interval",
		})
	case errors.Is(err, errs.ErrAlreadyDeparted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Guest is already marked as departed",
		})
	case errors.Is(err, errs.ErrInvalidDate), errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		// Keeps the original error on the context for the logging middleware.
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
