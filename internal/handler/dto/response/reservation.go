package response

import (
	"strings"

	"gasthaus-reservations/internal/domain/reservation"
)

type ReservationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	EndDate      string `json:"end_date"`
	Time         string `json:"time"`
	Persons      int    `json:"persons"`
	ResourceID   string `json:"resource_id"`
	Info         string `json:"info"`
	Arrived      bool   `json:"arrived"`
	Departed     bool   `json:"departed"`
	Shift        string `json:"shift"`
	CheckoutTime string `json:"checkout_time,omitempty"`
}

const checkoutMarker = "| Checkout:"

func FromReservation(res reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           res.ID,
		Name:         res.Name,
		Date:         res.Date,
		EndDate:      res.EndDate,
		Time:         res.Time,
		Persons:      int(res.Persons),
		ResourceID:   res.TableID,
		Info:         res.Info,
		Arrived:      res.Arrived,
		Departed:     res.Departed,
		Shift:        string(res.Shift),
		CheckoutTime: checkoutHint(res.Info),
	}
}

func FromReservations(all []reservation.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(all))
	for i, res := range all {
		out[i] = FromReservation(res)
	}
	return out
}

// checkoutHint extracts the "... | Checkout: HH:MM" convention some room
// bookings carry in their note. It is display sugar, not a structural field.
func checkoutHint(info string) string {
	idx := strings.LastIndex(info, checkoutMarker)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(info[idx+len(checkoutMarker):])
}
