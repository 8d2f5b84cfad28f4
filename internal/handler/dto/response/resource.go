package response

import (
	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/usecase"
)

type ResourceResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Area          string `json:"area"`
	Capacity      int    `json:"capacity"`
	DisplayName   string `json:"display_name"`
	Row           int    `json:"row,omitempty"`
	PositionInRow int    `json:"position_in_row,omitempty"`
	Subtype       string `json:"subtype,omitempty"`
}

func FromResource(res catalog.Resource) ResourceResponse {
	return ResourceResponse{
		ID:            res.ID,
		Kind:          string(res.Kind),
		Area:          res.Area,
		Capacity:      res.Capacity,
		DisplayName:   res.DisplayName,
		Row:           res.Row,
		PositionInRow: res.PositionInRow,
		Subtype:       res.Subtype,
	}
}

func FromResources(all []catalog.Resource) []ResourceResponse {
	out := make([]ResourceResponse, len(all))
	for i, res := range all {
		out[i] = FromResource(res)
	}
	return out
}

type ResourceDayResponse struct {
	Resource     ResourceResponse      `json:"resource"`
	Reservations []ReservationResponse `json:"reservations"`
	Occupied     bool                  `json:"occupied"`
}

func FromDayView(view []usecase.ResourceDay) []ResourceDayResponse {
	out := make([]ResourceDayResponse, len(view))
	for i, day := range view {
		out[i] = ResourceDayResponse{
			Resource:     FromResource(day.Resource),
			Reservations: FromReservations(day.Reservations),
			Occupied:     day.Occupied,
		}
	}
	return out
}
