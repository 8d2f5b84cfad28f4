package request

import (
	"gasthaus-reservations/internal/usecase"
)

type CreateReservationRequest struct {
	Name       string `json:"name" binding:"required"`
	Date       string `json:"date" binding:"required"`
	EndDate    string `json:"end_date,omitempty"`
	Time       string `json:"time" binding:"required"`
	Persons    int    `json:"persons"`
	ResourceID string `json:"resource_id" binding:"required"`
	Info       string `json:"info,omitempty"`
	Shift      string `json:"shift,omitempty"`
}

func (r CreateReservationRequest) ToParams() usecase.CreateParams {
	return usecase.CreateParams{
		Name:       r.Name,
		Date:       r.Date,
		EndDate:    r.EndDate,
		Time:       r.Time,
		Persons:    r.Persons,
		ResourceID: r.ResourceID,
		Info:       r.Info,
		Shift:      r.Shift,
	}
}

type UpdateReservationRequest struct {
	Name       *string `json:"name,omitempty"`
	Date       *string `json:"date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Time       *string `json:"time,omitempty"`
	Persons    *int    `json:"persons,omitempty"`
	ResourceID *string `json:"resource_id,omitempty"`
	Info       *string `json:"info,omitempty"`
	Shift      *string `json:"shift,omitempty"`
}

func (r UpdateReservationRequest) ToParams() usecase.UpdateParams {
	return usecase.UpdateParams{
		Name:       r.Name,
		Date:       r.Date,
		EndDate:    r.EndDate,
		Time:       r.Time,
		Persons:    r.Persons,
		ResourceID: r.ResourceID,
		Info:       r.Info,
		Shift:      r.Shift,
	}
}

type MoveReservationRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
}
