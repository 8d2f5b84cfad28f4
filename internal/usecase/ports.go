package usecase

import "gasthaus-reservations/internal/domain/reservation"

// ReservationStore is the persistence seam for the engine and the lifecycle
// manager. The file-backed implementation lives in internal/infra/store.
type ReservationStore interface {
	Load(force bool) ([]reservation.Reservation, error)
	Save(all []reservation.Reservation) error
	CleanupOld() (int, error)
}
