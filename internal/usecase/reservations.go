package usecase

import (
	"log/slog"
	"sort"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/domain/reservation"
	"gasthaus-reservations/internal/pkg/errs"
	"gasthaus-reservations/internal/pkg/patch"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

// Reservations is the lifecycle manager: it owns all mutations of the
// reservation set. Availability is deliberately not enforced on Create;
// the boundary layer consults the Engine first, so administrative flows can
// bypass the check.
type Reservations struct {
	store  ReservationStore
	cat    *catalog.Catalog
	engine *Engine
	logger *slog.Logger
}

func NewReservations(store ReservationStore, cat *catalog.Catalog, engine *Engine, logger *slog.Logger) *Reservations {
	return &Reservations{store: store, cat: cat, engine: engine, logger: logger}
}

type CreateParams struct {
	Name       string
	Date       string
	EndDate    string
	Time       string
	Persons    int
	ResourceID string
	Info       string
	Shift      string
}

func (u *Reservations) Create(p CreateParams) (reservation.Reservation, error) {
	if p.Name == "" || p.Date == "" || p.Time == "" || p.ResourceID == "" {
		return reservation.Reservation{}, errs.Mark(errs.New("name, date, time and resource are required"), errs.ErrValidation)
	}
	if _, err := reservation.ParseDate(p.Date); err != nil {
		return reservation.Reservation{}, err
	}
	if p.EndDate != "" {
		if _, err := reservation.ParseDate(p.EndDate); err != nil {
			return reservation.Reservation{}, err
		}
	}

	persons := p.Persons
	if persons < 0 {
		u.logger.Warn("invalid party size coerced to 0", "persons", p.Persons)
		persons = 0
	}

	res := reservation.Reservation{
		ID:      uuid.NewString(),
		Name:    p.Name,
		Date:    p.Date,
		EndDate: p.EndDate,
		Time:    p.Time,
		Persons: reservation.PartySize(persons),
		TableID: p.ResourceID,
		Info:    p.Info,
		Shift:   reservation.CoerceShift(p.Shift),
	}
	res.Normalize()

	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}
	all = append(all, res)
	if err := u.store.Save(all); err != nil {
		return reservation.Reservation{}, err
	}
	u.logger.Info("reservation created",
		"id", res.ID, "guest", res.Name, "resource", res.TableID, "date", res.Date, "shift", res.Shift)
	return res, nil
}

type UpdateParams struct {
	Name       *string
	Date       *string
	EndDate    *string
	Time       *string
	Persons    *int
	ResourceID *string
	Info       *string
	Shift      *string
}

// Update applies only the provided fields. Invalid party sizes and shifts
// are logged and ignored rather than rejecting the whole update. A no-op
// update does not trigger a save (and therefore no backup rotation).
func (u *Reservations) Update(id string, p UpdateParams) (reservation.Reservation, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}

	idx := indexByID(all, id)
	if idx < 0 {
		return reservation.Reservation{}, errs.ErrReservationNotFound
	}

	before := all[idx]
	updated := before
	updated.Name = patch.Coalesce(p.Name, updated.Name)
	updated.Date = patch.Coalesce(p.Date, updated.Date)
	updated.EndDate = patch.Coalesce(p.EndDate, updated.EndDate)
	updated.Time = patch.Coalesce(p.Time, updated.Time)
	updated.TableID = patch.Coalesce(p.ResourceID, updated.TableID)
	updated.Info = patch.Coalesce(p.Info, updated.Info)

	if p.Persons != nil {
		if *p.Persons < 0 {
			u.logger.Warn("invalid party size ignored for update", "id", id, "persons", *p.Persons)
		} else {
			updated.Persons = reservation.PartySize(*p.Persons)
		}
	}
	if p.Shift != nil {
		if shift := reservation.Shift(*p.Shift); shift.Valid() {
			updated.Shift = shift
		} else {
			u.logger.Warn("invalid shift ignored for update", "id", id, "shift", *p.Shift)
		}
	}
	updated.Normalize()

	if cmp.Equal(before, updated) {
		return before, nil
	}

	all[idx] = updated
	if err := u.store.Save(all); err != nil {
		return reservation.Reservation{}, err
	}
	return updated, nil
}

func (u *Reservations) Delete(id string) (bool, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return false, err
	}
	kept := make([]reservation.Reservation, 0, len(all))
	for _, res := range all {
		if res.ID != id {
			kept = append(kept, res)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}
	if err := u.store.Save(kept); err != nil {
		return false, err
	}
	u.logger.Info("reservation deleted", "id", id)
	return true, nil
}

// Move re-checks availability of the target resource for the reservation's
// existing interval (ignoring itself) before committing. Rejection leaves
// the set untouched.
func (u *Reservations) Move(id, newResourceID string) (reservation.Reservation, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}
	idx := indexByID(all, id)
	if idx < 0 {
		return reservation.Reservation{}, errs.ErrReservationNotFound
	}
	res := all[idx]

	target, ok := u.cat.FindByID(newResourceID)
	if !ok {
		return reservation.Reservation{}, errs.ErrResourceNotFound
	}
	if current, ok := u.cat.FindByID(res.TableID); ok && current.Kind != target.Kind {
		u.logger.Warn("move rejected: target resource kind differs",
			"id", id, "from", res.TableID, "to", newResourceID)
		return reservation.Reservation{}, errs.ErrResourceUnavailable
	}

	free, err := u.engine.IsResourceAvailable(target, IntervalOf(res), res.ID)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if !free {
		u.logger.Warn("move rejected: target resource unavailable",
			"id", id, "to", newResourceID, "date", res.Date, "time", res.Time)
		return reservation.Reservation{}, errs.ErrResourceUnavailable
	}

	res.TableID = newResourceID
	all[idx] = res
	if err := u.store.Save(all); err != nil {
		return reservation.Reservation{}, err
	}
	u.logger.Info("reservation moved", "id", id, "to", newResourceID)
	return res, nil
}

func (u *Reservations) ToggleArrived(id string) (reservation.Reservation, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}
	idx := indexByID(all, id)
	if idx < 0 {
		return reservation.Reservation{}, errs.ErrReservationNotFound
	}
	all[idx].ToggleArrived()
	if err := u.store.Save(all); err != nil {
		return reservation.Reservation{}, err
	}
	return all[idx], nil
}

// MarkDeparted tolerates the out-of-order signal of a guest leaving without
// having been marked arrived; repeat calls surface ErrAlreadyDeparted so the
// boundary can report a conflict instead of a silent success.
func (u *Reservations) MarkDeparted(id string) (reservation.Reservation, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}
	idx := indexByID(all, id)
	if idx < 0 {
		return reservation.Reservation{}, errs.ErrReservationNotFound
	}

	autoArrived, err := all[idx].MarkDeparted()
	if err != nil {
		return all[idx], err
	}
	if autoArrived {
		u.logger.Warn("guest was not marked arrived, forcing arrival on departure",
			"id", id, "guest", all[idx].Name)
	}
	if err := u.store.Save(all); err != nil {
		return reservation.Reservation{}, err
	}
	u.logger.Info("guest marked departed", "id", id, "guest", all[idx].Name)
	return all[idx], nil
}

func (u *Reservations) Get(id string) (reservation.Reservation, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return reservation.Reservation{}, err
	}
	idx := indexByID(all, id)
	if idx < 0 {
		return reservation.Reservation{}, errs.ErrReservationNotFound
	}
	return all[idx], nil
}

func (u *Reservations) List() ([]reservation.Reservation, error) {
	return u.store.Load(false)
}

// Cleanup removes reservations older than the retention window. Runs once
// at startup and on explicit request.
func (u *Reservations) Cleanup() (int, error) {
	return u.store.CleanupOld()
}

// ResourceDay is one resource's slice of a day view: its reservations for
// the selected date and shift, plus whether a present guest occupies it.
type ResourceDay struct {
	Resource     catalog.Resource
	Reservations []reservation.Reservation
	Occupied     bool
}

// DayView assembles the per-table view for a date and shift, mirroring the
// floor plan the service staff works from.
func (u *Reservations) DayView(date string, shift reservation.Shift) ([]ResourceDay, error) {
	all, err := u.store.Load(false)
	if err != nil {
		return nil, err
	}
	shift = reservation.CoerceShift(string(shift))

	view := make([]ResourceDay, 0)
	for _, res := range u.cat.ListAll() {
		if !res.IsTable() {
			continue
		}
		day := ResourceDay{Resource: res}
		for _, r := range all {
			if r.TableID != res.ID || r.Date != date || r.Shift != shift {
				continue
			}
			day.Reservations = append(day.Reservations, r)
			if r.ActivelyOccupied() {
				day.Occupied = true
			}
		}
		sort.Slice(day.Reservations, func(i, j int) bool {
			return day.Reservations[i].Time < day.Reservations[j].Time
		})
		view = append(view, day)
	}
	return view, nil
}

func indexByID(all []reservation.Reservation, id string) int {
	for i, res := range all {
		if res.ID == id {
			return i
		}
	}
	return -1
}
