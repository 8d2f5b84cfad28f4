package usecase

import (
	"log/slog"
	"time"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/domain/reservation"
)

// Interval is a requested booking interval. Tables use the discrete
// (Date, Time, Shift) slot; rooms use the half-open [Date, EndDate) range.
type Interval struct {
	Date    string
	EndDate string
	Time    string
	Shift   reservation.Shift
}

func IntervalOf(res reservation.Reservation) Interval {
	return Interval{
		Date:    res.Date,
		EndDate: res.EndDate,
		Time:    res.Time,
		Shift:   res.Shift,
	}
}

// Engine decides whether a resource is free for a requested interval.
type Engine struct {
	store   ReservationStore
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewEngine(store ReservationStore, cat *catalog.Catalog, logger *slog.Logger) *Engine {
	return &Engine{store: store, catalog: cat, logger: logger}
}

// IsTableSlotFree reports whether no other reservation occupies the exact
// (resource, date, time, shift) slot. ignoreID excludes the reservation
// being edited from conflicting with itself.
func (e *Engine) IsTableSlotFree(resourceID, date, tm string, shift reservation.Shift, ignoreID string) (bool, error) {
	all, err := e.store.Load(false)
	if err != nil {
		return false, err
	}
	for _, res := range all {
		if res.ID == ignoreID {
			continue
		}
		if res.TableID == resourceID && res.Date == date && res.Time == tm && res.Shift == shift {
			return false, nil
		}
	}
	return true, nil
}

// IsRoomRangeFree reports whether the half-open [checkin, checkout) range is
// free of other reservations on the room. Same-day checkout/checkin on
// different reservations does not conflict. Invalid dates conservatively
// report unavailable.
func (e *Engine) IsRoomRangeFree(resourceID, checkin, checkout string, ignoreID string) (bool, error) {
	reqStart, err := reservation.ParseDate(checkin)
	if err != nil {
		e.logger.Warn("room availability check with invalid check-in date", "date", checkin)
		return false, nil
	}
	reqEnd, err := reservation.ParseDate(checkout)
	if err != nil {
		e.logger.Warn("room availability check with invalid check-out date", "date", checkout)
		return false, nil
	}

	all, err := e.store.Load(false)
	if err != nil {
		return false, err
	}
	for _, res := range all {
		if res.ID == ignoreID || res.TableID != resourceID {
			continue
		}
		exStart, err := reservation.ParseDate(res.Date)
		if err != nil {
			return false, nil
		}
		exEnd, err := reservation.ParseDate(res.EndDate)
		if err != nil {
			return false, nil
		}
		if reqStart.Before(exEnd) && reqEnd.After(exStart) {
			return false, nil
		}
	}
	return true, nil
}

// IsResourceAvailable dispatches to the interval model matching the
// resource's kind.
func (e *Engine) IsResourceAvailable(res catalog.Resource, iv Interval, ignoreID string) (bool, error) {
	switch res.Kind {
	case catalog.KindRoom:
		return e.IsRoomRangeFree(res.ID, iv.Date, iv.EndDate, ignoreID)
	default:
		return e.IsTableSlotFree(res.ID, iv.Date, iv.Time, iv.Shift, ignoreID)
	}
}

// FindMovableTargets lists the resources a reservation could move to: every
// same-kind resource other than its current one that is free for the
// reservation's own interval.
func (e *Engine) FindMovableTargets(res reservation.Reservation) ([]catalog.Resource, error) {
	kind := catalog.KindTable
	if current, ok := e.catalog.FindByID(res.TableID); ok {
		kind = current.Kind
	}

	var targets []catalog.Resource
	for _, candidate := range e.catalog.ListAll() {
		if candidate.ID == res.TableID || candidate.Kind != kind {
			continue
		}
		free, err := e.IsResourceAvailable(candidate, IntervalOf(res), res.ID)
		if err != nil {
			return nil, err
		}
		if free {
			targets = append(targets, candidate)
		}
	}
	return targets, nil
}

const slotInterval = 15 * time.Minute

var shiftWindows = map[reservation.Shift][2]string{
	reservation.ShiftLunch:  {"11:00", "14:00"},
	reservation.ShiftDinner: {"17:00", "22:00"},
}

// FreeTimeSlots returns the 15-minute grid of the shift's service window
// filtered to slots where the table is free. Rooms have no slot grid.
func (e *Engine) FreeTimeSlots(resourceID, date string, shift reservation.Shift) ([]string, error) {
	res, ok := e.catalog.FindByID(resourceID)
	if ok && res.IsRoom() {
		return nil, nil
	}

	shift = reservation.CoerceShift(string(shift))
	window := shiftWindows[shift]
	start, _ := reservation.ParseTime(window[0])
	end, _ := reservation.ParseTime(window[1])

	var free []string
	for t := start; !t.After(end); t = t.Add(slotInterval) {
		slot := t.Format(reservation.TimeLayout)
		ok, err := e.IsTableSlotFree(resourceID, date, slot, shift, "")
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, slot)
		}
	}
	return free, nil
}
