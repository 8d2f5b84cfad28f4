package reservation

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gasthaus-reservations/internal/pkg/errs"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// PartySize tolerates legacy records that stored the guest count as a
// string; anything unparseable coerces to 0 instead of failing the record.
type PartySize int

func (p *PartySize) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		*p = 0
		return nil
	}
	*p = PartySize(n)
	return nil
}

// Reservation is the unit of persistence. The json tags are a durable,
// backward-compatible file contract and must not change.
type Reservation struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     string    `json:"date"`
	EndDate  string    `json:"end_date"`
	Time     string    `json:"time"`
	Persons  PartySize `json:"persons"`
	TableID  string    `json:"table_id"`
	Info     string    `json:"info"`
	Arrived  bool      `json:"arrived"`
	Departed bool      `json:"departed"`
	Shift    Shift     `json:"shift"`
}

// DecodeRecord builds a reservation from one persisted record, applying the
// defaulting rules for fields older files may lack (end_date, departed, shift).
func DecodeRecord(raw json.RawMessage) (Reservation, error) {
	var r Reservation
	if err := json.Unmarshal(raw, &r); err != nil {
		return Reservation{}, errs.Wrap(err, "malformed reservation record")
	}
	if r.ID == "" || r.Name == "" || r.Date == "" || r.Time == "" || r.TableID == "" {
		return Reservation{}, errs.New("reservation record missing required field")
	}
	r.Normalize()
	return r, nil
}

// Normalize resolves optional-field defaults once, so business logic never
// has to re-check field presence.
func (r *Reservation) Normalize() {
	if r.EndDate == "" {
		r.EndDate = r.Date
	}
	if end, err := ParseDate(r.EndDate); err == nil {
		if start, err := ParseDate(r.Date); err == nil && end.Before(start) {
			r.EndDate = r.Date
		}
	}
	r.Shift = CoerceShift(string(r.Shift))
}

// ActivelyOccupied reports whether the guest is physically present: arrived
// and not yet departed.
func (r *Reservation) ActivelyOccupied() bool {
	return r.Arrived && !r.Departed
}

func (r *Reservation) ToggleArrived() {
	r.Arrived = !r.Arrived
}

// MarkDeparted sets the terminal departed state. A guest that never arrived
// is force-marked arrived first; the returned flag lets callers log that
// out-of-order signal. Departed is never reset by any operation.
func (r *Reservation) MarkDeparted() (autoArrived bool, err error) {
	if r.Departed {
		return false, errs.ErrAlreadyDeparted
	}
	if !r.Arrived {
		r.Arrived = true
		autoArrived = true
	}
	r.Departed = true
	return autoArrived, nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Mark(err, errs.ErrInvalidDate)
	}
	return t, nil
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
