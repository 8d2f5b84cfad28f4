package catalog

// Kind tags a resource with its booking model. Availability checks dispatch
// on this tag, never on the shape of the resource id.
type Kind string

const (
	KindTable Kind = "table"
	KindRoom  Kind = "room"
)

// Resource is a bookable entity. Built once at startup and never mutated;
// ids are deterministic because reservations persist them as foreign keys.
type Resource struct {
	ID            string
	Kind          Kind
	Area          string
	Capacity      int
	DisplayName   string
	Row           int // tables in rows only, 0 otherwise
	PositionInRow int
	Subtype       string // e.g. counter vs regular bar seat
}

func (r Resource) IsTable() bool { return r.Kind == KindTable }
func (r Resource) IsRoom() bool  { return r.Kind == KindRoom }
