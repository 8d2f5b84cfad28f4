package catalog

import "fmt"

const (
	saalTables    = 9
	stubeTables   = 7
	gartenRows    = 3
	gartenPerRow  = 7
	barCounter    = 3
	barRegular    = 5
	roomFloors    = 3
	roomsPerFloor = 6
	roomCapacity  = 2
)

// Catalog is the static registry of bookable resources.
type Catalog struct {
	resources []Resource
	byID      map[string]Resource
}

func New() *Catalog {
	resources := buildTables()
	resources = append(resources, buildRooms()...)

	byID := make(map[string]Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}
	return &Catalog{resources: resources, byID: byID}
}

// ListAll returns resources in their fixed construction order.
func (c *Catalog) ListAll() []Resource {
	out := make([]Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

func (c *Catalog) FindByID(id string) (Resource, bool) {
	r, ok := c.byID[id]
	return r, ok
}

func buildTables() []Resource {
	var tables []Resource

	for i := 1; i <= saalTables; i++ {
		tables = append(tables, Resource{
			ID:          fmt.Sprintf("saal-%d", i),
			Kind:        KindTable,
			Area:        "Saal",
			Capacity:    4,
			DisplayName: fmt.Sprintf("Saal %d", i),
		})
	}

	for i := 1; i <= stubeTables; i++ {
		tables = append(tables, Resource{
			ID:          fmt.Sprintf("stube-%d", i),
			Kind:        KindTable,
			Area:        "Stube",
			Capacity:    6,
			DisplayName: fmt.Sprintf("Stube %d", i),
		})
	}

	for row := 1; row <= gartenRows; row++ {
		for pos := 1; pos <= gartenPerRow; pos++ {
			tables = append(tables, Resource{
				ID:            fmt.Sprintf("garten-r%d-t%d", row, pos),
				Kind:          KindTable,
				Area:          "Garten",
				Capacity:      2,
				DisplayName:   fmt.Sprintf("Garten %d-%d", row, pos),
				Row:           row,
				PositionInRow: pos,
			})
		}
	}

	for i := 1; i <= barCounter; i++ {
		tables = append(tables, Resource{
			ID:          fmt.Sprintf("bar-theke-%d", i),
			Kind:        KindTable,
			Area:        "Bar",
			Capacity:    1,
			DisplayName: fmt.Sprintf("Bar %d", i),
			Subtype:     "Theke",
		})
	}

	for i := 1; i <= barRegular; i++ {
		tables = append(tables, Resource{
			ID:          fmt.Sprintf("bar-rtisch-%d", i),
			Kind:        KindTable,
			Area:        "Bar",
			Capacity:    2,
			DisplayName: fmt.Sprintf("R %d", i),
			Subtype:     "Regulär",
		})
	}

	return tables
}

func buildRooms() []Resource {
	var rooms []Resource
	for floor := 1; floor <= roomFloors; floor++ {
		for n := 1; n <= roomsPerFloor; n++ {
			number := floor*100 + n
			rooms = append(rooms, Resource{
				ID:          fmt.Sprintf("zimmer-%d", number),
				Kind:        KindRoom,
				Area:        fmt.Sprintf("Etage %d", floor),
				Capacity:    roomCapacity,
				DisplayName: fmt.Sprintf("Zimmer %d", number),
			})
		}
	}
	return rooms
}
