//go:build unit

package catalog_test

import (
	"testing"

	"gasthaus-reservations/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	cat := catalog.New()

	t.Run("deterministic ids across constructions", func(t *testing.T) {
		other := catalog.New()
		a, b := cat.ListAll(), other.ListAll()
		require.Equal(t, len(a), len(b))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
		}
	})

	t.Run("group counts", func(t *testing.T) {
		tables, rooms := 0, 0
		for _, r := range cat.ListAll() {
			switch r.Kind {
			case catalog.KindTable:
				tables++
			case catalog.KindRoom:
				rooms++
			}
		}
		// 9 Saal + 7 Stube + 21 Garten + 3 Theke + 5 regular bar seats
		assert.Equal(t, 45, tables)
		// 3 floors x 6 rooms
		assert.Equal(t, 18, rooms)
	})

	t.Run("find by id", func(t *testing.T) {
		res, ok := cat.FindByID("garten-r2-t5")
		require.True(t, ok)
		assert.Equal(t, catalog.KindTable, res.Kind)
		assert.Equal(t, "Garten", res.Area)
		assert.Equal(t, 2, res.Row)
		assert.Equal(t, 5, res.PositionInRow)

		room, ok := cat.FindByID("zimmer-101")
		require.True(t, ok)
		assert.Equal(t, catalog.KindRoom, room.Kind)
		assert.Equal(t, "Etage 1", room.Area)

		_, ok = cat.FindByID("keller-1")
		assert.False(t, ok)
	})

	t.Run("bar subtypes", func(t *testing.T) {
		theke, ok := cat.FindByID("bar-theke-2")
		require.True(t, ok)
		assert.Equal(t, "Theke", theke.Subtype)
		assert.Equal(t, 1, theke.Capacity)

		regular, ok := cat.FindByID("bar-rtisch-4")
		require.True(t, ok)
		assert.Equal(t, "Regulär", regular.Subtype)
	})
}
