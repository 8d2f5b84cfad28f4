//go:build unit

package usecase_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/domain/reservation"
	"gasthaus-reservations/internal/infra/store"
	"gasthaus-reservations/internal/pkg/clock"
	"gasthaus-reservations/internal/pkg/config"
	"gasthaus-reservations/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg    config.StoreConfig
	clk    *clock.MockClock
	cat    *catalog.Catalog
	engine *usecase.Engine
	svc    *usecase.Reservations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.NewTestConfig(t.TempDir()).Store
	clk := clock.NewMockClock(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(cfg, clk, logger)
	cat := catalog.New()
	engine := usecase.NewEngine(st, cat, logger)
	return &fixture{
		cfg:    cfg,
		clk:    clk,
		cat:    cat,
		engine: engine,
		svc:    usecase.NewReservations(st, cat, engine, logger),
	}
}

func (f *fixture) mustCreate(t *testing.T, p usecase.CreateParams) reservation.Reservation {
	t.Helper()
	res, err := f.svc.Create(p)
	require.NoError(t, err)
	f.clk.Add(time.Second)
	return res
}

func TestTableSlotAvailability(t *testing.T) {
	f := newFixture(t)
	booked := f.mustCreate(t, usecase.CreateParams{
		Name: "Müller", Date: "2025-07-01", Time: "19:00",
		Persons: 4, ResourceID: "stube-1", Shift: "abend",
	})

	t.Run("exact slot is taken", func(t *testing.T) {
		free, err := f.engine.IsTableSlotFree("stube-1", "2025-07-01", "19:00", reservation.ShiftDinner, "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("other time on the same evening is free", func(t *testing.T) {
		free, err := f.engine.IsTableSlotFree("stube-1", "2025-07-01", "19:15", reservation.ShiftDinner, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("same time in the other shift is free", func(t *testing.T) {
		free, err := f.engine.IsTableSlotFree("stube-1", "2025-07-01", "19:00", reservation.ShiftLunch, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("other table is free", func(t *testing.T) {
		free, err := f.engine.IsTableSlotFree("stube-2", "2025-07-01", "19:00", reservation.ShiftDinner, "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("editing does not conflict with itself", func(t *testing.T) {
		free, err := f.engine.IsTableSlotFree("stube-1", "2025-07-01", "19:00", reservation.ShiftDinner, booked.ID)
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestRoomRangeAvailability(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, usecase.CreateParams{
		Name: "Gruber", Date: "2025-06-04", EndDate: "2025-06-06",
		Time: "15:00", Persons: 2, ResourceID: "zimmer-101",
	})

	t.Run("overlapping range is unavailable", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-101", "2025-06-05", "2025-06-08", "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("range containing the stay is unavailable", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-101", "2025-06-01", "2025-06-10", "")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("back-to-back on checkout day is free", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-101", "2025-06-06", "2025-06-08", "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("ending on checkin day is free", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-101", "2025-06-01", "2025-06-04", "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("other room is free", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-102", "2025-06-04", "2025-06-06", "")
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("invalid dates are conservatively unavailable", func(t *testing.T) {
		free, err := f.engine.IsRoomRangeFree("zimmer-102", "not-a-date", "2025-06-06", "")
		require.NoError(t, err)
		assert.False(t, free)
	})
}

func TestIsResourceAvailableDispatch(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, usecase.CreateParams{
		Name: "Gruber", Date: "2025-06-04", EndDate: "2025-06-06",
		Time: "15:00", Persons: 2, ResourceID: "zimmer-101",
	})

	room, ok := f.cat.FindByID("zimmer-101")
	require.True(t, ok)

	// A room is judged by date range, not by the discrete slot: a different
	// time on an overlapping range must still conflict.
	free, err := f.engine.IsResourceAvailable(room, usecase.Interval{
		Date: "2025-06-05", EndDate: "2025-06-07", Time: "20:00", Shift: reservation.ShiftDinner,
	}, "")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = f.engine.IsResourceAvailable(room, usecase.Interval{
		Date: "2025-06-06", EndDate: "2025-06-07",
	}, "")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestFindMovableTargets(t *testing.T) {
	t.Run("table targets exclude current and occupied tables", func(t *testing.T) {
		f := newFixture(t)
		res := f.mustCreate(t, usecase.CreateParams{
			Name: "Müller", Date: "2025-07-01", Time: "19:00",
			Persons: 4, ResourceID: "stube-1", Shift: "abend",
		})
		f.mustCreate(t, usecase.CreateParams{
			Name: "Egger", Date: "2025-07-01", Time: "19:00",
			Persons: 2, ResourceID: "stube-2", Shift: "abend",
		})

		targets, err := f.engine.FindMovableTargets(res)
		require.NoError(t, err)

		ids := make(map[string]bool, len(targets))
		for _, target := range targets {
			assert.Equal(t, catalog.KindTable, target.Kind)
			ids[target.ID] = true
		}
		assert.False(t, ids["stube-1"])
		assert.False(t, ids["stube-2"])
		assert.True(t, ids["stube-3"])
		assert.Len(t, targets, 43)
	})

	t.Run("room targets stay rooms", func(t *testing.T) {
		f := newFixture(t)
		res := f.mustCreate(t, usecase.CreateParams{
			Name: "Gruber", Date: "2025-06-04", EndDate: "2025-06-06",
			Time: "15:00", Persons: 2, ResourceID: "zimmer-101",
		})

		targets, err := f.engine.FindMovableTargets(res)
		require.NoError(t, err)
		require.Len(t, targets, 17)
		for _, target := range targets {
			assert.Equal(t, catalog.KindRoom, target.Kind)
			assert.NotEqual(t, "zimmer-101", target.ID)
		}
	})
}

func TestFreeTimeSlots(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, usecase.CreateParams{
		Name: "Müller", Date: "2025-07-01", Time: "19:00",
		Persons: 4, ResourceID: "stube-1", Shift: "abend",
	})

	t.Run("dinner grid drops the booked slot", func(t *testing.T) {
		slots, err := f.engine.FreeTimeSlots("stube-1", "2025-07-01", reservation.ShiftDinner)
		require.NoError(t, err)
		// 17:00 through 22:00 inclusive in 15 minute steps is 21 slots.
		assert.Len(t, slots, 20)
		assert.NotContains(t, slots, "19:00")
		assert.Contains(t, slots, "17:00")
		assert.Contains(t, slots, "22:00")
	})

	t.Run("lunch grid is untouched by a dinner booking", func(t *testing.T) {
		slots, err := f.engine.FreeTimeSlots("stube-1", "2025-07-01", reservation.ShiftLunch)
		require.NoError(t, err)
		assert.Len(t, slots, 13)
		assert.Equal(t, "11:00", slots[0])
		assert.Equal(t, "14:00", slots[len(slots)-1])
	})

	t.Run("unknown shift falls back to dinner window", func(t *testing.T) {
		slots, err := f.engine.FreeTimeSlots("stube-2", "2025-07-01", reservation.Shift("brunch"))
		require.NoError(t, err)
		assert.Len(t, slots, 21)
		assert.Equal(t, "17:00", slots[0])
	})

	t.Run("rooms have no slot grid", func(t *testing.T) {
		slots, err := f.engine.FreeTimeSlots("zimmer-101", "2025-07-01", reservation.ShiftDinner)
		require.NoError(t, err)
		assert.Nil(t, slots)
	})
}
