//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/handler/api"
	"gasthaus-reservations/internal/infra/store"
	"gasthaus-reservations/internal/pkg/clock"
	"gasthaus-reservations/internal/pkg/config"
	"gasthaus-reservations/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(cfg.Store, clock.NewMockClock(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)), logger)
	cat := catalog.New()
	engine := usecase.NewEngine(st, cat, logger)
	reservations := usecase.NewReservations(st, cat, engine, logger)

	rh := api.NewReservationHandler(reservations, engine, cat)
	resh := api.NewResourceHandler(cat, engine)

	r := gin.New()
	r.GET("/api/resources", resh.ListResources)
	r.GET("/api/resources/:id/slots", resh.FreeSlots)
	r.POST("/api/reservations", rh.CreateReservation)
	r.GET("/api/reservations/:id", rh.GetReservation)
	r.DELETE("/api/reservations/:id", rh.DeleteReservation)
	r.POST("/api/reservations/:id/departed", rh.MarkDeparted)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndpoint(t *testing.T) {
	r := newTestRouter(t)
	body := gin.H{
		"name": "Müller", "date": "2025-07-01", "time": "19:00",
		"persons": 4, "resource_id": "stube-1", "shift": "abend",
	}

	w := doJSON(t, r, http.MethodPost, "/api/reservations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "stube-1", created["resource_id"])
	assert.Equal(t, "2025-07-01", created["end_date"])

	t.Run("occupied slot is a conflict", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/reservations", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown resource is not found", func(t *testing.T) {
		bad := gin.H{
			"name": "Egger", "date": "2025-07-01", "time": "19:00",
			"persons": 2, "resource_id": "keller-1",
		}
		w := doJSON(t, r, http.MethodPost, "/api/reservations", bad)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing required field is a bad request", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{"name": "Egger"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReservationLifecycleEndpoints(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"name": "Gruber", "date": "2025-07-01", "time": "12:00",
		"persons": 2, "resource_id": "saal-1", "shift": "mittag",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	t.Run("departure is idempotent only once", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/reservations/"+id+"/departed", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var departed map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &departed))
		assert.Equal(t, true, departed["arrived"])
		assert.Equal(t, true, departed["departed"])

		w = doJSON(t, r, http.MethodPost, "/api/reservations/"+id+"/departed", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete then lookups fail", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/reservations/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodDelete, "/api/reservations/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/reservations/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestResourceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	t.Run("catalog listing", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/resources", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resources []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resources))
		assert.Len(t, resources, 63)
	})

	t.Run("free slots require a date", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/resources/stube-1/slots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("free slots for unknown resource", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/resources/keller-1/slots?date=2025-07-01", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("room slots are an empty list, not null", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/resources/zimmer-101/slots?date=2025-07-01", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("table slot grid", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/resources/stube-1/slots?date=2025-07-01&shift=abend", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var slots []string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
		assert.Len(t, slots, 21)
	})
}
