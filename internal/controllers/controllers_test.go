package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_tracker/internal/models"
	"trip_tracker/internal/storage"
)

const tripSeed = `{
  "title": "Highland Loop",
  "totalDays": 3,
  "totalDistance": "600 km",
  "startDate": "2026-05-01",
  "phases": [
    {"id": 1, "name": "North", "color": "#e74c3c", "days": "D1-D2"},
    {"id": 2, "name": "South", "color": "#3498db", "days": "D3"}
  ],
  "days": [
    {"id": "D1", "date": "05/01", "route": "A to B", "distance": "200km", "elevation": "1000m", "stay": "Inn", "phase": 1, "spots": [], "expenses": [{"item": "fuel", "amount": 40}]},
    {"id": "D2", "date": "05/02", "route": "B to C", "distance": "200km", "elevation": "1500m", "stay": "Camp", "phase": 1, "spots": ["lake"], "expenses": []},
    {"id": "D3", "date": "05/03", "route": "C to A", "distance": "200km", "elevation": "800m", "stay": "Home", "phase": 2, "spots": [], "expenses": []}
  ],
  "locations": [
    {"id": "loc_a", "name": "A", "lat": 10, "lng": 20, "day": "D1", "phase": 1, "major": true, "order": 1},
    {"id": "loc_b", "name": "B", "lat": 11, "lng": 21, "day": "D2", "phase": 1, "major": true},
    {"name": "Pass", "lat": 12, "lng": 22, "day": "D2-D3", "phase": 3, "major": false},
    {"id": "loc_label", "name": "Region", "lat": 13, "lng": 23, "day": "D3", "phase": 2, "major": false, "labelOnly": true}
  ],
  "mapConfig": {"center": [11, 21], "zoom": 7}
}`

type testEnv struct {
	store  *storage.FileStore
	hub    *TripHub
	engine *gin.Engine
}

func newTestEnv(t *testing.T, strict bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(tripSeed), 0o644))

	env := &testEnv{store: storage.NewFileStore(path), hub: NewTripHub()}
	t.Cleanup(env.hub.Stop)

	tc := NewTripController(env.store, env.hub, strict)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/trip-data", tc.GetTripData)
	api.GET("/summary", tc.GetSummary)
	api.GET("/map/locations.geojson", tc.GetLocationsGeoJSON)
	api.POST("/expenses/:dayId", tc.AddExpense)
	api.PUT("/expenses/:dayId/:index", tc.UpdateExpense)
	api.DELETE("/expenses/:dayId/:index", tc.DeleteExpense)
	api.PUT("/days/:dayId", tc.UpdateDay)
	api.POST("/days", tc.AddDay)
	api.DELETE("/days/:dayId", tc.DeleteDay)
	r.GET("/ws/trip", env.hub.HandleTripWebSocket)
	env.engine = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestGetTripData_IsIdempotent(t *testing.T) {
	env := newTestEnv(t, false)

	first := env.do(t, http.MethodGet, "/api/trip-data", "")
	require.Equal(t, http.StatusOK, first.Code)
	second := env.do(t, http.MethodGet, "/api/trip-data", "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var trip models.Trip
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &trip))
	assert.Equal(t, 3, trip.TotalDays)
	assert.Contains(t, trip.Extra, "mapConfig")
	for _, loc := range trip.Locations {
		assert.NotEmpty(t, loc.ID, "ids are backfilled")
	}
	assert.NotEmpty(t, trip.Days[0].Expenses[0].ID)
}

func TestGetTripData_StorageFailure(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, os.WriteFile(env.store.Path(), []byte("{broken"), 0o644))

	w := env.do(t, http.MethodGet, "/api/trip-data", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decode(t, w).Error)
}

func TestAddExpense(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/expenses/D2", `{"item":"food","amount":"12.5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode(t, w)
	assert.True(t, res.Success)

	var day models.Day
	require.NoError(t, json.Unmarshal(res.Data, &day))
	require.Len(t, day.Expenses, 1)
	assert.Equal(t, "food", day.Expenses[0].Item)
	assert.Equal(t, 12.5, day.Expenses[0].Amount)
	assert.NotEmpty(t, day.Expenses[0].ID)

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Len(t, trip.Days[1].Expenses, 1)
}

func TestAddExpense_BadRequests(t *testing.T) {
	env := newTestEnv(t, false)

	for name, body := range map[string]string{
		"missing item":    `{"amount": 5}`,
		"empty item":      `{"item": "", "amount": 5}`,
		"missing amount":  `{"item": "x"}`,
		"negative amount": `{"item": "x", "amount": -1}`,
		"text amount":     `{"item": "x", "amount": "lots"}`,
		"not json":        `item=x`,
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/expenses/D1", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w).Error)
		})
	}

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Len(t, trip.Days[0].Expenses, 1, "rejected requests write nothing")
}

func TestAddExpense_UnknownDayIs500(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(t, http.MethodPost, "/api/expenses/D9", `{"item":"x","amount":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w).Error, "not found")
}

func TestStrictStatus(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/expenses/D9", `{"item":"x","amount":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/expenses/D1/5", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodDelete, "/api/days/D7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPut, "/api/expenses/D1/0", `{"item":"diesel","amount":55}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPut, "/api/expenses/D1/abc", `{"item":"diesel","amount":55}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/expenses/D1/3", `{"item":"diesel","amount":55}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = env.do(t, http.MethodDelete, "/api/expenses/D1/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	var removed models.Expense
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &removed))
	assert.Equal(t, "diesel", removed.Item)
	assert.Equal(t, float64(55), removed.Amount)

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Empty(t, trip.Days[0].Expenses)
}

func TestUpdateExpense_Validation(t *testing.T) {
	env := newTestEnv(t, false)

	for name, body := range map[string]string{
		"missing item":    `{"amount": 5}`,
		"missing amount":  `{"item": "x"}`,
		"null amount":     `{"item": "x", "amount": null}`,
		"negative amount": `{"item": "x", "amount": -2}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, "/api/expenses/D1/0", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := env.do(t, http.MethodPut, "/api/expenses/D1/0", `{"item": "", "amount": "7"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "", trip.Days[0].Expenses[0].Item)
	assert.Equal(t, float64(7), trip.Days[0].Expenses[0].Amount)
}

func TestDeleteExpense_ByID(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(t, http.MethodPost, "/api/expenses/D3", `{"item":"toll","amount":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	var day models.Day
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &day))

	w = env.do(t, http.MethodDelete, "/api/expenses/D3/"+day.Expenses[0].ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Empty(t, trip.Days[2].Expenses)
}

func TestAddDay(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/days", `{"insertAfter":"D1","day":{"route":"B detour"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var day models.Day
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &day))
	assert.Equal(t, "D2", day.ID)
	assert.Equal(t, "B detour", day.Route)
	assert.Equal(t, "200km", day.Distance)

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, trip.TotalDays)
	assert.Equal(t, "D3", trip.Locations[1].Day.String())
	assert.Equal(t, "D3-D4", trip.Locations[2].Day.String())

	for _, body := range []string{`{"day":{}}`, `{"insertAfter":"D1"}`, `{}`, `{"insertAfter":"","day":{}}`, `{"insertAfter":"D1","day":null}`} {
		w = env.do(t, http.MethodPost, "/api/days", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestDeleteDay(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodDelete, "/api/days/D2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var removed models.Day
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &removed))
	assert.Equal(t, "B to C", removed.Route)

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, trip.TotalDays)
	assert.Equal(t, "D2", trip.Days[1].ID)
	assert.True(t, trip.Locations[1].Deleted)
	assert.Equal(t, "D2", trip.Locations[2].Day.String())
}

func TestUpdateDay_ReplacesLocations(t *testing.T) {
	env := newTestEnv(t, false)

	body := `{"stay":"Lodge","locations":[{"id":"loc_a","name":"A2","lat":"10.5","lng":20,"order":"2"},{"id":"loc_new","name":"New","lat":1,"lng":2},{"name":"NoID","lat":3,"lng":4}]}`
	w := env.do(t, http.MethodPut, "/api/days/D1", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	trip, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Lodge", trip.Days[0].Stay)
	assert.Equal(t, "A to B", trip.Days[0].Route, "absent fields stay")

	var names []string
	for _, loc := range trip.Locations {
		if loc.Day.String() == "D1" && !loc.Deleted {
			names = append(names, loc.Name)
		}
	}
	assert.ElementsMatch(t, []string{"A2", "New"}, names)
}

func TestGetSummary(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(t, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		TotalExpense float64             `json:"total_expense"`
		DaysByPhase  map[string][]string `json:"days_by_phase"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, float64(40), summary.TotalExpense)
	assert.Equal(t, []string{"D1", "D2"}, summary.DaysByPhase["1"])
	assert.Equal(t, []string{"D3"}, summary.DaysByPhase["2"])
}

func TestGetLocationsGeoJSON(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(t, http.MethodGet, "/api/map/locations.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	var fc struct {
		Type     string    `json:"type"`
		BBox     []float64 `json:"bbox"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, []float64{20, 10, 22, 12}, fc.BBox)

	// three live points plus the route line; the label-only location is skipped
	require.Len(t, fc.Features, 4)
	assert.Equal(t, "loc_a", fc.Features[0].ID)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.JSONEq(t, `[20,10]`, string(fc.Features[0].Geometry.Coordinates))
	assert.Equal(t, "#e74c3c", fc.Features[0].Properties["color"])
	assert.Equal(t, "#999", fc.Features[2].Properties["color"], "unknown phase")
	assert.Equal(t, "LineString", fc.Features[3].Geometry.Type)
	assert.JSONEq(t, `[[20,10],[21,11]]`, string(fc.Features[3].Geometry.Coordinates))
}

func TestBuildLocationCollection_Empty(t *testing.T) {
	fc := BuildLocationCollection(&models.Trip{})
	body, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
}
