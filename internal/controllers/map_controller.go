package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"trip_tracker/internal/models"
)

const defaultPhaseColor = "#999"

// firstDay is the earliest day a location belongs to; 0 when it has none.
func firstDay(loc models.Location) int {
	days := loc.Day.Days()
	if len(days) == 0 {
		return 0
	}
	return days[0]
}

// mappedLocations returns the locations that get a marker, in travel order.
func mappedLocations(trip *models.Trip) []models.Location {
	var out []models.Location
	for _, loc := range trip.Locations {
		if loc.Deleted || loc.LabelOnly {
			continue
		}
		out = append(out, loc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := firstDay(out[i]), firstDay(out[j])
		if di != dj {
			return di < dj
		}
		a, b := out[i].Order, out[j].Order
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}

// BuildLocationCollection encodes the mapped locations as point features plus
// one line feature through the major stops. The bounding box is set when at
// least one point exists.
func BuildLocationCollection(trip *models.Trip) *gjson.FeatureCollection {
	colors := make(map[int]string, len(trip.Phases))
	for _, p := range trip.Phases {
		colors[p.ID] = p.Color
	}

	fc := &gjson.FeatureCollection{Features: []*gjson.Feature{}}
	bounds := geom.NewBounds(geom.XY)
	var route []float64

	for _, loc := range mappedLocations(trip) {
		point := geom.NewPointFlat(geom.XY, []float64{loc.Lng, loc.Lat})
		bounds.Extend(point)

		color, ok := colors[loc.Phase]
		if !ok || color == "" {
			color = defaultPhaseColor
		}
		props := map[string]interface{}{
			"name":  loc.Name,
			"day":   loc.Day.String(),
			"phase": loc.Phase,
			"major": loc.Major,
			"color": color,
		}
		if loc.Alt != "" {
			props["alt"] = loc.Alt
		}
		if loc.Desc != "" {
			props["desc"] = loc.Desc
		}
		if loc.Stay != "" {
			props["stay"] = loc.Stay
		}
		if loc.Order != nil {
			props["order"] = *loc.Order
		}

		fc.Features = append(fc.Features, &gjson.Feature{
			ID:         loc.ID,
			Geometry:   point,
			Properties: props,
		})
		if loc.Major {
			route = append(route, loc.Lng, loc.Lat)
		}
	}

	if len(route) >= 4 {
		fc.Features = append(fc.Features, &gjson.Feature{
			ID:       "route",
			Geometry: geom.NewLineStringFlat(geom.XY, route),
			Properties: map[string]interface{}{
				"name":  trip.Title,
				"kind":  "route",
				"stops": len(route) / 2,
			},
		})
	}
	if len(fc.Features) > 0 {
		fc.BBox = bounds
	}
	return fc
}

// GetLocationsGeoJSON exports the live locations as a GeoJSON
// FeatureCollection for external map tools.
// @Router /api/map/locations.geojson [get]
func (tc *TripController) GetLocationsGeoJSON(c *gin.Context) {
	trip, err := tc.store.Load()
	if err != nil {
		logrus.WithError(err).Error("GetLocationsGeoJSON: failed to load trip data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body, err := BuildLocationCollection(trip).MarshalJSON()
	if err != nil {
		logrus.WithError(err).Error("GetLocationsGeoJSON: failed to encode features")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode locations: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}
