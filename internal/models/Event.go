package models

// EventTripUpdated is sent to every open view after a successful write.
const EventTripUpdated = "trip_data_updated"

// TripEvent is the notification pushed over /ws/trip.
type TripEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	DayID     string `json:"day_id,omitempty"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
