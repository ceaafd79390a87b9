// Package models provides request and response models for the RouteTrack API.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Point represents a geographic coordinate. Values carry the exact decimal
// text of the stored coordinate.
type Point struct {
	Lat json.Number `json:"lat"`
	Lon json.Number `json:"lon"`
}

// NewPoint builds a Point from decimal coordinates.
func NewPoint(lat, lon decimal.Decimal) Point {
	return Point{Lat: Number(lat), Lon: Number(lon)}
}

// Number renders a decimal as a JSON number without losing precision.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// HealthStatus represents the health status of a service.
type HealthStatus string

// HealthStatusOK is reported by a serving process.
const HealthStatusOK HealthStatus = "OK"

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
