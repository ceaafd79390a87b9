// Package geo provides geodesic distance calculations on the WGS-84 ellipsoid.
package geo

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/tidwall/geodesic"
)

// LengthPrecision is the number of fractional digits kept for kilometer lengths.
const LengthPrecision = 9

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat decimal.Decimal
	Lon decimal.Decimal
}

// Provider computes the distance between two coordinates in kilometers.
type Provider interface {
	Distance(a, b Coordinate) decimal.Decimal
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(a, b Coordinate) decimal.Decimal

// Distance calls f(a, b).
func (f ProviderFunc) Distance(a, b Coordinate) decimal.Decimal {
	return f(a, b)
}

// Geodesic solves the inverse geodesic problem on an ellipsoid.
type Geodesic struct {
	ellipsoid *geodesic.Ellipsoid
}

// NewGeodesic returns a Provider backed by the WGS-84 ellipsoid.
func NewGeodesic() *Geodesic {
	return &Geodesic{ellipsoid: geodesic.WGS84}
}

// Distance returns the ellipsoidal distance between a and b in kilometers,
// rounded half-up to LengthPrecision fractional digits.
func (g *Geodesic) Distance(a, b Coordinate) decimal.Decimal {
	if a.Lat.Equal(b.Lat) && a.Lon.Equal(b.Lon) {
		return decimal.Zero
	}

	var meters float64
	g.ellipsoid.Inverse(
		a.Lat.InexactFloat64(), a.Lon.InexactFloat64(),
		b.Lat.InexactFloat64(), b.Lon.InexactFloat64(),
		&meters, nil, nil,
	)

	return FloatKM(meters / 1000)
}

// exactDigits is enough fractional digits to hold any float64 kilometer
// value of at least 2^-10 without loss.
const exactDigits = 64

// FloatKM converts km to a decimal from its exact binary value, then
// rounds it with RoundKM. The shortest decimal form of a float is itself
// rounded and must not be rounded a second time.
func FloatKM(km float64) decimal.Decimal {
	return RoundKM(decimal.NewFromBigRat(new(big.Rat).SetFloat64(km), exactDigits))
}

// RoundKM rounds a kilometer value half-up to LengthPrecision digits.
// Values are non-negative, so rounding half away from zero is half-up.
func RoundKM(km decimal.Decimal) decimal.Decimal {
	return km.Round(LengthPrecision)
}

// Ensure Geodesic implements Provider interface.
var _ Provider = (*Geodesic)(nil)
