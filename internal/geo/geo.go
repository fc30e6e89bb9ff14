// Package geo implements the spherical and planar geometry primitives the
// rest of the engine is built on: great-circle distance and bearing,
// destination projection, and the planar-degree approximation the grid
// and planners use internally for speed.
package geo

import (
	"math"

	"github.com/MeKo-Tech/shiproute/internal/types"
)

// EarthRadiusNM is the mean earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// DegreeNM is the length of one degree of latitude (and, at the equator,
// longitude) in nautical miles — the standard nautical approximation
// "one minute of latitude is one nautical mile".
const DegreeNM = 60.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineNM returns the great-circle distance between two coordinates in
// nautical miles.
func HaversineNM(a, b types.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusNM * c
}

// PlanarDistanceNM approximates distance using the flat-earth degree
// approximation (Euclidean distance in degrees, scaled by 60 nm/degree).
// This is what the grid-based planners use internally for speed; it is
// accurate to within a few percent at the scale of a single grid cell and
// is never used for the final reported route distance, which always uses
// HaversineNM.
func PlanarDistanceNM(a, b types.Coordinate) float64 {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * DegreeNM
}

// BearingDeg returns the initial great-circle bearing from a to b, in
// degrees clockwise from true north, in [0, 360).
func BearingDeg(a, b types.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLon := toRad(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)
	return math.Mod(toDeg(theta)+360, 360)
}

// DestinationPoint returns the point reached by travelling distanceNM
// nautical miles from origin along the given initial bearing.
func DestinationPoint(origin types.Coordinate, bearingDeg, distanceNM float64) types.Coordinate {
	angularDist := distanceNM / EarthRadiusNM
	brng := toRad(bearingDeg)
	lat1 := toRad(origin.Lat)
	lon1 := toRad(origin.Lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angularDist) +
		math.Cos(lat1)*math.Sin(angularDist)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(angularDist)*math.Cos(lat1),
		math.Cos(angularDist)-math.Sin(lat1)*math.Sin(lat2),
	)

	lon2 = math.Mod(lon2+3*math.Pi, 2*math.Pi) - math.Pi

	return types.Coordinate{Lat: toDeg(lat2), Lon: toDeg(lon2)}
}

// InterpolateGreatCircle returns the single point at the given fraction of
// the great-circle distance from a to b, found by travelling that distance
// from a along the initial bearing toward b (fraction 0 returns a,
// fraction 1 returns b).
func InterpolateGreatCircle(a, b types.Coordinate, fraction float64) types.Coordinate {
	dist := HaversineNM(a, b)
	if dist < 1e-9 {
		return a
	}
	brng := BearingDeg(a, b)
	return DestinationPoint(a, brng, dist*fraction)
}

// BoundingBoxAround returns the box containing a and b, expanded by
// paddingDeg degrees in every direction.
func BoundingBoxAround(a, b types.Coordinate, paddingDeg float64) types.BoundingBox {
	return types.BoundingBoxFromPoints(a, b).Expand(paddingDeg)
}
