package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/touchline/footballer/pkg/core"
	"github.com/wroge/wgs84"
)

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// NormalizeAngle maps any angle in degrees into [0, 360).
// Non-finite input collapses to 0 so a facing can never leave the range.
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// a tiny negative remainder can round up to exactly 360
	if a >= FullTurn {
		return 0
	}
	return a
}

// Step returns the whole-unit displacement of travelling magnitude units
// along angle degrees (0 = right, 90 = up). Components are rounded half away from zero.
func Step(angle float64, magnitude int) (dx, dy int) {
	if magnitude == 0 {
		return 0, 0
	}
	rad := NormalizeAngle(angle) * math.Pi / 180
	m := float64(magnitude)
	return int(math.Round(m * math.Cos(rad))), int(math.Round(m * math.Sin(rad)))
}

// Bearing returns the facing angle that points from `from` toward `to`.
// ok is false when both positions coincide and no direction exists.
func Bearing(from, to core.Position) (angle float64, ok bool) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return NormalizeAngle(math.Atan2(dy, dx) * 180 / math.Pi), true
}

// Point converts a pitch position to a simplefeatures point.
// Integer coordinates are always finite, so the empty point is never
// returned in practice.
func Point(p core.Position) geom.Point {
	pt, err := geom.XY{X: float64(p.X), Y: float64(p.Y)}.AsPoint()
	if err != nil {
		return geom.Point{}
	}
	return pt
}

// Distance is the Euclidean distance between two pitch positions.
func Distance(a, b core.Position) float64 {
	d, ok := geom.Distance(Point(a).AsGeometry(), Point(b).AsGeometry())
	if !ok {
		return math.Inf(1)
	}
	return d
}

// Anchor pins the pitch origin to a geographic location so recorded
// positions can be exported as longitude/latitude. One pitch unit is one metre.
type Anchor struct {
	Longitude float64
	Latitude  float64
}

// LonLat projects a pitch position to WGS84 longitude/latitude through Web Mercator.
func (a Anchor) LonLat(p core.Position) (lon, lat float64) {
	epsg := wgs84.EPSG()
	toMercator := epsg.Transform(4326, 3857)
	fromMercator := epsg.Transform(3857, 4326)

	originX, originY, _ := toMercator(a.Longitude, a.Latitude, 0)

	// Web Mercator stretches distances by 1/cos(lat)
	scale := 1 / math.Cos(a.Latitude*math.Pi/180)
	x := originX + float64(p.X)*scale
	y := originY + float64(p.Y)*scale

	lon, lat, _ = fromMercator(x, y, 0)
	return lon, lat
}
