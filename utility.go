package ogrlib

import (
	"fmt"
	"math"
)

const (
	degToRad = math.Pi / 180

	xr = 20037508.34 / 180
	yr = xr / degToRad
	tr = degToRad / 2
)

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

func Convert4326To3857(lon, lat float64) (lonIn3857, latIn3857 float64) {
	lonIn3857 = lon * xr
	latIn3857 = math.Log(math.Tan((90+lat)*tr)) * yr
	return
}

func Convert3857To4326(lonIn3857, latIn3857 float64) (lon, lat float64) {
	lon = lonIn3857 / xr
	lat = math.Atan(math.Pow(math.E, latIn3857/yr))/tr - 90
	return
}
