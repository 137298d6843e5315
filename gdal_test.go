package ogrlib

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/geowrench/ogrlib/ogrerr"
)

func TestMercatorMath(t *testing.T) {
	lon, lat := 113.695688629, 29.971802123
	x, y := Convert4326To3857(lon, lat)
	lon2, lat2 := Convert3857To4326(x, y)
	if d := lon2 - lon; d > 1e-9 || d < -1e-9 {
		t.Fatalf("lon round trip drifted: %v", d)
	}
	if d := lat2 - lat; d > 1e-9 || d < -1e-9 {
		t.Fatalf("lat round trip drifted: %v", d)
	}
}

func TestTrans(t *testing.T) {
	g := NewToolbox()
	if g == nil {
		t.Fatal()
	}
	span := [4]float64{113.695688629, 115.075725846, 29.971802123, 31.360788281}
	wkt := SpanToWkt(span)
	ret, err := g.TransformWkt(wkt, 4326, 3857)
	if err != nil {
		t.Fatal(err)
	}
	out, err := g.GetWktSpan(ret, 3857)
	if err != nil {
		t.Fatal(err)
	}
	x, y := Convert4326To3857(span[0], span[2])
	if d := out[0] - x; d > 1 || d < -1 {
		t.Fatalf("minX off by %v", d)
	}
	if d := out[2] - y; d > 1 || d < -1 {
		t.Fatalf("minY off by %v", d)
	}
}

func TestWktWkbRoundTrip(t *testing.T) {
	g := NewToolbox()
	wkt := PointsToWkt(113.5, 114.5, 30.0, 31.0)
	wkb, err := g.WktToWkb(wkt, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	back, err := g.WkbToWkt(wkb, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	span, err := g.GetWktSpan(back, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if span[0] != 113.5 || span[1] != 114.5 || span[2] != 30.0 || span[3] != 31.0 {
		t.Fatalf("got span %v", span)
	}
}

func TestCheckWktTranslation(t *testing.T) {
	g := NewToolbox()
	if err := g.CheckWkt(PointsToWkt(0, 1, 0, 1), UNIVERSAL_SRID); err != nil {
		t.Fatal(err)
	}
	err := g.CheckWkt("POLYGON((not a wkt", UNIVERSAL_SRID)
	if err == nil {
		t.Fatal("garbage wkt accepted")
	}
	if c, ok := ogrerr.CodeOf(err); !ok || c != ogrerr.CorruptData {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, ogrerr.CorruptData.Err()) {
		t.Fatalf("sentinel mismatch: %v", err)
	}
}

func TestUnsupportedSridTranslation(t *testing.T) {
	g := NewToolbox()
	_, err := g.WktToWkb(PointsToWkt(0, 1, 0, 1), 999999)
	if err == nil {
		t.Fatal("bogus srid accepted")
	}
	if c, ok := ogrerr.CodeOf(err); !ok || c != ogrerr.UnsupportedSRS {
		t.Fatalf("got %v", err)
	}
}

func TestAuthority(t *testing.T) {
	g := NewToolbox()
	auth, err := g.Authority(UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if auth != "EPSG:4326" {
		t.Fatalf("got %q", auth)
	}
}

func TestShapefileRoundTrip(t *testing.T) {
	g := NewToolbox()
	wkbA, err := g.WktToWkb(PointsToWkt(113.5, 114.5, 30.0, 31.0), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	wkbB, err := g.WktToWkb(PointsToWkt(115.0, 116.0, 30.0, 31.0), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	shp := filepath.Join(t.TempDir(), "zones.shp")
	err = g.WriteShapefile(shp, "label", UNIVERSAL_SRID,
		Feature{Geom: wkbA, Label: "farmland"},
		Feature{Geom: wkbB, Label: "water"},
	)
	if err != nil {
		t.Fatal(err)
	}
	srid, err := g.GetSridOfShapefile(shp)
	if err != nil {
		t.Fatal(err)
	}
	if srid != UNIVERSAL_SRID {
		t.Fatalf("got srid %d", srid)
	}
	fts, err := g.ParseShapefile(shp, "label")
	if err != nil {
		t.Fatal(err)
	}
	if len(fts) != 2 {
		t.Fatalf("got %d features", len(fts))
	}
	if fts[0].Label != "farmland" || fts[1].Label != "water" {
		t.Fatalf("labels: %q, %q", fts[0].Label, fts[1].Label)
	}
	labels, err := g.GetLabelsFromShapefile(shp, "label")
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 2 {
		t.Fatalf("got labels %v", labels)
	}
}

func TestWriteGeoToShapefile(t *testing.T) {
	g := NewToolbox()
	wkb, err := g.WktToWkb(PointsToWkt(113.5, 114.5, 30.0, 31.0), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	shp := filepath.Join(t.TempDir(), "geo.shp")
	if err = g.WriteGeoToShapefile(shp, UNIVERSAL_SRID, wkb); err != nil {
		t.Fatal(err)
	}
	srid, err := g.GetSridOfShapefile(shp)
	if err != nil {
		t.Fatal(err)
	}
	if srid != UNIVERSAL_SRID {
		t.Fatalf("got srid %d", srid)
	}
	out, err := g.GetWkbFromShp(shp)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("empty geometry read back")
	}
}

func TestCoverageRatio(t *testing.T) {
	g := NewToolbox()
	ratio, err := g.GetAreaCoverageRatio(PointsToWkt(0, 2, 0, 2), []string{PointsToWkt(0, 1, 0, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if ratio < 0.49 || ratio > 0.51 {
		t.Fatalf("got ratio %v", ratio)
	}
}

func TestSubtractZones(t *testing.T) {
	g := NewToolbox()
	zoneWkb, err := g.WktToWkb(PointsToWkt(0, 2, 0, 2), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	subWkb, err := g.WktToWkb(PointsToWkt(1, 2, 0, 2), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	zone := Zone{Id: 1, Geom: zoneWkb}
	if err = g.SubtractZones(&zone, []Zone{{Id: 2, Geom: subWkb}}, UNIVERSAL_SRID); err != nil {
		t.Fatal(err)
	}
	wkt, err := g.WkbToWkt(zone.Geom, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	span, err := g.GetWktSpan(wkt, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if span[1] != 1 {
		t.Fatalf("subtract left span %v", span)
	}
}

func TestUnionSpan(t *testing.T) {
	g := NewToolbox()
	wkbA, err := g.WktToWkb(PointsToWkt(0, 1, 0, 1), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	wkbB, err := g.WktToWkb(PointsToWkt(1, 2, 0, 1), UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	u, err := g.Union([]GdalGeo{wkbA, wkbB}, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	wkt, err := g.WkbToWkt(u, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	span, err := g.GetWktSpan(wkt, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if span[0] != 0 || span[1] != 2 {
		t.Fatalf("union span %v", span)
	}
}
