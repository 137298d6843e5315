package ogrlib

import (
	"math"
	"strconv"

	"github.com/geowrench/ogrlib/log"
	"github.com/geowrench/ogrlib/ogrerr"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

func (g *Toolbox) parseAlgWKT(wkt string) (ret gdal.Geometry, err error) {
	ref, err := g.getSridRef(WKT_ALG_SRID)
	if err != nil {
		return
	}
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse alg wkt failed", zap.Error(err))
		err = ogrerr.New(ogrerr.CorruptData, "OGR_G_CreateFromWkt")
	}
	return
}

func simplifyTolerance() float64 {
	if v := Option(OPT_SIMPLIFY_T, ""); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t > 0 {
			return t
		}
	}
	return SimplifyT
}

func (g *Toolbox) simpGeo(geo gdal.Geometry, t float64) (wkt string, err error) {
	defer geo.Destroy()
	if t <= 0 {
		t = simplifyTolerance()
	}
	log.Info(g.logTag+"simplify geo", zap.Float64("tolerance", t))
	ret := geo.SimplifyPreservingTopology(t)
	defer ret.Destroy()
	area := ret.Area()
	if area <= 0 {
		return
	}
	buff := math.Sqrt(area) * BuffPercent
	ret = ret.Buffer(-buff, BuffQuadSegs) // 腐蚀
	ret = ret.Buffer(buff, BuffQuadSegs)  // 膨胀
	wkt, err = ret.ToWKT()
	return
}

func (g *Toolbox) muffGeo(geo gdal.Geometry) (ret gdal.Geometry, err error) {
	switch geo.Type() {
	case gdal.GT_Polygon:
		err = removeHolesInPolygon(geo)
		ret = geo.Clone()
	case gdal.GT_MultiPolygon:
		var subGeo gdal.Geometry
		gNum := geo.GeometryCount()
		for i := 0; i < gNum; i++ {
			subGeo = geo.Geometry(i)
			if err = removeHolesInPolygon(subGeo); err != nil {
				return
			}
			if gNum == 1 {
				ret = subGeo.Clone()
				return
			}
		}
		ret = geo.UnionCascaded() // avoid overlaps
	default:
		err = ErrWrongGeoType
	}
	return
}

// 简化WKT矢量面（保留拓扑 + 腐蚀膨胀平滑）
func (g *Toolbox) Simplify(wkt string) (out string, err error) {
	log.Info(g.logTag + "start simplify wkt")
	geo, err := g.parseAlgWKT(wkt)
	if err != nil {
		return
	}
	out, err = g.simpGeo(geo, 0)
	return
}

// 去孔洞后简化
func (g *Toolbox) MuffAndSimp(wkt string, t float64) (out string, err error) {
	log.Info(g.logTag + "start muff and simp wkt")
	geo, err := g.parseAlgWKT(wkt)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if geo, err = g.muffGeo(geo); err != nil {
		return
	}
	out, err = g.simpGeo(geo, t)
	return
}

func removeHolesInPolygon(geo gdal.Geometry) (err error) {
	gNum := geo.GeometryCount()
	for i := 1; i < gNum; i++ {
		if err = geo.RemoveGeometry(1, true); err != nil {
			return
		}
	}
	return
}
