package ogrlib

import (
	"strconv"
	"strings"
	"sync"

	"github.com/geowrench/ogrlib/log"
	"github.com/geowrench/ogrlib/ogrerr"
	"github.com/geowrench/ogrlib/utils"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

type Toolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

// 由GDAL库C语言创建的内存对象，需要手动调用Destroy回收
type destroyable interface {
	Destroy()
}

var (
	emptyGeometry = gdal.Geometry{}
)

// 初始化工具箱，tmpDir为可选的临时目录路径（未提供的话为当前目录）
func NewToolbox(tmpDir ...string) *Toolbox {
	g := &Toolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "Toolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *Toolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		err = ogrerr.New(ogrerr.UnsupportedSRS, "OSRImportFromEPSG")
		return
	}
	// 这里应设置坐标系对应的数据轴次序为固定的(经度,纬度)（传统GIS坐标序），而不是新标准中与CRS相关的次序。否则在转换坐标系或者转GeoJSON时，可能出现次序倒置问题
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

func (g *Toolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		if strings.Contains(wkt, "CGCS_2000") {
			rawId = "4490"
		} else {
			err = ErrVoidSrid
			return
		}
	}
	srid, err = strconv.Atoi(rawId)
	log.Info(g.logTag+"got srid from sp", zap.String("id", rawId))
	return
}

func (g *Toolbox) parseWKB(wkb GdalGeo, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKB(wkb, ref, len(wkb))
	if err != nil {
		log.Error(g.logTag+"parse wkb failed", zap.Error(err))
		err = ogrerr.New(ogrerr.CorruptData, "OGR_G_CreateFromWkb")
	}
	return
}

func (g *Toolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ogrerr.New(ogrerr.CorruptData, "OGR_G_CreateFromWkt")
	}
	return
}

// 转换WKB坐标系
func (g *Toolbox) TransformWkb(wkb GdalGeo, srid, tSrid int) (ret GdalGeo, err error) {
	if tSrid == srid {
		ret = wkb
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		err = ogrerr.New(ogrerr.Failure, "OGR_G_TransformTo")
		return
	}
	ret, err = geo.ToWKB()
	return
}

// 转换WKT坐标系
func (g *Toolbox) TransformWkt(wkt string, srid, tSrid int) (ret string, err error) {
	if tSrid == srid {
		ret = wkt
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		err = ogrerr.New(ogrerr.Failure, "OGR_G_TransformTo")
		return
	}
	ret, err = geo.ToWKT()
	return
}

// 检查WKT有效性
func (g *Toolbox) CheckWkt(wkt string, srid int) (err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	geo.Destroy()
	return
}

// WKT转WKB
func (g *Toolbox) WktToWkb(wkt string, srid int) (wkb GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	wkb, err = geo.ToWKB()
	geo.Destroy()
	return
}

// WKB转WKT
func (g *Toolbox) WkbToWkt(wkb GdalGeo, srid int) (wkt string, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	wkt, err = geo.ToWKT()
	geo.Destroy()
	return
}

// GeoJSON转WKB
func (g *Toolbox) GeoJSONToWkb(geoJson AnyJson) (ret GdalGeo, err error) {
	geo := gdal.CreateFromJson(utils.B2S(geoJson))
	defer geo.Destroy()
	if geo.WKBSize() == 0 {
		err = ErrWrongGeoJSON
		return
	}
	ret, err = geo.ToWKB()
	return
}

// WKB转GeoJSON
func (g *Toolbox) WkbToGeoJSON(wkb GdalGeo, srid int) (ret AnyJson, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	ret = utils.S2B(geo.ToJSON())
	geo.Destroy()
	return
}

// 合并多个WKB矢量面
func (g *Toolbox) Union(gs []GdalGeo, srid int) (ret GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	var (
		geo      gdal.Geometry
		unionGeo = gdal.Create(gdal.GT_Polygon)
		gc       = []destroyable{unionGeo}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for _, a := range gs {
		if geo, err = g.parseWKB(a, ref); err != nil {
			return
		}
		gc = append(gc, geo)
		unionGeo = unionGeo.Union(geo)
		gc = append(gc, unionGeo)
	}
	ret, err = unionGeo.ToWKB()
	return
}

// 获取多个WKB矢量面公共区
func (g *Toolbox) Intersection(gs []GdalGeo, srid int) (ret GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	var (
		geo      gdal.Geometry
		interGeo gdal.Geometry
		gc       []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for i, a := range gs {
		if geo, err = g.parseWKB(a, ref); err != nil {
			return
		}
		gc = append(gc, geo)
		if i == 0 {
			interGeo = geo
			continue
		}
		interGeo = interGeo.Intersection(geo)
		gc = append(gc, interGeo)
	}
	if interGeo == emptyGeometry {
		err = ErrWrongGeoType
		return
	}
	ret, err = interGeo.ToWKB()
	return
}

// 求两个WKB矢量面之差
func (g *Toolbox) Difference(gA, gB GdalGeo, srid int) (ret GdalGeo, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geoA, err := g.parseWKB(gA, ref)
	if err != nil {
		return
	}
	defer geoA.Destroy()
	geoB, err := g.parseWKB(gB, ref)
	if err != nil {
		return
	}
	defer geoB.Destroy()
	diffGeo := geoA.Difference(geoB)
	ret, err = diffGeo.ToWKB()
	diffGeo.Destroy()
	return
}

// 从目标区域WKB中剪除多个其他区域WKB
func (g *Toolbox) SubtractZones(zone *Zone, subs []Zone, srid int) (err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	zoneGeo, err := g.parseWKB(zone.Geom, ref)
	if err != nil {
		return
	}
	var (
		geo gdal.Geometry
		e   error
		gc  = []destroyable{zoneGeo}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for _, vec := range subs {
		if geo, e = g.parseWKB(vec.Geom, ref); e != nil {
			continue
		}
		gc = append(gc, geo)
		zoneGeo = zoneGeo.Difference(geo)
		gc = append(gc, zoneGeo)
	}
	zone.Geom, err = zoneGeo.ToWKB()
	return
}

// 获取WKT经纬度范围
func (g *Toolbox) GetWktSpan(wkt string, srid int) (span [4]float64, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	envelop := geo.Envelope()
	span[0] = envelop.MinX()
	span[1] = envelop.MaxX()
	span[2] = envelop.MinY()
	span[3] = envelop.MaxY()
	return
}
