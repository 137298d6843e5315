package ogrlib

import (
	"strconv"

	"github.com/geowrench/ogrlib/log"
	"github.com/geowrench/ogrlib/ogrerr"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// SridToWkt导出srid对应坐标系的WKT定义
func (g *Toolbox) SridToWkt(srid int) (wkt string, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	wkt, err = ref.ToWKT()
	if err != nil {
		log.Error(g.logTag+"export srs wkt failed", zap.Int("srid", srid), zap.Error(err))
		err = ogrerr.New(ogrerr.Failure, "OSRExportToWkt")
	}
	return
}

// Authority返回srid对应坐标系的authority标识，如"EPSG:4326"
func (g *Toolbox) Authority(srid int) (auth string, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	name, ok := ref.AttrValue("AUTHORITY", 0)
	if !ok {
		err = ogrerr.New(ogrerr.UnsupportedSRS, "OSRGetAuthorityName")
		return
	}
	code, ok := ref.AttrValue("AUTHORITY", 1)
	if !ok {
		err = ogrerr.New(ogrerr.UnsupportedSRS, "OSRGetAuthorityCode")
		return
	}
	if _, err = strconv.Atoi(code); err != nil {
		err = ogrerr.New(ogrerr.UnsupportedSRS, "OSRGetAuthorityCode")
		return
	}
	auth = name + ":" + code
	return
}

// IdentifyEPSG从WKT定义推断EPSG编号，用于处理缺失AUTHORITY节点的shp
func (g *Toolbox) IdentifyEPSG(wkt string) (srid int, err error) {
	ref := gdal.CreateSpatialReference(wkt)
	defer ref.Destroy()
	if err = ref.AutoIdentifyEPSG(); err != nil {
		log.Error(g.logTag+"auto identify failed", zap.Error(err))
		err = ogrerr.New(ogrerr.UnsupportedSRS, "OSRAutoIdentifyEPSG")
		return
	}
	return g.getSrid(ref)
}

// 判断srid对应坐标系在EPSG规范下是否为(纬度,经度)次序
func (g *Toolbox) TreatsAsLatLong(srid int) (latLong bool, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	latLong = ref.EPSGTreatsAsLatLong()
	return
}
