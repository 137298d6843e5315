package ogrlib

import (
	"fmt"
	"strings"

	"github.com/geowrench/ogrlib/log"
	"github.com/geowrench/ogrlib/utils"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

func encodingOption() string {
	return "ENCODING=" + Option(OPT_SHAPE_ENCODING, SHAPE_ENCODING)
}

// 获取shp的srid
func (g *Toolbox) GetSridOfShapefile(shp string) (srid int, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	return g.getSrid(layer.SpatialReference())
}

func (g *Toolbox) parseShp(shp string, noTrans ...bool) (ret gdal.Geometry, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrDriverOpen
		return
	}
	defer ds.Destroy()
	var (
		layer    = ds.LayerByIndex(0)
		mayTrans = len(noTrans) == 0 || !noTrans[0]
		srid     int
		feature  *gdal.Feature
		gc       []destroyable
	)
	if mayTrans {
		if srid, err = g.getSrid(layer.SpatialReference()); err != nil {
			return
		}
	}
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	ret = gdal.Create(gdal.GT_Polygon)
	for {
		if feature = layer.NextFeature(); feature != nil {
			gc = append(gc, *feature)
			gc = append(gc, ret)
			ret = ret.Union(feature.Geometry())
		} else {
			break
		}
	}
	if mayTrans && srid != UNIVERSAL_SRID {
		var tRef gdal.SpatialReference
		if tRef, err = g.getSridRef(UNIVERSAL_SRID); err == nil {
			if err = ret.TransformTo(tRef); err != nil {
				log.Error(g.logTag+"geo transform failed", zap.Error(err))
			}
		}
		if err != nil {
			gc = append(gc, ret)
		}
	}
	return
}

// 将shp转为单个WKB（srid=4326）
func (g *Toolbox) GetWkbFromShp(shp string) (ret GdalGeo, err error) {
	log.Info(g.logTag+"start shp wkb trans", zap.String("shp", shp))
	geo, err := g.parseShp(shp)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if !geo.IsEmpty() {
		ret, err = geo.ToWKB()
	}
	log.Info(g.logTag+"got wkb from shp", zap.String("shp", shp), zap.Bool("succeed", err == nil && len(ret) > 0))
	return
}

// 将shp转为单个WKT（srid=4326）
func (g *Toolbox) GetWktFromShp(shp string) (ret string, err error) {
	log.Info(g.logTag+"start shp wkt trans", zap.String("shp", shp))
	geo, err := g.parseShp(shp)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if !geo.IsEmpty() {
		ret, err = geo.ToWKT()
	}
	return
}

// 将shp转为GeoJSON（srid=4326）
func (g *Toolbox) GetGeoJSONFromShp(shp string) (ret AnyJson, err error) {
	log.Info(g.logTag+"start shp GeoJSON trans", zap.String("shp", shp))
	geo, err := g.parseShp(shp)
	if err != nil {
		return
	}
	defer geo.Destroy()
	ret = utils.S2B(geo.ToJSON())
	return
}

// 从shp文件转化生成geoJson文件，可通过dstSrid指定目标srid
func (g *Toolbox) ShapefileToGeoJSON(shp string, dstSrid ...int) (out string, err error) {
	log.Info(g.logTag+"start geojson shp", zap.String("shp", shp))
	sds, err := gdal.OpenEx(shp, gdal.OFVector, nil, nil, nil)
	if err != nil {
		log.Error(g.logTag+"open shp error", zap.Error(err))
		return
	}
	defer sds.Close()

	tSrid := GEOJSON_SRID
	if len(dstSrid) > 0 && dstSrid[0] > 0 {
		tSrid = dstSrid[0]
	}
	prefix := strings.TrimSuffix(shp, FILE_EXT_SHP)
	out = prefix + fmt.Sprintf("_%d"+FILE_EXT_JSON, tSrid)
	dds, err := gdal.VectorTranslate(out, []gdal.Dataset{sds}, []string{"-f", "GeoJSON", "-t_srs", fmt.Sprintf("epsg:%d", tSrid)})
	if err != nil {
		log.Error(g.logTag + "VectorTranslate failed")
		return
	}
	dds.Close() // 生成转换后的json文件
	log.Info(g.logTag+"end geojson shp", zap.String("shp", shp), zap.String("out", out))
	return
}

// 转换整个shp文件的坐标系
func (g *Toolbox) TransformShapefile(shp string, tSrid int) (out string, err error) {
	srid, err := g.GetSridOfShapefile(shp)
	if err != nil || srid == tSrid {
		out = shp
		return
	}
	sds, err := gdal.OpenEx(shp, gdal.OFVector, nil, nil, nil)
	if err != nil {
		log.Error(g.logTag+"open shp error", zap.Error(err))
		return
	}
	defer sds.Close()
	log.Info(g.logTag+"start transform shp", zap.String("shp", shp), zap.Int("srid", tSrid))
	prefix := strings.TrimSuffix(shp, FILE_EXT_SHP)
	out = prefix + fmt.Sprintf("_%d"+FILE_EXT_SHP, tSrid)
	dds, err := gdal.VectorTranslate(out, []gdal.Dataset{sds}, []string{"-t_srs", fmt.Sprintf("epsg:%d", tSrid), "-lco", encodingOption()})
	if err != nil {
		log.Error(g.logTag + "VectorTranslate failed")
		return
	}
	dds.Close() // 生成转换后的shp文件

	if e := sds.Driver().DeleteDataset(shp); e != nil {
		log.Info(g.logTag+"delete old shp failed", zap.Error(e))
	}
	log.Info(g.logTag+"end transform shp", zap.String("shp", out))
	return
}

// 转换整个shp文件的文本编码
func (g *Toolbox) EncodingShapefile(shp, cpg string, rmOld bool) (out string, err error) {
	if cpg == SHAPE_ENCODING || cpg == UTF8_ENC {
		out = shp
		return
	}
	// cpg为空，或者不为UTF-8的，都当作GBK编码处理
	sds, err := gdal.OpenEx(shp, gdal.OFVector, nil, []string{OO_ENCODING}, nil)
	if err != nil {
		log.Error(g.logTag+"open shp error", zap.Error(err))
		return
	}
	defer sds.Close()
	log.Info(g.logTag+"start encoding shp", zap.String("shp", shp), zap.String("cpg", cpg))
	prefix := strings.TrimSuffix(shp, FILE_EXT_SHP)
	out = prefix + fmt.Sprintf("_%s"+FILE_EXT_SHP, cpg)
	dds, err := gdal.VectorTranslate(out, []gdal.Dataset{sds}, []string{"-lco", encodingOption()})
	if err != nil {
		log.Error(g.logTag + "VectorTranslate failed")
		return
	}
	dds.Close() // 生成转换后的shp文件

	if rmOld {
		if e := sds.Driver().DeleteDataset(shp); e != nil {
			log.Info(g.logTag+"delete old shp failed", zap.Error(e))
		}
	}
	log.Info(g.logTag+"end encoding shp", zap.String("shp", out))
	return
}

// 获取shp文件中的标签
func (g *Toolbox) GetLabelsFromShapefile(shp, labelField string) (labels []string, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	labelIdx := g.fieldIndex(layer.Definition(), labelField)
	if labelIdx < 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, labelField)
		return
	}
	var (
		labelSet = map[string]struct{}{}
		feature  *gdal.Feature
		label    string
		cnt      int
		gc       []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature != nil {
			gc = append(gc, *feature)
			label = feature.FieldAsString(labelIdx)
			if label == "" {
				err = fmt.Errorf(ErrColumnEmptyTemplate, labelField)
				return
			}
			labelSet[label] = struct{}{}
			cnt++
		} else {
			break
		}
	}
	for k := range labelSet {
		labels = append(labels, k)
	}
	log.Info(g.logTag+"got labels from shp", zap.String("file", shp), zap.Any("labels", labels), zap.Int("cnt", cnt))
	return
}

// 字段查找，GBK编码的shp中字段名可能为GBK编码
func (g *Toolbox) fieldIndex(def gdal.FeatureDefinition, field string) (idx int) {
	if idx = def.FieldIndex(field); idx >= 0 {
		return
	}
	if gbk, e := utils.Utf8StrToGbk(field); e == nil {
		idx = def.FieldIndex(gbk)
	}
	return
}

// 从shp文件中解析出矢量要素
func (g *Toolbox) ParseShapefile(shp, labelField string) (ret []Feature, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	def := layer.Definition()
	labelIdx := -1
	if labelField != "" {
		labelIdx = g.fieldIndex(def, labelField)
		if labelIdx < 0 {
			err = fmt.Errorf(ErrColumnMissingTemplate, labelField)
			return
		}
	}
	ret = make([]Feature, 0, 128)
	var (
		feature *gdal.Feature
		geo     gdal.Geometry
		wkb     []byte
		e       error
		gc      []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature != nil {
			gc = append(gc, *feature)
			geo = feature.Geometry()
			wkb, e = geo.ToWKB()
			if e != nil {
				log.Error(g.logTag+"err in wkb convert", zap.Int64("fid", feature.FID()), zap.Error(e))
				continue
			}
			ft := Feature{
				Geom: wkb,
			}
			if labelIdx >= 0 {
				ft.Label = feature.FieldAsString(labelIdx)
			}
			ret = append(ret, ft)
		} else {
			return
		}
	}
}

func (g *Toolbox) getShpDriver(shp string, srid int) (ds gdal.DataSource, ref gdal.SpatialReference, layer gdal.Layer, err error) {
	log.Info(g.logTag+"output shp files", zap.String("shp", shp), zap.Int("srid", srid))
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Create(shp, nil)
	if !ok {
		err = ErrDriverCreate
		return
	}
	if ref, err = g.getSridRef(srid); err != nil {
		return
	}
	layer = ds.CreateLayer("", ref, gdal.GT_Unknown, []string{encodingOption()})
	return
}

func (g *Toolbox) initShpLayer(layer gdal.Layer, labelField string) (err error) {
	objectLabel := gdal.CreateFieldDefinition(labelField, gdal.FT_String)
	objectLabel.SetWidth(64)
	err = layer.CreateField(objectLabel, false)
	return
}

// 将选定矢量WKB写入shp
func (g *Toolbox) WriteGeoToShapefile(shp string, srid int, gs ...GdalGeo) (err error) {
	ds, ref, layer, err := g.getShpDriver(shp, srid)
	if err != nil {
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	var (
		def     = layer.Definition()
		feature gdal.Feature
		geo     gdal.Geometry
		valid   int
		e       error
		gc      = make([]destroyable, len(gs))
	)
	for i, v := range gs {
		feature = def.Create()
		gc[i] = feature
		e = feature.SetFID(int64(i))
		if e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		if geo, e = g.parseWKB(v, ref); e != nil {
			continue
		}
		e = feature.SetGeometryDirectly(geo)
		if e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		valid++
	}
	for _, v := range gc {
		v.Destroy()
	}
	log.Info(g.logTag+"output geo to shapefile done", zap.String("shp", shp), zap.Int("total", len(gs)), zap.Int("valid", valid))
	return
}

// 将选定矢量要素写入shp
func (g *Toolbox) WriteShapefile(shp, labelField string, srid int, features ...Feature) (err error) {
	ds, ref, layer, err := g.getShpDriver(shp, srid)
	if err != nil {
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	if labelField != "" {
		if err = g.initShpLayer(layer, labelField); err != nil {
			return
		}
	}
	var (
		def          = layer.Definition()
		labelIdx int = -1
		feature  gdal.Feature
		geo      gdal.Geometry
		cnt      int
		e        error
		gc       = make([]destroyable, len(features))
	)
	if labelField != "" {
		labelIdx = def.FieldIndex(labelField)
	}
	for i, vec := range features {
		feature = def.Create()
		gc[i] = feature
		e = feature.SetFID(int64(i))
		if e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		if labelIdx >= 0 {
			feature.SetFieldString(labelIdx, vec.Label)
		}
		if geo, e = g.parseWKB(vec.Geom, ref); e != nil {
			continue
		}
		if e = feature.SetGeometryDirectly(geo); e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		cnt++
	}
	for _, v := range gc {
		v.Destroy()
	}
	log.Info(g.logTag+"shp files created", zap.String("shp", shp), zap.Int("total", len(features)), zap.Int("valid", cnt))
	return
}

// 将选定区域矢量写入shp
func (g *Toolbox) WriteZoneShapefile(shp string, srid int, zones ...Zone) (err error) {
	ds, ref, layer, err := g.getShpDriver(shp, srid)
	if err != nil {
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	objectOid := gdal.CreateFieldDefinition(SHP_FIELD_OID, gdal.FT_Integer)
	if err = layer.CreateField(objectOid, false); err != nil {
		return
	}
	var (
		def     = layer.Definition()
		feature gdal.Feature
		geo     gdal.Geometry
		cnt     int
		e       error
		gc      = make([]destroyable, len(zones))
	)
	for i, vec := range zones {
		feature = def.Create()
		gc[i] = feature
		e = feature.SetFID(int64(i))
		if e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		feature.SetFieldInteger(0, vec.Id)
		if geo, e = g.parseWKB(vec.Geom, ref); e != nil {
			continue
		}
		e = feature.SetGeometryDirectly(geo)
		if e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		cnt++
	}
	for _, v := range gc {
		v.Destroy()
	}
	log.Info(g.logTag+"zone shp files created", zap.String("shp", shp), zap.Int("total", len(zones)), zap.Int("valid", cnt))
	return
}
