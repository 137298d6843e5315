package ogrlib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geowrench/ogrlib/log"
	"github.com/geowrench/ogrlib/ogrerr"
	"github.com/geowrench/ogrlib/utils"

	gdal "github.com/airbusgeo/godal"
	"github.com/google/uuid"
	ogr "github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

type RasterBand struct {
	gdal.Band
	Dataset *gdal.Dataset
}

func (b RasterBand) Close() {
	if b.Dataset != nil {
		b.Dataset.Close()
	}
}

// 读取一般Tif，前bands个波段
func (g *Toolbox) ParseRaster(tif string, bands int) (buf [][]byte, dtSize int, err error) {
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tifBands := sds.Bands()
	bc := len(tifBands)
	if bc < bands {
		log.Error(g.logTag+"tif bands not enough", zap.Int("bands", bc))
		err = ErrWrongTif
		return
	}
	log.Info(g.logTag+"start read tif", zap.Int("bands", bc), zap.Int("bufBn", bands))
	buf = make([][]byte, bands)
	for i := 0; i < bands; i++ {
		band := tifBands[i]
		bandStruct := band.Structure()
		dt := bandStruct.DataType
		x := bandStruct.SizeX
		y := bandStruct.SizeY
		dtSize = dt.Size()
		buf[i] = make([]byte, x*y*dtSize)
		err = band.IO(gdal.IORead, 0, 0, buf[i], x, y)
		if err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifReadFailed
			return
		}
	}
	return
}

// 获取Tif中的指定波段，用毕需调用Close回收
func (g *Toolbox) OpenRasterBand(tif string, idx int) (band RasterBand, err error) {
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.Error(err))
		err = ErrInvalidTif
		return
	}
	tifBands := sds.Bands()
	if bc := len(tifBands); idx < 0 || idx >= bc {
		log.Error(g.logTag+"no such band in tif", zap.Int("bands", bc), zap.Int("idx", idx))
		sds.Close()
		err = ErrWrongTif
		return
	}
	band.Band = tifBands[idx]
	band.Dataset = sds
	return
}

// 读取波段中单个像素值
func (b RasterBand) ReadOffset(xOff, yOff int, buf interface{}) (err error) {
	if buf == nil {
		err = ErrWrongBufferSize
		return
	}
	bandStruct := b.Structure()
	if xOff < 0 || yOff < 0 || xOff >= bandStruct.SizeX || yOff >= bandStruct.SizeY {
		err = ErrWrongRasterOffset
		return
	}
	if err = b.IO(gdal.IORead, xOff, yOff, buf, 1, 1); err != nil {
		err = ErrTifReadFailed
	}
	return
}

// 按各自有效区WKB剪切，并按目标区域WKT镶嵌多张影像tif
// 排序靠后的tif优先显示
func (g *Toolbox) CropRasters(tifGeo []ImgMergeFile, extWkt, out string) (err error) {
	nTif := len(tifGeo)
	if nTif == 0 {
		return
	}
	ref, err := g.getSridRef(UNIVERSAL_SRID)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(OUTPUT_SRID)
	if err != nil {
		return
	}
	var (
		ext        ogr.Geometry
		geo        ogr.Geometry
		sds        *gdal.Dataset
		ods        *gdal.Dataset
		part       string
		parts      []string
		opts       []string
		geoJson    []byte
		tmpGeoJson = filepath.Join(g.tmpDir, fmt.Sprintf(TMP_GEOJSON, uuid.NewString()))
		tmpVrt     = out + "_tmp.vrt"
		gc         []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
		os.Remove(tmpGeoJson)
		for _, part := range parts {
			os.Remove(part)
		}
	}()
	isUniform := true
	for i, t := range tifGeo[1:] {
		if t.BandOrder != tifGeo[i].BandOrder {
			isUniform = false
			break
		}
	}
	log.Info(g.logTag+"crop and merge rasters", zap.Int("tif_cnt", nTif), zap.Bool("uniform", isUniform), zap.String("out", out))
	if extWkt != "" {
		if ext, err = g.parseWKT(extWkt, ref); err != nil {
			return
		}
		gc = append(gc, ext)
		if err = ext.TransformTo(tRef); err != nil {
			err = ogrerr.New(ogrerr.Failure, "OGR_G_TransformTo")
			return
		}
	}
	hasExt := ext != emptyGeometry && !ext.IsEmpty()
	for i := nTif - 1; i >= 0; i-- {
		t := tifGeo[i]
		if geo, err = g.parseWKB(t.Geom, ref); err != nil {
			return
		}
		gc = append(gc, geo)
		if err = geo.TransformTo(tRef); err != nil {
			err = ogrerr.New(ogrerr.Failure, "OGR_G_TransformTo")
			return
		}
		if hasExt {
			geo = geo.Intersection(ext)
			gc = append(gc, geo)
			ext = ext.Difference(geo)
			gc = append(gc, ext)
		}
		gt := geo.Type()
		if (gt != ogr.GT_MultiPolygon && gt != ogr.GT_Polygon) || geo.IsEmpty() {
			log.Info(g.logTag+"encounter empty cut line geo", zap.Int("idx", i), zap.String("img", t.Infile))
			continue
		}
		opts = []string{"-cutline", tmpGeoJson, "-crop_to_cutline", "-overwrite", "-t_srs", fmt.Sprintf("epsg:%d", OUTPUT_SRID)}
		if !isUniform && t.BandOrder != "R,G,B" { // 若通道顺序不统一，则全部输出RGB格式影像
			bands, invalid := utils.GetBasicBandIdx(t.BandOrder)
			if invalid {
				log.Error(g.logTag+"invalid band order to merge", zap.String("img", t.Infile), zap.String("bands", t.BandOrder))
				continue
			}
			opts = append(opts, "-b", bands[0], "-b", bands[1], "-b", bands[2])
		}
		geoJson = utils.S2B(geo.ToJSON())
		if err = os.WriteFile(tmpGeoJson, geoJson, os.ModePerm); err != nil {
			return
		}
		sds, err = gdal.Open(t.Infile, gdal.RasterOnly())
		if err != nil {
			log.Error(g.logTag+"open part tif failed", zap.String("img", t.Infile), zap.Error(err))
			err = ErrInvalidTif
			return
		}
		part = out + fmt.Sprintf("_%d_part.tif", i)
		ods, err = gdal.Warp(part, []*gdal.Dataset{sds}, opts) // 剪切影像
		sds.Close()
		if err != nil {
			log.Error(g.logTag+"failed to crop raster", zap.Error(err))
			return
		}
		ods.Close()
		parts = append([]string{part}, parts...)
	}
	if len(parts) == 0 {
		err = ErrEmptyTif
		return
	} else if len(parts) > 1 {
		defer os.Remove(tmpVrt)
		// 将各景影像剪切结果拼接成一个VRT
		if ods, err = gdal.BuildVRT(tmpVrt, parts, []string{"-resolution", "highest", "-overwrite"}); err != nil {
			log.Error(g.logTag+"failed to build vrt", zap.Error(err))
			return
		}
	} else {
		ods, err = gdal.Open(parts[0], gdal.RasterOnly())
		if err != nil {
			log.Error(g.logTag+"open part tif failed", zap.Error(err))
			return
		}
	}
	defer ods.Close()
	// 将VRT转为最终GTiff
	finalDs, err := ods.Translate(out, []string{"-co", "compress=lzw"})
	if err != nil {
		log.Error(g.logTag+"failed to translate vrt", zap.Error(err))
		return
	}
	finalDs.Close()
	return
}
