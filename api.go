package ogrlib

import "encoding/json"

type AnyJson = json.RawMessage

// GdalGeo is a geometry in WKB form.
type GdalGeo = []byte

// 矢量要素：几何 + 可选标签字段
type Feature struct {
	Geom  GdalGeo
	Label string
}

// 区域矢量
type Zone struct {
	Id   int
	Geom GdalGeo
}

type ImgMergeFile struct {
	Infile    string  `json:"infile"`     // 镶嵌影像
	BandOrder string  `json:"band_order"` // 波段顺序
	Geom      GdalGeo `json:"-"`          // 镶嵌影像有效范围WKB（srid=4326）
}
