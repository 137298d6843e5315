package ogrlib

import "errors"

// Sentinels for binding-level failures that carry no native OGR status code.
// Failures that do map onto a native status are raised as ogrerr errors at
// the call site instead.
var (
	ErrDriverCreate      = errors.New("ogr driver create err")
	ErrDriverOpen        = errors.New("ogr driver open err")
	ErrVoidSrid          = errors.New("shp with void srid")
	ErrWrongGeoType      = errors.New("wrong geo type")
	ErrWrongGeoJSON      = errors.New("wrong GeoJSON")
	ErrInvalidTif        = errors.New("invalid tif")
	ErrWrongTif          = errors.New("wrong tif")
	ErrTifReadFailed     = errors.New("tif read failed")
	ErrEmptyTif          = errors.New("empty tif")
	ErrWrongBufferSize   = errors.New("wrong buffer size")
	ErrWrongRasterOffset = errors.New("wrong raster offset")
)
