// Package ogrerr defines a stable view of OGR's status codes for Go callers.
// The integer value of every Code equals the corresponding native OGRErr
// constant, so codes cross the binding boundary unchanged. The set of codes
// depends on the GDAL version targeted at build time, see gdal2.go.
package ogrerr

import (
	"errors"
	"strconv"
)

type Code int

const (
	None Code = iota
	NotEnoughData
	NotEnoughMemory
	UnsupportedGeometryType
	UnsupportedOperation
	CorruptData
	Failure
	UnsupportedSRS
	InvalidHandle
)

var ErrUnknownCode = errors.New("ogrerr: not a native OGR status code")

var (
	codeNames = append([]string{
		"None",
		"NotEnoughData",
		"NotEnoughMemory",
		"UnsupportedGeometryType",
		"UnsupportedOperation",
		"CorruptData",
		"Failure",
		"UnsupportedSRS",
		"InvalidHandle",
	}, extraCodeNames...)

	// upstream symbol each Code replaces in generated signatures
	nativeNames = append([]string{
		"OGRERR_NONE",
		"OGRERR_NOT_ENOUGH_DATA",
		"OGRERR_NOT_ENOUGH_MEMORY",
		"OGRERR_UNSUPPORTED_GEOMETRY_TYPE",
		"OGRERR_UNSUPPORTED_OPERATION",
		"OGRERR_CORRUPT_DATA",
		"OGRERR_FAILURE",
		"OGRERR_UNSUPPORTED_SRS",
		"OGRERR_INVALID_HANDLE",
	}, extraNativeNames...)

	codeErrs = append([]error{
		nil,
		errors.New("ogr: not enough data to deserialize"),
		errors.New("ogr: not enough memory"),
		errors.New("ogr: unsupported geometry type"),
		errors.New("ogr: unsupported operation"),
		errors.New("ogr: corrupt data"),
		errors.New("ogr: general failure"),
		errors.New("ogr: unsupported SRS"),
		errors.New("ogr: invalid handle"),
	}, extraCodeErrs...)
)

// Count reports how many codes the current build shape defines.
func Count() int {
	return len(codeNames)
}

// FromNative maps a raw OGRErr value onto its Code. The mapping is total over
// the codes of the targeted GDAL version; anything else is ErrUnknownCode.
func FromNative(v int) (Code, error) {
	if v < 0 || v >= len(codeNames) {
		return None, ErrUnknownCode
	}
	return Code(v), nil
}

func (c Code) Native() int {
	return int(c)
}

func (c Code) Valid() bool {
	return c >= 0 && int(c) < len(codeNames)
}

func (c Code) String() string {
	if c.Valid() {
		return codeNames[c]
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// NativeName returns the upstream constant this Code stands in for.
func (c Code) NativeName() string {
	if c.Valid() {
		return nativeNames[c]
	}
	return ""
}

func FromNativeName(name string) (Code, bool) {
	for i, n := range nativeNames {
		if n == name {
			return Code(i), true
		}
	}
	return None, false
}

// Err returns the sentinel error for c, nil for None. The sentinels are
// stable, so callers can branch with errors.Is.
func (c Code) Err() error {
	if !c.Valid() {
		return ErrUnknownCode
	}
	return codeErrs[c]
}
