//go:build gdal1

package ogrerr

// Pre-2.0 GDAL has no OGRERR_NON_EXISTING_FEATURE, so this build shape adds
// nothing on top of the base nine codes.
var (
	extraCodeNames   []string
	extraNativeNames []string
	extraCodeErrs    []error
)
