//go:build !gdal1

package ogrerr

import "errors"

// NonExistingFeature reports a reference to a feature record that does not
// exist. The native constant was added in GDAL 2.0; build with -tags gdal1
// to target older libraries, which drops this member entirely.
const NonExistingFeature Code = 9

var (
	extraCodeNames   = []string{"NonExistingFeature"}
	extraNativeNames = []string{"OGRERR_NON_EXISTING_FEATURE"}
	extraCodeErrs    = []error{errors.New("ogr: non existing feature")}
)
