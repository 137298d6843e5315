//go:build gdal1

package ogrerr

import (
	"errors"
	"testing"
)

func TestGdal1Shape(t *testing.T) {
	if Count() != 9 {
		t.Fatalf("count = %d, want 9", Count())
	}
	// native 9 does not exist before GDAL 2.0
	if _, err := FromNative(9); !errors.Is(err, ErrUnknownCode) {
		t.Fatal("native 9 should be unmapped in this shape")
	}
}
