//go:build !gdal1

package ogrerr

import "testing"

func TestGdal2Shape(t *testing.T) {
	if Count() != 10 {
		t.Fatalf("count = %d, want 10", Count())
	}
	if NonExistingFeature.Native() != 9 {
		t.Fatalf("NonExistingFeature = %d, want 9", NonExistingFeature.Native())
	}
	c, err := FromNative(9)
	if err != nil || c != NonExistingFeature {
		t.Fatalf("native 9 mapped to %v, %v", c, err)
	}
	if NonExistingFeature.NativeName() != "OGRERR_NON_EXISTING_FEATURE" {
		t.Fatalf("native name = %s", NonExistingFeature.NativeName())
	}
	if NonExistingFeature.Err() == nil {
		t.Fatal("missing sentinel")
	}
}
