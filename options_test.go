package ogrlib

import "testing"

func TestSetGetOption(t *testing.T) {
	SetOption("GDAL_CACHEMAX", "128")
	defer ClearOption("GDAL_CACHEMAX")
	if v := Option("GDAL_CACHEMAX", ""); v != "128" {
		t.Fatalf("got %q", v)
	}
	if v := Option("NON_EXISTENT_OPTION", "DEFAULT_VALUE"); v != "DEFAULT_VALUE" {
		t.Fatalf("got %q", v)
	}
}

func TestClearOption(t *testing.T) {
	SetOption("TEST_OPTION", "256")
	if v := Option("TEST_OPTION", "DEFAULT"); v != "256" {
		t.Fatalf("got %q", v)
	}
	ClearOption("TEST_OPTION")
	if v := Option("TEST_OPTION", "DEFAULT"); v != "DEFAULT" {
		t.Fatalf("got %q", v)
	}
}
