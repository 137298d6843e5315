package utils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestGetBasicBandIdx(t *testing.T) {
	idx, invalid := GetBasicBandIdx("B,G,R")
	if invalid {
		t.Fatal("B,G,R should be valid")
	}
	if idx != [3]string{"3", "2", "1"} {
		t.Fatalf("got %v", idx)
	}
	if _, invalid = GetBasicBandIdx("B,G,NIR"); !invalid {
		t.Fatal("missing R should be invalid")
	}
}

func TestGetFilenameWithoutExt(t *testing.T) {
	if name := GetFilenameWithoutExt("/tmp/area_4326.shp"); name != "area_4326" {
		t.Fatalf("got %q", name)
	}
}

func TestGetShpInZip(t *testing.T) {
	dir := t.TempDir()
	zipFile := filepath.Join(dir, "in.zip")
	writeZip(t, zipFile, map[string]string{
		"area/area.shp": "stub",
		"area/area.cpg": "UTF-8",
	})
	dst := filepath.Join(dir, "out")
	shp, utf8, err := GetShpInZip(zipFile, dst)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(shp) != "area.shp" {
		t.Fatalf("got %q", shp)
	}
	if !utf8 {
		t.Fatal("cpg said UTF-8")
	}
	if _, err = os.Stat(zipFile); !os.IsNotExist(err) {
		t.Fatal("zip should be removed after extraction")
	}

	zipFile = filepath.Join(dir, "noshp.zip")
	writeZip(t, zipFile, map[string]string{"readme.txt": "nope"})
	if _, _, err = GetShpInZip(zipFile, dst); err != ErrNoShpInZip {
		t.Fatalf("got %v", err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, e := w.Create(name)
		if e != nil {
			t.Fatal(e)
		}
		if _, e = fw.Write([]byte(content)); e != nil {
			t.Fatal(e)
		}
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
}
