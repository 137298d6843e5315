package utils

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unzip将压缩包解压到dstDir，返回解压出的文件列表（忽略子目录层级）
func Unzip(zipFile, dstDir string) (files []string, err error) {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return
	}
	defer r.Close()
	if err = os.MkdirAll(dstDir, os.ModePerm); err != nil {
		return
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		dst := filepath.Join(dstDir, name)
		if err = extractFile(f, dst); err != nil {
			return
		}
		files = append(files, dst)
	}
	return
}

func extractFile(f *zip.File, dst string) (err error) {
	in, err := f.Open()
	if err != nil {
		return
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return
}
