package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered input file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned argument, with forward
	// slashes. For files named directly it is the base name.
	RelPath string
	// Size is the file size in bytes.
	Size int64
}

// Name returns the file's base name.
func (s Source) Name() string { return filepath.Base(s.AbsPath) }

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".avif": true,
	".heic": true,
	".heif": true,
}

// IsImagePath reports whether path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanInputs expands files and directories into sources, in argument order.
// Files named directly are taken as-is; directories are walked for image
// files, skipping hidden directories. A path seen twice is kept once.
func ScanInputs(paths []string) ([]Source, error) {
	var sources []Source
	seen := map[string]bool{}

	add := func(s Source) {
		key, err := filepath.Abs(s.AbsPath)
		if err != nil {
			key = s.AbsPath
		}
		if seen[key] {
			return
		}
		seen[key] = true
		sources = append(sources, s)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(Source{AbsPath: p, RelPath: filepath.Base(p), Size: info.Size()})
			continue
		}
		found, err := scanDir(p)
		if err != nil {
			return nil, err
		}
		for _, s := range found {
			add(s)
		}
	}
	return sources, nil
}

func scanDir(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if path != inputDir && strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImagePath(path) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}
