package loader

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

// loadDir resolves a sketch folder. When options carry a FileSystem, location
// is a path inside it; otherwise location is opened on the host.
func loadDir(ctx context.Context, options sketch.LoaderOptions, location string) (*sketch.Sketch, error) {
	if location == "" {
		return nil, sketch.Errorf(sketch.KindInvalidInput, "read dir", "", "directory path is required")
	}

	fsys, name, err := openDir(options.FileSystem, location)
	if err != nil {
		return nil, sketch.NewError(sketch.KindIO, "read dir", location, err)
	}
	return resolveDir(ctx, fsys, name, options.SourceSuffix, options.DataDir, location)
}

func openDir(files fs.FS, location string) (fs.FS, string, error) {
	if files == nil {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, "", err
		}
		return os.DirFS(abs), filepath.Base(abs), nil
	}

	clean := path.Clean(filepath.ToSlash(location))
	if clean == "." {
		return files, ".", nil
	}
	sub, err := fs.Sub(files, clean)
	if err != nil {
		return nil, "", err
	}
	return sub, path.Base(clean), nil
}

// resolveDir enumerates the immediate entries of fsys. Files ending in suffix
// become sources; the one named after the sketch folder is primary, falling
// back to the first enumerated. Children of dataDir are registered as assets.
func resolveDir(ctx context.Context, fsys fs.FS, sketchName, suffix, dataDir, location string) (*sketch.Sketch, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, sketch.NewError(sketch.KindIO, "read dir", location, err)
	}

	result := sketch.New()
	preferred := sketchName + suffix
	primary := ""

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()

		if strings.HasSuffix(name, suffix) {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, sketch.NewError(sketch.KindIO, "read file", name, err)
			}
			if !utf8.Valid(data) {
				return nil, sketch.Errorf(sketch.KindEncoding, "read file", name, "file is not valid utf-8")
			}
			result.Sources.Set(name, string(data))
			if primary == "" || name == preferred {
				primary = name
			}
		}

		if name == dataDir && entry.IsDir() {
			children, err := fs.ReadDir(fsys, name)
			if err != nil {
				return nil, sketch.NewError(sketch.KindIO, "read dir", name, err)
			}
			for _, child := range children {
				result.Assets.Set(child.Name(), dataDir+"/"+child.Name())
			}
		}
	}

	if primary == "" {
		return nil, sketch.Errorf(sketch.KindNoPrimarySource, "resolve dir", location, "no %s file found", suffix)
	}

	text, _ := result.Sources.Get(primary)
	result.Sources.Delete(primary)
	result.SetPrimary(text)
	return result, nil
}
