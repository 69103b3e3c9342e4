package images

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

// Entry is an image file with its optional label and note, before probing.
type Entry struct {
	Path  string
	Label string
	Note  string
}

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsSupported reports whether the file extension is a decodable image type.
func IsSupported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Scan lists the image files directly inside dir, sorted by name. When pattern
// is non-empty only base names matching the regular expression are kept.
func Scan(dir, pattern string) ([]Entry, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image folder: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !IsSupported(de.Name()) {
			continue
		}
		if re != nil && !re.MatchString(de.Name()) {
			continue
		}
		entries = append(entries, Entry{Path: filepath.Join(dir, de.Name())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// DefaultLabels fills empty labels with the file name.
func DefaultLabels(entries []Entry) {
	for i := range entries {
		if entries[i].Label == "" {
			entries[i].Label = filepath.Base(entries[i].Path)
		}
	}
}

// Probe decodes the header of every entry with up to concurrency workers and
// returns records in input order. A file that cannot be decoded keeps zero
// dimensions so the layout skips its cell. onDone, when set, is called once
// per entry and may be called from several goroutines.
func Probe(ctx context.Context, entries []Entry, concurrency int, onDone func()) ([]catalog.ImageRecord, error) {
	records := make([]catalog.ImageRecord, len(entries))
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan int, len(entries))
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(concurrency, max(len(entries), 1)) {
		wg.Go(func() {
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				e := entries[i]
				rec := catalog.ImageRecord{Ref: e.Path, Label: e.Label, Note: e.Note}
				w, h, err := Dimensions(e.Path)
				if err != nil {
					log.Printf("WARNING: failed to read image %s: %v", e.Path, err)
				} else {
					rec.Width, rec.Height = w, h
				}
				records[i] = rec
				if onDone != nil {
					onDone()
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Dimensions returns the pixel size of an image file without decoding pixels.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
