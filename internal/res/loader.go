// Package res loads brand assets (logos) from disk or inline data URLs.
package res

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrRemote is returned for http(s) references. Assets are never fetched
// over the network during generation.
var ErrRemote = errors.New("remote assets are not supported")

// ErrNotFound is returned when a relative path matches no search path.
var ErrNotFound = errors.New("asset not found")

// Asset is a loaded binary asset.
type Asset struct {
	Ref      string
	Data     []byte
	MimeType string
}

// IsImage reports whether the asset looks like a raster image.
func (a *Asset) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// Loader resolves asset references and caches what it has read.
type Loader struct {
	// BaseDir anchors relative paths. Empty means the working directory.
	BaseDir string

	mu          sync.RWMutex
	cache       map[string]*Asset
	searchPaths []string
}

// NewLoader creates a loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir: baseDir,
		cache:   make(map[string]*Asset),
	}
}

// AddSearchPath adds a directory consulted after BaseDir.
func (l *Loader) AddSearchPath(dir string) {
	l.mu.Lock()
	l.searchPaths = append(l.searchPaths, dir)
	l.mu.Unlock()
}

// Load reads the asset named by ref: a data URL, a file:// URL, or a path.
func (l *Loader) Load(ref string) (*Asset, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty asset reference")
	}

	l.mu.RLock()
	if a, ok := l.cache[ref]; ok {
		l.mu.RUnlock()
		return a, nil
	}
	l.mu.RUnlock()

	var (
		a   *Asset
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		a, err = parseDataURL(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return nil, fmt.Errorf("%w: %s", ErrRemote, ref)
	case strings.HasPrefix(ref, "file://"):
		u, perr := url.Parse(ref)
		if perr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ref, perr)
		}
		a, err = l.loadFile(u.Path)
	default:
		a, err = l.loadFile(ref)
	}
	if err != nil {
		return nil, err
	}
	a.Ref = ref

	l.mu.Lock()
	l.cache[ref] = a
	l.mu.Unlock()
	return a, nil
}

// LoadImage is Load restricted to image assets.
func (l *Loader) LoadImage(ref string) (*Asset, error) {
	a, err := l.Load(ref)
	if err != nil {
		return nil, err
	}
	if !a.IsImage() {
		return nil, fmt.Errorf("asset %s is %s, not an image", ref, a.MimeType)
	}
	return a, nil
}

func (l *Loader) loadFile(path string) (*Asset, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		candidates = candidates[:0]
		if l.BaseDir != "" {
			candidates = append(candidates, filepath.Join(l.BaseDir, path))
		} else {
			candidates = append(candidates, path)
		}
		l.mu.RLock()
		for _, dir := range l.searchPaths {
			candidates = append(candidates, filepath.Join(dir, path))
		}
		l.mu.RUnlock()
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return &Asset{Data: data, MimeType: mimeFor(p)}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// parseDataURL decodes an RFC 2397 data URL such as
// data:image/png;base64,iVBOR...
func parseDataURL(u string) (*Asset, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok {
		return nil, errors.New("invalid data URL: missing comma")
	}

	mime := "text/plain"
	isBase64 := false
	for i, part := range strings.Split(meta, ";") {
		part = strings.TrimSpace(part)
		switch {
		case i == 0 && part != "":
			mime = strings.ToLower(part)
		case strings.EqualFold(part, "base64"):
			isBase64 = true
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URL: %w", err)
		}
		return &Asset{Data: data, MimeType: mime}, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data URL: %w", err)
	}
	return &Asset{Data: []byte(s), MimeType: mime}, nil
}

func mimeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
