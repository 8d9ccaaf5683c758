// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media manages image files below public/images: uploads are
// validated and staged in a temporary holding area, then renamed into
// their final directory once the owning record is known.
package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder

	"dianabeauty/internal/inventory"
)

const (
	// DefaultMaxFileSize is the per-file upload limit (10 MB).
	DefaultMaxFileSize = 10 << 20

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	maxImagePixels = 100_000_000
)

var (
	// ErrUnsupportedType is returned for uploads that are not JPEG, PNG or WebP.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrTooLarge is returned for uploads above the size or pixel limit.
	ErrTooLarge = errors.New("image too large")

	// ErrInvalidPath is returned for paths that would leave the public
	// directory or product ids that are not a single path element.
	ErrInvalidPath = errors.New("invalid image path")
)

// allowedTypes maps accepted sniffed content types to a file extension.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Library owns the image tree below one public directory.
type Library struct {
	publicDir   string
	maxFileSize int64
}

// NewLibrary creates a Library for publicDir. maxFileSize <= 0 selects
// DefaultMaxFileSize.
func NewLibrary(publicDir string, maxFileSize int64) *Library {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Library{publicDir: publicDir, maxFileSize: maxFileSize}
}

// MaxFileSize returns the per-file limit in bytes.
func (l *Library) MaxFileSize() int64 {
	return l.maxFileSize
}

// ImagesDir returns public/images.
func (l *Library) ImagesDir() string {
	return filepath.Join(l.publicDir, "images")
}

// TempDir returns the upload holding area.
func (l *Library) TempDir() string {
	return filepath.Join(l.ImagesDir(), inventory.TempFolder)
}

// Staged is a validated upload waiting in the holding area.
type Staged struct {
	Path         string // absolute path inside the holding area
	OriginalName string
	Ext          string // lowercase, with leading dot
	ContentType  string
}

// Stage validates an uploaded file and copies it into the holding area
// under a random name.
func (l *Library) Stage(fh *multipart.FileHeader) (Staged, error) {
	if fh.Size > l.maxFileSize {
		return Staged{}, fmt.Errorf("%s: %w", fh.Filename, ErrTooLarge)
	}
	src, err := fh.Open()
	if err != nil {
		return Staged{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()
	return l.stageReader(src, fh.Filename)
}

func (l *Library) stageReader(src io.ReadSeeker, name string) (Staged, error) {
	// Detect content type by sniffing the first 512 bytes.
	sniff := make([]byte, 512)
	n, err := io.ReadFull(src, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Staged{}, fmt.Errorf("read upload %s: %w", name, err)
	}
	contentType := http.DetectContentType(sniff[:n])
	typeExt, ok := allowedTypes[contentType]
	if !ok {
		return Staged{}, fmt.Errorf("%s is %s: %w", name, contentType, ErrUnsupportedType)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Staged{}, fmt.Errorf("seek upload %s: %w", name, err)
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return Staged{}, fmt.Errorf("%s: %w: %w", name, ErrUnsupportedType, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return Staged{}, fmt.Errorf("%s is %dx%d: %w", name, cfg.Width, cfg.Height, ErrTooLarge)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Staged{}, fmt.Errorf("seek upload %s: %w", name, err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !inventory.IsImage(name) {
		ext = typeExt
	}

	if err := os.MkdirAll(l.TempDir(), 0o755); err != nil {
		return Staged{}, fmt.Errorf("create holding area: %w", err)
	}
	dst := filepath.Join(l.TempDir(), uuid.New().String()+ext)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Staged{}, fmt.Errorf("stage %s: %w", name, err)
	}
	written, err := io.Copy(out, io.LimitReader(src, l.maxFileSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > l.maxFileSize {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(dst)
		return Staged{}, fmt.Errorf("stage %s: %w", name, err)
	}

	return Staged{Path: dst, OriginalName: name, Ext: ext, ContentType: contentType}, nil
}

// Discard removes staged files that were never committed.
func (l *Library) Discard(staged []Staged) {
	for _, s := range staged {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("discard staged upload failed", "path", s.Path, "error", err)
		}
	}
}

// Placement is the planned final location of a staged upload.
type Placement struct {
	Staged   Staged
	Dest     string // absolute destination path
	SitePath string // "/images/..." as served to the storefront
}

// ProductDir returns the image directory of a custom product.
func (l *Library) ProductDir(productID string) (string, error) {
	if productID == "" || productID == "." || productID == ".." || strings.ContainsAny(productID, `/\`) {
		return "", fmt.Errorf("product id %q: %w", productID, ErrInvalidPath)
	}
	return filepath.Join(l.ImagesDir(), inventory.CustomFolder, productID), nil
}

// PlanProductImages assigns each staged upload a random name inside the
// product directory. Nothing is moved yet.
func (l *Library) PlanProductImages(productID string, staged []Staged) ([]Placement, error) {
	dir, err := l.ProductDir(productID)
	if err != nil {
		return nil, err
	}
	out := make([]Placement, 0, len(staged))
	for _, s := range staged {
		name := uuid.New().String() + s.Ext
		out = append(out, Placement{
			Staged:   s,
			Dest:     filepath.Join(dir, name),
			SitePath: path.Join("/images", inventory.CustomFolder, productID, name),
		})
	}
	return out, nil
}

// SitePaths returns the storefront paths of placements in order.
func SitePaths(placements []Placement) []string {
	out := make([]string, len(placements))
	for i, p := range placements {
		out[i] = p.SitePath
	}
	return out
}

// Commit renames every staged file to its destination. It stops at the
// first failure and reports it; files already moved stay in place.
func (l *Library) Commit(placements []Placement) error {
	for _, p := range placements {
		if err := os.MkdirAll(filepath.Dir(p.Dest), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(p.Dest), err)
		}
		if err := os.Rename(p.Staged.Path, p.Dest); err != nil {
			return fmt.Errorf("move upload %s: %w", p.Staged.OriginalName, err)
		}
	}
	return nil
}

// Resolve maps a storefront path ("/images/...") to an absolute path and
// refuses anything outside the public directory.
func (l *Library) Resolve(sitePath string) (string, error) {
	clean := strings.TrimLeft(filepath.FromSlash(sitePath), `/\`)
	if clean == "" {
		return "", fmt.Errorf("%q: %w", sitePath, ErrInvalidPath)
	}
	abs := filepath.Join(l.publicDir, clean)
	rel, err := filepath.Rel(l.publicDir, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", sitePath, ErrInvalidPath)
	}
	return abs, nil
}

// DeleteImage removes the file behind a storefront path. A missing file is
// not an error.
func (l *Library) DeleteImage(sitePath string) error {
	abs, err := l.Resolve(sitePath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image %s: %w", sitePath, err)
	}
	return nil
}

// RemoveProductDir deletes the whole image directory of a custom product.
func (l *Library) RemoveProductDir(productID string) error {
	dir, err := l.ProductDir(productID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove product images %s: %w", productID, err)
	}
	return nil
}

// InventoryUpload describes where an inventory image should land.
type InventoryUpload struct {
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory,omitempty"`
	SubSubcategory string `json:"subSubcategory,omitempty"`
}

// PlaceInventoryImage moves a staged upload into the inventory folder for
// target as "{basename}-{millis}-{random}{ext}" and returns the absolute
// destination.
func (l *Library) PlaceInventoryImage(s Staged, target InventoryUpload, now time.Time) (string, error) {
	rel, err := inventory.UploadDir(target.Category, target.Subcategory, target.SubSubcategory)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(l.ImagesDir(), rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}

	base := path.Base(strings.ReplaceAll(s.OriginalName, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	name := base + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(uint64(uuid.New().ID()), 10) + s.Ext
	dest := filepath.Join(dir, name)
	if err := os.Rename(s.Path, dest); err != nil {
		return "", fmt.Errorf("move upload %s: %w", s.OriginalName, err)
	}
	return dest, nil
}
