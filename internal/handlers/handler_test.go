// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against a fresh site checkout in a temporary directory.
package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"dianabeauty/internal/catalog"
	"dianabeauty/internal/inventory"
	"dianabeauty/internal/media"
	"dianabeauty/internal/store"
)

// testEnv bundles the handlers and stores of one temporary site.
type testEnv struct {
	root      string
	publicDir string
	admin     *Admin
	public    *Public
	overrides *store.OverrideStore
	data      *store.ProductDataStore
	library   *media.Library
	router    chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	publicDir := filepath.Join(root, "public")
	dataDir := filepath.Join(root, "src", "data")

	library := media.NewLibrary(publicDir, 0)
	if err := inventory.EnsureDirectories(library.ImagesDir()); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	data := store.NewProductDataStore(filepath.Join(dataDir, "products.ts"))
	if err := data.EnsureFile(); err != nil {
		t.Fatalf("ensure product data: %v", err)
	}
	overrides := store.NewOverrideStore(filepath.Join(dataDir, "productOverrides.ts"))
	scanner := inventory.NewScanner(library.ImagesDir())
	local := store.NewLocalOverrideStore(store.NewMemoryKV())

	admin := NewAdmin(overrides, data, library, scanner, filepath.Join(dataDir, "imagePaths.ts"), nil)
	admin.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	public := NewPublic(catalog.NewLoader(scanner, overrides, data, local), local, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/save-product-override", admin.SaveOverride)
		r.Get("/products-data", admin.ProductsData)
		r.Post("/custom-products", admin.CreateCustomProduct)
		r.Put("/custom-products/{id}", admin.UpdateCustomProduct)
		r.Delete("/custom-products/{id}", admin.DeleteCustomProduct)
		r.Post("/hidden-products", admin.SetHidden)
		r.Post("/categories", admin.CreateCategory)
		r.Put("/categories/{id}", admin.UpdateCategory)
		r.Delete("/categories/{id}", admin.DeleteCategory)
		r.Post("/upload-images", admin.UploadImages)
		r.Post("/regenerate-images", admin.RegenerateImages)
		r.Get("/catalog", public.Catalog)
		r.Get("/local-overrides", public.LocalOverrides)
		r.Put("/local-overrides", public.SaveLocalOverrides)
	})

	return &testEnv{
		root:      root,
		publicDir: publicDir,
		admin:     admin,
		public:    public,
		overrides: overrides,
		data:      data,
		library:   library,
		router:    r,
	}
}

// do sends a request through the test router.
func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// doJSON sends v encoded as JSON.
func (e *testEnv) doJSON(t *testing.T, method, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return e.do(t, method, target, bytes.NewReader(body), "application/json")
}

// upload is one file part of a multipart request.
type upload struct {
	name string
	data []byte
}

// doMultipart sends fields and files (under fileField) as multipart/form-data.
func (e *testEnv) doMultipart(t *testing.T, method, target string, fields map[string]string, fileField string, files []upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(fileField, f.name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(f.data)
	}
	mw.Close()
	return e.do(t, method, target, &body, mw.FormDataContentType())
}

// addInventoryImage writes a PNG into an inventory folder.
func (e *testEnv) addInventoryImage(t *testing.T, rel string) {
	t.Helper()
	p := filepath.Join(e.library.ImagesDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
}

// pngBytes returns a tiny valid PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// decode unmarshals the response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

// expectStatus fails the test when the response status differs.
func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}

// errorOf returns the "error" field of a JSON error response.
func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rr, &body)
	return body.Error
}

// tempFiles lists what is left in the upload holding area.
func (e *testEnv) tempFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.library.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// sitePathExists reports whether a "/images/..." path exists on disk.
func (e *testEnv) sitePathExists(t *testing.T, sitePath string) bool {
	t.Helper()
	abs, err := e.library.Resolve(sitePath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = os.Stat(abs)
	return err == nil
}

// writeTo replaces the content of a file.
func writeTo(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
