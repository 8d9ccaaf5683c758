// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dianabeauty/internal/fsutil"
	"dianabeauty/internal/models"
	"dianabeauty/internal/sentinel"
)

// ProductDataMarkers delimit the JSON blob inside the host source file.
var ProductDataMarkers = sentinel.Markers{
	Start: "/*PRODUCT_DATA*/",
	End:   "/*END_PRODUCT_DATA*/",
}

// ProductDataStore reads and writes the product data blob. Bytes outside
// the markers are never modified.
type ProductDataStore struct {
	path string
}

// NewProductDataStore returns a store backed by the host file at path.
func NewProductDataStore(path string) *ProductDataStore {
	return &ProductDataStore{path: path}
}

// Path returns the host file path.
func (s *ProductDataStore) Path() string {
	return s.path
}

// Read returns the decoded blob together with the located region, which
// Write needs to splice the new blob back in. Missing markers are fatal.
func (s *ProductDataStore) Read() (*models.ProductData, sentinel.Region, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, sentinel.Region{}, fmt.Errorf("read product data %s: %w", s.path, err)
	}
	data, region, err := sentinel.Decode(string(raw), ProductDataMarkers, DecodeProductData)
	if err != nil {
		return nil, sentinel.Region{}, fmt.Errorf("product data %s: %w: %w", s.path, ErrUnreadable, err)
	}
	return data, region, nil
}

// Load returns only the decoded blob.
func (s *ProductDataStore) Load() (*models.ProductData, error) {
	data, _, err := s.Read()
	return data, err
}

// Write re-serializes data and substitutes it between the markers of region.
func (s *ProductDataStore) Write(data *models.ProductData, region sentinel.Region) error {
	text, err := sentinel.Encode(region, data, EncodeProductData)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write product data: %w", err)
	}
	return nil
}

// Update runs one locked read-modify-write cycle. If fn returns an error
// nothing is written and the error is returned unchanged.
func (s *ProductDataStore) Update(fn func(d *models.ProductData) error) (*models.ProductData, error) {
	unlock := fsutil.LockPath(s.path)
	defer unlock()

	data, region, err := s.Read()
	if err != nil {
		return nil, err
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	data.Normalize()
	if err := s.Write(data, region); err != nil {
		return nil, err
	}
	return data, nil
}

// EnsureFile creates the host file with the default categories when it does
// not exist yet. An existing file is left alone.
func (s *ProductDataStore) EnsureFile() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat product data: %w", err)
	}

	data := &models.ProductData{Categories: models.DefaultCategories()}
	data.Normalize()
	body, err := EncodeProductData(data)
	if err != nil {
		return err
	}
	text := productDataPrologue + ProductDataMarkers.Start + body + ProductDataMarkers.End + productDataEpilogue
	if err := fsutil.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(s.path, []byte(text), 0o644)
}

// DecodeProductData parses a blob body. An empty body decodes as an empty
// blob; a missing or non-array field decodes as an empty sequence and
// mistyped elements are dropped.
func DecodeProductData(body string) (*models.ProductData, error) {
	data := &models.ProductData{}
	if strings.TrimSpace(body) != "" {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &fields); err != nil {
			return nil, fmt.Errorf("decode product data: %w", err)
		}
		data.Categories = decodeArray[models.CategoryConfig]("categories", fields["categories"])
		data.CustomProducts = decodeArray[models.CustomProduct]("customProducts", fields["customProducts"])
		data.HiddenProductIDs = decodeArray[string]("hiddenProductIds", fields["hiddenProductIds"])
	}
	data.Normalize()
	return data, nil
}

// decodeArray decodes the elements of a JSON array field one by one. A
// field that is not an array reads as empty, and elements of the wrong
// shape are skipped with a warning.
func decodeArray[T any](field string, raw json.RawMessage) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []T{}
	}
	out := make([]T, 0, len(elems))
	skipped := 0
	for _, elem := range elems {
		var v T
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) || json.Unmarshal(elem, &v) != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed product data elements", "field", field, "count", skipped)
	}
	return out
}

// EncodeProductData renders data as two-space indented JSON without HTML
// escaping.
func EncodeProductData(data *models.ProductData) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("encode product data: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

const productDataPrologue = `import type { Product } from '@/contexts/CartContext';

export interface CategoryConfig {
  id: string;
  label: string;
  description?: string;
  isDefault?: boolean;
}

export interface CustomProductRecord {
  id: string;
  name: string;
  price: number;
  description: string;
  category: string;
  coverImage: string;
  gallery: string[];
  createdAt: string;
  updatedAt: string;
}

export interface ProductDataFile {
  categories: CategoryConfig[];
  customProducts: CustomProductRecord[];
  hiddenProductIds: string[];
}

export const LOCAL_OVERRIDES_STORAGE_KEY = 'diana-product-overrides';

export const productData: ProductDataFile = `

const productDataEpilogue = `;

export const getCustomProducts = (): Product[] =>
  productData.customProducts.map(record => ({
    id: record.id,
    name: record.name,
    price: record.price,
    image: record.coverImage,
    category: record.category,
    description: record.description,
    gallery: record.gallery,
    isCustom: true,
  }));

export const getHiddenProductIds = (): string[] => productData.hiddenProductIds;

export const getCategoriesConfig = (): CategoryConfig[] => productData.categories;
`
