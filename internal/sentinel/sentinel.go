// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sentinel locates and rewrites a machine-managed region inside an
// otherwise hand-edited text file. The region is delimited by two literal
// marker strings; everything outside the markers is preserved byte for byte.
package sentinel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMarkersNotFound is returned when either marker is missing, or when the
// end marker precedes the start marker.
var ErrMarkersNotFound = errors.New("sentinel markers not found")

// Markers is a pair of literal delimiters.
type Markers struct {
	Start string
	End   string
}

// Region is a located span inside a host text. Inner is the text strictly
// between the markers.
type Region struct {
	text    string
	markers Markers
	start   int // index of the first byte after the start marker
	end     int // index of the first byte of the end marker
}

// Locate finds the first start marker and the first end marker after it.
func Locate(text string, m Markers) (Region, error) {
	if m.Start == "" || m.End == "" {
		return Region{}, fmt.Errorf("locate: empty marker: %w", ErrMarkersNotFound)
	}
	i := strings.Index(text, m.Start)
	if i < 0 {
		return Region{}, fmt.Errorf("locate %q: %w", m.Start, ErrMarkersNotFound)
	}
	start := i + len(m.Start)
	j := strings.Index(text[start:], m.End)
	if j < 0 {
		return Region{}, fmt.Errorf("locate %q: %w", m.End, ErrMarkersNotFound)
	}
	return Region{text: text, markers: m, start: start, end: start + j}, nil
}

// Inner returns the raw text between the markers.
func (r Region) Inner() string {
	return r.text[r.start:r.end]
}

// Before returns the host text up to and including the start marker.
func (r Region) Before() string {
	return r.text[:r.start]
}

// After returns the host text from the end marker (inclusive) to the end.
func (r Region) After() string {
	return r.text[r.end:]
}

// Replace returns the host text with the region body replaced by inner,
// framed by a newline on each side.
func (r Region) Replace(inner string) string {
	var b strings.Builder
	b.Grow(len(r.text) - (r.end - r.start) + len(inner) + 2)
	b.WriteString(r.Before())
	b.WriteByte('\n')
	b.WriteString(inner)
	b.WriteByte('\n')
	b.WriteString(r.After())
	return b.String()
}

// Decode locates the region in text and decodes its trimmed body with fn.
func Decode[T any](text string, m Markers, fn func(body string) (T, error)) (T, Region, error) {
	var zero T
	r, err := Locate(text, m)
	if err != nil {
		return zero, Region{}, err
	}
	v, err := fn(strings.TrimSpace(r.Inner()))
	if err != nil {
		return zero, Region{}, fmt.Errorf("decode sentinel region: %w", err)
	}
	return v, r, nil
}

// Encode serializes v with fn and splices the result into the region.
func Encode[T any](r Region, v T, fn func(T) (string, error)) (string, error) {
	body, err := fn(v)
	if err != nil {
		return "", fmt.Errorf("encode sentinel region: %w", err)
	}
	return r.Replace(body), nil
}
