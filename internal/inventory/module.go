// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"dianabeauty/internal/fsutil"
)

const moduleHeader = `// Fichier généré automatiquement par dianabeauty --regenerate
// Ne pas modifier manuellement - régénérer avec: dianabeauty --regenerate

export const imagePaths = {
`

const moduleFooter = `};

export const getImageUrl = (relativePath: string): string => {
  // Les images sont servies depuis le dossier public (accessible via /images/...)
  return '/' + relativePath.replace(/\\/g, '/');
};
`

// RenderModule renders the generated image-path module for inv. Folders
// missing from inv are written as empty lists.
func RenderModule(inv Inventory) (string, error) {
	var b strings.Builder
	b.WriteString(moduleHeader)
	for _, f := range Folders {
		paths := inv[f.Name]
		if paths == nil {
			paths = []string{}
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(paths); err != nil {
			return "", fmt.Errorf("encode %s: %w", f.Name, err)
		}
		fmt.Fprintf(&b, "  '%s': %s,\n", f.Name, strings.TrimRight(buf.String(), "\n"))
	}
	b.WriteString(moduleFooter)
	return b.String(), nil
}

// Counts reports the outcome of a regeneration.
type Counts struct {
	PerFolder map[string]int `json:"perFolder"`
	Total     int            `json:"total"`
}

// Regenerate scans every folder and rewrites the module at outFile. When
// any folder fails to scan the module is left untouched and the joined
// scan error is returned together with the counts of the folders that
// succeeded.
func Regenerate(s *Scanner, outFile string) (Counts, error) {
	inv, scanErr := s.ScanAll()
	perFolder, total := inv.Count()
	counts := Counts{PerFolder: perFolder, Total: total}
	if scanErr != nil {
		return counts, fmt.Errorf("regenerate image paths: %w", scanErr)
	}

	text, err := RenderModule(inv)
	if err != nil {
		return counts, err
	}
	if err := fsutil.EnsureDir(filepath.Dir(outFile)); err != nil {
		return counts, err
	}
	if err := fsutil.WriteFileAtomic(outFile, []byte(text), 0o644); err != nil {
		return counts, fmt.Errorf("write image paths: %w", err)
	}

	slog.Info("image paths regenerated", "path", outFile, "total", total)
	return counts, nil
}
