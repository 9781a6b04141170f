// Package files pulls embedded tokens out of export and receipt
// filenames and enumerates input directories. Marketplace reports
// embed a storefront language code ("payments-DE_2023.csv"), receipt
// scans often embed the order number they belong to, which lets the
// matcher skip heuristic scoring entirely.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Two uppercase letters fenced by separators: "-DE_", "_fr.".
	languagePattern = regexp.MustCompile(`(?i)[-_]([A-Za-z]{2})[-_.]`)
	// Marketplace order numbers: 3-7-7 digit groups.
	hintPattern = regexp.MustCompile(`(\d{3}-\d{7}-\d{7})`)
	// Explicit account markers: "acc12345", "account-0123".
	accountPattern = regexp.MustCompile(`(?i)acc(?:ount)?[-_]?(\d{3,})`)
)

// LanguageCode extracts the storefront language token from a
// filename, uppercased, or "" when absent.
func LanguageCode(name string) string {
	if m := languagePattern.FindStringSubmatch(filepath.Base(name)); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// CorrelationHint extracts an embedded order-number token, or "".
func CorrelationHint(name string) string {
	if m := hintPattern.FindStringSubmatch(filepath.Base(name)); m != nil {
		return m[1]
	}
	return ""
}

// AccountNumber extracts an embedded account marker, or "".
func AccountNumber(name string) string {
	if m := accountPattern.FindStringSubmatch(filepath.Base(name)); m != nil {
		return m[1]
	}
	return ""
}

// WithExtension returns all files with the extension under path, in
// lexical walk order. A direct file path is accepted as-is when its
// extension matches, and rejected otherwise.
func WithExtension(path, ext string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("no such file or directory: %s", path)
	}

	if !info.IsDir() {
		if filepath.Ext(path) != ext {
			return nil, fmt.Errorf("invalid file type: %s", path)
		}
		return []string{path}, nil
	}

	var found []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ext {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	return found, nil
}
