package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// CargoManifest is the Cargo.toml of a generated crate.
type CargoManifest struct {
	Package      CargoPackage      `toml:"package"`
	Dependencies map[string]string `toml:"dependencies"`
}

type CargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// NewCargoManifest returns a dependency-free manifest for a generated binary.
func NewCargoManifest(name, version string) CargoManifest {
	if version == "" {
		version = defaultPackageVersion
	}
	return CargoManifest{
		Package:      CargoPackage{Name: name, Version: version, Edition: "2021"},
		Dependencies: map[string]string{},
	}
}

// Encode renders the manifest as TOML.
func (m CargoManifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode Cargo.toml: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidPackageName follows Cargo's rules for a package name: ASCII letters,
// digits, '-' and '_', not starting with a digit.
func ValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// PackageName derives a Cargo package name from a source file stem:
// lower-cased, other characters folded to '-', "program" when nothing
// usable is left.
func PackageName(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	var sb strings.Builder
	for _, r := range strings.ToLower(stem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('-')
		}
	}
	name := strings.Trim(sb.String(), "-")
	if name == "" {
		return "program"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "cob-" + name
	}
	return name
}
