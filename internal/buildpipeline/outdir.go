package buildpipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

// checkOutDir refuses output directories whose recreation would destroy
// something that is not a build artefact.
func checkOutDir(outDir, sourcePath string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return unsafeOutDir(outDir, "cannot resolve path: %v", err)
	}
	if filepath.Dir(out) == out {
		return unsafeOutDir(out, "is a filesystem root")
	}
	if cwd, err := os.Getwd(); err == nil {
		if sameDir(out, cwd) {
			return unsafeOutDir(out, "is the working directory")
		}
		if within(realPath(out), realPath(cwd)) {
			return unsafeOutDir(out, "contains the working directory")
		}
	}
	src, err := filepath.Abs(sourcePath)
	if err != nil {
		return unsafeOutDir(out, "cannot resolve source path: %v", err)
	}
	if within(out, src) || within(realPath(out), realPath(src)) {
		return unsafeOutDir(out, "contains the source file %s", sourcePath)
	}
	return nil
}

func unsafeOutDir(dir, format string, args ...any) error {
	return diag.Errorf(diag.ProjUnsafeOutDir, source.NoSpan, "refusing to use %s as output directory: %s",
		dir, fmt.Sprintf(format, args...))
}

func sameDir(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ai, bi)
}

// realPath resolves symlinks where the path exists.
func realPath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

// within reports whether path lies inside dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

const (
	mainRelPath     = "src/main.rs"
	manifestRelPath = "Cargo.toml"
)

// writeCrate recreates outDir and writes both artefacts concurrently.
func writeCrate(outDir string, mainRS, manifest []byte) (mainPath, manifestPath string, err error) {
	mainPath = filepath.Join(outDir, filepath.FromSlash(mainRelPath))
	manifestPath = filepath.Join(outDir, manifestRelPath)

	if err := os.RemoveAll(outDir); err != nil {
		return "", "", writeFailed(outDir, err)
	}
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o750); err != nil {
		return "", "", writeFailed(outDir, err)
	}

	var g errgroup.Group
	g.Go(func() error { return writeArtifact(mainPath, mainRS) })
	g.Go(func() error { return writeArtifact(manifestPath, manifest) })
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return mainPath, manifestPath, nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return writeFailed(path, err)
	}
	return nil
}

func writeFailed(path string, err error) error {
	return diag.Errorf(diag.IOWriteFileError, source.NoSpan, "failed to write %s: %v", path, err)
}
