package diagfmt

import (
	"fmt"

	"cobrust/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// located reports whether sp can be resolved against fs.
func located(sp source.Span, fs *source.FileSet) bool {
	return fs != nil && sp.HasLocation() && fs.Has(sp.File)
}

// position renders "path:line:col" or "" without a location.
func position(sp source.Span, fs *source.FileSet, mode PathMode) string {
	if !located(sp, fs) {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(sp.File), fs, mode), start.Line, start.Col)
}
