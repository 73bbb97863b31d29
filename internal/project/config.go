package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

const (
	DefaultOutDir         = "out"
	DefaultFormatTool     = "cargo"
	DefaultFormatTimeout  = 30
	DefaultMaxNesting     = 64
	defaultPackageVersion = "0.1.0"
)

// Config mirrors cobrust.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Format  FormatConfig  `toml:"format"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type BuildConfig struct {
	OutDir     string `toml:"out_dir"`
	MaxNesting int    `toml:"max_nesting"`
}

type FormatConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig is what an absent or empty cobrust.toml means.
func DefaultConfig() Config {
	return Config{
		Package: PackageConfig{Version: defaultPackageVersion},
		Build:   BuildConfig{OutDir: DefaultOutDir, MaxNesting: DefaultMaxNesting},
		Format:  FormatConfig{Enabled: true, Tool: DefaultFormatTool, TimeoutSeconds: DefaultFormatTimeout},
	}
}

// LoadConfig decodes path over DefaultConfig. Unknown keys and invalid
// values are PRJ5001.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, invalidConfig(path, "failed to parse TOML: %v", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, invalidConfig(path, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("package", "name") && !ValidPackageName(cfg.Package.Name) {
		return Config{}, invalidConfig(path, "invalid [package].name %q", cfg.Package.Name)
	}
	if meta.IsDefined("build", "out_dir") && strings.TrimSpace(cfg.Build.OutDir) == "" {
		return Config{}, invalidConfig(path, "[build].out_dir must not be empty")
	}
	if cfg.Build.MaxNesting < 1 {
		return Config{}, invalidConfig(path, "[build].max_nesting must be positive, got %d", cfg.Build.MaxNesting)
	}
	if strings.TrimSpace(cfg.Format.Tool) == "" {
		return Config{}, invalidConfig(path, "[format].tool must not be empty")
	}
	if cfg.Format.TimeoutSeconds < 1 {
		return Config{}, invalidConfig(path, "[format].timeout_seconds must be positive, got %d", cfg.Format.TimeoutSeconds)
	}
	return cfg, nil
}

func invalidConfig(path, format string, args ...any) error {
	return diag.Errorf(diag.ProjInvalidConfig, source.NoSpan, "%s: %s", path, fmt.Sprintf(format, args...))
}

// Overrides carry command-line flags; zero values keep the config.
type Overrides struct {
	OutDir     string
	MaxNesting int
	NoFormat   bool
}

// Settings are the effective build settings for one source file.
type Settings struct {
	ConfigPath    string // empty without cobrust.toml
	PackageName   string
	Version       string
	OutDir        string // absolute
	MaxNesting    int
	Format        bool
	FormatTool    string
	FormatTimeout time.Duration
}

// Resolve discovers cobrust.toml next to sourcePath (or above it) and
// merges it with defaults and flags. A relative out_dir from the file is
// relative to the file's directory; one from flags is relative to cwd.
func Resolve(sourcePath string, ov Overrides) (Settings, error) {
	cfg := DefaultConfig()
	baseDir := "."
	configPath, ok, err := FindConfig(filepath.Dir(sourcePath))
	if err != nil {
		return Settings{}, diag.Errorf(diag.ProjInvalidConfig, source.NoSpan, "%v", err)
	}
	if ok {
		if cfg, err = LoadConfig(configPath); err != nil {
			return Settings{}, err
		}
		baseDir = filepath.Dir(configPath)
	}

	outDir := filepath.Join(baseDir, cfg.Build.OutDir)
	if filepath.IsAbs(cfg.Build.OutDir) {
		outDir = cfg.Build.OutDir
	}
	if ov.OutDir != "" {
		outDir = ov.OutDir
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return Settings{}, diag.Errorf(diag.ProjInvalidConfig, source.NoSpan, "cannot resolve output directory: %v", err)
	}

	name := cfg.Package.Name
	if name == "" {
		name = PackageName(sourcePath)
	}
	maxNesting := cfg.Build.MaxNesting
	if ov.MaxNesting > 0 {
		maxNesting = ov.MaxNesting
	}

	return Settings{
		ConfigPath:    configPath,
		PackageName:   name,
		Version:       cfg.Package.Version,
		OutDir:        outDir,
		MaxNesting:    maxNesting,
		Format:        cfg.Format.Enabled && !ov.NoFormat,
		FormatTool:    cfg.Format.Tool,
		FormatTimeout: time.Duration(cfg.Format.TimeoutSeconds) * time.Second,
	}, nil
}
