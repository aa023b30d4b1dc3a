package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/gofetch/logger"
)

// FileSystem abstracts file lookups for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// RealFileSystem implements FileSystem on the OS.
type RealFileSystem struct{}

// Exists reports whether path exists.
func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// UserConfigDir returns the per-user config directory.
func (RealFileSystem) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds config and env files for an application.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles returns explicit paths when given, otherwise the first
// existing candidate in the search paths.
func (r *Resolver) ResolveFiles(appName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(r.configCandidates(appName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first([]string{
			fmt.Sprintf(".env.%s", appName),
			".env",
			"./config/.env",
		})
	}
	return resolved
}

func (r *Resolver) configCandidates(appName string) []string {
	candidates := []string{
		fmt.Sprintf("./%s.yml", appName),
		fmt.Sprintf("./%s.yaml", appName),
		"./config.yml",
		"./config/config.yml",
		fmt.Sprintf("./cmd/%s/config.yml", appName),
	}
	if dir, err := r.FileSystem.UserConfigDir(); err == nil && dir != "" {
		candidates = append(candidates, filepath.Join(dir, appName, "config.yml"))
	}
	return candidates
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// EnvPrefix selects the environment variables that override file values.
	// Defaults to the upper-cased app name.
	EnvPrefix string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// LoadConfig loads configuration for appName into cfg, which must be a pointer
// to a struct with mapstructure tags. A missing config file is not an error;
// an unreadable one is.
func LoadConfig(appName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{EnvPrefix: envPrefix(appName)}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(appName, lc)
	log := logger.Get("config")
	v := viper.New()

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
		log.Debug("config file loaded", logger.Fields("path", files.ConfigFile))
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields("path", files.EnvFile, logger.FieldError, err.Error()))
		}
	}
	bindPrefixedEnv(v, lc.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", appName, err)
	}
	return nil
}

func envPrefix(appName string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(appName))
}

// bindPrefixedEnv sets every PREFIX_* variable under each nested key it could
// name, since underscores are ambiguous between nesting and snake_case keys.
func bindPrefixedEnv(v *viper.Viper, prefix string, environ []string) {
	if prefix == "" {
		return
	}
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix+"_") {
			continue
		}
		for _, variant := range envKeyVariants(strings.TrimPrefix(key, prefix+"_")) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants expands an env key into the dotted keys it may address:
//
//	HTTP_BASE_URL -> http_base_url, http.base.url, http.base_url, http_base.url
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants,
			strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"),
			strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."),
		)
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
