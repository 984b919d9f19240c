package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the updater settings: where the registry lives and where
// local state is kept.
type Config struct {
	// RegistryURL is the base URL of the build registry API.
	RegistryURL string `yaml:"registry_url"`
	// Project is the registry project whose builds are tracked.
	Project string `yaml:"project"`
	// VersionFile is the path to the JSON file holding the target Minecraft version.
	VersionFile string `yaml:"version_file"`
	// MarkerFile is the path to the text file holding the last installed build.
	MarkerFile string `yaml:"marker_file"`
	// ArtifactFile is the path the downloaded server jar is written to.
	ArtifactFile string `yaml:"artifact_file"`
	// LockFile guards against two updaters touching the same files.
	LockFile string `yaml:"lock_file"`
	// Timeout bounds each registry listing request.
	Timeout time.Duration `yaml:"timeout"`
	// DownloadTimeout bounds the artifact download.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// MarkerComparison selects how the marker is compared: "string" or "numeric".
	MarkerComparison string `yaml:"marker_comparison"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for updater settings.
	DefaultConfigFilename = "paper-updater-settings.yaml"

	// DefaultRegistryURL is the PaperMC v2 API.
	DefaultRegistryURL = "https://api.papermc.io/v2"

	// DefaultProject is the registry project tracked by default.
	DefaultProject = "paper"

	// DefaultVersionFilename holds the target Minecraft version.
	DefaultVersionFilename = "config.json"

	// DefaultMarkerFilename holds the last installed build number.
	DefaultMarkerFilename = "build.txt"

	// DefaultArtifactFilename is the installed server jar.
	DefaultArtifactFilename = "paper.jar"

	// DefaultLockFilename marks a running updater.
	DefaultLockFilename = "paper-updater.lock"

	// DefaultTimeout is the default duration for registry requests.
	DefaultTimeout = 5 * time.Second

	// DefaultDownloadTimeout is the default duration for the jar download.
	DefaultDownloadTimeout = 5 * time.Minute

	// ComparisonString compares the raw marker text with the build number.
	ComparisonString = "string"

	// ComparisonNumeric parses the marker as an integer before comparing.
	ComparisonNumeric = "numeric"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownComparison is returned for an unsupported marker comparison mode.
	errUnknownComparison = errors.New("unknown marker comparison")
	// errProjectRequired is returned when the project name is blank.
	errProjectRequired = errors.New("project must not be blank")
)

// Default returns settings with every field set to its default.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default settings when the file does not exist.
// The boolean reports whether the file was found.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}

	return nil, false, err
}

// Save writes Settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings for formatting errors.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.RegistryURL == "" {
		settings.RegistryURL = DefaultRegistryURL
	}

	if _, err := url.ParseRequestURI(settings.RegistryURL); err != nil {
		return fmt.Errorf("invalid registry URL: %w", err)
	}

	if settings.Project == "" {
		settings.Project = DefaultProject
	}

	if strings.TrimSpace(settings.Project) == "" {
		return errProjectRequired
	}

	if settings.VersionFile == "" {
		settings.VersionFile = DefaultVersionFilename
	}

	if settings.MarkerFile == "" {
		settings.MarkerFile = DefaultMarkerFilename
	}

	if settings.ArtifactFile == "" {
		settings.ArtifactFile = DefaultArtifactFilename
	}

	if settings.LockFile == "" {
		settings.LockFile = DefaultLockFilename
	}

	// Set default timeouts if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.DownloadTimeout <= 0 {
		settings.DownloadTimeout = DefaultDownloadTimeout
	}

	switch settings.MarkerComparison {
	case "":
		settings.MarkerComparison = ComparisonString
	case ComparisonString, ComparisonNumeric:
	default:
		return fmt.Errorf("%w: %q", errUnknownComparison, settings.MarkerComparison)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	return nil
}
