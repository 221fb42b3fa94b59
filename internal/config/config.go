// Package config provides configuration loading and validation for the page server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the server and upstream configuration. Values come from the
// environment, optionally overlaid by a JSON file, then filled from Defaults.
type Config struct {
	// Upstream repository holding the mapping, config and achievements documents
	RawBase         string `json:"raw_base,omitempty" validate:"required,url"`
	RepoOwner       string `json:"repo_owner,omitempty" validate:"required"`
	RepoName        string `json:"repo_name,omitempty" validate:"required"`
	Branch          string `json:"branch,omitempty" validate:"required"`
	MappingFile     string `json:"mapping_file,omitempty" validate:"required"`
	AchievementsDir string `json:"achievements_dir,omitempty" validate:"required"`
	AchievementsExt string `json:"achievements_ext,omitempty" validate:"required,oneof=.md .yml .yaml"`

	// GitHub user API
	GitHubAPIBase string `json:"github_api_base,omitempty" validate:"required,url"`
	GitHubToken   string `json:"-"` // Optional; raises the API rate limit

	// Domains whose subdomains are profile pages
	ProductionDomain string `json:"production_domain,omitempty" validate:"required,fqdn"`
	TestDomain       string `json:"test_domain,omitempty" validate:"omitempty,fqdn"`

	// Listeners
	Port        int    `json:"port,omitempty" validate:"min=1,max=65535"`
	HTTPSPort   int    `json:"https_port,omitempty" validate:"min=1,max=65535,nefield=Port"`
	TLSCertFile string `json:"tls_cert_file,omitempty" validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `json:"tls_key_file,omitempty" validate:"required_with=TLSCertFile"`

	// Timing
	MappingCacheTTL Duration `json:"mapping_cache_ttl,omitempty" validate:"gt=0"`
	FetchTimeout    Duration `json:"fetch_timeout,omitempty" validate:"gt=0"`

	// Page assets
	LogoURL      string `json:"logo_url,omitempty" validate:"required,url"`
	QRServiceURL string `json:"qr_service_url,omitempty" validate:"required,url"`

	Verbose bool `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads "10s" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Defaults returns the production configuration.
func Defaults() Config {
	return Config{
		RawBase:          "https://raw.githubusercontent.com",
		RepoOwner:        "mofa-org",
		RepoName:         "mofa-developer-page",
		Branch:           "main",
		MappingFile:      "developers.md",
		AchievementsDir:  "achievements",
		AchievementsExt:  ".md",
		GitHubAPIBase:    "https://api.github.com",
		ProductionDomain: "mofa.ai",
		TestDomain:       "mofa-test.workers.dev",
		Port:             8080,
		HTTPSPort:        8443,
		MappingCacheTTL:  Duration(10 * time.Second),
		FetchTimeout:     Duration(5 * time.Second),
		LogoURL:          "https://mofa.ai/mofa-logo.png",
		QRServiceURL:     "https://api.qrserver.com/v1/create-qr-code/",
	}
}

// Load reads configuration from the environment, overlays the JSON file at
// path when path is non-empty, fills the remaining fields from Defaults and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := FromEnv()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv reads every configured environment variable. Unset variables leave
// their field at the zero value.
func FromEnv() Config {
	return Config{
		RawBase:          getEnvString("RAW_BASE_URL", ""),
		RepoOwner:        getEnvString("REPO_OWNER", ""),
		RepoName:         getEnvString("REPO_NAME", ""),
		Branch:           getEnvString("REPO_BRANCH", ""),
		MappingFile:      getEnvString("MAPPING_FILE", ""),
		AchievementsDir:  getEnvString("ACHIEVEMENTS_DIR", ""),
		AchievementsExt:  getEnvString("ACHIEVEMENTS_EXT", ""),
		GitHubAPIBase:    getEnvString("GITHUB_API_BASE", ""),
		GitHubToken:      getEnvString("GITHUB_TOKEN", ""),
		ProductionDomain: getEnvString("PRODUCTION_DOMAIN", ""),
		TestDomain:       getEnvString("TEST_DOMAIN", ""),
		Port:             getEnvInt("PORT", 0),
		HTTPSPort:        getEnvInt("HTTPS_PORT", 0),
		TLSCertFile:      getEnvString("SSL_CERT", ""),
		TLSKeyFile:       getEnvString("SSL_KEY", ""),
		MappingCacheTTL:  Duration(getEnvDuration("MAPPING_CACHE_TTL", 0)),
		FetchTimeout:     Duration(getEnvDuration("FETCH_TIMEOUT", 0)),
		LogoURL:          getEnvString("LOGO_URL", ""),
		QRServiceURL:     getEnvString("QR_SERVICE_URL", ""),
		Verbose:          getEnvBool("VERBOSE", false),
	}
}

// LoadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ValidationError{Cause: err}
	}
	if c.TestDomain != "" && strings.EqualFold(c.TestDomain, c.ProductionDomain) {
		return &ValidationError{Message: "'test_domain' must differ from 'production_domain'"}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.RawBase, defaults.RawBase)
	mergeString(&result.RepoOwner, defaults.RepoOwner)
	mergeString(&result.RepoName, defaults.RepoName)
	mergeString(&result.Branch, defaults.Branch)
	mergeString(&result.MappingFile, defaults.MappingFile)
	mergeString(&result.AchievementsDir, defaults.AchievementsDir)
	mergeString(&result.AchievementsExt, defaults.AchievementsExt)
	mergeString(&result.GitHubAPIBase, defaults.GitHubAPIBase)
	mergeString(&result.GitHubToken, defaults.GitHubToken)
	mergeString(&result.ProductionDomain, defaults.ProductionDomain)
	mergeString(&result.TestDomain, defaults.TestDomain)
	mergeString(&result.TLSCertFile, defaults.TLSCertFile)
	mergeString(&result.TLSKeyFile, defaults.TLSKeyFile)
	mergeString(&result.LogoURL, defaults.LogoURL)
	mergeString(&result.QRServiceURL, defaults.QRServiceURL)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.HTTPSPort == 0 {
		result.HTTPSPort = defaults.HTTPSPort
	}
	if result.MappingCacheTTL == 0 {
		result.MappingCacheTTL = defaults.MappingCacheTTL
	}
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}

	// Either source turning verbose on wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

func mergeString(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

// Domains returns the configured domain suffixes, production first.
func (c *Config) Domains() []string {
	domains := []string{c.ProductionDomain}
	if c.TestDomain != "" {
		domains = append(domains, c.TestDomain)
	}
	return domains
}

// TLSEnabled reports whether both TLS files are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func (c *Config) repoFileURL(parts ...string) string {
	segments := append([]string{strings.TrimRight(c.RawBase, "/"), c.RepoOwner, c.RepoName, c.Branch}, parts...)
	return strings.Join(segments, "/")
}

// MappingURL is the location of the username to config URL mapping document.
func (c *Config) MappingURL() string {
	return c.repoFileURL(c.MappingFile)
}

// AchievementsURL is the location of a user's achievements document.
func (c *Config) AchievementsURL(username string) string {
	return c.repoFileURL(c.AchievementsDir, url.PathEscape(username)+"-achievements"+c.AchievementsExt)
}

// IconURL is the location of a named SVG icon in the asset repository.
func (c *Config) IconURL(name string) string {
	return c.repoFileURL("resources", "icons", url.PathEscape(name)+".svg")
}

// GitHubUserURL is the GitHub API endpoint for a user.
func (c *Config) GitHubUserURL(username string) string {
	return strings.TrimRight(c.GitHubAPIBase, "/") + "/users/" + url.PathEscape(username)
}

// RegistryURL is the repository page where developers register their mapping.
func (c *Config) RegistryURL() string {
	return "https://github.com/" + url.PathEscape(c.RepoOwner) + "/" + url.PathEscape(c.RepoName)
}
