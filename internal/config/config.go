package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults applied when no other source sets a value.
const (
	DefaultOutputDir = "prompts"
	DefaultMaxLength = 4000
)

// Config holds the CLI configuration values.
type Config struct {
	Author         string   `yaml:"author,omitempty"`
	GitHubUser     string   `yaml:"github-user,omitempty"`
	GitHubURL      string   `yaml:"github-url,omitempty"`
	OutputDir      string   `yaml:"output-dir,omitempty"`
	MaxLength      int      `yaml:"max-length,omitempty"`
	CodeExtensions []string `yaml:"code-extensions,omitempty"`
}

// ValidKeys lists the allowed config keys.
var ValidKeys = []string{"author", "github-user", "github-url", "output-dir", "max-length", "code-extensions"}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "promptkit"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file from ~/.config/promptkit/config.yaml.
// Returns an empty Config if the file doesn't exist.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to ~/.config/promptkit/config.yaml.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ValueError reports an unknown key or a value that fails validation.
type ValueError struct {
	Key string
	msg string
}

func (e *ValueError) Error() string { return e.msg }

// Set updates a single key in the config. Unknown keys and invalid values
// return a *ValueError; anything else is a filesystem failure.
func Set(key, value string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	switch key {
	case "author":
		cfg.Author = value
	case "github-user":
		cfg.GitHubUser = value
	case "github-url":
		cfg.GitHubURL = value
	case "output-dir":
		cfg.OutputDir = value
	case "max-length":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return &ValueError{Key: key, msg: fmt.Sprintf("max-length must be a positive integer, got %q", value)}
		}
		cfg.MaxLength = n
	case "code-extensions":
		cfg.CodeExtensions = splitList(value)
	default:
		return &ValueError{Key: key, msg: fmt.Sprintf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys, ", "))}
	}
	return Save(cfg)
}

// List returns key-value pairs for display.
func List() (map[string]string, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	maxLength := ""
	if cfg.MaxLength > 0 {
		maxLength = strconv.Itoa(cfg.MaxLength)
	}
	m := map[string]string{
		"author":          cfg.Author,
		"github-user":     cfg.GitHubUser,
		"github-url":      cfg.GitHubURL,
		"output-dir":      cfg.OutputDir,
		"max-length":      maxLength,
		"code-extensions": strings.Join(cfg.CodeExtensions, ","),
	}
	return m, nil
}

// Reset removes the config file.
func Reset() error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing config: %w", err)
	}
	return nil
}

// Resolved holds the final settings after merging all sources.
type Resolved struct {
	Author         string
	GitHubUser     string
	GitHubURL      string
	OutputDir      string
	MaxLength      int
	CodeExtensions []string
}

// RegisterFlags adds one flag per config key to fs. Flag defaults are
// empty so an unset flag never masks env or file values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("author", "", "author name stamped into prompts")
	fs.String("github-user", "", "GitHub username")
	fs.String("github-url", "", "GitHub profile or repository URL")
	fs.StringP("output-dir", "o", "", "directory prompts are written to (default \""+DefaultOutputDir+"\")")
	fs.Int("max-length", 0, "maximum length of each extracted fact, in characters")
	fs.StringSlice("code-extensions", nil, "file suffixes counted as source code")
}

// Resolve merges settings in priority order:
// CLI flags > env vars (PROMPTKIT_*) > config file > defaults.
// flags may be nil.
func Resolve(flags *pflag.FlagSet) (*Resolved, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("author", cfg.Author)
	v.SetDefault("github-user", cfg.GitHubUser)
	v.SetDefault("github-url", cfg.GitHubURL)
	v.SetDefault("output-dir", firstNonEmpty(cfg.OutputDir, DefaultOutputDir))
	v.SetDefault("max-length", DefaultMaxLength)
	if cfg.MaxLength > 0 {
		v.SetDefault("max-length", cfg.MaxLength)
	}
	v.SetDefault("code-extensions", cfg.CodeExtensions)

	for _, key := range ValidKeys {
		env := "PROMPTKIT_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", key, err)
			}
		}
	}

	r := &Resolved{
		Author:         strings.TrimSpace(v.GetString("author")),
		GitHubUser:     strings.TrimSpace(v.GetString("github-user")),
		GitHubURL:      strings.TrimSpace(v.GetString("github-url")),
		OutputDir:      firstNonEmpty(strings.TrimSpace(v.GetString("output-dir")), DefaultOutputDir),
		MaxLength:      v.GetInt("max-length"),
		CodeExtensions: splitList(strings.Join(v.GetStringSlice("code-extensions"), ",")),
	}
	if r.MaxLength <= 0 {
		return nil, fmt.Errorf("max-length must be a positive integer, got %d", r.MaxLength)
	}
	return r, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
