package project

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vyPal/tlc/util"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Diagnostic policies.
const (
	PolicyBestEffort = "best-effort"
	PolicyFailFast   = "fail-fast"
)

// ConfigNames are the file names looked up in a project directory, in order.
var ConfigNames = []string{"tlconf.yaml", "tlconf.yml", "tlconf.toml"}

type TlConf struct {
	Name        string         `yaml:"name" toml:"name"`
	Description string         `yaml:"description" toml:"description"`
	Version     string         `yaml:"version" toml:"version"`
	Main        string         `yaml:"main" toml:"main"`
	SourceDir   string         `yaml:"source" toml:"source"`
	Author      string         `yaml:"author" toml:"author"`
	License     string         `yaml:"license" toml:"license"`
	Format      TlConfFormat   `yaml:"format" toml:"format"`
	Diagnostics TlConfDiagnose `yaml:"diagnostics" toml:"diagnostics"`
}

type TlConfFormat struct {
	Indent int `yaml:"indent" toml:"indent"`
}

type TlConfDiagnose struct {
	Policy  string `yaml:"policy" toml:"policy"`
	NoColor bool   `yaml:"noColor" toml:"noColor"`
}

func (c *TlConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new TL project"
	c.Version = "1.0.0"
	c.Main = "src/main.tl"
	c.SourceDir = "src"
	c.Author = "Anonymous"
	c.License = "MIT"
	c.Format.Indent = 4
	c.Diagnostics.Policy = PolicyBestEffort
}

// ApplyEnv overrides settings from TLC_INDENT, TLC_POLICY and TLC_NO_COLOR.
func (c *TlConf) ApplyEnv() {
	c.Format.Indent = env.Int("TLC_INDENT", c.Format.Indent)
	c.Diagnostics.Policy = env.Str("TLC_POLICY", c.Diagnostics.Policy)
	if env.Str("TLC_NO_COLOR") != "" {
		c.Diagnostics.NoColor = env.Bool("TLC_NO_COLOR")
	}
}

// Validate fills in defaults for unset fields and rejects unknown values.
func (c *TlConf) Validate() error {
	if c.Format.Indent == 0 {
		c.Format.Indent = 4
	}
	if c.Format.Indent < 0 || c.Format.Indent > 16 {
		return fmt.Errorf("format.indent must be between 1 and 16, got %d", c.Format.Indent)
	}

	switch c.Diagnostics.Policy {
	case "":
		c.Diagnostics.Policy = PolicyBestEffort
	case PolicyBestEffort, PolicyFailFast:
	default:
		return fmt.Errorf("diagnostics.policy must be %q or %q, got %q", PolicyBestEffort, PolicyFailFast, c.Diagnostics.Policy)
	}

	return nil
}

// FailFast reports whether any diagnostic should abort the command.
func (c *TlConf) FailFast() bool {
	return c.Diagnostics.Policy == PolicyFailFast
}

// Save writes the config to filepath, as TOML when the name ends in .toml
// and YAML otherwise. An existing file is only replaced if overwrite is set
// or the user agrees; saved reports whether the file was written.
func (c *TlConf) Save(filepath string, overwrite bool) (saved bool, err error) {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(filepath+" already exists. Overwrite?", false) {
			return false, nil
		}
	}

	var buf bytes.Buffer
	if strings.HasSuffix(filepath, ".toml") {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return false, err
		}
	} else {
		yml, err := yaml.Marshal(c)
		if err != nil {
			return false, err
		}
		buf.Write(yml)
	}

	if err := os.WriteFile(filepath, buf.Bytes(), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// LoadTlConf decodes one config file, picking the format from its extension.
func LoadTlConf(file string) (TlConf, error) {
	var conf TlConf

	data, err := os.ReadFile(file)
	if err != nil {
		return TlConf{}, err
	}

	switch filepath.Ext(file) {
	case ".toml":
		if _, err := toml.Decode(string(data), &conf); err != nil {
			return TlConf{}, fmt.Errorf("%s: %w", file, err)
		}
	default:
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return TlConf{}, fmt.Errorf("%s: %w", file, err)
		}
	}

	if err := conf.Validate(); err != nil {
		return TlConf{}, fmt.Errorf("%s: %w", file, err)
	}
	return conf, nil
}

// GetTlConf loads the first config file found in dir. The returned error
// satisfies os.IsNotExist when dir has none.
func GetTlConf(dir string) (TlConf, string, error) {
	for _, name := range ConfigNames {
		file := path.Join(dir, name)
		if _, err := os.Stat(file); err != nil {
			continue
		}
		conf, err := LoadTlConf(file)
		return conf, file, err
	}

	return TlConf{}, "", &os.PathError{Op: "open", Path: path.Join(dir, ConfigNames[0]), Err: os.ErrNotExist}
}
