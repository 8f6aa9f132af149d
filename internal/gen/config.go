package gen

import (
	"fmt"
	"go/token"
	"os"

	"gopkg.in/yaml.v3"

	"errchain/pkg/errchain"
)

// DefaultImport is the import path of the errchain package used by
// generated code.
const DefaultImport = "errchain/pkg/errchain"

// DefaultOutput is the file written when the config names none.
const DefaultOutput = "errchain_gen.go"

// Config describes the error types to generate for one package.
type Config struct {
	Package string     `yaml:"package"`
	Output  string     `yaml:"output,omitempty"`
	Import  string     `yaml:"import,omitempty"`
	Types   []TypeSpec `yaml:"types"`
}

// TypeSpec binds one kind type to a generated error type name.
type TypeSpec struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name,omitempty"`
}

// osReadFile is a test seam for os.ReadFile.
var osReadFile = os.ReadFile

// LoadConfig reads and validates a generator config file.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is supplied by the user running the generator.
	data, err := osReadFile(path)
	if err != nil {
		return nil, errchain.Context(err, Kind{Op: OpReadConfig, Detail: path})
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errchain.Context(err, Kind{Op: OpReadConfig, Detail: path})
	}
	return cfg, nil
}

// ParseConfig decodes a YAML config, applies defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errchain.Context(err, Kind{Op: OpParseConfig})
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Import == "" {
		c.Import = DefaultImport
	}
	if len(c.Types) == 1 && c.Types[0].Name == "" {
		c.Types[0].Name = "Error"
	}
}

// Validate reports the first problem found in the config.
func (c *Config) Validate() error {
	if c.Package == "" {
		return errchain.From(Kind{Op: OpValidate, Detail: "package is required"})
	}
	if !token.IsIdentifier(c.Package) {
		return errchain.From(Kind{Op: OpValidate, Detail: fmt.Sprintf("package %q is not a valid identifier", c.Package)})
	}
	if len(c.Types) == 0 {
		return errchain.From(Kind{Op: OpValidate, Detail: "at least one type is required"})
	}
	seen := make(map[string]struct{}, len(c.Types))
	for i, ts := range c.Types {
		if !token.IsIdentifier(ts.Kind) {
			return errchain.From(Kind{Op: OpValidate, Detail: fmt.Sprintf("types[%d]: kind %q is not a valid identifier", i, ts.Kind)})
		}
		if ts.Name == "" {
			return errchain.From(Kind{Op: OpValidate, Detail: fmt.Sprintf("types[%d]: name is required when generating more than one type", i)})
		}
		if !token.IsIdentifier(ts.Name) {
			return errchain.From(Kind{Op: OpValidate, Detail: fmt.Sprintf("types[%d]: name %q is not a valid identifier", i, ts.Name)})
		}
		if _, dup := seen[ts.Name]; dup {
			return errchain.From(Kind{Op: OpValidate, Detail: fmt.Sprintf("types[%d]: duplicate name %q", i, ts.Name)})
		}
		seen[ts.Name] = struct{}{}
	}
	return nil
}
