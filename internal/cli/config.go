package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/obqo/decycle/pkg/configuration"
	derrors "github.com/obqo/decycle/pkg/errors"
)

// defaultConfigFile is looked up in the working directory when no
// --config flag is given.
const defaultConfigFile = ".decycle.toml"

// fileConfig mirrors the TOML configuration file:
//
//	classpath = ["build/classes/java/main"]
//	including = ["com.example.**"]
//
//	[[ignoring]]
//	from = "com.example.legacy.**"
//	to = "com.example.db.**"
//
//	[[slicings]]
//	name = "module"
//	patterns = ["com.example.(*).**"]
//
//	[[constraints]]
//	type = "cycle-free"
//	slicing = "module"
//
//	[[constraints]]
//	type = "layering"
//	slicing = "module"
//	[[constraints.layers]]
//	names = ["app"]
//	[[constraints.layers]]
//	strict = true
//	names = ["core", "util"]
type fileConfig struct {
	Classpath      []string           `toml:"classpath"`
	Including      []string           `toml:"including"`
	Excluding      []string           `toml:"excluding"`
	IgnoreFailures bool               `toml:"ignore_failures"`
	Ignoring       []ignoreConfig     `toml:"ignoring"`
	Slicings       []slicingConfig    `toml:"slicings"`
	Constraints    []constraintConfig `toml:"constraints"`
}

type ignoreConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

type slicingConfig struct {
	Name     string   `toml:"name"`
	Patterns []string `toml:"patterns"`
}

type constraintConfig struct {
	Type    string        `toml:"type"`
	Slicing string        `toml:"slicing"`
	Layers  []layerConfig `toml:"layers"`
}

type layerConfig struct {
	Strict bool     `toml:"strict"`
	Names  []string `toml:"names"`
}

// loadFileConfig reads the configuration file. With an empty path the
// default file is used when present; a missing default is not an error.
func loadFileConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "config file %s", path)
		}
		return &fileConfig{}, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	return &fc, nil
}

// toConfig converts the file configuration into the core configuration.
func (fc *fileConfig) toConfig(logger *log.Logger) (configuration.Config, error) {
	specs := make([]configuration.ConstraintSpec, 0, len(fc.Constraints))
	for _, cc := range fc.Constraints {
		spec := configuration.ConstraintSpec{Type: cc.Type, Slicing: cc.Slicing}
		for _, l := range cc.Layers {
			spec.Layers = append(spec.Layers, configuration.LayerSpec{Strict: l.Strict, Names: l.Names})
		}
		specs = append(specs, spec)
	}
	constraints, err := configuration.BuildConstraints(specs)
	if err != nil {
		return configuration.Config{}, err
	}

	cfg := configuration.Config{
		Classpath:   fc.Classpath,
		Including:   fc.Including,
		Excluding:   fc.Excluding,
		Constraints: constraints,
		Logger:      logger,
	}
	for _, ig := range fc.Ignoring {
		cfg.Ignoring = append(cfg.Ignoring, configuration.IgnoreSpec{From: ig.From, To: ig.To})
	}
	for _, s := range fc.Slicings {
		cfg.Slicings = append(cfg.Slicings, configuration.SlicingSpec{Name: s.Name, Patterns: s.Patterns})
	}
	return cfg, nil
}
