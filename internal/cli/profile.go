package cli

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// Output formats for reports.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Profile is a reusable set of cleaning choices, usually kept in a YAML file:
//
//	numeric: mean
//	categorical: mode
//	format: table
//	fill:
//	  country: Unknown
//	  release_year: 2010
type Profile struct {
	Numeric     string            `koanf:"numeric"`
	Categorical string            `koanf:"categorical"`
	Format      string            `koanf:"format"`
	Fill        map[string]string `koanf:"fill"`
}

// profileFlags are the flags that override profile keys of the same name.
var profileFlags = map[string]bool{
	"numeric":     true,
	"categorical": true,
	"format":      true,
}

// LoadProfile resolves cleaning choices.
// Precedence (highest to lowest): flags > profile file > defaults.
// --fill entries are merged over the profile's fill map.
func LoadProfile(path string, flags *pflag.FlagSet) (Profile, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"numeric":     string(core.NumericMedian),
		"categorical": string(core.CategoricalMode),
		"format":      FormatTable,
	}, "."), nil); err != nil {
		return Profile{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Profile file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Profile{}, fmt.Errorf("error reading profile %s: %w", path, err)
		}
	}

	// 3. Explicitly set flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || !profileFlags[f.Name] {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Profile{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var p Profile
	if err := k.Unmarshal("", &p); err != nil {
		return Profile{}, fmt.Errorf("unable to decode profile: %w", err)
	}
	if p.Fill == nil {
		p.Fill = map[string]string{}
	}

	if flags != nil && flags.Lookup("fill") != nil {
		entries, err := flags.GetStringArray("fill")
		if err != nil {
			return Profile{}, err
		}
		fills, err := parseFills(entries)
		if err != nil {
			return Profile{}, err
		}
		for col, v := range fills {
			p.Fill[col] = v
		}
	}

	p.Format = strings.ToLower(strings.TrimSpace(p.Format))
	if p.Format != FormatTable && p.Format != FormatJSON {
		return Profile{}, fmt.Errorf("invalid format %q: want table or json", p.Format)
	}
	return p, nil
}

// CleaningConfig converts the profile into the pipeline's imputation choices.
func (p Profile) CleaningConfig() (core.CleaningConfig, error) {
	numeric, err := core.ParseNumericStrategy(p.Numeric)
	if err != nil {
		return core.CleaningConfig{}, err
	}
	categorical, err := core.ParseCategoricalStrategy(p.Categorical)
	if err != nil {
		return core.CleaningConfig{}, err
	}

	fill := make(map[string]string, len(p.Fill))
	for col, v := range p.Fill {
		fill[col] = v
	}
	return core.CleaningConfig{
		ManualFill:          fill,
		NumericStrategy:     numeric,
		CategoricalStrategy: categorical,
	}, nil
}

// parseFills turns col=value entries into a fill map. The value may be
// empty or contain further '=' characters.
func parseFills(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		col, v, ok := strings.Cut(e, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid fill %q: want column=value", e)
		}
		out[col] = v
	}
	return out, nil
}
