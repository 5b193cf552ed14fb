// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the YAML file named by --config.  Its values stand in for flags
// not given on the command line.
type Config struct {
	Datum    string `yaml:"datum"`
	Region   string `yaml:"region"`
	Method   string `yaml:"method"`
	Unit     string `yaml:"unit"`
	AreaUnit string `yaml:"area_unit"`
	CPU      uint16 `yaml:"cpu"`
}

// LoadConfig reads a Config file.  Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Apply sets every flag the command line left unset to its configured value.
func (c *Config) Apply(flags *pflag.FlagSet) error {
	values := map[string]string{
		"datum":     c.Datum,
		"region":    c.Region,
		"method":    c.Method,
		"unit":      c.Unit,
		"area-unit": c.AreaUnit,
	}

	if c.CPU != 0 {
		values["cpu"] = strconv.FormatUint(uint64(c.CPU), 10)
	}

	for name, value := range values {
		if value == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}

		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
	}

	return nil
}
