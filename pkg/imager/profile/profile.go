// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package profile contains the definition of the image build profile.
package profile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one firmware image build.
type Profile struct {
	// Platform is the device model name, one of the catalog entries.
	Platform string `yaml:"platform"`
	// Variant selects the hardware variant where archive paths require one.
	Variant int `yaml:"variant"`

	// UpdatePath is the path to the firmware update archive (.zip).
	UpdatePath string `yaml:"updatePath"`
	// ExtDataPath seeds the extdata filesystem.
	ExtDataPath string `yaml:"extDataPath"`
	// CachePath seeds the cache filesystem.
	CachePath string `yaml:"cachePath"`
}

// Validate the profile.
func (p *Profile) Validate() error {
	if _, ok := Platforms[p.Platform]; !ok {
		return fmt.Errorf("unknown platform %q, expected one of %s", p.Platform, strings.Join(Names(), ", "))
	}

	if p.Variant < 1 {
		return fmt.Errorf("invalid variant %d", p.Variant)
	}

	if p.UpdatePath == "" {
		return errors.New("update archive path is required")
	}

	if p.ExtDataPath == "" || p.CachePath == "" {
		return errors.New("extdata and cache seed paths are required")
	}

	return nil
}

// Dump the profile as YAML.
func (p *Profile) Dump(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	defer encoder.Close() //nolint:errcheck

	return encoder.Encode(p)
}
