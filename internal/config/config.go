// Package config loads the cabinet's DIP-switch profile from YAML and
// translates it into the bit values the cabinet package's port 0/2 reads
// expect. Grounded on the teacher's use of gopkg.in/yaml.v3 for its own
// scene/project manifests, adapted here to a much smaller leaf config.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// CabinetProfile is the DIP-switch configuration for one cabinet.
type CabinetProfile struct {
	Lives       int    `yaml:"lives"`
	BonusLifeAt string `yaml:"bonusLifeAt"`
	CoinInfoOff bool   `yaml:"coinInfoOff"`
	TiltEnabled bool   `yaml:"tiltEnabled"`
}

// DefaultCabinetProfile returns the hard-coded defaults: 3 lives, bonus
// life at 1500 points, coin info displayed, tilt enabled.
func DefaultCabinetProfile() CabinetProfile {
	return CabinetProfile{
		Lives:       3,
		BonusLifeAt: "1500",
		CoinInfoOff: false,
		TiltEnabled: true,
	}
}

// LoadCabinetProfile parses a YAML cabinet profile from r. It decodes on
// top of DefaultCabinetProfile, so any field the YAML leaves out keeps its
// default value and an empty document yields the defaults. The result is
// checked with Validate.
func LoadCabinetProfile(r io.Reader) (CabinetProfile, error) {
	p := DefaultCabinetProfile()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return CabinetProfile{}, fmt.Errorf("config: decode cabinet profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return CabinetProfile{}, err
	}
	return p, nil
}

// Validate reports whether the profile's fields are within range.
func (p CabinetProfile) Validate() error {
	if p.Lives < 2 || p.Lives > 6 {
		return fmt.Errorf("config: lives must be 2-6, got %d", p.Lives)
	}
	switch p.BonusLifeAt {
	case "1000", "1500", "2000", "none":
	default:
		return fmt.Errorf("config: bonusLifeAt must be one of 1000/1500/2000/none, got %q", p.BonusLifeAt)
	}
	return nil
}

// LivesDIP encodes Lives into port2 bits 0-1 (the cabinet's lives-DIP
// field): 3→0, 4→1, 5→2, 6→3. Lives outside that range clamp to the
// nearest encodable value.
func (p CabinetProfile) LivesDIP() uint8 {
	lives := p.Lives
	if lives < 3 {
		lives = 3
	}
	if lives > 6 {
		lives = 6
	}
	return uint8(lives - 3)
}

// BonusLifeDIP encodes BonusLifeAt into a 2-bit field: 0=1500(default
// hardware wiring), 1=1000, 2=none, 3=2000.
func (p CabinetProfile) BonusLifeDIP() uint8 {
	switch p.BonusLifeAt {
	case "1000":
		return 1
	case "none":
		return 2
	case "2000":
		return 3
	default: // "1500"
		return 0
	}
}
