package config

import (
	"strings"
	"testing"
)

func TestDefaultCabinetProfileMatchesHardwareDefaults(t *testing.T) {
	p := DefaultCabinetProfile()
	if p.Lives != 3 || p.BonusLifeAt != "1500" || p.CoinInfoOff || !p.TiltEnabled {
		t.Errorf("DefaultCabinetProfile() = %+v, want {3 1500 false true}", p)
	}
}

func TestLoadCabinetProfileParsesYAML(t *testing.T) {
	yaml := `
lives: 5
bonusLifeAt: "1000"
coinInfoOff: true
tiltEnabled: false
`
	p, err := LoadCabinetProfile(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadCabinetProfile: %v", err)
	}
	if p.Lives != 5 || p.BonusLifeAt != "1000" || !p.CoinInfoOff || p.TiltEnabled {
		t.Errorf("parsed profile = %+v, want {5 1000 true false}", p)
	}
}

func TestLoadCabinetProfileRejectsOutOfRangeLives(t *testing.T) {
	yaml := `
lives: 9
bonusLifeAt: "1500"
`
	_, err := LoadCabinetProfile(strings.NewReader(yaml))
	if err == nil {
		t.Fatalf("expected an error for lives=9")
	}
}

func TestLoadCabinetProfileRejectsUnknownBonusLifeValue(t *testing.T) {
	yaml := `
lives: 3
bonusLifeAt: "9999"
`
	_, err := LoadCabinetProfile(strings.NewReader(yaml))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized bonusLifeAt value")
	}
}

func TestLivesDIPEncoding(t *testing.T) {
	cases := []struct {
		lives int
		want  uint8
	}{
		{3, 0}, {4, 1}, {5, 2}, {6, 3},
		{2, 0}, {7, 3}, // out-of-range clamps
	}
	for _, c := range cases {
		p := CabinetProfile{Lives: c.lives}
		if got := p.LivesDIP(); got != c.want {
			t.Errorf("LivesDIP(%d) = %d, want %d", c.lives, got, c.want)
		}
	}
}

func TestBonusLifeDIPEncoding(t *testing.T) {
	cases := []struct {
		at   string
		want uint8
	}{
		{"1500", 0}, {"1000", 1}, {"none", 2}, {"2000", 3},
	}
	for _, c := range cases {
		p := CabinetProfile{BonusLifeAt: c.at}
		if got := p.BonusLifeDIP(); got != c.want {
			t.Errorf("BonusLifeDIP(%q) = %d, want %d", c.at, got, c.want)
		}
	}
}
