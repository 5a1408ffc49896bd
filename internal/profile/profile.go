package profile

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/video2wallpaper/internal/config"
)

// Profile is a reusable capture preset: everything about a run except
// the input file and the time window, persisted as YAML.
type Profile struct {
	Version  string  `yaml:"version"`
	Location string  `yaml:"location,omitempty"`
	Date     string  `yaml:"date,omitempty"` // YYYY-MM-DD
	Anchors  Anchors `yaml:"anchors"`

	NumFrames  int  `yaml:"num_frames,omitempty"`
	SkipFrames int  `yaml:"skip_frames,omitempty"`
	Mirror     bool `yaml:"mirror"`

	Transition float64 `yaml:"transition,omitempty"`
	Options    string  `yaml:"options,omitempty"`

	MaxWidth  int     `yaml:"max_width,omitempty"`
	MaxHeight int     `yaml:"max_height,omitempty"`
	Quality   int     `yaml:"quality,omitempty"`
	Workers   int     `yaml:"workers,omitempty"`
	DPI       float64 `yaml:"dpi,omitempty"`
}

// Anchors are the user-chosen solar anchor frames of the preset.
type Anchors struct {
	Dawn    int `yaml:"dawn"`
	Sunrise int `yaml:"sunrise"`
	Sunset  int `yaml:"sunset"`
	Dusk    int `yaml:"dusk"`
}

// Read loads a profile from a YAML file.
func Read(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Write persists a profile as a YAML file.
func Write(p *Profile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FromConfig captures the reusable part of a resolved run.
func FromConfig(cfg *config.Config) *Profile {
	return &Profile{
		Version:  "1.0",
		Location: cfg.Location,
		Date:     cfg.Date.Format("2006-01-02"),
		Anchors: Anchors{
			Dawn:    cfg.DawnFrame,
			Sunrise: cfg.SunriseFrame,
			Sunset:  cfg.SunsetFrame,
			Dusk:    cfg.DuskFrame,
		},
		NumFrames:  cfg.NumFrames,
		SkipFrames: cfg.SkipFrames,
		Mirror:     cfg.Mirror,
		Transition: cfg.Transition,
		Options:    cfg.Options,
		MaxWidth:   cfg.MaxWidth,
		MaxHeight:  cfg.MaxHeight,
		Quality:    cfg.Quality,
		Workers:    cfg.Workers,
		DPI:        cfg.DPI,
	}
}

// Apply copies the profile into cfg, skipping every field the user
// already set on the command line (set reports flag names, using the
// long spellings).
func (p *Profile) Apply(cfg *config.Config, set map[string]bool) error {
	if p.Location != "" && !set["location"] {
		cfg.Location = p.Location
	}
	if p.Date != "" && !set["date"] {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return err
		}
		cfg.Date = date
	}
	if !set["dawn-frame"] {
		cfg.DawnFrame = p.Anchors.Dawn
	}
	if !set["sunrise-frame"] {
		cfg.SunriseFrame = p.Anchors.Sunrise
	}
	if !set["sunset-frame"] {
		cfg.SunsetFrame = p.Anchors.Sunset
	}
	if !set["dusk-frame"] {
		cfg.DuskFrame = p.Anchors.Dusk
	}
	if p.NumFrames > 0 && !set["num-frames"] {
		cfg.NumFrames = p.NumFrames
	}
	if p.SkipFrames > 0 && !set["skip-frames"] {
		cfg.SkipFrames = p.SkipFrames
	}
	if p.Mirror && !set["mirror"] {
		cfg.Mirror = true
	}
	if p.Transition > 0 && !set["transition"] {
		cfg.Transition = p.Transition
	}
	if p.Options != "" && !set["options"] {
		cfg.Options = p.Options
	}
	if p.MaxWidth > 0 && !set["max-width"] {
		cfg.MaxWidth = p.MaxWidth
	}
	if p.MaxHeight > 0 && !set["max-height"] {
		cfg.MaxHeight = p.MaxHeight
	}
	if p.Quality > 0 && !set["quality"] {
		cfg.Quality = p.Quality
	}
	if p.Workers > 0 && !set["workers"] {
		cfg.Workers = p.Workers
	}
	if p.DPI > 0 && !set["dpi"] {
		cfg.DPI = p.DPI
	}
	return nil
}
