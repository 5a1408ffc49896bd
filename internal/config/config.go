package config

import "time"

type Config struct {
	Input      string
	WorkingDir string
	Name       string

	StartSeconds float64
	EndSeconds   float64
	NumFrames    int
	SkipFrames   int
	Mirror       bool

	Location string
	Date     time.Time

	DawnFrame    int
	SunriseFrame int
	SunsetFrame  int
	DuskFrame    int

	Transition float64
	Options    string
	CSV        bool
	NoWrite    bool

	MaxWidth  int
	MaxHeight int
	Quality   int
	Workers   int
	DPI       float64

	SuggestAnchors bool
	ShowStats      bool
	BuildVersion   string
}
