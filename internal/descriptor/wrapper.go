package descriptor

import (
	"encoding/xml"
	"os"
	"path/filepath"
)

// DisplayOptions are the placement modes the wallpaper chooser accepts.
var DisplayOptions = []string{"zoom", "centered", "scaled", "stretched", "wallpaper", "spanned"}

// ValidOption reports whether s is a known placement mode.
func ValidOption(s string) bool {
	for _, o := range DisplayOptions {
		if s == o {
			return true
		}
	}
	return false
}

type wallpapers struct {
	XMLName   xml.Name  `xml:"wallpapers"`
	Wallpaper wallpaper `xml:"wallpaper"`
}

type wallpaper struct {
	Deleted   string `xml:"deleted,attr"`
	Name      string `xml:"name"`
	Filename  string `xml:"filename"`
	Options   string `xml:"options"`
	ShadeType string `xml:"shade_type"`
	PColor    string `xml:"pcolor"`
	SColor    string `xml:"scolor"`
}

// WriteWrapper registers the timed descriptor for the wallpaper chooser:
// <name>.xml pointing at timedPath.
func WriteWrapper(dir, name, timedPath, options string) (string, error) {
	doc := wallpapers{Wallpaper: wallpaper{
		Deleted:   "false",
		Name:      name,
		Filename:  timedPath,
		Options:   options,
		ShadeType: "solid",
		PColor:    "#ffffff",
		SColor:    "#000000",
	}}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+".xml")
	if err := os.WriteFile(path, append([]byte(xml.Header), data...), 0644); err != nil {
		return "", err
	}
	return path, nil
}
