package descriptor

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ivlev/video2wallpaper/internal/schedule"
)

// DefaultTransition is the overlay length between two frames, seconds.
const DefaultTransition = 5.0

// Seconds renders a duration the way the wallpaper engine expects: a
// float with at least one decimal ("300.0", "4.25").
type Seconds float64

func (s Seconds) MarshalText() ([]byte, error) {
	out := strconv.FormatFloat(float64(s), 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return []byte(out), nil
}

type startTime struct {
	Year   int `xml:"year"`
	Month  int `xml:"month"`
	Day    int `xml:"day"`
	Hour   int `xml:"hour"`
	Minute int `xml:"minute"`
	Second int `xml:"second"`
}

// Static shows one frame for a fixed span.
type Static struct {
	XMLName  xml.Name `xml:"static"`
	File     string   `xml:"file"`
	Duration Seconds  `xml:"duration"`
}

// Transition overlays the change from one frame to the next.
type Transition struct {
	XMLName  xml.Name `xml:"transition"`
	Type     string   `xml:"type,attr"`
	Duration Seconds  `xml:"duration"`
	From     string   `xml:"from"`
	To       string   `xml:"to"`
}

// Background is the timed wallpaper document: a start time followed by
// alternating static and transition records that cover a full 24 hours.
type Background struct {
	start   startTime
	entries []any
}

func (b *Background) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "background"
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(b.start, xml.StartElement{Name: xml.Name{Local: "starttime"}}); err != nil {
		return err
	}
	for _, entry := range b.entries {
		if err := e.Encode(entry); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Build assembles the document. Each frame shows from its timestamp to
// the next one; the last frame holds until the first timestamp plus 24
// hours and transitions back to the first frame, closing the loop.
// Transitions overlay the static spans, so the static durations alone
// add up to the full day no matter where in the day the cycle starts.
func Build(frames []schedule.TimedFrame, transition float64) (*Background, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("timed sequence is empty")
	}

	first := frames[0]
	end := first.Time.Add(24 * time.Hour)
	b := &Background{start: startTime{
		Year:   first.Time.Year(),
		Month:  int(first.Time.Month()),
		Day:    first.Time.Day(),
		Hour:   first.Time.Hour(),
		Minute: first.Time.Minute(),
		Second: first.Time.Second(),
	}}

	for i, tf := range frames {
		until := end
		to := first.Frame.Path
		if i+1 < len(frames) {
			until = frames[i+1].Time
			to = frames[i+1].Frame.Path
		}

		b.entries = append(b.entries,
			Static{File: tf.Frame.Path, Duration: Seconds(until.Sub(tf.Time).Seconds())},
			Transition{Type: "overlay", Duration: Seconds(transition), From: tf.Frame.Path, To: to},
		)
	}
	return b, nil
}

// WriteTimed renders the background document to <name>-timed.xml in dir
// and returns the written path.
func WriteTimed(dir, name string, frames []schedule.TimedFrame, transition float64) (string, error) {
	b, err := Build(frames, transition)
	if err != nil {
		return "", err
	}

	data, err := xml.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+"-timed.xml")
	if err := os.WriteFile(path, append([]byte(xml.Header), data...), 0644); err != nil {
		return "", err
	}
	return path, nil
}
