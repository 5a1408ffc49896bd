package descriptor

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ivlev/video2wallpaper/internal/capture"
	"github.com/ivlev/video2wallpaper/internal/schedule"
)

// STW is the legacy plain-text slideshow listing: a header followed by
// one "HH:MM: index" entry per frame.
type STW struct {
	Version string
	Name    string
	Format  string
	Entries []STWEntry
}

// STWEntry is one line of the listing.
type STWEntry struct {
	Hour   int
	Minute int
	Index  int
}

// ReadSTW parses the legacy format. Header lines carry version, name and
// format; every other non-blank line must be an "HH:MM: index" entry.
func ReadSTW(r io.Reader) (*STW, error) {
	st := &STW{Format: "jpg"}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "version:"):
			st.Version = strings.TrimSpace(strings.TrimPrefix(line, "version:"))
		case strings.HasPrefix(line, "name:"):
			st.Name = strings.TrimSpace(strings.TrimPrefix(line, "name:"))
		case strings.HasPrefix(line, "format:"):
			st.Format = strings.TrimSpace(strings.TrimPrefix(line, "format:"))
		default:
			entry, err := parseSTWEntry(line)
			if err != nil {
				return nil, err
			}
			st.Entries = append(st.Entries, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func parseSTWEntry(line string) (STWEntry, error) {
	// "HH:MM: index" splits at the second colon; the time field may carry
	// leading whitespace in files written by older tools
	clock, rest, ok := strings.Cut(strings.TrimSpace(line), ": ")
	if !ok {
		return STWEntry{}, fmt.Errorf("stw: malformed entry %q", line)
	}

	hm := strings.Split(clock, ":")
	if len(hm) != 2 {
		return STWEntry{}, fmt.Errorf("stw: malformed time %q", clock)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hm[0]))
	if err != nil {
		return STWEntry{}, fmt.Errorf("stw: hour in %q: %w", line, err)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return STWEntry{}, fmt.Errorf("stw: minute in %q: %w", line, err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return STWEntry{}, fmt.Errorf("stw: frame index in %q: %w", line, err)
	}

	return STWEntry{Hour: hour, Minute: minute, Index: index}, nil
}

// Frames converts the listing into a timed sequence on date's day in loc.
// Legacy listings number their image files from one, so entry index i
// maps to <name>-<i+1>.<format>.
func (st *STW) Frames(dir string, date time.Time, loc *time.Location) []schedule.TimedFrame {
	frames := make([]schedule.TimedFrame, 0, len(st.Entries))
	for _, e := range st.Entries {
		path := filepath.Join(dir, fmt.Sprintf("%s-%d.%s", st.Name, e.Index+1, st.Format))
		frames = append(frames, schedule.TimedFrame{
			Time:  time.Date(date.Year(), date.Month(), date.Day(), e.Hour, e.Minute, 0, 0, loc),
			Frame: capture.Frame{Index: e.Index, Path: path},
		})
	}
	return frames
}
