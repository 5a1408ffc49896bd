package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ivlev/video2wallpaper/internal/schedule"
)

// WriteCSV emits one 'HH:MM:SS','path' line per frame to <name>.csv.
// The single-quoted headerless layout is what downstream scripts consume.
func WriteCSV(dir, name string, frames []schedule.TimedFrame) (string, error) {
	var buf bytes.Buffer
	for _, tf := range frames {
		fmt.Fprintf(&buf, "'%s','%s'\n", tf.Time.Format("15:04:05"), tf.Frame.Path)
	}

	path := filepath.Join(dir, name+".csv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}
