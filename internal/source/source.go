package source

import (
	"image"
	"os"
	"strings"
)

// Source is one sequence of still frames: a video stream, a directory of
// images, or the pages of a PDF. ReadFrame returns io.EOF when the
// sequence ends; frame counts of zero mean the total is unknown until
// the stream runs out.
type Source interface {
	FrameCount() int
	FPS() float64
	Seek(frame int) error
	ReadFrame() (image.Image, error)
	Close() error
}

// Open picks a source by input kind: a directory of images, a .pdf
// rendered page by page, or anything else handed to ffmpeg as video.
func Open(path string, dpi float64) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case fi.IsDir():
		return NewDirSource(path)
	case strings.HasSuffix(strings.ToLower(path), ".pdf"):
		return NewPDFSource(path, dpi)
	default:
		return NewVideoSource(path)
	}
}
