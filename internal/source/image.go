package source

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// DirSource walks a directory of still images in name order, one image
// per frame. Time offsets are meaningless here, so the rate is one
// frame per second and the image count bounds the window.
type DirSource struct {
	paths  []string
	cursor int
}

func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".jpg", ".jpeg", ".png":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	return &DirSource{paths: paths}, nil
}

func (s *DirSource) FrameCount() int { return len(s.paths) }
func (s *DirSource) FPS() float64    { return 1 }

func (s *DirSource) Seek(frame int) error {
	s.cursor = frame
	return nil
}

func (s *DirSource) ReadFrame() (image.Image, error) {
	if s.cursor >= len(s.paths) {
		return nil, io.EOF
	}

	f, err := os.Open(s.paths[s.cursor])
	if err != nil {
		return nil, io.EOF
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, io.EOF
	}
	s.cursor++
	return img, nil
}

func (s *DirSource) Close() error { return nil }
