package source

import (
	"image"
	"io"

	"github.com/gen2brain/go-fitz"
)

// PDFSource renders the pages of a document as the frame sequence, for
// slideshows prepared as one page per frame.
type PDFSource struct {
	doc    *fitz.Document
	dpi    float64
	cursor int
}

func NewPDFSource(path string, dpi float64) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, dpi: dpi}, nil
}

func (s *PDFSource) FrameCount() int { return s.doc.NumPage() }
func (s *PDFSource) FPS() float64    { return 1 }

func (s *PDFSource) Seek(frame int) error {
	s.cursor = frame
	return nil
}

func (s *PDFSource) ReadFrame() (image.Image, error) {
	if s.cursor >= s.doc.NumPage() {
		return nil, io.EOF
	}

	img, err := s.doc.ImageDPI(s.cursor, s.dpi)
	if err != nil {
		return nil, io.EOF
	}
	s.cursor++
	return img, nil
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
