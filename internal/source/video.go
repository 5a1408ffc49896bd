package source

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ivlev/video2wallpaper/internal/system"
)

// VideoSource decodes a video file through an ffmpeg rawvideo pipe, one
// RGBA frame per read. Seeking restarts the pipe at the target frame.
type VideoSource struct {
	path   string
	width  int
	height int
	fps    float64
	frames int

	cmd *exec.Cmd
	out io.ReadCloser
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type probeData struct {
	Streams []probeStream `json:"streams"`
}

func NewVideoSource(path string) (*VideoSource, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var data probeData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	s := &VideoSource{path: path}
	for _, st := range data.Streams {
		if st.CodecType != "video" {
			continue
		}
		s.width = st.Width
		s.height = st.Height
		s.fps = parseRate(st.RFrameRate)
		s.frames, _ = strconv.Atoi(st.NbFrames)
		break
	}
	if s.width == 0 || s.height == 0 || s.fps == 0 {
		return nil, fmt.Errorf("в %s нет видеопотока", path)
	}
	return s, nil
}

// parseRate converts an ffprobe rational ("30000/1001") to frames per
// second. Zero means the rate was absent or malformed.
func parseRate(r string) float64 {
	num, den, ok := strings.Cut(r, "/")
	if !ok {
		v, _ := strconv.ParseFloat(r, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

func (s *VideoSource) FrameCount() int { return s.frames }
func (s *VideoSource) FPS() float64    { return s.fps }

// Seek positions the stream at the given frame by restarting ffmpeg
// with the matching -ss offset.
func (s *VideoSource) Seek(frame int) error {
	if err := s.stop(); err != nil {
		return err
	}

	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-ss", fmt.Sprintf("%.6f", float64(frame)/s.fps),
		"-i", s.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("запуск ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.out = out
	return nil
}

// ReadFrame reads the next raw frame from the pipe. A short or empty
// read means the stream is over and reports io.EOF.
func (s *VideoSource) ReadFrame() (image.Image, error) {
	if s.out == nil {
		if err := s.Seek(0); err != nil {
			return nil, err
		}
	}

	img := system.GetFrame(image.Rect(0, 0, s.width, s.height))
	if _, err := io.ReadFull(s.out, img.Pix); err != nil {
		system.PutFrame(img)
		return nil, io.EOF
	}
	return img, nil
}

func (s *VideoSource) stop() error {
	if s.cmd == nil {
		return nil
	}
	s.out.Close()
	s.cmd.Process.Kill()
	s.cmd.Wait()
	s.cmd = nil
	s.out = nil
	return nil
}

func (s *VideoSource) Close() error {
	return s.stop()
}
