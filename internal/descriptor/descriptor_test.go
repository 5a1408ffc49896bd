package descriptor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/video2wallpaper/internal/capture"
	"github.com/ivlev/video2wallpaper/internal/schedule"
)

func timedFixture(start time.Time) []schedule.TimedFrame {
	return []schedule.TimedFrame{
		{Time: start, Frame: capture.Frame{Index: 0, Path: "/wp/day-000.jpg"}},
		{Time: start.Add(8 * time.Hour), Frame: capture.Frame{Index: 1, Path: "/wp/day-001.jpg"}},
		{Time: start.Add(16 * time.Hour), Frame: capture.Frame{Index: 2, Path: "/wp/day-002.jpg"}},
	}
}

func TestBuild(t *testing.T) {
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	frames := timedFixture(start)

	b, err := Build(frames, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if b.start.Year != 2024 || b.start.Month != 6 || b.start.Day != 21 || b.start.Hour != 0 {
		t.Errorf("unexpected starttime: %+v", b.start)
	}

	// one static+transition pair per frame, wrap included
	if len(b.entries) != 6 {
		t.Fatalf("len(entries) = %d, want 6", len(b.entries))
	}

	total := 0.0
	for _, entry := range b.entries {
		if s, ok := entry.(Static); ok {
			total += float64(s.Duration)
		}
	}
	if total != 86400 {
		t.Errorf("static durations sum to %f, want 86400 (transitions must overlay)", total)
	}

	last, ok := b.entries[5].(Transition)
	if !ok {
		t.Fatalf("entry 5 is %T, want Transition", b.entries[5])
	}
	if last.To != frames[0].Frame.Path {
		t.Errorf("wrap transition goes to %q, want first frame %q", last.To, frames[0].Frame.Path)
	}
	if last.Type != "overlay" {
		t.Errorf("transition type %q, want overlay", last.Type)
	}

	if _, err := Build(nil, 5); err == nil {
		t.Error("Build(nil) must fail")
	}
}

func TestBuildNonMidnightStart(t *testing.T) {
	// legacy listings often start mid-morning: the cycle still covers a
	// full day counted from the first frame, not from midnight
	day := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	frames := []schedule.TimedFrame{
		{Time: day.Add(7 * time.Hour), Frame: capture.Frame{Index: 0, Path: "/wp/day-1.jpg"}},
		{Time: day.Add(12 * time.Hour), Frame: capture.Frame{Index: 1, Path: "/wp/day-2.jpg"}},
		{Time: day.Add(19 * time.Hour), Frame: capture.Frame{Index: 2, Path: "/wp/day-3.jpg"}},
	}

	b, err := Build(frames, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if b.start.Hour != 7 {
		t.Errorf("starttime hour %d, want 7", b.start.Hour)
	}

	total := 0.0
	for _, entry := range b.entries {
		if s, ok := entry.(Static); ok {
			total += float64(s.Duration)
		}
	}
	if total != 86400 {
		t.Errorf("static durations sum to %.0f s, want 86400", total)
	}

	// last frame holds from 19:00 to 07:00 next day
	wrap, ok := b.entries[4].(Static)
	if !ok {
		t.Fatalf("entry 4 is %T, want Static", b.entries[4])
	}
	if float64(wrap.Duration) != 12*3600 {
		t.Errorf("wrap static lasts %.0f s, want %d", float64(wrap.Duration), 12*3600)
	}
}

func TestSecondsFormat(t *testing.T) {
	tests := []struct {
		in   Seconds
		want string
	}{
		{28800, "28800.0"},
		{5, "5.0"},
		{4.25, "4.25"},
		{0, "0.0"},
	}
	for _, tt := range tests {
		out, err := tt.in.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tt.in, err)
		}
		if string(out) != tt.want {
			t.Errorf("Seconds(%v) = %q, want %q", float64(tt.in), out, tt.want)
		}
	}
}

func TestWriteTimed(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	path, err := WriteTimed(dir, "day", timedFixture(start), 5)
	if err != nil {
		t.Fatalf("WriteTimed: %v", err)
	}
	if filepath.Base(path) != "day-timed.xml" {
		t.Errorf("unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"<?xml",
		"<background>",
		"<starttime>",
		"<year>2024</year>",
		"<static>",
		"<duration>28800.0</duration>",
		`<transition type="overlay">`,
		"<duration>5.0</duration>",
		"<to>/wp/day-000.jpg</to>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timed XML missing %q:\n%s", want, out)
		}
	}
}

func TestWriteWrapper(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteWrapper(dir, "day", "/wp/day-timed.xml", "zoom")
	if err != nil {
		t.Fatalf("WriteWrapper: %v", err)
	}
	if filepath.Base(path) != "day.xml" {
		t.Errorf("unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<wallpaper deleted="false">`,
		"<name>day</name>",
		"<filename>/wp/day-timed.xml</filename>",
		"<options>zoom</options>",
		"<shade_type>solid</shade_type>",
		"<pcolor>#ffffff</pcolor>",
		"<scolor>#000000</scolor>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("wrapper XML missing %q:\n%s", want, out)
		}
	}
}

func TestValidOption(t *testing.T) {
	if !ValidOption("zoom") || !ValidOption("spanned") {
		t.Error("known placement modes rejected")
	}
	if ValidOption("sideways") {
		t.Error("unknown placement mode accepted")
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	path, err := WriteCSV(dir, "day", timedFixture(start))
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "'00:00:00','/wp/day-000.jpg'\n" +
		"'08:00:00','/wp/day-001.jpg'\n" +
		"'16:00:00','/wp/day-002.jpg'\n"
	if string(data) != want {
		t.Errorf("csv mismatch:\ngot:\n%swant:\n%s", data, want)
	}
}

func TestReadSTW(t *testing.T) {
	input := "version: 1\n" +
		"name: mountain\n" +
		"format: jpg\n" +
		" 00:00: 0\n" +
		" 08:30: 12\n" +
		"18:45: 23\n"

	st, err := ReadSTW(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSTW: %v", err)
	}

	if st.Version != "1" || st.Name != "mountain" || st.Format != "jpg" {
		t.Errorf("header = %q %q %q", st.Version, st.Name, st.Format)
	}
	if len(st.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(st.Entries))
	}

	want := []STWEntry{
		{Hour: 0, Minute: 0, Index: 0},
		{Hour: 8, Minute: 30, Index: 12},
		{Hour: 18, Minute: 45, Index: 23},
	}
	for i, w := range want {
		if st.Entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, st.Entries[i], w)
		}
	}

	frames := st.Frames("/wp", time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), time.UTC)
	if frames[1].Frame.Path != "/wp/mountain-13.jpg" {
		t.Errorf("legacy index mapping broken: %s", frames[1].Frame.Path)
	}
	if got := frames[2].Time.Format("15:04:05"); got != "18:45:00" {
		t.Errorf("entry time = %s, want 18:45:00", got)
	}
}

func TestReadSTWMalformed(t *testing.T) {
	for _, input := range []string{
		"01:02 7\n",
		"aa:bb: 1\n",
		"00:15: x\n",
	} {
		if _, err := ReadSTW(strings.NewReader(input)); err == nil {
			t.Errorf("ReadSTW(%q) accepted malformed input", input)
		}
	}
}
