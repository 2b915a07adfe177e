package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFrameWriterPositionsAndText(t *testing.T) {
	var out bytes.Buffer
	fw := NewFrameWriter(&out)

	fw.Text(5, 3, "hello")
	fw.Cell(1, 1, 'X')
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got := out.String()
	if want := "\033[3;5Hhello"; !strings.Contains(got, want) {
		t.Errorf("output %q missing %q", got, want)
	}
	if want := "\033[1;1HX"; !strings.Contains(got, want) {
		t.Errorf("output %q missing %q", got, want)
	}
}

func TestFrameWriterFlushResets(t *testing.T) {
	var out bytes.Buffer
	fw := NewFrameWriter(&out)

	fw.Text(1, 1, "first")
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	out.Reset()

	fw.Text(1, 1, "second")
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := out.String(); strings.Contains(got, "first") {
		t.Errorf("second flush repeated earlier frame: %q", got)
	}
}

func TestFrameWriterChunksLargeFrames(t *testing.T) {
	var out bytes.Buffer
	fw := NewFrameWriter(&out)

	big := strings.Repeat("#", maxChunkSize*3+17)
	fw.Text(1, 1, big)
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !strings.Contains(out.String(), big) {
		t.Error("chunked flush corrupted the frame")
	}
}

func TestBox(t *testing.T) {
	var out bytes.Buffer
	fw := NewFrameWriter(&out)

	fw.Box(1, 1, 4, 3)
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"\033[1;1H+", "\033[1;4H+", // top corners
		"\033[3;1H+", "\033[3;4H+", // bottom corners
		"\033[2;1H|", "\033[2;4H|", // sides
	} {
		if !strings.Contains(got, want) {
			t.Errorf("box output missing %q", want)
		}
	}
}

func TestHLine(t *testing.T) {
	var out bytes.Buffer
	fw := NewFrameWriter(&out)

	fw.HLine(2, 5, 4, '=')
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if want := "\033[5;2H===="; !strings.Contains(out.String(), want) {
		t.Errorf("output %q missing %q", out.String(), want)
	}
}
