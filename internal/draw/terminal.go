// Package draw provides the ANSI terminal primitives the renderer paints
// with: cursor control, a buffered frame writer, and terminal sizing.
package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize bounds single writes to the underlying writer so frames flow
// well over SSH connections.
const maxChunkSize = 2048

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// TermSizeFunc reports the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize is the TermSizeFunc for a local terminal on stdout.
var StdoutSize TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FrameWriter accumulates one frame of cursor moves and text, then flushes
// it to the terminal in bounded chunks. Accumulating a whole frame before
// writing keeps partially painted frames off slow connections.
type FrameWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte // scratch for allocation-free integer formatting
}

// NewFrameWriter creates a FrameWriter targeting w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{out: bufio.NewWriterSize(w, 8192)}
}

// MoveTo appends a cursor position sequence. x and y are 1-based terminal
// coordinates, column first.
func (fw *FrameWriter) MoveTo(x, y int) {
	fw.buf.WriteString("\033[")
	fw.buf.Write(strconv.AppendInt(fw.numBuf[:0], int64(y), 10))
	fw.buf.WriteByte(';')
	fw.buf.Write(strconv.AppendInt(fw.numBuf[:0], int64(x), 10))
	fw.buf.WriteByte('H')
}

// Text writes a string at a position.
func (fw *FrameWriter) Text(x, y int, s string) {
	fw.MoveTo(x, y)
	fw.buf.WriteString(s)
}

// Textf writes a formatted string at a position.
func (fw *FrameWriter) Textf(x, y int, format string, args ...any) {
	fw.MoveTo(x, y)
	fmt.Fprintf(&fw.buf, format, args...)
}

// Cell puts a single rune at a position.
func (fw *FrameWriter) Cell(x, y int, r rune) {
	fw.MoveTo(x, y)
	fw.buf.WriteRune(r)
}

// HLine draws a horizontal run of the same rune starting at (x, y).
func (fw *FrameWriter) HLine(x, y, length int, r rune) {
	fw.MoveTo(x, y)
	for i := 0; i < length; i++ {
		fw.buf.WriteRune(r)
	}
}

// Box draws a border rectangle with +, - and | glyphs. x, y is the top-left
// corner; width and height include the border cells.
func (fw *FrameWriter) Box(x, y, width, height int) {
	if width < 2 || height < 2 {
		return
	}
	fw.Cell(x, y, '+')
	fw.HLine(x+1, y, width-2, '-')
	fw.Cell(x+width-1, y, '+')
	for row := y + 1; row < y+height-1; row++ {
		fw.Cell(x, row, '|')
		fw.Cell(x+width-1, row, '|')
	}
	fw.Cell(x, y+height-1, '+')
	fw.HLine(x+1, y+height-1, width-2, '-')
	fw.Cell(x+width-1, y+height-1, '+')
}

// Clear appends a full-screen erase to the frame.
func (fw *FrameWriter) Clear() {
	fw.buf.WriteString("\033[H\033[2J")
}

// Flush writes the accumulated frame in chunks and resets the buffer.
func (fw *FrameWriter) Flush() error {
	data := fw.buf.String()
	fw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := fw.out.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return fw.out.Flush()
}
