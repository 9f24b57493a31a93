package pdf

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/matzehuels/songtiles/pkg/render"
)

func TestCanvasWritesPDF(t *testing.T) {
	c, err := New(21, 29.7, WithTitle("tiles"), WithCreationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.AddPage()
	if err := c.StrokeRect(1.5, 1.5, 6, 6, 0.01); err != nil {
		t.Fatalf("StrokeRect() error = %v", err)
	}
	if err := c.Text("Heroes", 4.5, 4.5, 5.5, render.Font{Size: 14, Bold: true}); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if err := c.Text("", 4.5, 6.5, 5.5, render.Font{Size: 18}); err != nil {
		t.Fatalf("Text(empty) error = %v", err)
	}
	c.AddPage()
	if err := c.Image(image.NewGray(image.Rect(0, 0, 32, 32)), 2.3, 2.3, 4.4, 4.4); err != nil {
		t.Fatalf("Image() error = %v", err)
	}

	if c.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", c.PageCount())
	}

	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestPointConversion(t *testing.T) {
	if got := pt(2.54); got < 71.999 || got > 72.001 {
		t.Errorf("pt(2.54) = %v, want 72", got)
	}
}
