package record

import (
	"bytes"
	"encoding/json"
	"image"
	"testing"

	"github.com/matzehuels/songtiles/pkg/render"
)

func TestCanvasRecordsPerPage(t *testing.T) {
	c := New()
	if err := c.StrokeRect(0, 0, 1, 1, 0.01); err == nil {
		t.Error("StrokeRect before AddPage should fail")
	}

	c.AddPage()
	_ = c.StrokeRect(1, 2, 3, 3, 0.01)
	_ = c.Text("hello", 2.5, 3, 2, render.Font{Size: 12})
	c.AddPage()
	_ = c.Image(image.NewGray(image.Rect(0, 0, 10, 10)), 1, 1, 4, 4)

	if c.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", c.PageCount())
	}
	p0 := c.Pages()[0]
	if p0.Count(KindRect) != 1 || p0.Count(KindText) != 1 || p0.Count(KindImage) != 0 {
		t.Errorf("page 0 ops = %+v", p0.Ops)
	}
	if texts := p0.Texts(); len(texts) != 1 || texts[0].Text != "hello" {
		t.Errorf("Texts() = %+v", texts)
	}
	p1 := c.Pages()[1]
	if p1.Count(KindImage) != 1 || p1.Ops[0].Pixels != 10 {
		t.Errorf("page 1 ops = %+v", p1.Ops)
	}
}

func TestCanvasRejectsNilImage(t *testing.T) {
	c := New()
	c.AddPage()
	if err := c.Image(nil, 0, 0, 1, 1); err == nil {
		t.Error("Image(nil) should fail")
	}
}

func TestFinish(t *testing.T) {
	c := New()
	c.AddPage()
	_ = c.StrokeRect(1, 1, 6, 6, 0.01)

	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	var out struct {
		Pages []Page `json:"pages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(out.Pages) != 1 || len(out.Pages[0].Ops) != 1 || out.Pages[0].Ops[0].W != 6 {
		t.Errorf("decoded = %+v", out)
	}

	if err := c.Finish(&buf); err == nil {
		t.Error("second Finish should fail")
	}
	if err := c.StrokeRect(0, 0, 1, 1, 0.01); err == nil {
		t.Error("drawing after Finish should fail")
	}
}
