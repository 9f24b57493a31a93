package layout

// Face selects which side of the sheet a placement is for.
type Face int

const (
	FaceFront Face = iota
	FaceBack
)

func (f Face) String() string {
	if f == FaceBack {
		return "back"
	}
	return "front"
}

// Cell is the grid position of a tile within its page group.
type Cell struct {
	Group    int // page group index
	Row      int
	ColFront int
	ColBack  int
}

// PlacementFor computes the grid cell of a track index for a page holding
// capacity tiles in rows of columns.
func PlacementFor(index, capacity, columns int) Cell {
	colFront := index % columns
	return Cell{
		Group:    index / capacity,
		Row:      (index % capacity) / columns,
		ColFront: colFront,
		ColBack:  MirrorColumn(colFront, columns),
	}
}

// MirrorColumn reflects col horizontally within a row of columns cells.
func MirrorColumn(col, columns int) int {
	return columns - 1 - col
}

// Placement is the physical position of one tile face.
type Placement struct {
	Index int     `json:"index"` // track index
	Face  Face    `json:"face"`
	Page  int     `json:"page"` // zero-based document page
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"` // left edge
	Y     float64 `json:"y"` // top edge
	Size  float64 `json:"size"`
}

// CenterX returns the horizontal centre of the tile.
func (p Placement) CenterX() float64 { return p.X + p.Size/2 }

// CenterY returns the vertical centre of the tile.
func (p Placement) CenterY() float64 { return p.Y + p.Size/2 }

// Front returns the front-face placement of track index. Front pages are
// the even document pages 0, 2, 4, ...
func (o Options) Front(index int) Placement {
	c := PlacementFor(index, o.Capacity(), o.Columns)
	return o.place(index, FaceFront, 2*c.Group, c.Row, c.ColFront)
}

// Back returns the back-face placement of track index, on the page right
// after its group's front page and in the mirrored column.
func (o Options) Back(index int) Placement {
	c := PlacementFor(index, o.Capacity(), o.Columns)
	return o.place(index, FaceBack, 2*c.Group+1, c.Row, c.ColBack)
}

func (o Options) place(index int, face Face, page, row, col int) Placement {
	return Placement{
		Index: index,
		Face:  face,
		Page:  page,
		Row:   row,
		Col:   col,
		X:     o.Margin + float64(col)*o.Pitch(),
		Y:     o.Margin + float64(row)*o.Pitch(),
		Size:  o.TileSize,
	}
}
