// Package layout maps a linear track index to its tile position on a
// double-sided printed sheet.
//
// # Grid
//
// Tiles are square and edge-adjacent by default, laid out in a fixed grid
// of Rows × Columns per page starting at the page margin. A run of
// Rows×Columns consecutive tracks forms a page group: one front page
// followed by one back page.
//
// # Mirroring
//
// Fronts use natural reading order. Backs keep the row and reflect the
// column:
//
//	backCol = (Columns-1) - (index mod Columns)
//
// When the sheet is flipped along its long edge the back cell lands behind
// the matching front cell. [MirrorColumn] is an involution, so applying it
// twice returns the original column.
//
// # Usage
//
//	opts := layout.DefaultOptions()
//	for _, g := range layout.Partition(len(tracks), opts.Capacity()) {
//	    for i := g.Start; i < g.End; i++ {
//	        front := opts.Front(i)
//	        back := opts.Back(i)
//	        ...
//	    }
//	}
//
// All functions are pure and total over non-negative indices.
package layout
