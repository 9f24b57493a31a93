package layout

// Group is a run of consecutive track indices [Start, End) sharing one
// front page and one back page.
type Group struct {
	Index int
	Start int
	End   int
}

// Len returns the number of tracks in the group.
func (g Group) Len() int { return g.End - g.Start }

// Partial reports whether the group holds fewer than capacity tracks.
func (g Group) Partial(capacity int) bool { return g.Len() < capacity }

// Partition splits n tracks into page groups of at most capacity tracks.
// Only the last group can be partial. n == 0 yields no groups.
func Partition(n, capacity int) []Group {
	if n <= 0 || capacity <= 0 {
		return nil
	}
	groups := make([]Group, 0, GroupCount(n, capacity))
	for start, i := 0, 0; start < n; start, i = start+capacity, i+1 {
		end := start + capacity
		if end > n {
			end = n
		}
		groups = append(groups, Group{Index: i, Start: start, End: end})
	}
	return groups
}

// GroupCount returns ceil(n / capacity).
func GroupCount(n, capacity int) int {
	if n <= 0 || capacity <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// PageCount returns the number of pages needed for n tracks: one front and
// one back page per group.
func PageCount(n, capacity int) int {
	return 2 * GroupCount(n, capacity)
}
