package fonts

import "testing"

func TestAll(t *testing.T) {
	faces := All()
	if len(faces) != 2 {
		t.Fatalf("All() returned %d faces, want 2", len(faces))
	}
	seen := map[string]bool{}
	for _, f := range faces {
		if len(f.TTF) == 0 {
			t.Errorf("face %q has no data", f.Name)
		}
		if seen[f.Name] {
			t.Errorf("duplicate face %q", f.Name)
		}
		seen[f.Name] = true
	}
	if !seen[Regular] || !seen[Bold] {
		t.Errorf("missing faces: %v", seen)
	}
}
