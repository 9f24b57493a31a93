package layout

import (
	"testing"

	"github.com/matzehuels/songtiles/pkg/errors"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Capacity() != 12 {
		t.Errorf("Capacity() = %d, want 12", o.Capacity())
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o != DefaultOptions() {
		t.Errorf("SetDefaults() = %+v, want %+v", o, DefaultOptions())
	}

	o = Options{TileSize: 5, Columns: 4}
	o.SetDefaults()
	if o.TileSize != 5 || o.Columns != 4 || o.Rows != DefaultRows {
		t.Errorf("SetDefaults() overrode set fields: %+v", o)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"zero tile", func(o *Options) { o.TileSize = 0 }, true},
		{"no columns", func(o *Options) { o.Columns = 0 }, true},
		{"negative margin", func(o *Options) { o.Margin = -1 }, true},
		{"too wide", func(o *Options) { o.Columns = 4 }, true},
		{"too tall", func(o *Options) { o.Rows = 5 }, true},
		{"smaller tiles fit more", func(o *Options) { o.TileSize = 4; o.Columns = 4; o.Rows = 6 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}
