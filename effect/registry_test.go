package effect

import (
	"errors"
	"slices"
	"testing"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

func dummyFactory(Params) (layer.Effect, error) {
	return NewBrightness(val.Const(0.0)), nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()

		err := r.Register("glow", dummyFactory)
		if err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}

		if f := r.Lookup("glow"); f == nil {
			t.Fatal("Lookup returned nil for registered type")
		}
	})

	t.Run("rejects empty effect type", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("", dummyFactory); err == nil {
			t.Fatal("expected error for empty effect type")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("glow", nil); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		_ = r.Register("glow", dummyFactory)

		err := r.Register("glow", dummyFactory)
		if !errors.Is(err, errDuplicateEffect) {
			t.Errorf("expected errDuplicateEffect, got: %v", err)
		}
	})

	t.Run("MustRegister panics on duplicate", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Fatal("MustRegister did not panic")
			}
		}()
		r := NewRegistry()
		r.MustRegister("glow", dummyFactory)
		r.MustRegister("glow", dummyFactory)
	})
}

func TestDefaultRegistryNames(t *testing.T) {
	t.Parallel()

	want := []string{"brightness", "channels", "chromakey", "contrast", "gaussianblur", "grayscale", "pixelate"}
	if got := DefaultRegistry().Names(); !slices.Equal(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
}

func TestRegistryNew(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"brightness", Params{Type: "brightness", Num: map[string]val.Value[float64]{"amount": val.Const(10.0)}}, nil},
		{"contrast defaults", Params{Type: "contrast"}, nil},
		{"grayscale", Params{Type: "grayscale"}, nil},
		{"channels", Params{Type: "channels", Num: map[string]val.Value[float64]{"a": val.Const(0.5)}}, nil},
		{"pixelate", Params{Type: "pixelate"}, nil},
		{"blur", Params{Type: "gaussianblur", Num: map[string]val.Value[float64]{"radius": val.Const(3.0)}}, nil},
		{"chromakey", Params{Type: "chromakey", Str: map[string]string{"target": "lime", "interpolate": "true"}}, nil},
		{"unknown", Params{Type: "sepia"}, ErrUnknownEffect},
		{"chromakey without target", Params{Type: "chromakey"}, ErrInvalidParameter},
		{"chromakey bad colour", Params{Type: "chromakey", Str: map[string]string{"target": "nope"}}, ErrInvalidParameter},
		{"chromakey bad bool", Params{Type: "chromakey", Str: map[string]string{"target": "red", "interpolate": "maybe"}}, ErrInvalidParameter},
		{"blur negative radius", Params{Type: "gaussianblur", Num: map[string]val.Value[float64]{"radius": val.Const(-2.0)}}, ErrInvalidParameter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fx, err := r.New(tc.params)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("New error = %v, want %v", err, tc.wantErr)
				}
				if fx != nil {
					t.Fatal("New returned an effect alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !fx.Enabled() {
				t.Fatal("effect built disabled")
			}
		})
	}
}

func TestRegistryNewDisabled(t *testing.T) {
	t.Parallel()

	fx, err := DefaultRegistry().New(Params{Type: "grayscale", Disabled: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if fx.Enabled() {
		t.Fatal("Disabled param ignored")
	}
}
