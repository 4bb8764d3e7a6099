package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/autocrate/autocrate/pkg/errors"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crate.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTemp(t, `
[product]
length = 100.0
width = 40.0
height = 50.0
weight = 300.0

[clearance]
side = 2.5
end = 2.5
above = 2.0
ground = 1.0

[options]
allow_light_skids = true
`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Product.Width != 40 {
		t.Errorf("Product.Width = %v, want 40", s.Product.Width)
	}
	if s.Clearance.Ground != 1 {
		t.Errorf("Clearance.Ground = %v, want 1", s.Clearance.Ground)
	}
	if !s.Options.AllowLightSkids {
		t.Error("Options.AllowLightSkids = false, want true")
	}
	if s.Options.ForceSmallBoard {
		t.Error("Options.ForceSmallBoard = true, want false (unset)")
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed TOML",
			content: `[product` + "\n",
		},
		{
			name: "fails validation",
			content: `
[product]
length = -5.0
width = 40.0
height = 50.0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("error code = %v, want INVALID_SPEC", errors.GetCode(err))
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("LoadFile() = nil, want error")
	}
}
