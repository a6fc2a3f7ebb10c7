package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilescape/internal/mesh"
)

func TestDefaultRulesLookup(t *testing.T) {
	rs := DefaultRules()

	if rs.Lookup("buildings").Fill != mesh.RGBA(0xf2, 0xf0, 0xe6, 0xff) {
		t.Error("buildings rule has wrong fill")
	}
	if rs.Lookup("no-such-layer").Fill != mesh.RGBA(0xaa, 0xaa, 0xaa, 0xff) {
		t.Error("unknown layer should use the default fill")
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
buildings:
  fill: "#112233"
  extrude: false
parks:
  fill: "#00ff0080"
default:
  fill: "#ffffff"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	b := rs.Lookup("buildings")
	if b.Fill != mesh.RGBA(0x11, 0x22, 0x33, 0xff) {
		t.Errorf("buildings fill = %v", b.Fill)
	}
	if b.Extrude {
		t.Error("buildings extrude should be false")
	}

	p := rs.Lookup("parks")
	if p.Fill != mesh.RGBA(0x00, 0xff, 0x00, 0x80) {
		t.Errorf("parks fill = %v", p.Fill)
	}
	if !p.Extrude {
		t.Error("extrude should default to true")
	}

	// Untouched layers keep their built-in rules.
	if rs.Lookup("water").Fill != mesh.RGBA(0x1a, 0x7d, 0x91, 0xff) {
		t.Error("water rule should keep its default")
	}
	// The default entry replaces the fallback.
	if rs.Lookup("anything").Fill != mesh.RGBA(0xff, 0xff, 0xff, 0xff) {
		t.Error("default entry should replace the fallback fill")
	}
}

func TestLoadRulesBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("roads:\n  fill: \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("invalid color should fail to load")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules("/nonexistent/rules.yaml"); err == nil {
		t.Error("missing file should return an error")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    mesh.Color
		wantErr bool
	}{
		{"#ffffff", mesh.RGBA(0xff, 0xff, 0xff, 0xff), false},
		{"#1a2b3c", mesh.RGBA(0x1a, 0x2b, 0x3c, 0xff), false},
		{"#1a2b3c80", mesh.RGBA(0x1a, 0x2b, 0x3c, 0x80), false},
		{"ffffff", mesh.Color{}, true},
		{"#fff", mesh.Color{}, true},
		{"", mesh.Color{}, true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
