package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultManifest(t *testing.T) {
	m, err := DefaultManifest()
	if err != nil {
		t.Fatalf("DefaultManifest: %v", err)
	}

	if len(m.Swimmers.Models) != 14 {
		t.Errorf("expected 14 swimmers, got %d", len(m.Swimmers.Models))
	}
	if m.Rocks.Count != 99 || len(m.Rocks.Seeds) != 1 {
		t.Errorf("expected 99 rocks plus 1 seed, got %d + %d", m.Rocks.Count, len(m.Rocks.Seeds))
	}
	if m.Rocks.Seeds[0] != (mgl32.Vec3{0, -700, 0}) {
		t.Errorf("seed rock at %v", m.Rocks.Seeds[0])
	}
	if len(m.Fixtures) != 10 {
		t.Errorf("expected 10 fixtures, got %d", len(m.Fixtures))
	}

	sched := m.Swimmers.Schedule
	if len(sched) != 3 || sched[0].Category != FrontSwimmer || sched[2].Category != FigureEightSwimmer || sched[2].Count != 0 {
		t.Errorf("unexpected schedule %+v", sched)
	}

	h, ok := m.Handle("coral1")
	if !ok || m.Models[h].Rotation != (mgl32.Vec3{270, 0, 0}) {
		t.Errorf("coral1 rotation %v", m.Models[h].Rotation)
	}

	surfaces := 0
	for _, f := range m.Fixtures {
		if f.Surface {
			surfaces++
			if f.Blend != BlendTranslucent {
				t.Errorf("surface %s should be translucent", f.Name)
			}
		}
	}
	if surfaces != 1 {
		t.Errorf("expected exactly one surface, got %d", surfaces)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown model",
			yaml: "models: [{name: a, mesh: a.obj}]\nfixtures: [{name: x, model: b}]\n",
			want: `unknown model "b"`,
		},
		{
			name: "duplicate model",
			yaml: "models: [{name: a, mesh: a.obj}, {name: a, mesh: b.obj}]\n",
			want: "duplicate model",
		},
		{
			name: "bad category",
			yaml: "models: [{name: a, mesh: a.obj}]\nswimmers: {models: [a], schedule: [{category: shark}]}\n",
			want: "shark",
		},
		{
			name: "non-swimmer schedule",
			yaml: "models: [{name: a, mesh: a.obj}]\nswimmers: {models: [a], schedule: [{category: rock_cluster}]}\n",
			want: "non-swimmer",
		},
		{
			name: "open-ended group before another",
			yaml: "models: [{name: a, mesh: a.obj}, {name: b, mesh: b.obj}]\n" +
				"swimmers: {models: [a, b], schedule: [{category: front_swimmer}, {category: side_swimmer, count: 1}]}\n",
			want: "not last",
		},
		{
			name: "bad blend",
			yaml: "models: [{name: a, mesh: a.obj}]\nfixtures: [{name: x, model: a, blend: glass}]\n",
			want: "glass",
		},
		{
			name: "unknown key",
			yaml: "models: [{name: a, mesh: a.obj, colour: red}]\n",
			want: "colour",
		},
		{
			name: "bad format",
			yaml: "models: [{name: a, mesh: a.obj, format: bgr}]\n",
			want: "bgr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseManifestValidationIsWrapped(t *testing.T) {
	_, err := ParseManifest([]byte("models: [{name: a}]\n"))
	if !errors.Is(err, ErrManifest) {
		t.Errorf("expected ErrManifest, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	data := `
models:
  - {name: box, mesh: box.obj, texture: box.png}
fixtures:
  - {name: crate, model: box, position: [1, 2, 3], blend: translucent}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Fixtures) != 1 || m.Fixtures[0].Position != (mgl32.Vec3{1, 2, 3}) || m.Fixtures[0].Blend != BlendTranslucent {
		t.Errorf("unexpected fixtures %+v", m.Fixtures)
	}

	plan, err := PlanScene(m, 1)
	if err != nil {
		t.Fatalf("PlanScene: %v", err)
	}
	if plan.Registry.Len() != 1 {
		t.Errorf("expected 1 slot, got %d", plan.Registry.Len())
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
