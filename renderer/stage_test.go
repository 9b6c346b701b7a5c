package renderer

import (
	"testing"
)

func TestStageFromFilename(t *testing.T) {
	valid := map[string]Stage{
		"main.vert":         StageVertex,
		"dir/shader.VS":     StageVertex,
		"a.geom":            StageGeometry,
		"a.gs":              StageGeometry,
		"effects/blur.frag": StageFragment,
		"blur.fs":           StageFragment,
	}
	for filename, expected := range valid {
		stage, err := StageFromFilename(filename)
		if err != nil {
			t.Errorf("error inferring stage of %q: %v", filename, err)
		}
		if stage != expected {
			t.Errorf("mismatched stage for %q: exp %v, got %v", filename, expected, stage)
		}
	}

	for _, filename := range []string{"lib.glsl", "frag", "main.vert.txt", ""} {
		if _, err := StageFromFilename(filename); err == nil {
			t.Errorf("expected an error while inferring the stage of %q", filename)
		}
	}
}

func TestParseStage(t *testing.T) {
	for _, name := range []string{"frag", "fragment"} {
		stage, err := ParseStage(name)
		if err != nil || stage != StageFragment {
			t.Errorf("unexpected result for %q: %v, %v", name, stage, err)
		}
	}
	if _, err := ParseStage("compute"); err == nil {
		t.Errorf("expected an error for an unsupported stage")
	}
}
