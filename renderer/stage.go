package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type Stage string

const (
	StageVertex   Stage = "vert"
	StageGeometry Stage = "geom"
	StageFragment Stage = "frag"
)

func (stage Stage) glEnum() (uint32, error) {
	switch stage {
	case StageVertex:
		return gl.VERTEX_SHADER, nil
	case StageGeometry:
		return gl.GEOMETRY_SHADER, nil
	case StageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid pipeline stage: %q", stage)
}

func (stage Stage) String() string {
	switch stage {
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	}
	return string(stage)
}

// ParseStage parses a stage name like "frag" or "fragment".
func ParseStage(name string) (Stage, error) {
	for _, stage := range []Stage{StageVertex, StageGeometry, StageFragment} {
		if name == string(stage) || name == stage.String() {
			return stage, nil
		}
	}
	return "", fmt.Errorf("invalid pipeline stage: %q", name)
}

// StageFromFilename infers the pipeline stage from the file extension.
func StageFromFilename(filename string) (Stage, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".vert", ".vs":
		return StageVertex, nil
	case ".geom", ".gs":
		return StageGeometry, nil
	case ".frag", ".fs":
		return StageFragment, nil
	}
	return "", fmt.Errorf("unable to infer the pipeline stage of %q", filename)
}
