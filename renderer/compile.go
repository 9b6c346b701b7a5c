package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/polyfloyd/shaderprep/errorformat"
	"github.com/polyfloyd/shaderprep/preprocessor"
)

// CompileShader compiles the chunks as a single shader. Each chunk is passed
// to OpenGL as a separate source string so locations in the info log can be
// mapped back to the files the chunks were read from.
//
// The returned log contains the remapped compiler output, if any, and may
// hold warnings for a shader that compiled successfully.
func CompileShader[C any](stage Stage, chunks []preprocessor.SourceChunk[C]) (uint32, string, error) {
	glStage, err := stage.glEnum()
	if err != nil {
		return 0, "", err
	}
	if len(chunks) == 0 {
		return 0, "", fmt.Errorf("no source to compile for the %s stage", stage)
	}

	var rawLog string
	out := errorformat.Compile(chunks, func(sources []string) errorformat.CompilerOutput[uint32] {
		terminated := make([]string, len(sources))
		for i, s := range sources {
			terminated[i] = s + "\x00"
		}

		shader := gl.CreateShader(glStage)
		csources, free := gl.Strs(terminated...)
		gl.ShaderSource(shader, int32(len(terminated)), csources, nil)
		free()
		gl.CompileShader(shader)

		rawLog = shaderInfoLog(shader)
		var status int32
		gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
		if status == gl.FALSE {
			gl.DeleteShader(shader)
			shader = 0
		}
		return errorformat.CompilerOutput[uint32]{Artifact: shader, Log: rawLog}
	})

	if out.Artifact == 0 {
		return 0, out.Log, CompileError{
			Stage:   stage,
			Log:     out.Log,
			Markers: errorformat.Markers(chunks, rawLog),
		}
	}
	return out.Artifact, out.Log, nil
}

func shaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// LinkProgram links the compiled shaders into a program. The shaders are
// detached afterwards, but not deleted.
func LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)

	var linkErr error
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		linkErr = LinkError{Log: strings.TrimRight(log, "\x00")}
	}

	for _, sh := range shaders {
		gl.DetachShader(program, sh)
	}
	if linkErr != nil {
		gl.DeleteProgram(program)
		return 0, linkErr
	}
	return program, nil
}

type CompileError struct {
	Stage Stage
	// Log is the compiler's info log with all locations remapped to the
	// original files.
	Log     string
	Markers []errorformat.Marker
}

func (err CompileError) Error() string {
	return fmt.Sprintf("error compiling %s shader:\n%s", err.Stage, err.Log)
}

// PrettyPrint writes one line per diagnostic. If the compiler's log could not
// be parsed, the log is written as is.
func (err CompileError) PrettyPrint(out io.Writer, color bool) {
	if len(err.Markers) == 0 {
		fmt.Fprintln(out, err.Error())
		return
	}
	for _, m := range err.Markers {
		if color {
			fmt.Fprintf(out, "\x1b[1m%s\x1b[0m: \x1b[31m%s\x1b[0m\n", m.Location(), m.Message)
		} else {
			fmt.Fprintln(out, m.String())
		}
	}
}

type LinkError struct {
	Log string
}

func (err LinkError) Error() string {
	return fmt.Sprintf("error linking program:\n%s", err.Log)
}
