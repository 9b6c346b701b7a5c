package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type DebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

func (dm DebugMessage) SeverityString() string {
	switch dm.Severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "note"
	default:
		return ""
	}
}

func (dm DebugMessage) String() string {
	return fmt.Sprintf("[%s] %s", dm.SeverityString(), dm.Message)
}

// DebugMessages enables debug output of the current context. Messages are
// dropped if the channel is not drained.
//
// Nil is returned if the driver does not support KHR_debug.
func DebugMessages() <-chan DebugMessage {
	if !hasExtension("GL_KHR_debug") {
		return nil
	}
	ch := make(chan DebugMessage, 32)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source, typ, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		select {
		case ch <- DebugMessage{
			ID:       id,
			Source:   source,
			Type:     typ,
			Severity: severity,
			Message:  message,
		}:
		default:
		}
	}, nil)
	return ch
}

func hasExtension(name string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := uint32(0); i < uint32(n); i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i)) == name {
			return true
		}
	}
	return false
}
