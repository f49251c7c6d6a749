package r3d

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

var glConstToString = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "API",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW SYSTEM",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER COMPILER",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD PARTY",
	gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
	gl.DEBUG_SOURCE_OTHER:           "OTHER",

	gl.DEBUG_TYPE_ERROR:               "ERROR",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED BEHAVIOR",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED BEHAVIOR",
	gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
	gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
	gl.DEBUG_TYPE_OTHER:               "OTHER",
	gl.DEBUG_TYPE_MARKER:              "MARKER",

	gl.DEBUG_SEVERITY_HIGH:         "HIGH",
	gl.DEBUG_SEVERITY_MEDIUM:       "MEDIUM",
	gl.DEBUG_SEVERITY_LOW:          "LOW",
	gl.DEBUG_SEVERITY_NOTIFICATION: "NOTIFICATION",
}

// EnableDebugOutput routes driver messages to the log. Errors panic so they
// surface at the call that caused them.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageCallback(openglLogCallback, nil)
}

func openglLogCallback(source uint32, gltype uint32, id uint32,
	severity uint32, length int32, message string, userParam unsafe.Pointer) {

	if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
		return
	}
	log.Printf("[gl] id:%v severity:%v src:%v type:%v %q",
		id, glConstToString[severity], glConstToString[source], glConstToString[gltype], message)
	if gltype == gl.DEBUG_TYPE_ERROR {
		panic(message)
	}
}
