// Package window owns the glfw window, its OpenGL context and the keyboard.
package window

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/mogaika/heliview/config"
	"github.com/mogaika/heliview/input"
)

var keyNames = map[string]glfw.Key{
	"SPACE":         glfw.KeySpace,
	"APOSTROPHE":    glfw.KeyApostrophe,
	"COMMA":         glfw.KeyComma,
	"MINUS":         glfw.KeyMinus,
	"PERIOD":        glfw.KeyPeriod,
	"SLASH":         glfw.KeySlash,
	"SEMICOLON":     glfw.KeySemicolon,
	"EQUAL":         glfw.KeyEqual,
	"LEFT_BRACKET":  glfw.KeyLeftBracket,
	"RIGHT_BRACKET": glfw.KeyRightBracket,
	"BACKSLASH":     glfw.KeyBackslash,
	"GRAVE_ACCENT":  glfw.KeyGraveAccent,
	"ESCAPE":        glfw.KeyEscape,
	"ENTER":         glfw.KeyEnter,
	"TAB":           glfw.KeyTab,
	"BACKSPACE":     glfw.KeyBackspace,
	"INSERT":        glfw.KeyInsert,
	"DELETE":        glfw.KeyDelete,
	"RIGHT":         glfw.KeyRight,
	"LEFT":          glfw.KeyLeft,
	"DOWN":          glfw.KeyDown,
	"UP":            glfw.KeyUp,
	"PAGE_UP":       glfw.KeyPageUp,
	"PAGE_DOWN":     glfw.KeyPageDown,
	"HOME":          glfw.KeyHome,
	"END":           glfw.KeyEnd,
	"LEFT_SHIFT":    glfw.KeyLeftShift,
	"LEFT_CONTROL":  glfw.KeyLeftControl,
	"LEFT_ALT":      glfw.KeyLeftAlt,
	"RIGHT_SHIFT":   glfw.KeyRightShift,
	"RIGHT_CONTROL": glfw.KeyRightControl,
	"RIGHT_ALT":     glfw.KeyRightAlt,
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[string(c)] = glfw.KeyA + glfw.Key(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
	for i := 1; i <= 12; i++ {
		keyNames["F"+strconv.Itoa(i)] = glfw.KeyF1 + glfw.Key(i-1)
	}
}

// KeyByName resolves a key name like "W", "SPACE" or "PAGE_UP".
func KeyByName(name string) (glfw.Key, error) {
	if k, ok := keyNames[strings.ToUpper(name)]; ok {
		return k, nil
	}
	return glfw.KeyUnknown, errors.Errorf("unknown key %q", name)
}

// Window is both the frame clock and the command sampler of the viewer.
type Window struct {
	*glfw.Window

	keymap   *input.Keymap
	keys     map[string]glfw.Key
	lastTime float64
}

// Open creates the window and makes its OpenGL 4.3 core context current.
// It must be called from the main thread.
func Open(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrapf(err, "Failed to initialize glfw")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrapf(err, "Failed to create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	log.Printf("[window] opened %dx%d %q", cfg.Width, cfg.Height, cfg.Title)
	return &Window{Window: win, keymap: input.NewKeymap(nil)}, nil
}

// SetKeys installs the command bindings. Unknown key names are an error.
func (w *Window) SetKeys(bindings map[input.Command]string) error {
	keys := make(map[string]glfw.Key, len(bindings))
	for cmd, name := range bindings {
		k, err := KeyByName(name)
		if err != nil {
			return errors.Wrapf(err, "command %v", cmd)
		}
		keys[name] = k
	}
	w.keys = keys
	w.keymap = input.NewKeymap(bindings)
	return nil
}

// Sample polls events and reports the commands held down. Closing the window
// reads as a quit command.
func (w *Window) Sample() input.Set {
	glfw.PollEvents()
	cmds := w.keymap.Sample(func(name string) bool {
		return w.GetKey(w.keys[name]) == glfw.Press
	})
	if w.ShouldClose() {
		cmds[input.Quit] = true
	}
	return cmds
}

// Elapsed reports seconds since the previous call, 0 on the first one.
func (w *Window) Elapsed() float64 {
	now := glfw.GetTime()
	if w.lastTime == 0 {
		w.lastTime = now
		return 0
	}
	dt := now - w.lastTime
	w.lastTime = now
	return dt
}

func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
