// Package input defines the discrete commands the viewer reacts to.
// Device sampling lives elsewhere; this package only names the commands.
package input

import (
	"sort"

	"github.com/pkg/errors"
)

type Command int

const (
	CameraForward Command = iota
	CameraBack
	CameraLeft
	CameraRight
	CameraUp
	CameraDown
	CameraYawLeft
	CameraYawRight
	CameraPitchUp
	CameraPitchDown
	CameraRollLeft
	CameraRollRight
	CameraReset

	ToggleChase
	Quit

	PilotForward
	PilotBack
	PilotTurnLeft
	PilotTurnRight
	PilotAscend
	PilotDescend

	commandsCount
)

var commandNames = [commandsCount]string{
	CameraForward:   "camera_forward",
	CameraBack:      "camera_back",
	CameraLeft:      "camera_left",
	CameraRight:     "camera_right",
	CameraUp:        "camera_up",
	CameraDown:      "camera_down",
	CameraYawLeft:   "camera_yaw_left",
	CameraYawRight:  "camera_yaw_right",
	CameraPitchUp:   "camera_pitch_up",
	CameraPitchDown: "camera_pitch_down",
	CameraRollLeft:  "camera_roll_left",
	CameraRollRight: "camera_roll_right",
	CameraReset:     "camera_reset",
	ToggleChase:     "toggle_chase",
	Quit:            "quit",
	PilotForward:    "pilot_forward",
	PilotBack:       "pilot_back",
	PilotTurnLeft:   "pilot_turn_left",
	PilotTurnRight:  "pilot_turn_right",
	PilotAscend:     "pilot_ascend",
	PilotDescend:    "pilot_descend",
}

func (c Command) String() string {
	if c < 0 || c >= commandsCount {
		return "unknown"
	}
	return commandNames[c]
}

// Toggle reports whether the command flips state and so must only be
// reported on the tick its key goes down.
func (c Command) Toggle() bool {
	return c == ToggleChase || c == CameraReset || c == Quit
}

func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return Command(c), nil
		}
	}
	return 0, errors.Errorf("unknown command %q", name)
}

// All returns every command in declaration order.
func All() []Command {
	all := make([]Command, commandsCount)
	for i := range all {
		all[i] = Command(i)
	}
	return all
}

// Set maps a command to whether it is active this tick.
type Set map[Command]bool

func Of(cmds ...Command) Set {
	s := make(Set, len(cmds))
	for _, c := range cmds {
		s[c] = true
	}
	return s
}

func (s Set) Active(c Command) bool { return s[c] }

// Names returns the active command names, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for c, active := range s {
		if active {
			names = append(names, c.String())
		}
	}
	sort.Strings(names)
	return names
}
