package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandRoundTrip(t *testing.T) {
	for _, c := range All() {
		parsed, err := ParseCommand(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCommand("barrel_roll")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Command(-1).String())
}

func TestSet(t *testing.T) {
	s := Of(CameraForward, ToggleChase)
	s[Quit] = false

	assert.True(t, s.Active(CameraForward))
	assert.False(t, s.Active(Quit))
	assert.False(t, Set(nil).Active(Quit))
	assert.Equal(t, []string{"camera_forward", "toggle_chase"}, s.Names())
}

func TestToggleCommands(t *testing.T) {
	assert.True(t, ToggleChase.Toggle())
	assert.True(t, CameraReset.Toggle())
	assert.False(t, CameraForward.Toggle())
	assert.False(t, PilotAscend.Toggle())
}
