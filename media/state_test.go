package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateNext(t *testing.T) {
	tests := []struct {
		from, target, expected State
	}{
		{StateNull, StatePlaying, StateReady},
		{StateReady, StatePlaying, StatePaused},
		{StatePaused, StatePlaying, StatePlaying},
		{StatePlaying, StateNull, StatePaused},
		{StateReady, StateNull, StateNull},
		{StatePaused, StatePaused, StatePaused},
	}
	for _, test := range tests {
		t.Run(test.from.String()+" to "+test.target.String(), func(t *testing.T) {
			assert.Equal(t, test.expected, test.from.Next(test.target))
		})
	}
}

func TestStateValid(t *testing.T) {
	assert.False(t, StateVoidPending.Valid())
	assert.True(t, StateNull.Valid())
	assert.True(t, StatePlaying.Valid())
	assert.False(t, State(10).Valid())
	assert.Equal(t, "State(10)", State(10).String())
}

func TestCaps(t *testing.T) {
	c := NewCaps("audio/x-raw", map[string]interface{}{
		"rate":     48000,
		"channels": 2,
	})
	assert.Equal(t, "audio/x-raw, channels=2, rate=48000", c.String())
	c = c.Append(Structure{Name: "audio/x-alaw"})
	assert.Equal(t, 2, c.Size())
	s, ok := c.Structure(1)
	assert.True(t, ok)
	assert.Equal(t, "audio/x-alaw", s.Name)
	_, ok = c.Structure(2)
	assert.False(t, ok)
	assert.True(t, Caps{}.IsEmpty())
	assert.Equal(t, "EMPTY", Caps{}.String())
}
