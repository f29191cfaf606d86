package ptt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLine is a test double for OutputLine that records calls without
// requiring GPIO hardware, following ptt_test.go's mockGPIODLine.
type mockLine struct {
	value  int
	closed bool
}

func (m *mockLine) SetValue(v int) error {
	m.value = v
	return nil
}

func (m *mockLine) Close() error {
	m.closed = true
	return nil
}

func TestController_SetPTT_Activate(t *testing.T) {
	line := &mockLine{}
	c := New(line, nil, false, false)

	require := assert.New(t)
	require.NoError(c.SetPTT(true))
	require.Equal(1, line.value, "line should be high when PTT is active")
}

func TestController_SetPTT_Deactivate(t *testing.T) {
	line := &mockLine{}
	c := New(line, nil, false, false)

	assert.NoError(t, c.SetPTT(false))
	assert.Equal(t, 0, line.value, "line should be low when PTT is inactive")
}

func TestController_SetPTT_Invert_Activate(t *testing.T) {
	line := &mockLine{}
	c := New(line, nil, true, false)

	assert.NoError(t, c.SetPTT(true))
	assert.Equal(t, 0, line.value, "inverted line should be low when PTT is active")
}

func TestController_SetPTT_Invert_Deactivate(t *testing.T) {
	line := &mockLine{}
	c := New(line, nil, true, false)

	assert.NoError(t, c.SetPTT(false))
	assert.Equal(t, 1, line.value, "inverted line should be high when PTT is inactive")
}

func TestController_NilLine_NoPanic(t *testing.T) {
	c := New(nil, nil, false, false)
	assert.NotPanics(t, func() {
		_ = c.SetPTT(true)
		c.PulseRXLED()
		c.ClearRXLED()
	})
}

func TestController_PulseRXLED(t *testing.T) {
	led := &mockLine{}
	c := New(nil, led, false, false)
	c.PulseRXLED()
	assert.Equal(t, 1, led.value)
	c.ClearRXLED()
	assert.Equal(t, 0, led.value)
}

func TestController_Close(t *testing.T) {
	pttLine := &mockLine{}
	led := &mockLine{}
	c := New(pttLine, led, false, false)
	assert.NoError(t, c.Close())
	assert.True(t, pttLine.closed)
	assert.True(t, led.closed)
}
