package modemcfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambits/llpmodem/kiss"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	yaml := `
local_network: 61696
local_host: 2
serial_device: /dev/ttyUSB0
framing: direct
csma_p: 128
`
	cfg, err := Load(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, uint16(61696), cfg.LocalNetwork)
	assert.Equal(t, uint16(2), cfg.LocalHost)
	assert.Equal(t, "/dev/ttyUSB0", cfg.SerialDevice)
	assert.Equal(t, byte(128), cfg.CSMAPersistence)

	mode, err := cfg.FramingMode()
	require.NoError(t, err)
	assert.Equal(t, kiss.ModeDirect, mode)
}

func TestDefault_KISSFraming(t *testing.T) {
	cfg := Default()
	mode, err := cfg.FramingMode()
	require.NoError(t, err)
	assert.Equal(t, kiss.ModeKISS, mode)
}

func TestFramingMode_Unknown(t *testing.T) {
	cfg := Default()
	cfg.Framing = "bogus"
	_, err := cfg.FramingMode()
	assert.Error(t, err)
}
