// Package modemcfg loads the modem's YAML configuration file,
// following deviceid.go's use of yaml.v3 for structured config load.
package modemcfg

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hambits/llpmodem/kiss"
)

type Config struct {
	LocalNetwork uint16 `yaml:"local_network"`
	LocalHost    uint16 `yaml:"local_host"`

	SerialDevice string `yaml:"serial_device"`
	BaudRate     int    `yaml:"baud_rate"`

	Framing      string `yaml:"framing"` // "kiss", "direct", "nmea"
	NMEASkip     int    `yaml:"nmea_skip_sentences"`
	TXMaxWaitMs  int    `yaml:"tx_max_wait_ms"`

	CSMAPersistence byte `yaml:"csma_p"`
	CSMASlotTimeMs  int  `yaml:"csma_slot_time_ms"`

	PassAll           bool `yaml:"pass_all"`
	OpenSquelch       bool `yaml:"open_squelch"`
	DisableInterleave bool `yaml:"disable_interleave"`

	PTTGPIOChip   string `yaml:"ptt_gpio_chip"`
	PTTGPIOLine   int    `yaml:"ptt_gpio_line"`
	PTTInvert     bool   `yaml:"ptt_invert"`
	RXLEDGPIOLine int    `yaml:"rx_led_gpio_line"`

	NetKISSAddr   string `yaml:"net_kiss_addr"`
	DNSSDName     string `yaml:"dns_sd_name"`
}

func Default() Config {
	return Config{
		LocalNetwork:    0xF000,
		LocalHost:       0x0001,
		BaudRate:        9600,
		Framing:         "kiss",
		TXMaxWaitMs:     5000,
		CSMAPersistence: 255,
		CSMASlotTimeMs:  200,
	}
}

// Load reads and merges a YAML config file over the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// FramingMode resolves the Framing string into a kiss.Mode, following
// the original firmware's compile-time SERIAL_FRAMING switch.
func (c Config) FramingMode() (kiss.Mode, error) {
	switch c.Framing {
	case "", "kiss":
		return kiss.ModeKISS, nil
	case "direct":
		return kiss.ModeDirect, nil
	case "nmea":
		return kiss.ModeNMEA, nil
	default:
		return 0, fmt.Errorf("unknown framing mode %q", c.Framing)
	}
}
