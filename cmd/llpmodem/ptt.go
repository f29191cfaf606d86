package main

import (
	"github.com/charmbracelet/log"

	"github.com/hambits/llpmodem/internal/modemcfg"
	"github.com/hambits/llpmodem/internal/ptt"
)

// openPTT opens the configured GPIO lines for transmitter keying and
// the RX LED. Line-open failures are logged and leave the
// corresponding line nil, so the modem still runs without GPIO
// hardware attached.
func openPTT(cfg modemcfg.Config) *ptt.Controller {
	pttLine, err := ptt.OpenLine(cfg.PTTGPIOChip, cfg.PTTGPIOLine)
	if err != nil {
		log.Error("opening PTT GPIO line", "err", err)
		pttLine = nil
	}

	var ledLine ptt.OutputLine
	if cfg.RXLEDGPIOLine != 0 {
		ledLine, err = ptt.OpenLine(cfg.PTTGPIOChip, cfg.RXLEDGPIOLine)
		if err != nil {
			log.Error("opening RX LED GPIO line", "err", err)
			ledLine = nil
		}
	}

	return ptt.New(pttLine, ledLine, cfg.PTTInvert, false)
}
