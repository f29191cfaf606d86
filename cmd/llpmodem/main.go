// Command llpmodem is the modem daemon: it wires the LLP core to a
// host serial port under one of the three KISS/DIRECT/NMEA framing
// modes, and arbitrates transmission with p-persistent slotted CSMA.
// It plays the role of the original firmware's main() init()+poll
// loop, hosted instead of bare-metal.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/hambits/llpmodem/internal/gps"
	"github.com/hambits/llpmodem/internal/modemcfg"
	"github.com/hambits/llpmodem/internal/netkiss"
	"github.com/hambits/llpmodem/internal/ptt"
	"github.com/hambits/llpmodem/internal/serial"
	"github.com/hambits/llpmodem/internal/udevwatch"
	"github.com/hambits/llpmodem/kiss"
	"github.com/hambits/llpmodem/llp"
)

// serialPort is the narrow interface the main loop drives; it's
// satisfied by both a real UART (internal/serial.Port) and the
// pty-backed stand-in (internal/serial.VirtualPort) so --virtual can
// swap one for the other without touching the loop itself.
type serialPort interface {
	Write([]byte) (int, error)
	GetByte() (byte, error)
	Close() error
}

func main() {
	configPath := pflag.StringP("config", "c", "", "Path to YAML configuration file")
	device := pflag.StringP("device", "d", "", "Serial device, overrides config")
	netAddr := pflag.StringP("net-kiss", "n", "", "Also serve KISS over TCP on this address, e.g. :8001")
	verbose := pflag.BoolP("verbose", "v", false, "Verbose logging")
	listDevices := pflag.Bool("list-devices", false, "List candidate serial TNC devices and exit")
	virtual := pflag.Bool("virtual", false, "Use a pseudo-TTY instead of a real serial device")
	virtualPath := pflag.String("virtual-path", "/tmp/llpmodem.pts", "Symlink path for --virtual's pseudo-TTY")
	help := pflag.Bool("help", false, "Display help text")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "llpmodem: Link-Layer Protocol modem daemon")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	if *listDevices {
		devices, err := udevwatch.ListSerialDevices()
		if err != nil {
			log.Fatal("listing serial devices", "err", err)
		}
		if len(devices) == 0 {
			fmt.Println("no candidate serial devices found")
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		return
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var cfg modemcfg.Config
	var err error
	if *configPath != "" {
		cfg, err = modemcfg.LoadFile(*configPath)
	} else {
		cfg = modemcfg.Default()
	}
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	if *device != "" {
		cfg.SerialDevice = *device
	}
	if *netAddr != "" {
		cfg.NetKISSAddr = *netAddr
	}

	framingMode, err := cfg.FramingMode()
	if err != nil {
		log.Fatal("resolving framing mode", "err", err)
	}

	var port serialPort
	if *virtual {
		vp, err := serial.OpenVirtual()
		if err != nil {
			log.Fatal("opening virtual serial port", "err", err)
		}
		if err := vp.Symlink(*virtualPath); err != nil {
			log.Warn("symlinking virtual serial port", "err", err)
		} else {
			defer os.Remove(*virtualPath)
		}
		log.Info("virtual pty ready", "slave", vp.SlaveName(), "symlink", *virtualPath)
		port = vp
	} else {
		p, err := serial.Open(cfg.SerialDevice, cfg.BaudRate)
		if err != nil {
			log.Fatal("opening serial port", "err", err)
		}
		port = p
	}
	defer port.Close()

	// The AFSK modem that would normally own this byte channel is an
	// external collaborator outside this component's scope (see
	// SPEC_FULL.md); the loopback channel stands in for it so the
	// LLP core here has a concrete, runnable Channel to drive.
	channel := llp.NewLoopbackChannel()

	var pttCtrl *ptt.Controller
	if cfg.PTTGPIOChip != "" {
		pttCtrl = openPTT(cfg)
		defer pttCtrl.Close()
	}

	local := llp.Address{Network: cfg.LocalNetwork, Host: cfg.LocalHost}

	var netServer *netkiss.Server
	deliverFrame := func(payload []byte) {} // set below once linkCtx exists

	kissCtx := kiss.NewContext(framingMode, time.Duration(cfg.TXMaxWaitMs)*time.Millisecond, cfg.NMEASkip, func(payload []byte) {
		deliverFrame(payload)
	})

	linkCtx := llp.NewContext(channel, local, func(ctx *llp.Context, payload []byte) {
		egress := kiss.Egress(framingMode, payload)
		_, _ = port.Write(egress)
		if netServer != nil {
			netServer.Broadcast(egress)
		}
		if framingMode == kiss.ModeNMEA {
			if fix, ok := gps.ParseGPGGA(string(payload)); ok {
				log.Debug("gps fix", "lat", fix.Latitude, "lon", fix.Longitude, "quality", fix.Quality)
			}
		}
	})
	linkCtx.Config.PassAll = cfg.PassAll
	linkCtx.Config.OpenSquelch = cfg.OpenSquelch
	linkCtx.Config.DisableInterleave = cfg.DisableInterleave

	if pttCtrl != nil {
		llp.SetRXLEDHook(pttCtrl.PulseRXLED)
	}

	deliverFrame = func(payload []byte) {
		kiss.RunCSMA(channel, kissCtx.Params().P, time.Duration(cfg.CSMASlotTimeMs)*time.Millisecond,
			linkCtx.Poll,
			func() {
				if pttCtrl != nil {
					_ = pttCtrl.SetPTT(true)
					defer pttCtrl.SetPTT(false)
				}
				linkCtx.Send(llp.Broadcast, payload)
			})
	}

	if cfg.NetKISSAddr != "" {
		netServer, err = netkiss.Listen(cfg.NetKISSAddr, func(b byte) {
			kissCtx.HandleByte(b, time.Now())
			kissCtx.CheckTimeout(time.Now())
		})
		if err != nil {
			log.Fatal("starting net-kiss server", "err", err)
		}
		go netServer.Serve()
		defer netServer.Close()

		if cfg.DNSSDName != "" {
			if stop, err := netkiss.Announce(cfg.DNSSDName, netServer.Addr().(*net.TCPAddr).Port); err != nil {
				log.Error("dns-sd announce failed", "err", err)
			} else {
				defer stop()
			}
		}
	}

	log.Info("llpmodem started", "device", cfg.SerialDevice, "framing", cfg.Framing, "local", local)

	for {
		linkCtx.Poll()
		kissCtx.CheckTimeout(time.Now())
		b, err := port.GetByte()
		if err != nil {
			continue
		}
		kissCtx.HandleByte(b, time.Now())
	}
}
