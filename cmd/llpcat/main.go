// Command llpcat attaches to a running llpmodem, over TCP or a serial
// device, and prints received KISS frames — the monitoring role
// kissutil.go plays for the original TNC.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/hambits/llpmodem/internal/serial"
	"github.com/hambits/llpmodem/kiss"
)

func main() {
	hostname := pflag.StringP("hostname", "h", "localhost", "Hostname of TCP KISS TNC")
	port := pflag.StringP("port", "p", "8001", "Port, or a serial device path such as /dev/ttyACM0")
	serialSpeed := pflag.IntP("serial-speed", "s", 9600, "Serial port speed")
	timestampFormat := pflag.StringP("timestamp-format", "T", "", "Precede received frames with an strftime format time stamp")
	help := pflag.Bool("help", false, "Display help text")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "llpcat: attach to a KISS TNC and print received frames")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	onByte := newKISSDecoder(func(payload []byte) {
		printFrame(payload, *timestampFormat)
	})

	if isSerialPath(*port) {
		attachSerial(*port, *serialSpeed, onByte)
		return
	}
	attachTCP(*hostname, *port, onByte)
}

func isSerialPath(port string) bool {
	return len(port) > 0 && (port[0] < '0' || port[0] > '9')
}

func newKISSDecoder(deliver func(payload []byte)) func(byte) {
	ctx := kiss.NewContext(kiss.ModeKISS, time.Second, 0, deliver)
	return func(b byte) {
		now := time.Now()
		ctx.HandleByte(b, now)
		ctx.CheckTimeout(now)
	}
}

func printFrame(payload []byte, format string) {
	if format != "" {
		formatted, err := strftime.Format(format, time.Now())
		if err == nil {
			fmt.Printf("[%s] ", formatted)
		}
	}
	fmt.Printf("% X\n", payload)
}

func attachTCP(hostname, port string, onByte func(byte)) {
	conn, err := net.Dial("tcp", net.JoinHostPort(hostname, port))
	if err != nil {
		fmt.Fprintln(os.Stderr, "llpcat:", err)
		os.Exit(1)
	}
	defer conn.Close()

	buf := make([]byte, 1)
	for {
		n, err := conn.Read(buf)
		if n == 1 {
			onByte(buf[0])
		}
		if err != nil {
			return
		}
	}
}

func attachSerial(device string, speed int, onByte func(byte)) {
	p, err := serial.Open(device, speed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "llpcat:", err)
		os.Exit(1)
	}
	defer p.Close()

	for {
		b, err := p.GetByte()
		if err == serial.ErrNoData {
			continue
		}
		if err != nil {
			return
		}
		onByte(b)
	}
}
