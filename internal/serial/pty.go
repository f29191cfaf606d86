package serial

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// VirtualPort is a pseudo-TTY-backed stand-in for a real UART,
// exposed as a named symlink so a host KISS client can attach without
// real hardware — the same role kisspt_open_pt plays for the
// original KISS TNC pseudo-terminal, reimplemented on creack/pty
// instead of raw cgo pty syscalls.
type VirtualPort struct {
	master *os.File
	slave  *os.File
}

func OpenVirtual() (*VirtualPort, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pseudo terminal: %w", err)
	}
	return &VirtualPort{master: master, slave: slave}, nil
}

// SlaveName is the path a client should open, e.g. /dev/pts/4.
func (v *VirtualPort) SlaveName() string {
	return v.slave.Name()
}

func (v *VirtualPort) Write(data []byte) (int, error) {
	return v.master.Write(data)
}

func (v *VirtualPort) GetByte() (byte, error) {
	buf := make([]byte, 1)
	n, err := v.master.Read(buf)
	if n != 1 {
		return 0, err
	}
	return buf[0], nil
}

func (v *VirtualPort) Close() error {
	v.slave.Close()
	return v.master.Close()
}

// Symlink points path at the pseudo-terminal's slave device, removing
// any stale link left behind from a previous run first, so a KISS
// client can always attach at a fixed, predictable path instead of
// the kernel-assigned /dev/pts/N.
func (v *VirtualPort) Symlink(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale symlink %s: %w", path, err)
	}
	if err := os.Symlink(v.SlaveName(), path); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", path, v.SlaveName(), err)
	}
	return nil
}
