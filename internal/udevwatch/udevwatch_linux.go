// +build linux

// Package udevwatch finds candidate serial TNC devices on Linux by
// enumerating the "tty" udev subsystem, so llpmodem can offer a
// device picker instead of requiring an exact /dev/tty* path.
package udevwatch

import "github.com/jochenvg/go-udev"

// ListSerialDevices returns the /dev node paths of every currently
// attached tty device with a USB parent (the common case for a
// modem's serial adapter).
func ListSerialDevices() ([]string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("tty"); err != nil {
		return nil, err
	}
	if err := e.AddMatchIsInitialized(); err != nil {
		return nil, err
	}

	devices, err := e.Devices()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, d := range devices {
		if d.Devnode() == "" {
			continue
		}
		if d.ParentWithSubsystemDevtype("usb", "usb_device") == nil {
			continue
		}
		paths = append(paths, d.Devnode())
	}
	return paths, nil
}
