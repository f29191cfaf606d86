// +build !linux

package udevwatch

import "errors"

// ListSerialDevices always returns an error on non-Linux hosts; go-udev is a
// netlink/sysfs binding with no portable equivalent here.
func ListSerialDevices() ([]string, error) {
	return nil, errors.New("udevwatch: device autodiscovery is only available on linux")
}
