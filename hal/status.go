package hal

import "fmt"

// Status is a firmware call result. Every non-success Status is an error.
type Status uint8

// Values match the low bits of the corresponding EFI_STATUS codes.
const (
	StatusSuccess             Status = 0
	StatusLoadError           Status = 1
	StatusInvalidParameter    Status = 2
	StatusUnsupported         Status = 3
	StatusBadBufferSize       Status = 4
	StatusBufferTooSmall      Status = 5
	StatusNotReady            Status = 6
	StatusDeviceError         Status = 7
	StatusWriteProtected      Status = 8
	StatusOutOfResources      Status = 9
	StatusNotFound            Status = 14
	StatusAccessDenied        Status = 15
	StatusAlreadyStarted      Status = 20
	StatusProtocolError       Status = 24
	StatusIncompatibleVersion Status = 25
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusLoadError:
		return "load error"
	case StatusInvalidParameter:
		return "invalid parameter"
	case StatusUnsupported:
		return "unsupported"
	case StatusBadBufferSize:
		return "bad buffer size"
	case StatusBufferTooSmall:
		return "buffer too small"
	case StatusNotReady:
		return "not ready"
	case StatusDeviceError:
		return "device error"
	case StatusWriteProtected:
		return "write protected"
	case StatusOutOfResources:
		return "out of resources"
	case StatusNotFound:
		return "not found"
	case StatusAccessDenied:
		return "access denied"
	case StatusAlreadyStarted:
		return "already started"
	case StatusProtocolError:
		return "protocol error"
	case StatusIncompatibleVersion:
		return "incompatible version"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

func (s Status) Error() string {
	return "efi: " + s.String()
}

// Err returns nil for StatusSuccess and s otherwise.
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return s
}
