package hal

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// GUID is a firmware protocol identifier.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// ParseGUID parses the canonical 8-4-4-4-12 hex form.
func ParseGUID(s string) (GUID, error) {
	var g GUID

	parts := strings.Split(s, "-")
	if len(parts) != 5 || len(parts[0]) != 8 || len(parts[1]) != 4 ||
		len(parts[2]) != 4 || len(parts[3]) != 4 || len(parts[4]) != 12 {
		return g, fmt.Errorf("hal: malformed GUID %q", s)
	}

	raw, err := hex.DecodeString(strings.Join(parts, ""))
	if err != nil {
		return g, fmt.Errorf("hal: malformed GUID %q: %w", s, err)
	}

	g.Data1 = uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	g.Data2 = uint16(raw[4])<<8 | uint16(raw[5])
	g.Data3 = uint16(raw[6])<<8 | uint16(raw[7])
	copy(g.Data4[:], raw[8:])
	return g, nil
}

// MustParseGUID is ParseGUID for package-level identifiers.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

func (g GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%x-%x", g.Data1, g.Data2, g.Data3, g.Data4[:2], g.Data4[2:])
}
