// Package ddc holds the fixed DDC/CI input-select code table shared by the
// whole application. The codes are VCP values understood by real hardware
// and must not be altered.
package ddc

import "strings"

var inputCodes = map[string]int{
	"hdmi1": 17,
	"hdmi2": 18,
	"dp1":   15,
	"dp2":   16,
	"usbc":  27,
}

// InputCode resolves an input name (case-insensitive) to its VCP code.
func InputCode(name string) (int, bool) {
	code, ok := inputCodes[strings.ToLower(name)]
	return code, ok
}

// InputName returns the canonical uppercase name for a VCP code, or
// "UNKNOWN" when the code is outside the table.
func InputName(code int) string {
	for name, c := range inputCodes {
		if c == code {
			return strings.ToUpper(name)
		}
	}
	return "UNKNOWN"
}

// InputNames lists the known input names in a stable order.
func InputNames() []string {
	return []string{"hdmi1", "hdmi2", "dp1", "dp2", "usbc"}
}
