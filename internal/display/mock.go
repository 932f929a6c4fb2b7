package display

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/sirupsen/logrus"
)

// Mock is an in-memory controller used by --dry-run; it records every state
// change instead of touching hardware.
type Mock struct {
	mu         sync.Mutex
	inputs     map[string]int
	luminances map[string]int
}

func NewMock() *Mock {
	logrus.Info("[dry run] Mock display controller initialized")
	return &Mock{
		inputs:     make(map[string]int),
		luminances: make(map[string]int),
	}
}

func (m *Mock) ListDisplays(ctx context.Context, detailed bool) (string, error) {
	if detailed {
		return `[1] DELL S2721DGF (Mock)
 - Product name:  DELL S2721DGF (Mock)
 - Manufacturer:  DEL
 - Display ID:    1
[2] DELL P2723DE (Mock)
 - Product name:  DELL P2723DE (Mock)
 - Manufacturer:  DEL
 - Display ID:    2
[3] Generic Monitor (Mock)
 - Product name:  Generic Monitor
 - Display ID:    3`, nil
	}
	return `[1] DELL S2721DGF (Mock)
[2] DELL P2723DE (Mock)
[3] Generic Monitor (Mock)`, nil
}

func (m *Mock) GetInput(ctx context.Context, display string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.inputs[display]
	if !ok {
		return 0, errs.ErrInputStateUnknown
	}
	logrus.WithFields(logrus.Fields{
		"display": display,
		"input":   ddc.InputName(code),
	}).Info("[dry run] Current input")
	return code, nil
}

func (m *Mock) SetInput(ctx context.Context, display string, inputCode int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[display] = inputCode
	logrus.WithFields(logrus.Fields{
		"display": display,
		"input":   ddc.InputName(inputCode),
		"code":    inputCode,
	}).Info("[dry run] Would set input")
	return nil
}

func (m *Mock) GetLuminance(ctx context.Context, display string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.luminances[display]
	if !ok {
		value = 50
	}
	return fmt.Sprintf("%d", value), nil
}

func (m *Mock) SetLuminance(ctx context.Context, display string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.luminances[display] = value
	logrus.WithFields(logrus.Fields{
		"display":   display,
		"luminance": value,
	}).Info("[dry run] Would set luminance")
	return nil
}

// StateSummary reports all state changes recorded during the dry run.
func (m *Mock) StateSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.inputs) == 0 && len(m.luminances) == 0 {
		return "No display state changes recorded"
	}

	var lines []string
	if len(m.inputs) > 0 {
		lines = append(lines, "Display state changes:")
		for _, display := range sortedKeys(m.inputs) {
			code := m.inputs[display]
			lines = append(lines, fmt.Sprintf("  Display %s: %s (code %d)", display, ddc.InputName(code), code))
		}
	}
	if len(m.luminances) > 0 {
		lines = append(lines, "Luminance changes:")
		for _, display := range sortedKeys(m.luminances) {
			lines = append(lines, fmt.Sprintf("  Display %s: %d", display, m.luminances[display]))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Controller = &Mock{}
