package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/mzdunek/monitorwatcher/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	m1ddcBinary         = "m1ddc"
	availabilityTimeout = 5 * time.Second
	commandTimeout      = 10 * time.Second
)

// M1DDC drives external displays through the m1ddc command-line tool
// (Apple Silicon macOS).
type M1DDC struct{}

func NewM1DDC(ctx context.Context) (*M1DDC, error) {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()
	if _, err := utils.RunCmd(ctx, m1ddcBinary, "--help"); err != nil {
		return nil, fmt.Errorf("m1ddc not available, install it with `brew install m1ddc`: %w", err)
	}
	return &M1DDC{}, nil
}

func (m *M1DDC) run(ctx context.Context, display string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	out, err := utils.RunCmd(ctx, m1ddcBinary, args...)
	if err != nil {
		return "", &CommandError{
			Display: display,
			Command: m1ddcBinary + " " + strings.Join(args, " "),
			Err:     err,
		}
	}
	return out, nil
}

func (m *M1DDC) ListDisplays(ctx context.Context, detailed bool) (string, error) {
	args := []string{"display", "list"}
	if detailed {
		args = append(args, "detailed")
	}
	return m.run(ctx, "", args...)
}

func (m *M1DDC) GetInput(ctx context.Context, display string) (int, error) {
	out, err := m.run(ctx, display, "display", display, "get", "input")
	if err != nil {
		logrus.WithError(err).WithField("display", display).Debug("Cant query current input")
		return 0, fmt.Errorf("%w: %w", errs.ErrInputStateUnknown, err)
	}
	code, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("%w: unparsable m1ddc output %q", errs.ErrInputStateUnknown, out)
	}
	return code, nil
}

func (m *M1DDC) SetInput(ctx context.Context, display string, inputCode int) error {
	_, err := m.run(ctx, display, "display", display, "set", "input", strconv.Itoa(inputCode))
	return err
}

func (m *M1DDC) GetLuminance(ctx context.Context, display string) (string, error) {
	return m.run(ctx, display, "display", display, "get", "luminance")
}

func (m *M1DDC) SetLuminance(ctx context.Context, display string, value int) error {
	_, err := m.run(ctx, display, "display", display, "set", "luminance", strconv.Itoa(value))
	return err
}

var _ Controller = &M1DDC{}
