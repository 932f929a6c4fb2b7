package display

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/mzdunek/monitorwatcher/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	ddcutilBinary = "ddcutil"
	// inputSelectFeature is the VCP feature code for input source selection.
	inputSelectFeature = "60"
)

// DDCUtil drives external displays through the ddcutil command-line tool
// (Linux).
type DDCUtil struct{}

func NewDDCUtil(ctx context.Context) (*DDCUtil, error) {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()
	if _, err := utils.RunCmd(ctx, ddcutilBinary, "--version"); err != nil {
		return nil, fmt.Errorf("ddcutil not available, install it from your distribution: %w", err)
	}
	return &DDCUtil{}, nil
}

func (d *DDCUtil) run(ctx context.Context, display string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	out, err := utils.RunCmd(ctx, ddcutilBinary, args...)
	if err != nil {
		return "", &CommandError{
			Display: display,
			Command: ddcutilBinary + " " + strings.Join(args, " "),
			Err:     err,
		}
	}
	return out, nil
}

func (d *DDCUtil) ListDisplays(ctx context.Context, detailed bool) (string, error) {
	if detailed {
		return d.run(ctx, "", "detect")
	}
	out, err := d.run(ctx, "", "detect", "--terse")
	if err != nil {
		return "", err
	}
	return formatDetectListing(out), nil
}

// formatDetectListing condenses `ddcutil detect --terse` output into the
// bracketed `[n] model` listing shared with the m1ddc controller.
func formatDetectListing(out string) string {
	var lines []string
	var current string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Display "):
			current = strings.TrimPrefix(line, "Display ")
		case strings.HasPrefix(line, "Monitor:") && current != "":
			// Monitor: DEL:DELL S2721DGF:ABC123
			parts := strings.Split(strings.TrimSpace(strings.TrimPrefix(line, "Monitor:")), ":")
			model := parts[0]
			if len(parts) > 1 {
				model = parts[1]
			}
			lines = append(lines, fmt.Sprintf("[%s] %s", current, model))
			current = ""
		}
	}
	return strings.Join(lines, "\n")
}

func (d *DDCUtil) GetInput(ctx context.Context, display string) (int, error) {
	out, err := d.run(ctx, display, "--display", display, "getvcp", inputSelectFeature, "--brief")
	if err != nil {
		logrus.WithError(err).WithField("display", display).Debug("Cant query current input")
		return 0, fmt.Errorf("%w: %w", errs.ErrInputStateUnknown, err)
	}
	// Brief output: VCP 60 SNC x11
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty ddcutil output", errs.ErrInputStateUnknown)
	}
	raw := strings.TrimPrefix(fields[len(fields)-1], "x")
	code, err := strconv.ParseInt(raw, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: unparsable ddcutil output %q", errs.ErrInputStateUnknown, out)
	}
	return int(code), nil
}

func (d *DDCUtil) SetInput(ctx context.Context, display string, inputCode int) error {
	_, err := d.run(ctx, display, "--display", display, "setvcp", inputSelectFeature, strconv.Itoa(inputCode))
	return err
}

func (d *DDCUtil) GetLuminance(ctx context.Context, display string) (string, error) {
	out, err := d.run(ctx, display, "--display", display, "getvcp", "10", "--brief")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) >= 2 {
		return fields[len(fields)-2], nil
	}
	return out, nil
}

func (d *DDCUtil) SetLuminance(ctx context.Context, display string, value int) error {
	_, err := d.run(ctx, display, "--display", display, "setvcp", "10", strconv.Itoa(value))
	return err
}

var _ Controller = &DDCUtil{}
