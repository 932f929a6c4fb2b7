package display

import (
	"context"
	"errors"
	"testing"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDDCUtil_GetInput(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		runErr      error
		expected    int
		expectError bool
	}{
		{
			name:     "brief hex output",
			output:   "VCP 60 SNC x11",
			expected: 17,
		},
		{
			name:     "displayport code",
			output:   "VCP 60 SNC x0f",
			expected: 15,
		},
		{
			name:        "command failure",
			runErr:      errors.New("ddc communication failed"),
			expectError: true,
		},
		{
			name:        "empty output",
			output:      "",
			expectError: true,
		},
		{
			name:        "garbage output",
			output:      "VCP 60 SNC zz",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := mockRunCmd(t, tt.output, tt.runErr)
			d := &DDCUtil{}

			code, err := d.GetInput(context.Background(), "1")

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInputStateUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
			require.Len(t, *calls, 1)
			assert.Equal(t, "ddcutil", (*calls)[0].name)
			assert.Equal(t, []string{"--display", "1", "getvcp", "60", "--brief"}, (*calls)[0].args)
		})
	}
}

func TestDDCUtil_SetInput(t *testing.T) {
	calls := mockRunCmd(t, "", nil)
	d := &DDCUtil{}

	require.NoError(t, d.SetInput(context.Background(), "2", 27))
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"--display", "2", "setvcp", "60", "27"}, (*calls)[0].args)
}

func TestFormatDetectListing(t *testing.T) {
	out := `Display 1
   I2C bus: /dev/i2c-4
   Monitor: DEL:DELL S2721DGF:ABC123

Display 2
   I2C bus: /dev/i2c-5
   Monitor: DEL:DELL P2723DE:XYZ789
`

	listing := formatDetectListing(out)

	assert.Equal(t, "[1] DELL S2721DGF\n[2] DELL P2723DE", listing)
	assert.Equal(t, []string{"1", "2"}, ExtractDisplayIDs(listing))
}
