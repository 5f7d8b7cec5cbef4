//go:build unit
// +build unit

package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "elri-cli"}
	root.PersistentFlags().String(ConfigFlag, "", "")
	require.NoError(t, InitBCP47Commands(root))

	var out bytes.Buffer
	root.SetOut(&out)
	return root, &out
}

func TestVariantsCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Script", []string{"bcp47", "variants", "--lang", "el", "--script", "Latn"}, "Monotonic Greek\nPolytonic Greek\n"},
		{"Variant", []string{"bcp47", "variants", "--lang", "sl", "--variant", "biske"}, "Standardized Resian orthography\n"},
		{"Language", []string{"bcp47", "variants", "--lang", "sl"}, "Natisone dialect\nResian\n"},
		{"Unknown", []string{"bcp47", "variants", "--lang", "xx"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newTestRoot(t)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String(ConfigFlag, "", "")

	_, err := loadConfig(cmd)
	assert.ErrorIs(t, err, errNoConfig)
}
