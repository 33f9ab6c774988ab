package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword_Piped(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "line", input: "s3cret\n", want: "s3cret"},
		{name: "crlf", input: "s3cret\r\nignored\n", want: "s3cret"},
		{name: "no newline", input: "s3cret", want: "s3cret"},
		{name: "empty line", input: "\n", wantErr: true},
		{name: "no input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			pw, err := readPassword(strings.NewReader(tt.input), &prompt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pw)
			assert.Empty(t, prompt.String())
		})
	}
}

func TestPassword_FlagWins(t *testing.T) {
	credentialFlags.Password = "from-flag"
	t.Cleanup(func() { credentialFlags.Password = "" })

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("from-stdin\n"))
	pw, err := password(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", pw)
}
