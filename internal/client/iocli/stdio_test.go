package iocli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("  field-tablet-01  \n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()
	input, err := stdio.ReadInput("Device id: ")
	require.NoError(t, err)
	assert.Equal(t, "field-tablet-01", input)
}

func TestReadPassword_FallsBackWhenNotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("secret-passphrase\n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()
	secret, err := stdio.ReadPassword("Passphrase: ")
	require.NoError(t, err)
	assert.Equal(t, "secret-passphrase", secret)
}
