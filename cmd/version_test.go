package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	old := GetVersion()
	defer SetVersion(old)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", GetVersion())
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	root.Version = "1.2.3"

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "emsctl version 1.2.3\n", out.String())
}
