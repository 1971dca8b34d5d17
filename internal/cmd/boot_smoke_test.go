package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/ora-response/cli/internal/config"
	"github.com/gravitrone/ora-response/cli/internal/devserver"
)

func TestLoginCmdRejectsNonHTTPURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader("ftp://example.edu\n\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must start with http")
}

func TestLoginCmdSavesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(devserver.New("").Handler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader(srv.URL + "/\nora_key\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, cfg.BaseURL)
	assert.Equal(t, "ora_key", cfg.APIKey)
	assert.Contains(t, out.String(), "config saved to")
}

func TestLoginCmdUnreachableServiceFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(devserver.New("").Handler())
	url := srv.URL
	srv.Close()

	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader(url + "\n\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	_, err = config.Load()
	assert.Error(t, err)
}

func TestSaveCmdRequiresFile(t *testing.T) {
	cmd := SaveCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
}

func TestSubmitCmdHelpWorks(t *testing.T) {
	cmd := SubmitCmd()
	cmd.SetArgs([]string{"--help"})
	cmd.SetOut(&bytes.Buffer{})
	assert.NoError(t, cmd.Execute())
}

func TestStatusCmdRejectsUnknownFlag(t *testing.T) {
	cmd := StatusCmd()
	cmd.SetArgs([]string{"--nope"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}
