package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"/usr/local/bin/near-versions"}, &out)

	assert.Equal(t, 1, code)
	assert.Equal(t, "usage: near-versions <node_addr:port>\n", out.String())
}

func TestRunFailureWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	path := filepath.Join(t.TempDir(), "validators_data.json")
	t.Setenv("OUTPUT_PATH", path)
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	code := run([]string{"near-versions", addr}, &out)

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMainExitsWithUsage(t *testing.T) {
	if os.Getenv("NEAR_VERSIONS_EXEC_MAIN") == "1" {
		os.Args = []string{"near-versions"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitsWithUsage$")
	cmd.Env = append(os.Environ(), "NEAR_VERSIONS_EXEC_MAIN=1")
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "usage: near-versions <node_addr:port>")
}
