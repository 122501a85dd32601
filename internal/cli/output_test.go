package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_SuccessText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("Order created"))
	assert.Equal(t, "Order created\n", buf.String())
}

func TestOutputFormatter_SuccessTextLines(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success([]string{"line one", "line two"}))
	assert.Equal(t, "line one\nline two\n", buf.String())
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]string{"id": "abc"}))
	assert.JSONEq(t, `{"status":"ok","data":{"id":"abc"}}`, buf.String())
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error("NOT_FOUND", "Order not found", nil))
	assert.Equal(t, "Error [NOT_FOUND]: Order not found\n", buf.String())
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Error("STOCK", "Products out of stock: Laptop", nil))
	assert.JSONEq(t, `{"status":"error","error":{"code":"STOCK","message":"Products out of stock: Laptop"}}`, buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	var out, errBuf bytes.Buffer

	quiet := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errBuf}
	quiet.VerboseLog("opening %s", "db")
	assert.Empty(t, errBuf.String())

	verbose := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errBuf, Verbose: true}
	verbose.VerboseLog("opening %s", "db")
	assert.Equal(t, "opening db\n", errBuf.String())
	assert.Empty(t, out.String(), "verbose logs must not touch the data stream")
}

func TestExitError(t *testing.T) {
	plain := NewExitError(ExitFailure, "mutation failed")
	assert.Equal(t, "mutation failed", plain.Error())
	assert.Equal(t, ExitFailure, GetExitCode(plain))

	wrapped := WrapExitError(ExitCommandError, "opening database", errors.New("no such file"))
	assert.Equal(t, "opening database: no such file", wrapped.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))

	// The exit code survives further wrapping.
	outer := fmt.Errorf("command: %w", wrapped)
	assert.Equal(t, ExitCommandError, GetExitCode(outer))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}
