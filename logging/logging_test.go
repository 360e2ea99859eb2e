package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "warn", false)
	require.NoError(t, err)

	logger.Infof("renamed %s to %s", "/proj/a.c", "/proj/a.cpp")
	logger.Warnf("%s doesn't exist, skip rename", "/proj/b.c")

	out := buf.String()

	assert.NotContains(t, out, "renamed")
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "msg=/proj/b.c doesn't exist, skip rename")
	assert.NotContains(t, out, "time=")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "debug", true)
	require.NoError(t, err)

	logger.Debugf("%s is excluded, skip rename", "/proj/third_party/x.c")

	var line map[string]any

	err = json.Unmarshal(buf.Bytes(), &line)
	require.NoError(t, err)

	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "/proj/third_party/x.c is excluded, skip rename", line["msg"])
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}
