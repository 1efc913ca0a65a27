package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "info", "text")

	log.Debugf("hidden %d", 1)
	log.Infof("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "DEBUG", "text")
	log.Debugf("parsed %s", "before.html")
	assert.Contains(t, buf.String(), "parsed before.html")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "chatty", "text")
	log.Debugf("hidden")
	log.Warnf("careful")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "careful")
}

func TestJSONFormatWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "info", "json").
		WithComponent("report").
		WithFields(map[string]interface{}{"collections": 3})

	log.Infof("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "report", entry["component"])
	assert.Equal(t, float64(3), entry["collections"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Errorf("nothing happens")
}
