// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "production", "info")
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("source", "NBER").Msg("fetched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetched", entry["message"])
	assert.Equal(t, "NBER", entry["source"])
	assert.Equal(t, "paper-digest", entry["service"])
}

func TestNewConsoleForLocal(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "LOCAL", "debug")
	require.NoError(t, err)

	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewDefaultsEmptyLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "")
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "", "loud")
	assert.Error(t, err)
}
