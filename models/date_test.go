package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", d.String())

	d, err = ParseDate("2024-03-09T23:15:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", d.String())

	_, err = ParseDate("09/03/2024")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var body struct {
		Due  *Date `json:"due"`
		Next *Date `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-01-31","next":null}`), &body))
	require.NotNil(t, body.Due)
	assert.Nil(t, body.Next)
	assert.Equal(t, "2025-01-31", body.Due.String())

	out, err := json.Marshal(body.Due)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-31"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"due":"tomorrow"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"due":20250131}`), &body))
}
