package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Result   optionalString `json:"result"`
		GameLink optionalString `json:"gameLink"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.False(t, absent.Result.Set)
	require.False(t, absent.GameLink.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"result": null}`), &null))
	require.True(t, null.Result.Set)
	require.Nil(t, null.Result.Value)
	require.False(t, null.GameLink.Set)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"result": "1-0", "gameLink": ""}`), &set))
	require.True(t, set.Result.Set)
	require.NotNil(t, set.Result.Value)
	require.Equal(t, "1-0", *set.Result.Value)
	require.True(t, set.GameLink.Set)
	require.Equal(t, "", *set.GameLink.Value)

	var bad payload
	require.Error(t, json.Unmarshal([]byte(`{"result": 7}`), &bad))
}
