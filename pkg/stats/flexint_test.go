package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want FlexInt
	}{
		{`42`, 42},
		{`"42"`, 42},
		{`" 7 "`, 7},
		{`12.9`, 12},
		{`1e3`, 1000},
		{`null`, 0},
		{`""`, 0},
		{`-3`, 0},
		{`"-3"`, 0},
		{`"abc"`, 0},
		{`true`, 0},
		{`[1]`, 0},
		{`1e400`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := FlexInt(99)
			require.NoError(t, n.UnmarshalJSON([]byte(tt.in)))
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFlexInt_InStruct(t *testing.T) {
	var item MediaItem
	require.NoError(t, json.Unmarshal([]byte(`{"Id":"1","Type":"Movie","RunTimeTicks":"abc"}`), &item))
	assert.Equal(t, "1", item.ID)
	assert.Zero(t, item.RunTimeTicks.Int64())
}
