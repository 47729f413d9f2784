package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"string id", `"abc-123"`, "abc-123"},
		{"numeric id", `42`, "42"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f.String())
		})
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `4`, 4},
		{"numeric string", `"8"`, 8},
		{"unit suffix", `"2 vCPU"`, 2},
		{"size suffix", `"100GB"`, 100},
		{"garbage", `"lots"`, 0},
		{"null", `null`, 0},
		{"object degrades to zero", `{"x":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, int64(f))
		})
	}
}

func TestFlexBool(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"true", `true`, true},
		{"false", `false`, false},
		{"one", `1`, true},
		{"zero", `0`, false},
		{"string true", `"true"`, true},
		{"string one", `"1"`, true},
		{"string other", `"yes"`, false},
		{"null", `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexBool
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, bool(f))
		})
	}
}

func TestFlexDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number", `499.5`, "499.5"},
		{"numeric string", `"1200"`, "1200"},
		{"garbage degrades to zero", `"n/a"`, "0"},
		{"null degrades to zero", `null`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexDecimal
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f.Decimal().String())
		})
	}
}

func TestAttrs(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		var a Attrs
		require.NoError(t, json.Unmarshal([]byte(`{"cpu": 2, "memory": 4}`), &a))
		assert.Equal(t, int64(2), a.Int("cpu"))
		assert.Equal(t, int64(4), a.Int("memory"))
	})

	t.Run("json text column", func(t *testing.T) {
		var a Attrs
		require.NoError(t, json.Unmarshal([]byte(`"{\"cpu\": \"2 vCPU\"}"`), &a))
		assert.Equal(t, int64(2), a.Int("cpu"))
	})

	t.Run("garbage degrades to empty", func(t *testing.T) {
		var a Attrs
		require.NoError(t, json.Unmarshal([]byte(`"not json"`), &a))
		assert.Empty(t, a)
	})

	t.Run("first non-zero key wins", func(t *testing.T) {
		a := Attrs{"cpu": float64(0), "formatted_cpu": "4 vCPU"}
		assert.Equal(t, int64(4), a.Int("cpu", "formatted_cpu"))
	})

	t.Run("missing keys yield zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Attrs{}.Int("cpu"))
	})
}
