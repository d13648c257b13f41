package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"json number", `7.5`, 7.5},
		{"integer", `75`, 75},
		{"numeric string", `"7.5"`, 7.5},
		{"integer string", `"81"`, 81},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.InDelta(t, tt.want, float64(n), 0.0001)
		})
	}
}

func TestFlexNumber_UnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()

	var n FlexNumber
	err := json.Unmarshal([]byte(`"not a number"`), &n)
	require.Error(t, err)
}

func TestFlexNumber_MarshalsAsNumber(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(FlexNumber(81.2))
	require.NoError(t, err)
	assert.Equal(t, `81.2`, string(out))
}

func TestFlexNumber_RoundTripInsideStruct(t *testing.T) {
	t.Parallel()

	in := `{"type": "YEAR", "status": "GOOD", "finalScore": "8.1", "totalComplains": 12, "solvedPercentual": 80.5, "dealAgainPercentual": null}`

	var p ReputationPeriod
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.InDelta(t, 8.1, float64(p.FinalScore), 0.0001)
	assert.InDelta(t, 80.5, float64(p.SolvedPercentage), 0.0001)
	assert.Zero(t, float64(p.DealAgainPercentage))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"finalScore":8.1`)
}
