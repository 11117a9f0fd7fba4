package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i := 0; i < NumPatterns; i++ {
		p := Pattern(i)
		require.Equal(t, p, Encode(p.Marks()), "pattern %d", i)
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	seen := make(map[Pattern]bool, NumPatterns)
	for i := 0; i < NumPatterns; i++ {
		s := Pattern(i).String()
		p, err := ParsePattern(s)
		require.NoError(t, err, s)
		require.Equal(t, s, p.String())
		seen[p] = true
	}
	assert.Len(t, seen, NumPatterns, "every display string maps to a distinct pattern")
}

func TestWeighting(t *testing.T) {
	p, err := ParsePattern("pnnnn")
	require.NoError(t, err)
	assert.Equal(t, Pattern(1), p)

	p, err = ParsePattern("nnnnc")
	require.NoError(t, err)
	assert.Equal(t, Pattern(162), p)

	p, err = ParsePattern("ccccc")
	require.NoError(t, err)
	assert.Equal(t, AllCorrect, p)
	assert.True(t, p.Solved())
	assert.Equal(t, Pattern(242), AllCorrect)
}

func TestParsePatternErrors(t *testing.T) {
	for _, bad := range []string{"", "nnnn", "nnnnnn", "nnxnn", "NNNNN", "ccccC", "nn nn"} {
		_, err := ParsePattern(bad)
		assert.ErrorIs(t, err, ErrParse, "input %q", bad)
	}
}

func TestPatternJSON(t *testing.T) {
	p, err := ParsePattern("npnnc")
	require.NoError(t, err)
	b, err := json.Marshal(map[string]Pattern{"p": p})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"npnnc"}`, string(b))

	var out struct{ P Pattern }
	require.NoError(t, json.Unmarshal([]byte(`{"P":"ccccc"}`), &out))
	assert.Equal(t, AllCorrect, out.P)
	assert.Error(t, json.Unmarshal([]byte(`{"P":"cxccc"}`), &out))
}
