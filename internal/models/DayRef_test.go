package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayRef_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "D4", "D5-D7", "D1,D3", "D2-D4 (maybe)", "around D10", "Day 3", "D"} {
		assert.Equal(t, s, ParseDayRef(s).String(), s)
	}
}

func TestDayRef_Shapes(t *testing.T) {
	n, ok := ParseDayRef("D12").Single()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = ParseDayRef("D12 ").Single()
	assert.False(t, ok)

	_, ok = ParseDayRef("D5-D7").Single()
	assert.False(t, ok)

	assert.Equal(t, []int{2, 4, 10}, ParseDayRef("D2,D4 and D10").Days())
	assert.True(t, ParseDayRef("").IsZero())
}

func TestDayRef_ContainsIsTokenBased(t *testing.T) {
	ref := ParseDayRef("D21-D28")
	assert.False(t, ref.Contains(2))
	assert.True(t, ref.Contains(21))
	assert.True(t, ref.Contains(28))
	assert.False(t, ref.Contains(22))
}

func TestDayRef_MapUsesOriginalValues(t *testing.T) {
	ref := ParseDayRef("D4-D5")
	// a chained rewrite would turn D4 into D6
	shifted := ref.Map(func(n int) int { return n + 1 })
	assert.Equal(t, "D5-D6", shifted.String())
	assert.Equal(t, "D4-D5", ref.String(), "receiver is not modified")
}

func TestDayRef_Without(t *testing.T) {
	assert.Equal(t, "D27-D29", ParseDayRef("D27-D28-D29").Without(28).String())
	assert.Equal(t, "D6", ParseDayRef("D4-D6").Without(4).String())
	assert.True(t, ParseDayRef("D4").Without(4).IsZero())
	assert.Equal(t, ParseDayRef("D1-D3"), ParseDayRef("D1,D2,D3").Without(2))
}

func TestDayRef_JSON(t *testing.T) {
	var loc struct {
		Day DayRef `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"D3-D5"}`), &loc))
	assert.Equal(t, ParseDayRef("D3-D5"), loc.Day)

	out, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"D3-D5"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"day":null}`), &loc))
	assert.True(t, loc.Day.IsZero())
	out, err = json.Marshal(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":null}`, string(out), "null stays null")

	var empty struct {
		Day DayRef `json:"day"`
	}
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":""}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"day":5}`), &loc))
}
