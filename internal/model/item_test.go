package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		p    Priority
		want int
	}{
		{Urgent, 4},
		{High, 3},
		{Medium, 2},
		{Low, 1},
		{Priority("Someday"), 0},
		{Priority(""), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.p), func(t *testing.T) {
			require.Equal(t, tt.want, tt.p.Rank())
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("  urgent ")
	require.True(t, ok)
	require.Equal(t, Urgent, p)

	p, ok = ParsePriority("HIGH")
	require.True(t, ok)
	require.Equal(t, High, p)

	p, ok = ParsePriority("whenever")
	require.False(t, ok)
	require.Equal(t, Medium, p)
}

func TestPriorityNext(t *testing.T) {
	require.Equal(t, Medium, Low.Next())
	require.Equal(t, High, Medium.Next())
	require.Equal(t, Urgent, High.Next())
	require.Equal(t, Low, Urgent.Next())
	require.Equal(t, Low, Priority("bogus").Next())
}
