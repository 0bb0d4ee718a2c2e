package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTicketStaleAfterNext(t *testing.T) {
	var tk Ticket
	issued := tk.Next()
	require.False(t, tk.Stale(issued))

	tk.Next()
	require.True(t, tk.Stale(issued))
}

func TestTicketCurrentMatchesLastIssued(t *testing.T) {
	var tk Ticket
	require.EqualValues(t, 0, tk.Current())
	issued := tk.Next()
	require.Equal(t, issued, tk.Current())
}
