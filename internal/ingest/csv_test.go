package ingest

import (
	"testing"

	"github.com/agentic-research/regroup/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	t.Run("header names fields", func(t *testing.T) {
		rows, err := LoadCSV(stringReader("\ufeffID #,First Name,Car ID #\n1,Matt,3\n2,Nick,\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"ID #", "First Name", "Car ID #"}, keys(t, rows[0]))

		car, _ := rows[1].(node.Map).Get("Car ID #")
		assert.Equal(t, "", car)
	})

	t.Run("ragged lines", func(t *testing.T) {
		rows, err := LoadCSV(stringReader("a,b\n1\n2,3,4\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		b, present := rows[0].(node.Map).Get("b")
		assert.True(t, present)
		assert.Equal(t, "", b)
		assert.Equal(t, 2, rows[1].(node.Map).Len())
	})

	t.Run("quoted cells", func(t *testing.T) {
		rows, err := LoadCSV(stringReader("name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n"))
		require.NoError(t, err)
		note, _ := rows[0].(node.Map).Get("note")
		assert.Equal(t, `said "hi"`, note)
	})

	t.Run("empty", func(t *testing.T) {
		rows, err := LoadCSV(stringReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadCSV(stringReader("a\n\"unterminated\n"))
		require.Error(t, err)
	})
}
