package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidy/internal/storage"
)

func TestDecodeTasks(t *testing.T) {
	tests := map[string]struct {
		value    string
		expTasks []storage.Task
		expErr   bool
	}{
		"An empty value should decode to an empty sequence": {
			value:    "",
			expTasks: []storage.Task{},
		},
		"A JSON null should decode to an empty sequence": {
			value:    "null",
			expTasks: []storage.Task{},
		},
		"Tasks without ids should decode": {
			value: `[{"text":"buy milk","completed":false},{"text":"walk dog","completed":true}]`,
			expTasks: []storage.Task{
				{Text: "buy milk"},
				{Text: "walk dog", Completed: true},
			},
		},
		"Tasks with ids should decode": {
			value:    `[{"id":"01J","text":"a","completed":true}]`,
			expTasks: []storage.Task{{ID: "01J", Text: "a", Completed: true}},
		},
		"Malformed JSON should fail with an empty sequence": {
			value:    `[{"text":`,
			expTasks: []storage.Task{},
			expErr:   true,
		},
		"A JSON object instead of an array should fail": {
			value:    `{"text":"a"}`,
			expTasks: []storage.Task{},
			expErr:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got, err := storage.DecodeTasks(test.value)
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
			assert.Equal(test.expTasks, got)
		})
	}
}

func TestEncodeTasks(t *testing.T) {
	t.Run("Nil sequence should encode as an empty array", func(t *testing.T) {
		got, err := storage.EncodeTasks(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", got)
	})

	t.Run("Tasks without id should keep the original layout", func(t *testing.T) {
		got, err := storage.EncodeTasks([]storage.Task{{Text: "a"}, {Text: "b", Completed: true}})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"text":"a","completed":false},{"text":"b","completed":true}]`, got)
	})

	t.Run("A snapshot should round-trip", func(t *testing.T) {
		tasks := []storage.Task{
			{ID: "01HZY", Text: "buy milk"},
			{ID: "01HZZ", Text: "walk dog", Completed: true},
			{Text: "legacy"},
		}
		enc, err := storage.EncodeTasks(tasks)
		require.NoError(t, err)

		dec, err := storage.DecodeTasks(enc)
		require.NoError(t, err)
		assert.Equal(t, tasks, dec)
	})
}
