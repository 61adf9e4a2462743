package printer_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidy/internal/printer"
	"tidy/internal/tasks"
)

func rows() []tasks.View {
	return []tasks.View{
		{Index: 0, Task: tasks.Task{ID: "01A", Text: "buy milk"}},
		{Index: 2, Task: tasks.Task{ID: "01C", Text: "walk dog", Completed: true}},
	}
}

func TestPrinters(t *testing.T) {
	color.NoColor = true

	tests := map[string]struct {
		format string
		rows   []tasks.View
		exp    string
		expErr bool
	}{
		"JSON should print every field": {
			format: printer.FormatJSON,
			rows:   rows(),
			exp: `[
  {
    "index": 0,
    "id": "01A",
    "text": "buy milk",
    "completed": false
  },
  {
    "index": 2,
    "id": "01C",
    "text": "walk dog",
    "completed": true
  }
]
`,
		},
		"YAML should print every field": {
			format: printer.FormatYAML,
			rows:   rows(),
			exp: `- index: 0
  id: 01A
  text: buy milk
  completed: false
- index: 2
  id: 01C
  text: walk dog
  completed: true
`,
		},
		"Table should print an empty message without rows": {
			format: printer.FormatTable,
			exp:    "No tasks.\n",
		},
		"Unknown formats should fail": {
			format: "xml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			p, err := printer.New(test.format, &out)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			require.NoError(t, p.PrintTasks(test.rows))
			assert.Equal(t, test.exp, out.String())
		})
	}
}

func TestTablePrinterRows(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	require.NoError(t, printer.NewTablePrinter(&out).PrintTasks(rows()))

	got := out.String()
	assert.Contains(t, got, "TASK")
	assert.Contains(t, got, "[ ]")
	assert.Contains(t, got, "buy milk")
	assert.Contains(t, got, "[x]")
	assert.Contains(t, got, "walk dog")
}
