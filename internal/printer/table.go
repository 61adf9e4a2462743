package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tidy/internal/tasks"
)

// TablePrinter prints tasks as an aligned table.
type TablePrinter struct {
	writer io.Writer
	done   *color.Color
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, done: color.New(color.FgGreen, color.CrossedOut)}
}

func (t *TablePrinter) PrintTasks(rows []tasks.View) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(t.writer, "No tasks.")
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("#", "DONE", "TASK")
	for _, r := range rows {
		mark, text := "[ ]", r.Task.Text
		if r.Task.Completed {
			mark, text = "[x]", t.done.Sprint(text)
		}
		table.AddRow(r.Index, mark, text)
	}
	_, err := fmt.Fprintln(t.writer, table)
	return err
}

func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
