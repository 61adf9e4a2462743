package printer

import (
	"fmt"
	"io"

	"tidy/internal/tasks"
)

// Formats supported by New.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Printer knows how to print task rows in different formats.
type Printer interface {
	PrintTasks(rows []tasks.View) error
	PrintMessage(msg string) error
}

// New returns the printer for format.
func New(format string, w io.Writer) (Printer, error) {
	switch format {
	case FormatTable, "":
		return NewTablePrinter(w), nil
	case FormatJSON:
		return NewJSONPrinter(w), nil
	case FormatYAML:
		return NewYAMLPrinter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// taskItem is the structured output shape of a row.
type taskItem struct {
	Index     int    `json:"index" yaml:"index"`
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type messageOutput struct {
	Message string `json:"message" yaml:"message"`
}

func toItems(rows []tasks.View) []taskItem {
	items := make([]taskItem, len(rows))
	for i, r := range rows {
		items[i] = taskItem{
			Index:     r.Index,
			ID:        r.Task.ID,
			Text:      r.Task.Text,
			Completed: r.Task.Completed,
		}
	}
	return items
}
