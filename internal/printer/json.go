package printer

import (
	"encoding/json"
	"io"

	"tidy/internal/tasks"
)

// JSONPrinter prints tasks as an indented JSON array.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

func (j *JSONPrinter) PrintTasks(rows []tasks.View) error {
	return j.encode(toItems(rows))
}

func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
