package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Keys under which the task sequences are persisted.
const (
	KeyTasks        = "tasks"
	KeyDeletedTasks = "deletedTasks"
)

// ErrNotValid is returned when a store is configured with invalid values.
var ErrNotValid = errors.New("not valid")

// Task is the persisted shape of a task. ID is omitted for snapshots written
// before tasks carried ids.
type Task struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Store is a string keyed get/set service. Values are overwritten in full.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// EncodeTasks serializes a task sequence as a JSON array.
func EncodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeTasks parses a JSON array of tasks. An empty value is an empty sequence.
func DecodeTasks(value string) ([]Task, error) {
	tasks := []Task{}
	if strings.TrimSpace(value) == "" {
		return tasks, nil
	}
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return []Task{}, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
