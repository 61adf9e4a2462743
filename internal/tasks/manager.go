// Package tasks holds the task list state: the active and deleted sequences,
// the view filter, the pending input and the selection over deleted tasks.
//
// Tasks are addressed by their position in the owning list. Positions are
// only valid until the next mutation of that list; out of range positions are
// ignored.
package tasks

import (
	"context"
	"crypto/rand"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"tidy/internal/log"
	"tidy/internal/storage"
)

// Task is a single to-do entry.
type Task = storage.Task

// View is a row of the filtered view. Index is the task position in the
// active list, not the row number.
type View struct {
	Index int
	Task  Task
}

// ManagerConfig is the configuration for the manager.
type ManagerConfig struct {
	Store  storage.Store
	Logger log.Logger
	// IDGen returns a new task id. Defaults to a ULID.
	IDGen func() string
}

func (c *ManagerConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tasks.Manager"})
	if c.IDGen == nil {
		c.IDGen = newULID
	}
	return nil
}

func newULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Manager owns the task lists and persists them after every mutation.
// It is not safe for concurrent use.
type Manager struct {
	store  storage.Store
	logger log.Logger
	newID  func() string

	active   []Task
	deleted  []Task
	selected map[int]struct{}
	filter   Filter
	pending  string
}

// New loads both lists from the store. Missing or unparsable values start empty.
func New(ctx context.Context, cfg ManagerConfig) (*Manager, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m := &Manager{
		store:    cfg.Store,
		logger:   cfg.Logger,
		newID:    cfg.IDGen,
		selected: map[int]struct{}{},
		filter:   FilterAll,
	}

	var err error
	m.active, err = m.load(ctx, storage.KeyTasks)
	if err != nil {
		return nil, err
	}
	m.deleted, err = m.load(ctx, storage.KeyDeletedTasks)
	if err != nil {
		return nil, err
	}

	m.logger.Debugf("loaded %d active and %d deleted tasks", len(m.active), len(m.deleted))
	return m, nil
}

func (m *Manager) load(ctx context.Context, key string) ([]Task, error) {
	raw, found, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", key, err)
	}
	if !found {
		return []Task{}, nil
	}
	list, err := storage.DecodeTasks(raw)
	if err != nil {
		m.logger.Warningf("ignoring malformed %s value: %s", key, err)
		return []Task{}, nil
	}
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = m.newID()
		}
	}
	return list, nil
}

func (m *Manager) save(ctx context.Context, key string, list []Task) error {
	raw, err := storage.EncodeTasks(list)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", key, err)
	}
	if err := m.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("could not persist %s: %w", key, err)
	}
	m.logger.WithCtxValues(ctx).Debugf("persisted %d tasks under %s", len(list), key)
	return nil
}

func (m *Manager) saveActive(ctx context.Context) error {
	return m.save(ctx, storage.KeyTasks, m.active)
}

func (m *Manager) saveDeleted(ctx context.Context) error {
	return m.save(ctx, storage.KeyDeletedTasks, m.deleted)
}

func (m *Manager) saveBoth(ctx context.Context) error {
	if err := m.saveActive(ctx); err != nil {
		return err
	}
	return m.saveDeleted(ctx)
}

// PendingInput returns the text typed but not yet submitted.
func (m *Manager) PendingInput() string { return m.pending }

// SetPendingInput replaces the text typed but not yet submitted.
func (m *Manager) SetPendingInput(text string) { m.pending = text }

// Submit adds the pending input as a task.
func (m *Manager) Submit(ctx context.Context) (int, error) {
	return m.AddTask(ctx, m.pending)
}

// AddTask appends a new incomplete task and clears the pending input.
// Whitespace-only text is ignored and -1 is returned.
func (m *Manager) AddTask(ctx context.Context, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return -1, nil
	}

	m.active = append(m.active, Task{ID: m.newID(), Text: text})
	m.pending = ""
	idx := len(m.active) - 1
	m.logger.Debugf("added task %d", idx)

	return idx, m.saveActive(ctx)
}

// ToggleComplete flips the completed flag of the active task at index.
func (m *Manager) ToggleComplete(ctx context.Context, index int) error {
	if !m.validActive(index) {
		return nil
	}

	m.active[index].Completed = !m.active[index].Completed
	return m.saveActive(ctx)
}

// DeleteTask moves the active task at index to the end of the deleted list.
func (m *Manager) DeleteTask(ctx context.Context, index int) error {
	if !m.validActive(index) {
		return nil
	}

	t := m.active[index]
	m.active = slices.Delete(m.active, index, index+1)
	m.deleted = append(m.deleted, t)
	m.clearSelection()
	m.logger.Debugf("deleted task %d", index)

	return m.saveBoth(ctx)
}

// RestoreTask moves the deleted task at index to the end of the active list.
func (m *Manager) RestoreTask(ctx context.Context, index int) error {
	if !m.validDeleted(index) {
		return nil
	}

	t := m.deleted[index]
	m.deleted = slices.Delete(m.deleted, index, index+1)
	m.active = append(m.active, t)
	m.clearSelection()
	m.logger.Debugf("restored task %d", index)

	return m.saveBoth(ctx)
}

// ToggleSelectDeleted adds or removes a deleted task from the selection.
// The selection is never persisted.
func (m *Manager) ToggleSelectDeleted(index int) {
	if !m.validDeleted(index) {
		return
	}
	if _, ok := m.selected[index]; ok {
		delete(m.selected, index)
		return
	}
	m.selected[index] = struct{}{}
}

// DeleteSelectedTasks permanently drops every selected deleted task.
func (m *Manager) DeleteSelectedTasks(ctx context.Context) error {
	if len(m.selected) == 0 {
		return nil
	}

	kept := make([]Task, 0, len(m.deleted))
	for i, t := range m.deleted {
		if _, ok := m.selected[i]; !ok {
			kept = append(kept, t)
		}
	}
	m.logger.Debugf("purged %d deleted tasks", len(m.deleted)-len(kept))
	m.deleted = kept
	m.clearSelection()

	return m.saveDeleted(ctx)
}

// SetFilter changes the view filter.
func (m *Manager) SetFilter(f Filter) { m.filter = f }

// Filter returns the current view filter.
func (m *Manager) Filter() Filter { return m.filter }

// FilteredView returns the active tasks kept by the current filter, in order.
func (m *Manager) FilteredView() []View {
	views := make([]View, 0, len(m.active))
	for i, t := range m.active {
		if m.filter.keep(t) {
			views = append(views, View{Index: i, Task: t})
		}
	}
	return views
}

// Active returns a copy of the active list.
func (m *Manager) Active() []Task { return slices.Clone(m.active) }

// Deleted returns a copy of the deleted list.
func (m *Manager) Deleted() []Task { return slices.Clone(m.deleted) }

// Selected returns the selected deleted positions in ascending order.
func (m *Manager) Selected() []int {
	out := make([]int, 0, len(m.selected))
	for i := range m.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// IsSelected reports whether the deleted task at index is selected.
func (m *Manager) IsSelected(index int) bool {
	_, ok := m.selected[index]
	return ok
}

// IndexOf returns the active position of the task with id, or -1.
func (m *Manager) IndexOf(id string) int {
	return indexOf(m.active, id)
}

// DeletedIndexOf returns the deleted position of the task with id, or -1.
func (m *Manager) DeletedIndexOf(id string) int {
	return indexOf(m.deleted, id)
}

func indexOf(list []Task, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(list, func(t Task) bool { return t.ID == id })
}

func (m *Manager) clearSelection() {
	clear(m.selected)
}

func (m *Manager) validActive(index int) bool {
	if index < 0 || index >= len(m.active) {
		m.logger.Debugf("ignoring stale active index %d (len %d)", index, len(m.active))
		return false
	}
	return true
}

func (m *Manager) validDeleted(index int) bool {
	if index < 0 || index >= len(m.deleted) {
		m.logger.Debugf("ignoring stale deleted index %d (len %d)", index, len(m.deleted))
		return false
	}
	return true
}
