// Package vpn provides VPN tunnel toggling functionality.
// This file contains the Manager type, the entry point used by the CLI
// and the tray for every caller-facing operation.
package vpn

import (
	"context"
	"fmt"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/config"
	"github.com/yllada/wg-toggle/store"
)

// PathStore is the registry the Manager reads and writes.
type PathStore interface {
	PathLister
	Add(ctx context.Context, path string) (int64, error)
	DeleteAll(ctx context.Context) error
	Entries(ctx context.Context) ([]store.PathEntry, error)
}

// Manager ties the path registry to the toggler.
type Manager struct {
	store   PathStore
	runner  Runner
	toggler *Toggler
}

// NewManager creates a Manager from configuration. It initializes the
// registry schema, so it must succeed before any other operation.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s := store.New(dbPath)
	if err := s.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize path store: %w", err)
	}

	return NewManagerWith(s, NewExecRunner(cfg.Tool, cfg.Elevate)), nil
}

// NewManagerWith creates a Manager from explicit collaborators.
func NewManagerWith(s PathStore, runner Runner) *Manager {
	return &Manager{
		store:   s,
		runner:  runner,
		toggler: NewToggler(s, runner),
	}
}

// Runner returns the runner used for tunnel changes.
func (m *Manager) Runner() Runner {
	return m.runner
}

// Toggler returns the toggler, e.g. to attach a progress observer.
func (m *Manager) Toggler() *Toggler {
	return m.toggler
}

// AddPath registers a configuration path. It is not validated.
func (m *Manager) AddPath(ctx context.Context, path string) error {
	_, err := m.store.Add(ctx, path)
	return err
}

// ClearPaths removes every registered path.
func (m *Manager) ClearPaths(ctx context.Context) error {
	return m.store.DeleteAll(ctx)
}

// ListPaths returns every registered path.
func (m *Manager) ListPaths(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// ListEntries returns every registered path with its ID.
func (m *Manager) ListEntries(ctx context.Context) ([]store.PathEntry, error) {
	return m.store.Entries(ctx)
}

// Activate brings every registered tunnel up.
func (m *Manager) Activate(ctx context.Context) (*Report, error) {
	common.LogInfo("Attempting to turn VPN ON...")
	return m.toggler.Toggle(ctx, Up)
}

// Deactivate brings every registered tunnel down.
func (m *Manager) Deactivate(ctx context.Context) (*Report, error) {
	common.LogInfo("Attempting to turn VPN OFF...")
	return m.toggler.Toggle(ctx, Down)
}

// Status reports, for every registered path, whether its interface exists.
func (m *Manager) Status(ctx context.Context) ([]PathStatus, error) {
	paths, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return StatusOf(paths, common.SysClassNet), nil
}
