package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
)

// Service is a long-lived host subsystem outside the simulation: audio output,
// the journal writer, the observer API
//
// Lifecycle:
//  1. Construction
//  2. Register with a Manager
//  3. Start(ctx) in dependency order
//  4. [runtime operation]
//  5. Stop() in reverse start order
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Start begins service operation; background goroutines end when ctx is cancelled
	Start(ctx context.Context) error

	// Stop halts the service and releases resources
	// Must be idempotent
	Stop() error
}

var (
	ErrDuplicate  = errors.New("duplicate service")
	ErrMissingDep = errors.New("missing service dependency")
	ErrCycle      = errors.New("service dependency cycle")
)

// Manager starts services in dependency order and stops them in reverse
type Manager struct {
	services map[string]Service
	started  []Service
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{services: make(map[string]Service)}
}

// Register adds a service; names must be unique
func (m *Manager) Register(s Service) error {
	if _, ok := m.services[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, s.Name())
	}
	m.services[s.Name()] = s
	return nil
}

// Order resolves a start order, ties broken by name
func (m *Manager) Order() ([]Service, error) {
	names := make([]string, 0, len(m.services))
	for name := range m.services {
		names = append(names, name)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	order := make([]Service, 0, len(names))

	var visit func(name string, from string) error
	visit = func(name, from string) error {
		s, ok := m.services[name]
		if !ok {
			return fmt.Errorf("%w: %s needs %s", ErrMissingDep, from, name)
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: through %s", ErrCycle, name)
		case done:
			return nil
		}
		state[name] = visiting
		deps := append([]string(nil), s.Dependencies()...)
		sort.Strings(deps)
		for _, dep := range deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, s)
		return nil
	}

	for _, name := range names {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// StartAll starts every service; on failure the ones already started are stopped
func (m *Manager) StartAll(ctx context.Context) error {
	order, err := m.Order()
	if err != nil {
		return err
	}
	for _, s := range order {
		if err := s.Start(ctx); err != nil {
			stopErr := m.StopAll()
			return errors.Join(fmt.Errorf("start %s: %w", s.Name(), err), stopErr)
		}
		log.Printf("[INFO] service %s started", s.Name())
		m.started = append(m.started, s)
	}
	return nil
}

// StopAll stops started services in reverse order and joins their errors
func (m *Manager) StopAll() error {
	var errs []error
	for i := len(m.started) - 1; i >= 0; i-- {
		s := m.started[i]
		if err := s.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.Name(), err))
		}
	}
	m.started = nil
	return errors.Join(errs...)
}
