package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffdir/staffdir/internal/employee"
)

// MemoryRepo is an in-memory repository used for unit tests and as a degraded
// fallback when MongoDB is unavailable. All writes happen under one lock, so
// the uniqueness check and the insert are a single atomic step.
type MemoryRepo struct {
	mu      sync.RWMutex
	store   map[string]*employee.Employee
	byEmail map[string]string // lowercase email -> id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store:   make(map[string]*employee.Employee),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryRepo) List(ctx context.Context) ([]*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*employee.Employee, 0, len(m.store))
	for _, e := range m.store {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, e *employee.Employee) (string, error) {
	rec := *e
	rec.Email = employee.NormalizeEmail(rec.Email)
	if err := employee.CheckRecord(&rec); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[rec.Email]; taken {
		return "", ErrDuplicateEmail
	}
	rec.ID = uuid.NewString()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	m.store[rec.ID] = &rec
	m.byEmail[rec.Email] = rec.ID
	*e = rec
	return rec.ID, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p *employee.UpdatePayload) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}

	merged := *cur
	if p.Name != nil {
		merged.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		merged.Email = employee.NormalizeEmail(*p.Email)
	}
	if p.Phone != nil {
		merged.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Department != nil {
		merged.Department = strings.TrimSpace(*p.Department)
	}
	if p.Position != nil {
		merged.Position = strings.TrimSpace(*p.Position)
	}
	if p.Salary != nil {
		merged.Salary = *p.Salary
	}
	if err := employee.CheckRecord(&merged); err != nil {
		return nil, err
	}
	if merged.Email != cur.Email {
		if owner, taken := m.byEmail[merged.Email]; taken && owner != id {
			return nil, ErrDuplicateEmail
		}
		delete(m.byEmail, cur.Email)
		m.byEmail[merged.Email] = id
	}
	merged.UpdatedAt = time.Now().UTC()
	m.store[id] = &merged
	cp := merged
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byEmail, e.Email)
	delete(m.store, id)
	return nil
}
