package service

import (
	"context"

	"github.com/staffdir/staffdir/internal/employee"
	"github.com/staffdir/staffdir/internal/employee/repository"
)

// Service defines the employee business operations used by the handler layer.
// Payload validation happens here, before the repository is touched; the
// repository still re-checks stored-record constraints on its own.
type Service interface {
	List(ctx context.Context) ([]*employee.Employee, error)
	Get(ctx context.Context, id string) (*employee.Employee, error)
	Create(ctx context.Context, p *employee.CreatePayload) (*employee.Employee, error)
	Update(ctx context.Context, id string, p *employee.UpdatePayload) (*employee.Employee, error)
	Delete(ctx context.Context, id string) error
}

// New returns a Service backed by the given repository (memory or Mongo).
func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.Repository
}

func (s *service) List(ctx context.Context) ([]*employee.Employee, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*employee.Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, p *employee.CreatePayload) (*employee.Employee, error) {
	if err := employee.ValidateCreate(p); err != nil {
		return nil, err
	}
	rec := employee.NewRecord(p)
	if _, err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) Update(ctx context.Context, id string, p *employee.UpdatePayload) (*employee.Employee, error) {
	if err := employee.ValidateUpdate(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
