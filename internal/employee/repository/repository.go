package repository

import (
	"context"
	"errors"

	"github.com/staffdir/staffdir/internal/employee"
)

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository provides persistence operations for employee records. Email
// uniqueness is enforced inside each implementation's write path, never by a
// separate existence check, so concurrent creates cannot race past it.
type Repository interface {
	List(ctx context.Context) ([]*employee.Employee, error)
	Get(ctx context.Context, id string) (*employee.Employee, error)
	Create(ctx context.Context, e *employee.Employee) (string, error)
	Update(ctx context.Context, id string, p *employee.UpdatePayload) (*employee.Employee, error)
	Delete(ctx context.Context, id string) error
}
