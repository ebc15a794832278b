package employee

import "time"

// Employee is the persistent staff record. The ID is assigned by the
// repository and never changes; email is stored lowercase and is unique
// across the collection.
type Employee struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Phone      string    `json:"phone" bson:"phone"`
	Department string    `json:"department" bson:"department"`
	Position   string    `json:"position" bson:"position"`
	Salary     float64   `json:"salary" bson:"salary"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreatePayload carries the client-supplied fields for a new record.
// Salary is a pointer so an absent salary is distinguishable from zero.
type CreatePayload struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Salary     *float64 `json:"salary"`
}

// UpdatePayload carries a partial update: nil fields are left unchanged.
type UpdatePayload struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Department *string  `json:"department,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
}

// Empty reports whether the payload carries no fields at all.
func (p *UpdatePayload) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Department == nil && p.Position == nil && p.Salary == nil
}
