package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffdir/staffdir/internal/employee"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Email uniqueness
// is carried by a unique index, so duplicate detection happens inside the
// insert/update itself and holds across processes.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) List(ctx context.Context) ([]*employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*employee.Employee{}
	for cur.Next(ctx) {
		var e employee.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*employee.Employee, error) {
	var e employee.Employee
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (m *MongoRepo) Create(ctx context.Context, e *employee.Employee) (string, error) {
	rec := *e
	rec.Email = employee.NormalizeEmail(rec.Email)
	if err := employee.CheckRecord(&rec); err != nil {
		return "", err
	}
	rec.ID = uuid.NewString()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, &rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	*e = rec
	return rec.ID, nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, p *employee.UpdatePayload) (*employee.Employee, error) {
	set, err := updateSet(p)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated employee.Employee
	err = m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// updateSet builds the $set document from a partial payload, re-checking
// each provided field against stored-record constraints. Only validated
// fields enter the update, so a record that satisfied the invariants before
// the merge still satisfies them after.
func updateSet(p *employee.UpdatePayload) (bson.M, error) {
	var errs []string
	set := bson.M{"updatedAt": time.Now().UTC()}
	text := func(name string, v *string) {
		if v == nil {
			return
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			errs = append(errs, name+": must not be empty")
			return
		}
		set[name] = t
	}
	text("name", p.Name)
	text("phone", p.Phone)
	text("department", p.Department)
	text("position", p.Position)
	if p.Email != nil {
		e := employee.NormalizeEmail(*p.Email)
		if e == "" {
			errs = append(errs, "email: must not be empty")
		} else {
			set["email"] = e
		}
	}
	if p.Salary != nil {
		if *p.Salary < 0 {
			errs = append(errs, "salary: must not be negative")
		} else {
			set["salary"] = *p.Salary
		}
	}
	if len(errs) > 0 {
		return nil, &employee.ValidationError{Errors: errs}
	}
	return set, nil
}
