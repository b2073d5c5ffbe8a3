package gormstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/saradorri/tournamenthub/internal/domain"
	"gorm.io/gorm"
)

type rowPtr[T any] interface {
	*T
	domain.Row
}

// table runs the collection operations for one model
type table[T any, P rowPtr[T]] struct {
	db *gorm.DB
}

func (t table[T, P]) list(ctx context.Context, order string) ([]*T, error) {
	var rows []*T
	q := t.db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T, P]) first(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var row T
	q := t.db.WithContext(ctx)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (t table[T, P]) get(ctx context.Context, id string) (*T, error) {
	return t.first(ctx, "id = ?", id)
}

func (t table[T, P]) insert(ctx context.Context, row *T) (*T, error) {
	c := *row
	if P(&c).RowID() == "" {
		P(&c).AssignID(uuid.NewString())
	}
	if err := t.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, translate(err)
	}
	return t.get(ctx, P(&c).RowID())
}

func (t table[T, P]) update(ctx context.Context, id string, fields domain.Fields) (*T, error) {
	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns(fields))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRowNotFound
	}
	return t.get(ctx, id)
}

func (t table[T, P]) delete(ctx context.Context, id string) error {
	return t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

// columns converts list values to postgres arrays
func columns(fields domain.Fields) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if list, ok := v.([]string); ok {
			v = pq.StringArray(list)
		}
		out[k] = v
	}
	return out
}

// translate reports constraint violations the way the REST driver does
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.BackendError{StatusCode: 409, Code: "23505", Message: err.Error()}
	}
	return err
}
