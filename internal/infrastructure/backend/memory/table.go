package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/saradorri/tournamenthub/internal/domain"
)

type rowPtr[T any] interface {
	*T
	domain.Row
}

// table is an ordered in-memory collection. Rows are stored and returned as
// JSON round-tripped copies, so partial updates follow the same column names
// and encoding as the REST backend.
type table[T any, P rowPtr[T]] struct {
	name string

	mu   sync.RWMutex
	rows []*T
}

func newTable[T any, P rowPtr[T]](name string) *table[T, P] {
	return &table[T, P]{name: name}
}

func (t *table[T, P]) list() ([]*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		c, err := clone(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (t *table[T, P]) get(id string) (*T, error) {
	return t.find(func(row *T) bool { return P(row).RowID() == id })
}

func (t *table[T, P]) find(match func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(r) {
			return clone(r)
		}
	}
	return nil, nil
}

func (t *table[T, P]) first() (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.rows) == 0 {
		return nil, nil
	}
	return clone(t.rows[0])
}

func (t *table[T, P]) insert(row *T) (*T, error) {
	c, err := clone(row)
	if err != nil {
		return nil, err
	}
	if P(c).RowID() == "" {
		P(c).AssignID(uuid.NewString())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if P(r).RowID() == P(c).RowID() {
			return nil, &domain.BackendError{
				StatusCode: 409,
				Code:       "23505",
				Message:    fmt.Sprintf("duplicate key value violates unique constraint \"%s_pkey\"", t.name),
			}
		}
	}
	t.rows = append(t.rows, c)
	return clone(c)
}

func (t *table[T, P]) update(id string, fields domain.Fields) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.rows {
		if P(r).RowID() != id {
			continue
		}
		patched, err := patch(r, fields)
		if err != nil {
			return nil, err
		}
		P(patched).AssignID(id)
		t.rows[i] = patched
		return clone(patched)
	}
	return nil, domain.ErrRowNotFound
}

func (t *table[T, P]) delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.rows[:0]
	for _, r := range t.rows {
		if P(r).RowID() != id {
			kept = append(kept, r)
		}
	}
	t.rows = kept
}

func clone[T any](row *T) (*T, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return out, nil
}

func patch[T any](row *T, fields domain.Fields) (*T, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	columns := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	for column, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %s: %w", column, err)
		}
		columns[column] = encoded
	}
	merged, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("failed to apply update: %w", err)
	}
	return out, nil
}
