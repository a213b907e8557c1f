package main

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the row-mapping layer for one table. Every call runs on a session
// scoped to the caller's context; gorm hands the connection back to the pool
// when the call returns.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

func (s *Store[T]) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Insert stores row and fills in its new id.
func (s *Store[T]) Insert(ctx context.Context, row *T) error {
	if err := s.session(ctx).Create(row).Error; err != nil {
		return translate("insert", err)
	}
	return nil
}

func (s *Store[T]) GetByID(ctx context.Context, id uint) (T, error) {
	var row T
	if err := s.session(ctx).First(&row, id).Error; err != nil {
		return row, translate("get", err)
	}
	return row, nil
}

// List returns rows in insertion order.
func (s *Store[T]) List(ctx context.Context, offset, limit int) ([]T, error) {
	rows := []T{}
	err := s.session(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, translate("list", err)
	}
	return rows, nil
}

// First returns the singleton row. If a race left more than one behind, the
// most recently created one wins.
func (s *Store[T]) First(ctx context.Context) (T, error) {
	var row T
	if err := s.session(ctx).Order("id DESC").Take(&row).Error; err != nil {
		return row, translate("first", err)
	}
	return row, nil
}

// UpdateFields lets apply change the supplied fields on row, then saves it.
func (s *Store[T]) UpdateFields(ctx context.Context, row *T, apply func(*T)) error {
	apply(row)
	if err := s.session(ctx).Save(row).Error; err != nil {
		return translate("update", err)
	}
	return nil
}

// DeleteByID reports whether a row with id existed and was removed.
func (s *Store[T]) DeleteByID(ctx context.Context, id uint) (bool, error) {
	result := s.session(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, translate("delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAll empties the table.
func (s *Store[T]) DeleteAll(ctx context.Context) error {
	err := s.session(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
	if err != nil {
		return translate("delete all", err)
	}
	return nil
}

// Replace clears the table and inserts row in one transaction, which is how
// singletons are created.
func (s *Store[T]) Replace(ctx context.Context, row *T) error {
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := NewStore[T](tx)
		if err := txStore.DeleteAll(ctx); err != nil {
			return err
		}
		return txStore.Insert(ctx, row)
	})
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
