package service

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors handlers map onto HTTP statuses.
var (
	ErrInvalid   = errors.New("invalid request")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("no permission")
	ErrDuplicate = errors.New("already exists")
)

// wrapDBErr converts gorm errors into the service taxonomy.
func wrapDBErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
