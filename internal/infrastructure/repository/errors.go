package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

// translate maps a missing row to the resource's NotFoundError and wraps
// anything else with op.
func translate(err error, resource, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return errors.Wrap(err, op)
}
