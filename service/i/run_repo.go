package i

import (
	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for archived run persistence.
type RunRepo interface {
	// Save inserts or updates an archived run record.
	Save(record *dmn.RunRecord) error

	// ByID retrieves an archived run by its ID.
	// Returns an error if the record is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.RunRecord, error)

	// Recent returns up to limit archived runs, most recently finished
	// first.
	Recent(limit int64) ([]*dmn.RunRecord, error)
}
