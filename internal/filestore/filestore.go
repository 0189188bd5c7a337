package filestore

import (
	"context"
	"io"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// Store saves uploaded supporting files and hands back a reference the case
// record can carry.
type Store interface {
	Save(ctx context.Context, caseID, filename string, size int64, r io.Reader) (models.FileRef, error)
	Remove(ctx context.Context, ref models.FileRef) error
}
