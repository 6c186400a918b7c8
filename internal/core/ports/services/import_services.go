package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// ImportSvcFacade defines the legacy-export import operation.
type ImportSvcFacade interface {
	// ImportLegacy parses a hierarchical legacy export and loads the
	// normalized records. Records whose keys already exist are skipped.
	ImportLegacy(ctx context.Context, data []byte, importedBy string) (*dto.ImportSummary, error)
}
