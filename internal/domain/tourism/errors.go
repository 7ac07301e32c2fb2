package tourism

import "github.com/tourdesk/backend/internal/domain/shared"

// Not-found errors per entity kind. They share the NOT_FOUND code so the
// HTTP layer maps them all to 404.
var (
	ErrTourNotFound        = shared.NewDomainError(shared.CodeNotFound, "Tour not found")
	ErrTouristNotFound     = shared.NewDomainError(shared.CodeNotFound, "Tourist not found")
	ErrTransactionNotFound = shared.NewDomainError(shared.CodeNotFound, "Transaction not found")
	ErrFileNotFound        = shared.NewDomainError(shared.CodeNotFound, "File not found")
)
