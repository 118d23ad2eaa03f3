package tag

import "github.com/thankyou/backend/internal/domain/shared"

// ErrInvalidName matches every name validation failure via errors.Is
var (
	ErrInvalidName   = shared.NewDomainError(shared.CodeInvalidName, "Tag name is invalid")
	ErrNameEmpty     = shared.NewDomainError(shared.CodeInvalidName, "Tag name must not be empty")
	ErrNameTooLong   = shared.NewDomainError(shared.CodeInvalidName, "Tag name is too long")
	ErrNameCharset   = shared.NewDomainError(shared.CodeInvalidName, "Tag name contains invalid characters")
	ErrDuplicateName = shared.NewDomainError(shared.CodeDuplicateName, "Tag name is already in use")
)
