package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
)

var validate = validator.New()

// ValidateCreateRequest enforces the structural rules of party creation:
// non-empty title, capacity within the 2-10 policy range, and a join
// secret whenever the party is private. Catalog rules (known genre, game
// allowed for genre) are the registry's job.
func ValidateCreateRequest(req domain.PartyCreateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	switch req.Visibility {
	case domain.Public:
	case domain.Private:
		if req.JoinSecret == "" {
			return fmt.Errorf("%w: private party requires a join secret", errors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown visibility %q", errors.ErrValidation, req.Visibility)
	}
	return nil
}
