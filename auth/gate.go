package auth

import (
	"fmt"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
)

// Authorize decides whether a join attempt may proceed. Public parties
// always pass. Private parties verify the supplied secret against the
// stored argon2id hash; a mismatch or missing secret is ErrAccessDenied.
//
// The gate is pure: it runs before any membership mutation, so a denial
// never leaves partial state behind.
func Authorize(party domain.Party, suppliedSecret string) error {
	if party.Visibility != domain.Private {
		return nil
	}
	match, err := CompareSecret(suppliedSecret, party.SecretHash)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrAccessDenied, err)
	}
	if !match {
		return errors.ErrAccessDenied
	}
	return nil
}
