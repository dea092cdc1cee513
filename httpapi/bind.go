package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var bodyValidator = validator.New(validator.WithRequiredStructEnabled())

// bindJSON decodes the request body into dst and runs its struct tags through
// the validator. The returned error is caller-facing.
func bindJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("corps de requête manquant")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("corps de requête invalide: %v", err)
	}
	if err := bodyValidator.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return errors.New("corps de requête invalide")
		}
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return fmt.Errorf("champ invalide: %s", fields[0].Field())
		}
		return err
	}
	return nil
}
