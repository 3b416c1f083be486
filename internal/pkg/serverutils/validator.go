// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"healthlync-be/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// ValidationError so the error handler maps them to HTTP 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fe.Field()+" failed on '"+fe.Tag()+"'")
			}
			return apperrors.NewValidation("%s", strings.Join(msgs, ", "))
		}
		return apperrors.NewValidation("%s", err.Error())
	}
	return nil
}
