package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinimumStock is the lowest stock level a seller may set
const MinimumStock = 10

var (
	productNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 -]*$`)
	imageExtensions    = []string{".png", ".jpg", ".jpeg"}

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("productname", func(fl validator.FieldLevel) bool {
		return productNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		image := strings.ToLower(fl.Field().String())
		for _, ext := range imageExtensions {
			if strings.HasSuffix(image, ext) {
				return true
			}
		}
		return false
	})
	return v
}

// ValidateProduct checks a candidate product against the catalog rules.
// Only the first violation is reported.
func ValidateProduct(p *Product) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return NewValidationError("invalid %s: %s", fieldErrs[0].Field(), ruleMessage(fieldErrs[0]))
	}
	return NewValidationError("invalid product: %s", err.Error())
}

// ValidateStock reports whether quantity is an acceptable seller stock level
func ValidateStock(quantity int) bool {
	return quantity >= MinimumStock
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "productname":
		return "must start with a letter and contain only letters, digits, spaces or hyphens"
	case "imageref":
		return "must be a .png, .jpg or .jpeg reference"
	}
	return "failed " + fe.Tag() + " rule"
}
