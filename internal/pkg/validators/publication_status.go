package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// publicationStatuses lists the single-character publication status codes
const publicationStatuses = "igrep"

// PublicationStatusValidation validates a single-character publication status (i, g, r, e or p).
func PublicationStatusValidation(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	return len(status) == 1 && strings.Contains(publicationStatuses, status)
}

// URLSchemes are the schemes a homepage or download location may carry
var URLSchemes = []string{"http://", "https://", "ftp://", "sftp://"}

// HasURLScheme reports whether s starts with one of URLSchemes, ignoring case.
func HasURLScheme(s string) bool {
	lower := strings.ToLower(s)
	for _, scheme := range URLSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// HomepageValidation accepts an empty value or a URL carrying one of URLSchemes.
func HomepageValidation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if !HasURLScheme(value) {
		return false
	}
	rest := value[strings.Index(value, "://")+3:]
	return rest != "" && !strings.ContainsAny(rest, " \t\n")
}

// Register adds the custom validations of this package to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("publicationStatus", PublicationStatusValidation); err != nil {
		return err
	}
	return v.RegisterValidation("homepage", HomepageValidation)
}
