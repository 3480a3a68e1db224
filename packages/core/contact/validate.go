package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// Values is the payload of the contact form.
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (v Values) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldSubject:
		return v.Subject
	case FieldMessage:
		return v.Message
	}
	return ""
}

func (v *Values) Set(field Field, value string) {
	switch field {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldSubject:
		v.Subject = value
	case FieldMessage:
		v.Message = value
	}
}

// ValidateField returns the error message for value, or "" when it is acceptable.
func ValidateField(field Field, value string) string {
	switch field {
	case FieldName:
		if tooShort(value, 2) {
			return "Name must be at least 2 characters"
		}
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldPhone:
		if value != "" && !phonePattern.MatchString(value) {
			return "Please enter a valid phone number"
		}
	case FieldSubject:
		if tooShort(value, 3) {
			return "Subject must be at least 3 characters"
		}
	case FieldMessage:
		if tooShort(value, 10) {
			return "Message must be at least 10 characters"
		}
	}
	return ""
}

// Validate checks every field and returns the failing ones.
func Validate(v Values) map[Field]string {
	errs := make(map[Field]string)
	for _, field := range Fields() {
		if msg := ValidateField(field, v.Get(field)); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func tooShort(value string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) < n
}
