package validation

import (
	"fmt"
)

// JSONSchema describes the structure of a tool's expected parameters.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against a JSON schema with detailed errors.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	for _, requiredField := range schema.Required {
		if _, exists := input[requiredField]; !exists {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for name, value := range input {
		prop, known := schema.Properties[name]
		if !known {
			continue
		}
		if err := validateProperty(name, value, prop); err != nil {
			errors = append(errors, *err)
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateProperty(name string, value interface{}, prop Property) *ValidationError {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return typeError(name, "string")
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, s) {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value %q not in enum", s),
				Code:    "ENUM_VIOLATION",
			}
		}
	case "number", "integer":
		n, ok := toFloat(value)
		if !ok {
			return typeError(name, prop.Type)
		}
		if prop.Minimum != nil && n < *prop.Minimum {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value %v below minimum %v", n, *prop.Minimum),
				Code:    "MINIMUM_VIOLATION",
			}
		}
		if prop.Maximum != nil && n > *prop.Maximum {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value %v above maximum %v", n, *prop.Maximum),
				Code:    "MAXIMUM_VIOLATION",
			}
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return typeError(name, "boolean")
		}
	}
	return nil
}

func typeError(name, expected string) *ValidationError {
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("expected type %s", expected),
		Code:    "TYPE_MISMATCH",
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Float is a convenience for building schema bounds inline.
func Float(v float64) *float64 { return &v }
