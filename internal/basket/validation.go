// internal/basket/validation.go
package basket

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const validationTitle = "One or more validation errors occurred."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) empty() bool { return len(f) == 0 }

// validateRequest runs the struct tags on req and reports failures keyed by
// JSON path, e.g. items[1].productId.
func validateRequest(req any) (fieldErrors, error) {
	errs := fieldErrors{}
	err := validate.Struct(req)
	if err == nil {
		return errs, nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return nil, err
	}
	for _, fe := range failures {
		field := fieldPath(fe.Namespace())
		errs.add(field, fieldMessage(fe))
	}
	return errs, nil
}

// fieldPath drops the struct name that leads every namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "productId":
		return "ProductId is required."
	case "quantity":
		return "Quantity must be greater than 0."
	case "items":
		if fe.Tag() == "min" {
			return "At least one item is required."
		}
		return "Items collection is required."
	}
	return fe.Error()
}

// command converts a validated request into a service command.
func (r AddItemRequest) command() AddItemCommand {
	cmd := AddItemCommand{Quantity: 1}
	if r.ProductID != nil {
		cmd.ProductID = strings.TrimSpace(*r.ProductID)
	}
	if r.Quantity != nil {
		cmd.Quantity = *r.Quantity
	}
	return cmd
}

func (r BatchAddItemRequest) command() AddItemsCommand {
	items := make([]AddItemCommand, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.command())
	}
	return AddItemsCommand{Items: items}
}
