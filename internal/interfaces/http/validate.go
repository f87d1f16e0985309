package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida de validación de DTOs (los tags `validate`
// viven en los structs de dto).
var validate = validator.New()
