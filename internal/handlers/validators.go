package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// RegisterCustomValidations adds domain-aware validations to gin's binding
// validator. Must run before the first request is bound.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("doctype", validateDocumentType); err != nil {
		return err
	}
	return v.RegisterValidation("proctier", validateProcessingTier)
}

func validateDocumentType(fl validator.FieldLevel) bool {
	_, ok := domain.ValidDocumentTypes[domain.DocumentType(fl.Field().String())]
	return ok
}

func validateProcessingTier(fl validator.FieldLevel) bool {
	_, ok := domain.ValidProcessingTiers[domain.ProcessingTier(fl.Field().String())]
	return ok
}
