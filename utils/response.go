package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Error titles form the single error-kind vocabulary used across all
// handlers: Validation Error, Credentials Error, Authorization Error,
// Not Found, Conflict, Internal Server Error.

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"error":  title,
		"detail": detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"Une erreur interne est survenue.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(
		iris.StatusNotFound,
		"Not Found",
		"Ressource introuvable.", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(
		iris.StatusForbidden,
		"Authorization Error",
		"Vous n'êtes pas autorisé à effectuer cette action.", ctx)
}

func CreateConflict(detail string, ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", detail, ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateConflict("Cet email est déjà utilisé.", ctx)
}

// HandleValidationErrors renders validator.ValidationErrors as a field
// list; any other read error is reported as a generic validation error.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]validationError, 0, len(errs))
		for _, fieldErr := range errs {
			validationErrors = append(validationErrors, validationError{
				ActualTag: fieldErr.ActualTag(),
				Namespace: fieldErr.Namespace(),
				Kind:      fieldErr.Kind().String(),
				Type:      fieldErr.Type().String(),
				Value:     fieldErr.Param(),
			})
		}

		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":  "Validation Error",
			"fields": validationErrors,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
}

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}
