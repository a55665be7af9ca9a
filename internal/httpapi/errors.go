// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"

	"github.com/panelinha/panelinha/pkg/errutil"
)

// statusForCode maps service error codes to HTTP statuses. Codes not
// listed fall through to 500.
func statusForCode(code string) (int, bool) {
	switch code {
	case "AUTH_EMAIL_TAKEN", "USER_EMAIL_TAKEN":
		return http.StatusConflict, true
	case "AUTH_INVALID_CREDENTIALS":
		return http.StatusUnauthorized, true
	case "SESSION_INVALID", "SESSION_EXPIRED", "SESSION_TOKEN_EMPTY":
		return http.StatusUnauthorized, true
	case "RECIPE_NOT_FOUND":
		return http.StatusNotFound, true
	case "AUTH_INVALID_NAME", "AUTH_INVALID_EMAIL", "AUTH_INVALID_PASSWORD",
		"AUTH_EMPTY_PASSWORD", "RECIPE_INVALID":
		return http.StatusUnprocessableEntity, true
	default:
		return http.StatusInternalServerError, false
	}
}

// writeError maps a service error onto the response. Unexpected errors
// become an opaque 500; nothing internal leaks to the client.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if oopsErr, ok := oops.AsOops(err); ok {
		if mapped, known := statusForCode(oopsErr.Code()); known {
			status = mapped
			message = oopsErr.Error()
		}
	}

	if status == http.StatusInternalServerError {
		errutil.LogError(s.logger, "request failed", err)
	}

	if status == http.StatusUnprocessableEntity {
		c.JSON(status, gin.H{"errors": []string{message}})
		return
	}
	c.JSON(status, gin.H{"error": message})
}

// writeValidationError renders a binding failure as a 422 with one
// message per violated field rule.
func (s *Server) writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationMessages(err)})
}

// validationMessages converts a gin binding error into field-level
// messages. Non-validator errors (malformed JSON, wrong types) get a
// single generic message.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"request body must be valid JSON"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return messages
}
