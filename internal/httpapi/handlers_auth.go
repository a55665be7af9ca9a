// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signInResponse struct {
	Token string     `json:"token"`
	User  signInUser `json:"user"`
}

// handleSignUp registers a new account. The response never echoes the
// password or its hash.
func (s *Server) handleSignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeValidationError(c, err)
		return
	}

	if _, err := s.credentials.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

// handleSignIn authenticates and issues a bearer token. Unknown email
// and wrong password produce byte-identical responses.
func (s *Server) handleSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeValidationError(c, err)
		return
	}

	user, err := s.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.RecordLogin("failure")
		s.writeError(c, err)
		return
	}

	_, token, err := s.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		s.metrics.RecordLogin("failure")
		s.writeError(c, err)
		return
	}

	s.metrics.RecordLogin("success")
	c.JSON(http.StatusOK, signInResponse{
		Token: token,
		User:  signInUser{Name: user.Name, Email: user.Email},
	})
}

// handleSignOut revokes the presented session. Revocation is
// idempotent, so logout always succeeds once the guard has admitted
// the request.
func (s *Server) handleSignOut(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	if err := s.sessions.Revoke(c.Request.Context(), token); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
