// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires the route table. GET /receitas is the only
// public recipe view; everything else under /receitas requires a
// session.
func (s *Server) registerRoutes() {
	s.engine.Use(s.requestLogger())

	s.engine.GET("/status", s.handleStatus)

	s.engine.POST("/sign-up", s.handleSignUp)
	s.engine.POST("/sign-in", s.handleSignIn)
	s.engine.POST("/sign-out", s.authRequired(), s.handleSignOut)

	s.engine.GET("/receitas", s.handleListRecipes)
	s.engine.GET("/me/receitas", s.authRequired(), s.handleListMyRecipes)
	s.engine.GET("/receitas/:id", s.authRequired(), s.handleGetRecipe)
	s.engine.POST("/receitas", s.authRequired(), s.handleCreateRecipe)
	s.engine.DELETE("/receitas/:id", s.authRequired(), s.handleDeleteRecipe)
}

// handleStatus reports process liveness for load balancers.
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
