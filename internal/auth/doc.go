// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package auth provides credential and session primitives for Panelinha.
//
// # Domain Types
//
// Domain types (User, Session) should be created using their respective
// constructors:
//   - NewUser - creates a User with validated name, email, and password hash
//   - NewSession - creates a Session with validated owner and expiry
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - CredentialService - registration and password authentication
//   - SessionService - token issuance, resolution, and revocation
//
// Services are created with New*Service constructors that validate dependencies.
package auth
