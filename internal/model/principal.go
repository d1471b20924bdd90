package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}
