package user

import "errors"

var (
	ErrPrincipalMissing        = errors.New("authenticated principal missing from context")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrForeignRecord           = errors.New("record belongs to another salesperson")
)
