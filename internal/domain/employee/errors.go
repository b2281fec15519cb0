package employee

import "errors"

var (
	ErrNotFound        = errors.New("employee not found")
	ErrDuplicate       = errors.New("employee with the same username, email or code already exists")
	ErrManagerNotFound = errors.New("manager not found")
	ErrManagerRole     = errors.New("assigned manager must hold the MANAGER or ADMIN role")
	ErrPayInfoNotFound = errors.New("pay information not found")
	ErrContactNotFound = errors.New("contact information not found")
)
