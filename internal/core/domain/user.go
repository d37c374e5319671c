package domain

// User is an operator account. User IDs feed the audit stamps on shipments,
// which the lane rate recorder copies onto derived lane rates.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
