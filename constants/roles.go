package constants

// Role is the platform role carried in the access token.
type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// Operator profile approval states
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Defaults for the quote lifecycle
const (
	DefaultQuoteValidityHours = 72
	MaxReferenceRetries       = 3
)
