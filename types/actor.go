package types

import "tour-booking/constants"

// Actor is the authenticated caller, resolved once per request and passed
// explicitly into every negotiation operation.
type Actor struct {
	UserID uint
	Name   string
	Role   constants.Role

	// Set only for operators
	OperatorProfileID *uint
	OperatorApproved  bool
}

func (a Actor) IsCustomer() bool { return a.Role == constants.RoleUser }
func (a Actor) IsOperator() bool { return a.Role == constants.RoleOperator }
func (a Actor) IsAdmin() bool    { return a.Role == constants.RoleAdmin }
