package entity

// Scope identifies which credential store a token was issued against.
type Scope string

const (
	// ScopeUser marks tokens issued to buyer accounts.
	ScopeUser Scope = "user"
	// ScopeSeller marks tokens issued to seller accounts.
	ScopeSeller Scope = "seller"
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks if the Scope is a valid value.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeUser, ScopeSeller:
		return true
	default:
		return false
	}
}
