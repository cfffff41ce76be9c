package domain

// UserRole distinguishes ordinary customers from privileged staff.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

// User represents a registered account.
type User struct {
	UserID       int64    `json:"userID"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Role         UserRole `json:"role"`
	AuditFields
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Actor is the identity on whose behalf a service operation runs.
// It is always passed explicitly into service calls; services never
// read the caller identity from ambient context.
type Actor struct {
	UserID int64
	Role   UserRole
}

// IsAdmin reports whether the actor may act on any booking, not only its own.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
