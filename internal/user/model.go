package user

import "time"

type Role string

const (
	// RoleBuyer places orders; RoleStaff runs the store and sees everything.
	RoleBuyer Role = "buyer"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleStaff
}

type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
