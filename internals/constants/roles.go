package constants

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)
