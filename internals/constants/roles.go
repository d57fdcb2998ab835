package constants

import "fmt"

// Account roles. A single users table with a role tag, resolved once at login.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Only teachers may access %s."
	ErrOnlyStudentsCanAccess = "Only students may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}
