package services

import (
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// CanModify reports whether the identity may mutate the assignment:
// admins may touch anything, everyone else only their own records.
// Bulk operations apply the same rule per item but skip silently
// instead of failing the batch.
func CanModify(identity model.Identity, assignment model.Assignment) bool {
	if identity.IsAdmin {
		return true
	}
	return identity.Email == assignment.TeacherEmail
}
