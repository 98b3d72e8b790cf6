package auth

import "github.com/spec-kit/attendance-service/internal/domain"

// Operation enumerates the protected actions the policy evaluates.
type Operation string

const (
	OpAttendanceRead         Operation = "attendance.read"
	OpAttendanceStats        Operation = "attendance.stats"
	OpAttendanceRecord       Operation = "attendance.record"
	OpAttendanceBulkRecord   Operation = "attendance.bulk_record"
	OpAttendanceReadByDate   Operation = "attendance.read_by_date"
	OpAttendanceUpdateStatus Operation = "attendance.update_status"
	OpAttendanceDelete       Operation = "attendance.delete"
	OpUserRegister           Operation = "user.register"
	OpUserList               Operation = "user.list"
	OpUserDelete             Operation = "user.delete"
)

// Actor is the authenticated identity policy decisions run against.
type Actor struct {
	ID   string
	Role domain.Role
}

// Allow decides whether actor may perform op on a resource owned by
// resourceOwnerID. Pure function, no I/O: admins may do everything, students
// may only read their own attendance and stats, everything else is denied.
func Allow(actor Actor, resourceOwnerID string, op Operation) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStudent:
		switch op {
		case OpAttendanceRead, OpAttendanceStats:
			return actor.ID != "" && actor.ID == resourceOwnerID
		default:
			return false
		}
	default:
		return false
	}
}
