package events

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAttendanceRecorded      EventType = "attendance_recorded"
	EventAttendanceBulkRecorded  EventType = "attendance_bulk_recorded"
	EventAttendanceStatusChanged EventType = "attendance_status_changed"
	EventAttendanceDeleted       EventType = "attendance_deleted"
	EventUserRegistered          EventType = "user_registered"
	EventUserDeactivated         EventType = "user_deactivated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AttendanceRecordedPayload payload.
type AttendanceRecordedPayload struct {
	RecordID  string                  `json:"record_id"`
	StudentID string                  `json:"student_id"`
	Date      string                  `json:"date"`
	Status    domain.AttendanceStatus `json:"status"`
	Method    domain.AttendanceMethod `json:"method"`
}

// AttendanceBulkRecordedPayload payload.
type AttendanceBulkRecordedPayload struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// AttendanceStatusChangedPayload payload.
type AttendanceStatusChangedPayload struct {
	RecordID  string                  `json:"record_id"`
	NewStatus domain.AttendanceStatus `json:"new_status"`
	Remarks   *string                 `json:"remarks,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// UserDeactivatedPayload payload.
type UserDeactivatedPayload struct {
	UserID string `json:"user_id"`
}
