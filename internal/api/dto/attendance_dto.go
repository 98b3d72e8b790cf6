package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// RecordRequest describes one attendance entry.
type RecordRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Status      string  `json:"status" validate:"required"`
	ArrivalTime *string `json:"arrivalTime"`
	CourseID    *string `json:"courseId"`
	Remarks     *string `json:"remarks"`
	Method      *string `json:"method"`
}

// BulkRecordRequest wraps a batch of entries.
type BulkRecordRequest struct {
	Records []RecordRequest `json:"records" validate:"required,min=1,dive"`
}

// UpdateStatusRequest payload for status mutation.
type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	Remarks *string `json:"remarks"`
}

// AttendanceResponse projects a record outward.
type AttendanceResponse struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	ArrivalTime *string   `json:"arrivalTime,omitempty"`
	Method      string    `json:"method"`
	CourseID    *string   `json:"courseId,omitempty"`
	RecordedBy  string    `json:"recordedBy"`
	Remarks     *string   `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewAttendanceResponse converts a domain record.
func NewAttendanceResponse(record *domain.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:          record.ID,
		StudentID:   record.StudentID,
		Date:        record.Date.Format(DateLayout),
		Status:      string(record.Status),
		ArrivalTime: record.ArrivalTime,
		Method:      string(record.Method),
		CourseID:    record.CourseID,
		RecordedBy:  record.RecordedBy,
		Remarks:     record.Remarks,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// NewAttendanceResponses converts a slice of records preserving order.
func NewAttendanceResponses(records []domain.AttendanceRecord) []AttendanceResponse {
	result := make([]AttendanceResponse, len(records))
	for i := range records {
		result[i] = NewAttendanceResponse(&records[i])
	}
	return result
}
