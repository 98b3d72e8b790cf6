package service

import (
	"context"
	"time"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
)

// AttendanceService owns the attendance record lifecycle.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	dispatcher events.Dispatcher
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendance repository.AttendanceRepository, dispatcher events.Dispatcher) *AttendanceService {
	return &AttendanceService{attendance: attendance, dispatcher: dispatcher}
}

// RecordInput describes one attendance entry to write.
type RecordInput struct {
	StudentID   string
	Date        time.Time
	Status      domain.AttendanceStatus
	ArrivalTime *string
	CourseID    *string
	Remarks     *string
	Method      domain.AttendanceMethod
}

// Record persists a single attendance entry. Required-field presence is
// checked upstream at the handler; the ledger itself does not validate.
func (s *AttendanceService) Record(ctx context.Context, actor auth.Actor, input RecordInput) (*domain.AttendanceRecord, error) {
	record := s.buildRecord(actor.ID, input, domain.MethodManual)
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventAttendanceRecorded,
		SubjectID: record.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.AttendanceRecordedPayload{
			RecordID:  record.ID,
			StudentID: record.StudentID,
			Date:      record.Date.Format("2006-01-02"),
			Status:    record.Status,
			Method:    record.Method,
		},
	})
	return record, nil
}

// BulkRecord writes the whole batch atomically and returns the records in
// input order, each carrying its assigned id.
func (s *AttendanceService) BulkRecord(ctx context.Context, actor auth.Actor, inputs []RecordInput) ([]domain.AttendanceRecord, error) {
	records := make([]*domain.AttendanceRecord, len(inputs))
	dates := make([]string, 0, len(inputs))
	for i, input := range inputs {
		records[i] = s.buildRecord(actor.ID, input, domain.MethodBulk)
		dates = append(dates, input.Date.Format("2006-01-02"))
	}

	if err := s.attendance.BulkCreate(ctx, records); err != nil {
		return nil, err
	}

	result := make([]domain.AttendanceRecord, len(records))
	for i, record := range records {
		result[i] = *record
	}
	s.publish(ctx, events.Event{
		Type:  events.EventAttendanceBulkRecorded,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.AttendanceBulkRecordedPayload{
			Count: len(result),
			Dates: dates,
		},
	})
	return result, nil
}

// ListByStudent returns a student's records, newest date first.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string, dateRange repository.DateRange) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByStudent(ctx, studentID, dateRange)
}

// ListByDate returns every record for a calendar day, optionally narrowed by
// department or course.
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time, filter repository.DateFilter) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByDate(ctx, date, filter)
}

// Stats recomputes the aggregate from the student's record set on every call
// so it always reflects the latest writes. Duplicate (student, date) pairs
// each count once.
func (s *AttendanceService) Stats(ctx context.Context, studentID string, dateRange repository.DateRange) (domain.AttendanceStats, error) {
	records, err := s.attendance.ListByStudent(ctx, studentID, dateRange)
	if err != nil {
		return domain.AttendanceStats{}, err
	}
	return domain.ComputeStats(records), nil
}

// UpdateStatus overwrites status and remarks; no history of the prior value
// is kept. A missing id surfaces as the repository's not-found error.
func (s *AttendanceService) UpdateStatus(ctx context.Context, actor auth.Actor, id string, status domain.AttendanceStatus, remarks *string) error {
	if err := s.attendance.UpdateStatus(ctx, id, status, remarks); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventAttendanceStatusChanged,
		SubjectID: id,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.AttendanceStatusChangedPayload{
			RecordID:  id,
			NewStatus: status,
			Remarks:   remarks,
		},
	})
	return nil
}

// Delete removes a record permanently.
func (s *AttendanceService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if err := s.attendance.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventAttendanceDeleted,
		SubjectID: id,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
	})
	return nil
}

func (s *AttendanceService) buildRecord(recordedBy string, input RecordInput, fallbackMethod domain.AttendanceMethod) *domain.AttendanceRecord {
	method := input.Method
	if method == "" {
		method = fallbackMethod
	}
	return &domain.AttendanceRecord{
		StudentID:   input.StudentID,
		Date:        input.Date,
		Status:      input.Status,
		ArrivalTime: input.ArrivalTime,
		CourseID:    input.CourseID,
		Remarks:     input.Remarks,
		Method:      method,
		RecordedBy:  recordedBy,
	}
}

func (s *AttendanceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
