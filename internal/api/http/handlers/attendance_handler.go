package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	"github.com/spec-kit/attendance-service/internal/service"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// AttendanceHandler exposes the attendance ledger endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendanceService}
}

// Record handles POST /attendance/record. Admin-only via route policy.
func (h *AttendanceHandler) Record(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input, err := toRecordInput(req)
	if err != nil {
		return err
	}

	record, err := h.attendance.Record(c.Context(), principal.Actor(), input)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusCreated, dto.NewAttendanceResponse(record), "Attendance recorded")
}

// BulkRecord handles POST /attendance/bulk-record. The batch is written
// all-or-nothing; a failure anywhere leaves the ledger untouched.
func (h *AttendanceHandler) BulkRecord(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.BulkRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	inputs := make([]service.RecordInput, len(req.Records))
	for i, recordReq := range req.Records {
		input, err := toRecordInput(recordReq)
		if err != nil {
			return err
		}
		inputs[i] = input
	}

	records, err := h.attendance.BulkRecord(c.Context(), principal.Actor(), inputs)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusCreated, dto.NewAttendanceResponses(records), "Bulk attendance recorded")
}

// ListByStudent handles GET /attendance/student/:studentId. Students may only
// view their own records; admins may view any.
func (h *AttendanceHandler) ListByStudent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}
	studentID := c.Params("studentId")
	if !auth.Allow(principal.Actor(), studentID, auth.OpAttendanceRead) {
		return apperrors.NewForbidden("access denied: you can only view your own attendance")
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	records, err := h.attendance.ListByStudent(c.Context(), studentID, dateRange)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, dto.NewAttendanceResponses(records), "")
}

// ListByDate handles GET /attendance/date/:date. Admin-only via route policy.
func (h *AttendanceHandler) ListByDate(c *fiber.Ctx) error {
	date, err := parseDate(c.Params("date"))
	if err != nil {
		return err
	}

	filter := repository.DateFilter{}
	if department := c.Query("department"); department != "" {
		filter.Department = &department
	}
	if courseID := c.Query("courseId"); courseID != "" {
		filter.CourseID = &courseID
	}

	records, err := h.attendance.ListByDate(c.Context(), date, filter)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, dto.NewAttendanceResponses(records), "")
}

// Stats handles GET /attendance/stats/:studentId. Students may only view
// their own statistics; admins may view any.
func (h *AttendanceHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}
	studentID := c.Params("studentId")
	if !auth.Allow(principal.Actor(), studentID, auth.OpAttendanceStats) {
		return apperrors.NewForbidden("access denied: you can only view your own statistics")
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	stats, err := h.attendance.Stats(c.Context(), studentID, dateRange)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, stats, "")
}

// UpdateStatus handles PUT /attendance/:id. Admin-only via route policy.
func (h *AttendanceHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	status, ok := domain.ParseAttendanceStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	id := c.Params("id")
	if err := h.attendance.UpdateStatus(c.Context(), principal.Actor(), id, status, req.Remarks); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attendance record", map[string]any{"id": id})
		}
		return err
	}
	return dto.Success(c, http.StatusOK, nil, "Attendance updated")
}

// Delete handles DELETE /attendance/:id. Admin-only via route policy.
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	id := c.Params("id")
	if err := h.attendance.Delete(c.Context(), principal.Actor(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attendance record", map[string]any{"id": id})
		}
		return err
	}
	return dto.Success(c, http.StatusOK, nil, "Attendance deleted")
}

func toRecordInput(req dto.RecordRequest) (service.RecordInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return service.RecordInput{}, err
	}
	status, ok := domain.ParseAttendanceStatus(req.Status)
	if !ok {
		return service.RecordInput{}, apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	input := service.RecordInput{
		StudentID:   req.StudentID,
		Date:        date,
		Status:      status,
		ArrivalTime: req.ArrivalTime,
		CourseID:    req.CourseID,
		Remarks:     req.Remarks,
	}
	if req.Method != nil {
		input.Method = domain.AttendanceMethod(*req.Method)
	}
	return input, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": value})
	}
	return date, nil
}

func parseDateRange(c *fiber.Ctx) (repository.DateRange, error) {
	dateRange := repository.DateRange{}
	if start := c.Query("startDate"); start != "" {
		parsed, err := parseDate(start)
		if err != nil {
			return repository.DateRange{}, err
		}
		dateRange.Start = &parsed
	}
	if end := c.Query("endDate"); end != "" {
		parsed, err := parseDate(end)
		if err != nil {
			return repository.DateRange{}, err
		}
		dateRange.End = &parsed
	}
	return dateRange, nil
}
