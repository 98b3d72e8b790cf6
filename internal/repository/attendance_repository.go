package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// DateRange bounds queries by inclusive calendar days.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// DateFilter narrows day-wide queries for admins.
type DateFilter struct {
	Department *string
	CourseID   *string
}

// AttendanceRepository encapsulates attendance persistence.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	// BulkCreate writes the whole batch inside one transaction: either every
	// record commits or none do. Records keep their input order and carry
	// their assigned ids on return.
	BulkCreate(ctx context.Context, records []*domain.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string, dateRange DateRange) ([]domain.AttendanceRecord, error)
	ListByDate(ctx context.Context, date time.Time, filter DateFilter) ([]domain.AttendanceRecord, error)
	UpdateStatus(ctx context.Context, id string, status domain.AttendanceStatus, remarks *string) error
	Delete(ctx context.Context, id string) error
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `id, student_id, date, arrival_time, status, method,
        course_id, recorded_by, remarks, created_at, updated_at`

const attendanceInsert = `
        INSERT INTO attendance (id, student_id, date, arrival_time, status, method,
                                course_id, recorded_by, remarks, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

func (r *attendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	_, err := r.pool.Exec(ctx, attendanceInsert,
		record.ID,
		record.StudentID,
		record.Date,
		record.ArrivalTime,
		record.Status,
		record.Method,
		record.CourseID,
		record.RecordedBy,
		record.Remarks,
		record.CreatedAt,
		record.UpdatedAt,
	)
	return err
}

func (r *attendanceRepository) BulkCreate(ctx context.Context, records []*domain.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	batch := &pgx.Batch{}
	for _, record := range records {
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		batch.Queue(attendanceInsert,
			record.ID,
			record.StudentID,
			record.Date,
			record.ArrivalTime,
			record.Status,
			record.Method,
			record.CourseID,
			record.RecordedBy,
			record.Remarks,
			record.CreatedAt,
			record.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	err := scanAttendance(r.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE id=$1`, id), &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID string, dateRange DateRange) ([]domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE student_id=$1`
	args := []any{studentID}

	if dateRange.Start != nil {
		args = append(args, *dateRange.Start)
		query += ` AND date >= $2`
	}
	if dateRange.End != nil {
		args = append(args, *dateRange.End)
		if dateRange.Start != nil {
			query += ` AND date <= $3`
		} else {
			query += ` AND date <= $2`
		}
	}
	query += ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time, filter DateFilter) ([]domain.AttendanceRecord, error) {
	// Department lives on the user record, so day-wide queries join through
	// the students being reported on.
	query := `SELECT a.id, a.student_id, a.date, a.arrival_time, a.status, a.method,
               a.course_id, a.recorded_by, a.remarks, a.created_at, a.updated_at
        FROM attendance a
        JOIN users u ON u.id = a.student_id
        WHERE a.date=$1`
	args := []any{date}

	if filter.Department != nil {
		args = append(args, *filter.Department)
		query += ` AND u.department = $2`
	}
	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		if filter.Department != nil {
			query += ` AND a.course_id = $3`
		} else {
			query += ` AND a.course_id = $2`
		}
	}
	query += ` ORDER BY a.created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, status domain.AttendanceStatus, remarks *string) error {
	const query = `
        UPDATE attendance SET status=$1, remarks=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, remarks, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectAttendance(rows pgx.Rows) ([]domain.AttendanceRecord, error) {
	var result []domain.AttendanceRecord
	for rows.Next() {
		var record domain.AttendanceRecord
		if err := scanAttendance(rows, &record); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func scanAttendance(row pgx.Row, record *domain.AttendanceRecord) error {
	return row.Scan(
		&record.ID,
		&record.StudentID,
		&record.Date,
		&record.ArrivalTime,
		&record.Status,
		&record.Method,
		&record.CourseID,
		&record.RecordedBy,
		&record.Remarks,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
}
