package domain

import (
	"math"
	"time"
)

// AttendanceStatus enumerates attendance outcomes for a calendar day.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
	StatusExcused AttendanceStatus = "Excused"
)

// ParseAttendanceStatus maps an input string onto the closed status set.
func ParseAttendanceStatus(value string) (AttendanceStatus, bool) {
	switch AttendanceStatus(value) {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return AttendanceStatus(value), true
	default:
		return "", false
	}
}

// AttendanceMethod records how an attendance entry was captured.
type AttendanceMethod string

const (
	MethodManual    AttendanceMethod = "manual"
	MethodBulk      AttendanceMethod = "bulk"
	MethodDeviceLog AttendanceMethod = "device-log"
)

// AttendanceRecord is the ledger entry for one student on one day.
// (StudentID, Date) is the logical key for aggregation; duplicates are
// permitted and every record counts toward stats.
type AttendanceRecord struct {
	ID          string
	StudentID   string
	Date        time.Time
	ArrivalTime *string
	Status      AttendanceStatus
	Method      AttendanceMethod
	CourseID    *string
	RecordedBy  string
	Remarks     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AttendanceStats is derived from a record set; it is never persisted.
type AttendanceStats struct {
	Total                int     `json:"total"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Late                 int     `json:"late"`
	Excused              int     `json:"excused"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// ComputeStats tallies the records and derives the attendance percentage.
// Late and Excused count toward the attended share but are reported separately.
func ComputeStats(records []AttendanceRecord) AttendanceStats {
	stats := AttendanceStats{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		case StatusLate:
			stats.Late++
		case StatusExcused:
			stats.Excused++
		}
	}
	if stats.Total > 0 {
		attended := float64(stats.Present + stats.Late + stats.Excused)
		stats.AttendancePercentage = math.Round(attended/float64(stats.Total)*100*100) / 100
	}
	return stats
}
