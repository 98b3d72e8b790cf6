package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAttendanceStatus(t *testing.T) {
	for _, valid := range []string{"Present", "Absent", "Late", "Excused"} {
		status, ok := ParseAttendanceStatus(valid)
		require.True(t, ok)
		require.Equal(t, AttendanceStatus(valid), status)
	}

	for _, invalid := range []string{"present", "PRESENT", "", "Sick"} {
		_, ok := ParseAttendanceStatus(invalid)
		require.False(t, ok, "input %q", invalid)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("student")
	require.True(t, ok)
	require.Equal(t, RoleStudent, role)

	role, ok = ParseRole("admin")
	require.True(t, ok)
	require.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("Admin")
	require.False(t, ok)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	require.Equal(t, AttendanceStats{}, stats)
}

func TestComputeStatsPercentageRounding(t *testing.T) {
	records := []AttendanceRecord{
		{Status: StatusPresent},
		{Status: StatusPresent},
		{Status: StatusAbsent},
	}
	stats := ComputeStats(records)
	require.Equal(t, 3, stats.Total)
	// 2/3 rounds to two decimals
	require.InDelta(t, 66.67, stats.AttendancePercentage, 0.0001)
}

func TestComputeStatsLateAndExcusedAttend(t *testing.T) {
	records := []AttendanceRecord{
		{Status: StatusLate},
		{Status: StatusExcused},
		{Status: StatusAbsent},
		{Status: StatusAbsent},
	}
	stats := ComputeStats(records)
	require.Equal(t, 1, stats.Late)
	require.Equal(t, 1, stats.Excused)
	require.Equal(t, 2, stats.Absent)
	require.InDelta(t, 50.0, stats.AttendancePercentage, 0.0001)
}
