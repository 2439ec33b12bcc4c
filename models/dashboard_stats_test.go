package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardStatsZeroValue(t *testing.T) {
	var stats DashboardStats
	assert.NoError(t, stats.Validate())
	assert.Equal(t, int64(0), stats.CancelledOrOtherAppointments())
}

func TestDashboardStatsJSONCarriesAllSevenFields(t *testing.T) {
	raw, err := json.Marshal(DashboardStats{})
	assert.NoError(t, err)

	var fields map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 7)
	for _, key := range []string{
		"totalVehicles", "upcomingAppointments", "ongoingProjects", "completedAppointments",
		"completedProjects", "totalAppointments", "totalProjects",
	} {
		v, ok := fields[key]
		assert.True(t, ok, "missing %s", key)
		assert.IsType(t, float64(0), v)
	}
}

func TestDashboardStatsConstructionDoesNotValidate(t *testing.T) {
	// A literal with completed > total is still a value; only Validate objects
	stats := DashboardStats{CompletedAppointments: 5, TotalAppointments: 2}
	assert.Equal(t, int64(5), stats.CompletedAppointments)

	err := stats.Validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentStats))
	assert.Contains(t, err.Error(), "completed appointments (5) exceed total (2)")
}

func TestDashboardStatsValidate(t *testing.T) {
	tests := []struct {
		name    string
		stats   DashboardStats
		wantErr string
	}{
		{
			name: "consistent",
			stats: DashboardStats{
				TotalVehicles: 2, UpcomingAppointments: 1, CompletedAppointments: 3, TotalAppointments: 5,
				OngoingProjects: 1, CompletedProjects: 1, TotalProjects: 3,
			},
		},
		{
			name:    "projects overflow",
			stats:   DashboardStats{OngoingProjects: 2, CompletedProjects: 2, TotalProjects: 3},
			wantErr: "completed and ongoing projects (4) exceed total (3)",
		},
		{
			name:    "negative counter",
			stats:   DashboardStats{TotalVehicles: -1},
			wantErr: "totalVehicles is negative",
		},
		{
			name:    "first negative counter in field order",
			stats:   DashboardStats{TotalProjects: -4, CompletedProjects: -3, OngoingProjects: -2, UpcomingAppointments: -1},
			wantErr: "upcomingAppointments is negative (-1)",
		},
		{
			name:    "upcoming plus completed overflow",
			stats:   DashboardStats{UpcomingAppointments: 2, CompletedAppointments: 2, TotalAppointments: 3},
			wantErr: "completed and upcoming appointments (4) exceed total (3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInconsistentStats)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDashboardStatsValidateIsDeterministic(t *testing.T) {
	stats := DashboardStats{TotalVehicles: -1, TotalAppointments: -2, TotalProjects: -3}
	first := stats.Validate()
	for i := 0; i < 50; i++ {
		assert.Equal(t, first.Error(), stats.Validate().Error())
	}
	assert.Contains(t, first.Error(), "totalVehicles is negative")
}
