package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportTypeForLayout(t *testing.T) {
	tests := []struct {
		layout Layout
		want   ReportType
	}{
		{LayoutSelfService, ReportTypeSelfService},
		{LayoutAttendant, ReportTypeAttendant},
		{LayoutUnknown, ReportTypeSelfService},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReportTypeForLayout(tt.layout), "layout %s", tt.layout)
	}
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{
		ID:        "12-01/03/2024-09:15-LAVA-01",
		Date:      time.Date(2024, 3, 1, 9, 15, 0, 0, time.Local),
		RawDate:   "01/03/2024",
		RawTime:   "09:15",
		Type:      CycleWash,
		Amount:    15.90,
		DayOfWeek: 5,
	}
	assert.NoError(t, tx.Validate())

	tx.Type = "RINSE"
	assert.Error(t, tx.Validate())

	tx.Type = CycleDry
	tx.DayOfWeek = 7
	assert.Error(t, tx.Validate())
}

func TestDashboardMetadataValidate(t *testing.T) {
	md := DashboardMetadata{
		UnitName:   DefaultUnitName,
		Period:     DefaultPeriod,
		ReportType: ReportTypeSelfService,
	}
	assert.NoError(t, md.Validate())

	md.ReportType = "KIOSK"
	assert.Error(t, md.Validate())
}
