package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propel_backend/internal/models"
)

func TestBuildReportHTML(t *testing.T) {
	inspection := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	property := &models.Property{
		PropertyAddress: "12 Baker Street, London",
		TenantName:      "J. Smith",
		InspectorName:   "A. Inspector",
		InspectionDate:  &inspection,
		SmokeAlarm:      "Working",
		PropertyDetails: []models.PropertyDetail{
			{Name: "Kitchen", Walls: "Good condition"},
			{Name: "Bedroom 1", Floor: "Carpet, worn"},
		},
	}

	html, err := BuildReportHTML(property)
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "12 Baker Street, London")
	assert.Contains(t, body, "J. Smith")
	assert.Contains(t, body, "15 Mar 2024")
	assert.Contains(t, body, "Kitchen")
	assert.Contains(t, body, "Bedroom 1")
	assert.Contains(t, body, "Carpet, worn")
}

func TestBuildReportHTML_NilDates(t *testing.T) {
	property := &models.Property{PropertyAddress: "1 Empty Lane"}

	html, err := BuildReportHTML(property)
	require.NoError(t, err)

	// Отсутствующие даты рендерятся прочерком, а не нулевым временем
	assert.Contains(t, string(html), "-")
	assert.NotContains(t, string(html), "0001")
}

func TestBuildReportHTML_EscapesUserInput(t *testing.T) {
	property := &models.Property{
		PropertyAddress: `<script>alert("xss")</script>`,
	}

	html, err := BuildReportHTML(property)
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>alert")
}
