package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderFollowsHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()

	payload, err := exporter.Render(Dataset{
		Title:   "Risk Thresholds",
		Headers: []string{"factor", "operator", "value"},
		Rows: []map[string]string{
			{"factor": "attendance_pct", "operator": "LT", "value": "75"},
			{"factor": "avg_score_pct", "operator": "LT"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "factor,operator,value\nattendance_pct,LT,75\navg_score_pct,LT,\n", string(payload))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.Render(Dataset{
		Title:   "Risk Thresholds",
		Headers: []string{"factor", "value"},
		Rows: []map[string]string{
			{"factor": "attendance_pct", "value": "75"},
		},
	})
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestCellAlignRightAlignsNumbers(t *testing.T) {
	assert.Equal(t, "R", cellAlign("75.5"))
	assert.Equal(t, "", cellAlign("attendance_pct"))
}
