package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

func TestCreateReportDefaults(t *testing.T) {
	svc := NewErrorReportService(newFakeErrorReportRepo(), nil)

	report, err := svc.CreateReport(CreateErrorReportRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		Title:    "Scanner crashes on landscape photos",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SeverityMedium, report.Severity)
	assert.Equal(t, models.ReportOpen, report.Status)
	assert.Nil(t, report.ResolvedAt)
}

func TestCreateReportRejectsUnknownSeverity(t *testing.T) {
	svc := NewErrorReportService(newFakeErrorReportRepo(), nil)

	_, err := svc.CreateReport(CreateErrorReportRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		Title:    "x",
		Severity: "catastrophic",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveReportStampsTimestamp(t *testing.T) {
	reportRepo := newFakeErrorReportRepo()
	svc := NewErrorReportService(reportRepo, nil)

	report, err := svc.CreateReport(CreateErrorReportRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		Title:    "Low stock alert fires twice",
		Severity: models.SeverityHigh,
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	first := *resolved.ResolvedAt

	// Re-resolving refreshes the timestamp instead of failing.
	again, err := svc.ResolveReport(report.ID)
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt)
	assert.False(t, again.ResolvedAt.Before(first))
}

func TestGetReportsFilterByStatus(t *testing.T) {
	reportRepo := newFakeErrorReportRepo()
	svc := NewErrorReportService(reportRepo, nil)

	open, err := svc.CreateReport(CreateErrorReportRequest{
		UserID: gofakeit.UUID(), UserName: gofakeit.Username(), Title: "a",
	})
	require.NoError(t, err)
	toResolve, err := svc.CreateReport(CreateErrorReportRequest{
		UserID: gofakeit.UUID(), UserName: gofakeit.Username(), Title: "b",
	})
	require.NoError(t, err)
	_, err = svc.ResolveReport(toResolve.ID)
	require.NoError(t, err)

	openOnly, err := svc.GetReports(strPtr(models.ReportOpen), 10)
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	assert.Equal(t, open.ID, openOnly[0].ID)
}

func TestResolveReportNotFound(t *testing.T) {
	svc := NewErrorReportService(newFakeErrorReportRepo(), nil)

	_, err := svc.ResolveReport(gofakeit.UUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportNotFound)
}
