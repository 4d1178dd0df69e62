package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
)

// --- Error Report DTOs ---

type CreateErrorReportRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	UserName    string  `json:"user_name" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Severity    string  `json:"severity"`
}

type UpdateErrorReportRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
}

// --- ErrorReportService Interface ---

type ErrorReportService interface {
	CreateReport(req CreateErrorReportRequest) (*models.ErrorReport, error)
	GetReportByID(id string) (*models.ErrorReport, error)
	GetReports(status *string, limit int) ([]models.ErrorReport, error)
	UpdateReport(id string, req UpdateErrorReportRequest) (*models.ErrorReport, error)
	ResolveReport(id string) (*models.ErrorReport, error)
	DeleteReport(id string) error
}

type errorReportService struct {
	reportRepo repositories.ErrorReportRepository
	db         repositories.SQLExecutor
}

// NewErrorReportService creates a new instance of ErrorReportService.
func NewErrorReportService(reportRepo repositories.ErrorReportRepository, db repositories.SQLExecutor) ErrorReportService {
	return &errorReportService{reportRepo: reportRepo, db: db}
}

func (s *errorReportService) CreateReport(req CreateErrorReportRequest) (*models.ErrorReport, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: report title cannot be empty", ErrValidation)
	}
	severity := defaultString(req.Severity, models.SeverityMedium)
	if !models.IsValidSeverity(severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, severity)
	}

	report := &models.ErrorReport{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		UserName:    req.UserName,
		Title:       req.Title,
		Description: req.Description,
		Severity:    severity,
		Status:      models.ReportOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.reportRepo.Create(s.db, report); err != nil {
		return nil, fmt.Errorf("failed to create error report: %w", err)
	}
	return report, nil
}

func (s *errorReportService) GetReportByID(id string) (*models.ErrorReport, error) {
	report, err := s.reportRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get error report: %w", err)
	}
	return report, nil
}

func (s *errorReportService) GetReports(status *string, limit int) ([]models.ErrorReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	reports, err := s.reportRepo.GetAll(status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get error reports: %w", err)
	}
	return reports, nil
}

func (s *errorReportService) UpdateReport(id string, req UpdateErrorReportRequest) (*models.ErrorReport, error) {
	report, err := s.GetReportByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: report title cannot be empty if provided", ErrValidation)
		}
		report.Title = *req.Title
	}
	if req.Description != nil {
		report.Description = req.Description
	}
	if req.Severity != nil {
		if !models.IsValidSeverity(*req.Severity) {
			return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, *req.Severity)
		}
		report.Severity = *req.Severity
	}

	if err := s.reportRepo.Update(s.db, report); err != nil {
		return nil, fmt.Errorf("failed to update error report: %w", err)
	}
	return report, nil
}

// ResolveReport marks the report resolved and stamps resolved_at. Resolving
// an already resolved report refreshes the timestamp.
func (s *errorReportService) ResolveReport(id string) (*models.ErrorReport, error) {
	report, err := s.GetReportByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report.Status = models.ReportResolved
	report.ResolvedAt = &now
	if err := s.reportRepo.Update(s.db, report); err != nil {
		return nil, fmt.Errorf("failed to resolve error report: %w", err)
	}
	return report, nil
}

func (s *errorReportService) DeleteReport(id string) error {
	if err := s.reportRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete error report: %w", err)
	}
	return nil
}
