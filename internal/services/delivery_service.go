package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/ai"
	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/pkg/utils"
)

// Extraction method labels mirror the product-scan tagging.
const (
	ExtractionMethodAI       = "AI-powered scan"
	ExtractionMethodFallback = "Enhanced fallback"
)

// --- Delivery DTOs ---

type CreateDeliveryRequest struct {
	SupplierID           *string               `json:"supplier_id"`
	SupplierName         string                `json:"supplier_name" binding:"required"`
	DeliveryNumber       *string               `json:"delivery_number"`
	TrackingNumber       *string               `json:"tracking_number"`
	DriverName           *string               `json:"driver_name"`
	Status               string                `json:"status"`
	Items                []models.DeliveryItem `json:"items"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date"`
	CreatedBy            *string               `json:"created_by"`
}

type UpdateDeliveryRequest struct {
	SupplierID           *string               `json:"supplier_id"`
	SupplierName         *string               `json:"supplier_name"`
	DeliveryNumber       *string               `json:"delivery_number"`
	TrackingNumber       *string               `json:"tracking_number"`
	DriverName           *string               `json:"driver_name"`
	ReceiverName         *string               `json:"receiver_name"`
	Status               *string               `json:"status"`
	Items                []models.DeliveryItem `json:"items"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time            `json:"actual_delivery_date"`
	UpdatedBy            *string               `json:"updated_by"`
}

// DeliverySearchRequest drives the cross-field delivery search.
type DeliverySearchRequest struct {
	Query     string
	SortBy    string
	SortOrder string
	Limit     int
}

// DeliverySearchResult echoes the query alongside the matches.
type DeliverySearchResult struct {
	Results      []models.Delivery `json:"results"`
	TotalResults int               `json:"total_results"`
	Query        string            `json:"query"`
}

type ProcessDeliveryNoteRequest struct {
	PhotoBase64 string  `json:"photo_base64" binding:"required"`
	UserID      string  `json:"user_id" binding:"required"`
	UserName    string  `json:"user_name" binding:"required"`
	Screen      *string `json:"screen"`
}

// DeliveryNoteResult is the tagged outcome of a delivery note extraction.
type DeliveryNoteResult struct {
	Success          bool                       `json:"success"`
	Delivery         *models.Delivery           `json:"delivery"`
	ExtractedData    *models.DeliveryExtraction `json:"extracted_data"`
	ExtractionMethod string                     `json:"extraction_method"`
	FallbackReason   *string                    `json:"fallback_reason,omitempty"`
}

// ConfirmDeliveryItem describes one received line during confirmation.
type ConfirmDeliveryItem struct {
	ItemName         string  `json:"item_name" binding:"required"`
	ItemType         string  `json:"item_type"`
	QuantityReceived int     `json:"quantity_received"`
	MatchedItemID    *string `json:"matched_item_id"`
	IsNewItem        bool    `json:"is_new_item"`
	Category         *string `json:"category"`
	Unit             *string `json:"unit"`
	Condition        *string `json:"condition"`
	Notes            *string `json:"notes"`
}

type ConfirmDeliveryRequest struct {
	Items    []ConfirmDeliveryItem `json:"items" binding:"required"`
	UserID   string                `json:"user_id" binding:"required"`
	UserName string                `json:"user_name" binding:"required"`
	Screen   *string               `json:"screen"`
}

// ConfirmItemOutcome reports what happened to a single confirmed line.
type ConfirmItemOutcome struct {
	ItemName string  `json:"item_name"`
	Action   string  `json:"action"` // updated, created, skipped, failed
	ItemID   *string `json:"item_id,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// ConfirmDeliveryResult reports the fan-out outcome. The delivery completes
// even when individual item updates fail; failures are listed per item.
type ConfirmDeliveryResult struct {
	Delivery     *models.Delivery     `json:"delivery"`
	ItemsUpdated int                  `json:"items_updated"`
	ItemsCreated int                  `json:"items_created"`
	ItemsSkipped int                  `json:"items_skipped"`
	ItemsFailed  int                  `json:"items_failed"`
	Outcomes     []ConfirmItemOutcome `json:"outcomes"`
}

// DeliveryAnalytics summarizes delivery activity for the dashboard.
type DeliveryAnalytics struct {
	TotalDeliveries     int               `json:"total_deliveries"`
	PendingDeliveries   int               `json:"pending_deliveries"`
	CompletedDeliveries int               `json:"completed_deliveries"`
	DeliveriesThisMonth int               `json:"deliveries_this_month"`
	CompletionRate      float64           `json:"completion_rate"`
	RecentDeliveries    []models.Delivery `json:"recent_deliveries"`
}

// --- DeliveryService Interface ---

type DeliveryService interface {
	CreateDelivery(req CreateDeliveryRequest) (*models.Delivery, error)
	GetDeliveryByID(id string) (*models.Delivery, error)
	GetDeliveries(filter repositories.DeliveryFilter) ([]models.Delivery, error)
	UpdateDelivery(id string, req UpdateDeliveryRequest) (*models.Delivery, error)
	DeleteDelivery(id string) error
	SearchDeliveries(req DeliverySearchRequest) (*DeliverySearchResult, error)
	ProcessDeliveryNote(ctx context.Context, id string, req ProcessDeliveryNoteRequest) (*DeliveryNoteResult, error)
	ConfirmDelivery(id string, req ConfirmDeliveryRequest) (*ConfirmDeliveryResult, error)
	GetAnalytics() (*DeliveryAnalytics, error)
}

type deliveryService struct {
	deliveryRepo     repositories.DeliveryRepository
	materialRepo     repositories.MaterialRepository
	toolRepo         repositories.ToolRepository
	notificationRepo repositories.NotificationRepository
	reader           ai.DeliveryNoteReader
	db               repositories.SQLExecutor
}

// NewDeliveryService creates a new instance of DeliveryService. reader may be
// nil when no model API key is configured.
func NewDeliveryService(
	deliveryRepo repositories.DeliveryRepository,
	materialRepo repositories.MaterialRepository,
	toolRepo repositories.ToolRepository,
	notificationRepo repositories.NotificationRepository,
	reader ai.DeliveryNoteReader,
	db repositories.SQLExecutor,
) DeliveryService {
	return &deliveryService{
		deliveryRepo:     deliveryRepo,
		materialRepo:     materialRepo,
		toolRepo:         toolRepo,
		notificationRepo: notificationRepo,
		reader:           reader,
		db:               db,
	}
}

func (s *deliveryService) CreateDelivery(req CreateDeliveryRequest) (*models.Delivery, error) {
	if strings.TrimSpace(req.SupplierName) == "" {
		return nil, fmt.Errorf("%w: supplier_name cannot be empty", ErrValidation)
	}
	status := defaultString(req.Status, models.DeliveryPending)
	if !models.IsValidDeliveryStatus(status) {
		return nil, fmt.Errorf("%w: unknown delivery status %q", ErrValidation, status)
	}

	supplierName := req.SupplierName
	actor := defaultStringPtr(req.CreatedBy, "system")
	delivery := &models.Delivery{
		ID:                   uuid.NewString(),
		DeliveryNumber:       req.DeliveryNumber,
		SupplierID:           req.SupplierID,
		SupplierName:         &supplierName,
		Status:               status,
		Items:                req.Items,
		TotalItemsExpected:   totalExpected(req.Items),
		TotalItemsReceived:   totalReceived(req.Items),
		TrackingNumber:       req.TrackingNumber,
		DriverName:           req.DriverName,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		AuditLog: []models.AuditEntry{{
			Timestamp: time.Now().UTC(),
			UserID:    actor,
			UserName:  actor,
			Action:    "delivery_created",
			Details: map[string]interface{}{
				"delivery_number": req.DeliveryNumber,
				"supplier":        supplierName,
			},
			Screen: "Deliveries",
		}},
	}
	if delivery.Items == nil {
		delivery.Items = []models.DeliveryItem{}
	}
	if err := s.deliveryRepo.Create(s.db, delivery); err != nil {
		return nil, fmt.Errorf("failed to create delivery: %w", err)
	}

	s.notifyTeam(models.NotificationDeliveryCreated, "New Delivery Logged",
		fmt.Sprintf("Delivery from %s has been logged", supplierName), delivery.ID)
	return delivery, nil
}

func (s *deliveryService) GetDeliveryByID(id string) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	return delivery, nil
}

func (s *deliveryService) GetDeliveries(filter repositories.DeliveryFilter) ([]models.Delivery, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Status != nil && *filter.Status != "" && !models.IsValidDeliveryStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown delivery status %q", ErrValidation, *filter.Status)
	}
	deliveries, err := s.deliveryRepo.GetAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get deliveries: %w", err)
	}
	return deliveries, nil
}

func (s *deliveryService) UpdateDelivery(id string, req UpdateDeliveryRequest) (*models.Delivery, error) {
	delivery, err := s.GetDeliveryByID(id)
	if err != nil {
		return nil, err
	}
	prevStatus := delivery.Status

	if req.SupplierID != nil {
		delivery.SupplierID = req.SupplierID
	}
	if req.SupplierName != nil {
		if strings.TrimSpace(*req.SupplierName) == "" {
			return nil, fmt.Errorf("%w: supplier_name cannot be empty if provided", ErrValidation)
		}
		delivery.SupplierName = req.SupplierName
	}
	if req.DeliveryNumber != nil {
		delivery.DeliveryNumber = req.DeliveryNumber
	}
	if req.TrackingNumber != nil {
		delivery.TrackingNumber = req.TrackingNumber
	}
	if req.DriverName != nil {
		delivery.DriverName = req.DriverName
	}
	if req.ReceiverName != nil {
		delivery.ReceiverName = req.ReceiverName
	}
	if req.Status != nil {
		if !models.IsValidDeliveryStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown delivery status %q", ErrValidation, *req.Status)
		}
		delivery.Status = *req.Status
	}
	if req.Items != nil {
		delivery.Items = req.Items
		delivery.TotalItemsExpected = totalExpected(req.Items)
	}
	if req.ExpectedDeliveryDate != nil {
		delivery.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	}
	if req.ActualDeliveryDate != nil {
		delivery.ActualDeliveryDate = req.ActualDeliveryDate
	}

	if err := s.deliveryRepo.Update(s.db, delivery); err != nil {
		return nil, fmt.Errorf("failed to update delivery: %w", err)
	}

	if delivery.Status != prevStatus {
		actor := defaultStringPtr(req.UpdatedBy, "system")
		s.appendAudit(delivery.ID, actor, actor, "status_updated", map[string]interface{}{
			"from": prevStatus,
			"to":   delivery.Status,
		}, nil)
	}
	return delivery, nil
}

// Columns the delivery search may sort on. Anything else is rejected before
// it can reach the query string.
var deliverySortColumns = map[string]bool{
	"created_at":             true,
	"updated_at":             true,
	"supplier_name":          true,
	"status":                 true,
	"expected_delivery_date": true,
	"actual_delivery_date":   true,
}

// SearchDeliveries matches the query across supplier, numbers, people, items
// and audit actions in one pass.
func (s *deliveryService) SearchDeliveries(req DeliverySearchRequest) (*DeliverySearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", ErrValidation)
	}
	sortBy := defaultString(req.SortBy, "created_at")
	if !deliverySortColumns[sortBy] {
		return nil, fmt.Errorf("%w: cannot sort by %q", ErrValidation, sortBy)
	}
	sortOrder := strings.ToUpper(defaultString(req.SortOrder, "desc"))
	if sortOrder != "ASC" && sortOrder != "DESC" {
		return nil, fmt.Errorf("%w: sort_order must be asc or desc", ErrValidation)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	deliveries, err := s.deliveryRepo.Search(repositories.DeliverySearch{
		Query:     query,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search deliveries: %w", err)
	}
	return &DeliverySearchResult{
		Results:      deliveries,
		TotalResults: len(deliveries),
		Query:        query,
	}, nil
}

func (s *deliveryService) DeleteDelivery(id string) error {
	if err := s.deliveryRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDeliveryNotFound
		}
		return fmt.Errorf("failed to delete delivery: %w", err)
	}
	return nil
}

// ProcessDeliveryNote extracts structured line items from a delivery note
// photo. Model failures fall back to a skeleton extraction built from the
// delivery record itself; either way the outcome is tagged in the response
// and in the audit trail.
func (s *deliveryService) ProcessDeliveryNote(ctx context.Context, id string, req ProcessDeliveryNoteRequest) (*DeliveryNoteResult, error) {
	delivery, err := s.GetDeliveryByID(id)
	if err != nil {
		return nil, err
	}

	extraction, extractErr := s.extractViaModel(ctx, delivery, req.PhotoBase64)
	result := &DeliveryNoteResult{Success: true, ExtractionMethod: ExtractionMethodAI}
	if extractErr != nil {
		utils.LogInfo("Delivery note extraction fell back", map[string]interface{}{
			"delivery_id": delivery.ID,
			"reason":      extractErr.Error(),
		})
		extraction = fallbackExtraction(delivery)
		reason := extractErr.Error()
		result.ExtractionMethod = ExtractionMethodFallback
		result.FallbackReason = &reason
	}

	delivery.DeliveryNotePhoto = &req.PhotoBase64
	delivery.AIExtractedData = extraction
	delivery.AIConfidenceScore = &extraction.ConfidenceScore
	if delivery.Status == models.DeliveryPending || delivery.Status == models.DeliveryInTransit {
		delivery.Status = models.DeliveryDelivered
	}
	if err := s.deliveryRepo.Update(s.db, delivery); err != nil {
		return nil, fmt.Errorf("failed to store extraction: %w", err)
	}

	s.appendAudit(delivery.ID, req.UserID, req.UserName, "delivery_note_processed", map[string]interface{}{
		"extraction_method": result.ExtractionMethod,
		"items_found":       len(extraction.Items),
		"confidence_score":  extraction.ConfidenceScore,
	}, req.Screen)

	result.Delivery = delivery
	result.ExtractedData = extraction
	return result, nil
}

func (s *deliveryService) extractViaModel(ctx context.Context, delivery *models.Delivery, photoBase64 string) (*models.DeliveryExtraction, error) {
	if s.reader == nil {
		return nil, errors.New("model API key not configured")
	}
	if strings.TrimSpace(photoBase64) == "" {
		return nil, errors.New("empty delivery note photo")
	}
	supplierName := ""
	if delivery.SupplierName != nil {
		supplierName = *delivery.SupplierName
	}
	return s.reader.ExtractDeliveryNote(ctx, delivery.ID, supplierName, photoBase64)
}

// fallbackExtraction builds a skeleton extraction from what the delivery
// record already knows. Confidence is zero so the client prompts for manual
// review.
func fallbackExtraction(delivery *models.Delivery) *models.DeliveryExtraction {
	items := make([]models.ExtractedItem, 0, len(delivery.Items))
	for _, item := range delivery.Items {
		items = append(items, models.ExtractedItem{
			ItemName: item.ItemName,
			ItemCode: item.ItemCode,
			Quantity: item.QuantityExpected,
			Unit:     "pieces",
		})
	}
	extraction := &models.DeliveryExtraction{
		SupplierName:    stringOrEmpty(delivery.SupplierName),
		DeliveryDate:    time.Now().UTC().Format("2006-01-02"),
		DriverName:      stringOrEmpty(delivery.DriverName),
		Items:           items,
		ConfidenceScore: 0,
	}
	if delivery.DeliveryNumber != nil {
		extraction.DeliveryNumber = *delivery.DeliveryNumber
	}
	return extraction
}

// ConfirmDelivery applies received quantities to the inventory and completes
// the delivery. The fan-out is deliberately permissive: each line is applied
// independently, zero or negative quantities are skipped, failures are
// reported but never block completion, and there is no rollback across lines.
func (s *deliveryService) ConfirmDelivery(id string, req ConfirmDeliveryRequest) (*ConfirmDeliveryResult, error) {
	delivery, err := s.GetDeliveryByID(id)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: confirmation requires at least one item", ErrValidation)
	}

	result := &ConfirmDeliveryResult{}
	receivedTotal := 0
	for _, item := range req.Items {
		outcome := s.applyConfirmedItem(item)
		result.Outcomes = append(result.Outcomes, outcome)
		switch outcome.Action {
		case "updated":
			result.ItemsUpdated++
			receivedTotal += item.QuantityReceived
		case "created":
			result.ItemsCreated++
			receivedTotal += item.QuantityReceived
		case "skipped":
			result.ItemsSkipped++
		case "failed":
			result.ItemsFailed++
		}
	}

	now := time.Now().UTC()
	delivery.Status = models.DeliveryCompleted
	delivery.ActualDeliveryDate = &now
	delivery.ReceiverName = &req.UserName
	delivery.UserConfirmed = true
	delivery.TotalItemsReceived = receivedTotal
	if err := s.deliveryRepo.Update(s.db, delivery); err != nil {
		return nil, fmt.Errorf("failed to complete delivery: %w", err)
	}

	s.appendAudit(delivery.ID, req.UserID, req.UserName, "delivery_confirmed", map[string]interface{}{
		"items_updated": result.ItemsUpdated,
		"items_created": result.ItemsCreated,
		"items_skipped": result.ItemsSkipped,
		"items_failed":  result.ItemsFailed,
	}, req.Screen)

	s.notifyTeam(models.NotificationDeliveryCompleted, "Delivery Completed",
		fmt.Sprintf("%s completed delivery processing (%d items)", req.UserName, len(req.Items)),
		delivery.ID)

	result.Delivery = delivery
	return result, nil
}

func (s *deliveryService) applyConfirmedItem(item ConfirmDeliveryItem) ConfirmItemOutcome {
	outcome := ConfirmItemOutcome{ItemName: item.ItemName}

	if item.QuantityReceived <= 0 {
		outcome.Action = "skipped"
		reason := "quantity_received must be positive"
		outcome.Reason = &reason
		return outcome
	}

	itemType := defaultString(item.ItemType, models.ItemTypeMaterial)

	if item.IsNewItem {
		id, err := s.createInventoryItem(item, itemType)
		if err != nil {
			outcome.Action = "failed"
			reason := err.Error()
			outcome.Reason = &reason
			return outcome
		}
		outcome.Action = "created"
		outcome.ItemID = &id
		return outcome
	}

	if item.MatchedItemID == nil || *item.MatchedItemID == "" {
		outcome.Action = "skipped"
		reason := "no matched item and not flagged as new"
		outcome.Reason = &reason
		return outcome
	}

	var err error
	switch itemType {
	case models.ItemTypeMaterial:
		_, err = s.materialRepo.AdjustQuantity(s.db, *item.MatchedItemID, item.QuantityReceived)
	case models.ItemTypeTool:
		err = s.toolRepo.SetCheckedIn(s.db, *item.MatchedItemID, item.Condition)
	default:
		err = fmt.Errorf("unknown item type %q", itemType)
	}
	if err != nil {
		outcome.Action = "failed"
		reason := err.Error()
		outcome.Reason = &reason
		return outcome
	}
	outcome.Action = "updated"
	outcome.ItemID = item.MatchedItemID
	return outcome
}

func (s *deliveryService) createInventoryItem(item ConfirmDeliveryItem, itemType string) (string, error) {
	switch itemType {
	case models.ItemTypeMaterial:
		id := uuid.NewString()
		material := &models.Material{
			ID:       id,
			Name:     item.ItemName,
			Category: defaultStringPtr(item.Category, "general"),
			Quantity: item.QuantityReceived,
			Unit:     defaultStringPtr(item.Unit, "pieces"),
			QRCode:   qrCode("MAT", id),
		}
		if err := s.materialRepo.Create(s.db, material); err != nil {
			return "", fmt.Errorf("failed to create material from delivery: %w", err)
		}
		return id, nil
	case models.ItemTypeTool:
		id := uuid.NewString()
		condition := defaultStringPtr(item.Condition, models.ConditionGood)
		if !models.IsValidCondition(condition) {
			condition = models.ConditionGood
		}
		tool := &models.Tool{
			ID:        id,
			Name:      item.ItemName,
			Category:  defaultStringPtr(item.Category, "general"),
			Status:    models.ToolStatusAvailable,
			Condition: condition,
			QRCode:    qrCode("TL", id),
		}
		if err := s.toolRepo.Create(s.db, tool); err != nil {
			return "", fmt.Errorf("failed to create tool from delivery: %w", err)
		}
		return id, nil
	default:
		return "", fmt.Errorf("unknown item type %q", itemType)
	}
}

// appendAudit is best-effort: an audit write failure is logged, never
// surfaced.
func (s *deliveryService) appendAudit(deliveryID, userID, userName, action string, details map[string]interface{}, screen *string) {
	entry := models.AuditEntry{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		UserName:  userName,
		Action:    action,
		Details:   details,
	}
	if screen != nil {
		entry.Screen = *screen
	}
	if err := s.deliveryRepo.AppendAuditEntry(s.db, deliveryID, entry); err != nil {
		utils.LogError(err, "Failed to append delivery audit entry")
	}
}

func (s *deliveryService) GetAnalytics() (*DeliveryAnalytics, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.deliveryRepo.GetStats(monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery stats: %w", err)
	}
	recent, err := s.deliveryRepo.GetRecent(5)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent deliveries: %w", err)
	}

	analytics := &DeliveryAnalytics{
		TotalDeliveries:     stats.Total,
		PendingDeliveries:   stats.Pending,
		CompletedDeliveries: stats.Completed,
		DeliveriesThisMonth: stats.Monthly,
		RecentDeliveries:    recent,
	}
	if stats.Total > 0 {
		analytics.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return analytics, nil
}

// notifyTeam is best-effort like appendAudit: the workflow never fails
// because a broadcast could not be written.
func (s *deliveryService) notifyTeam(notificationType, title, message, deliveryID string) {
	if s.notificationRepo == nil {
		return
	}
	notification := &models.Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Type:    notificationType,
		Data:    map[string]interface{}{"delivery_id": deliveryID},
		ReadBy:  []string{},
	}
	if err := s.notificationRepo.Create(s.db, notification); err != nil {
		utils.LogError(err, "Failed to write team notification")
	}
}

func totalExpected(items []models.DeliveryItem) int {
	total := 0
	for _, item := range items {
		total += item.QuantityExpected
	}
	return total
}

func totalReceived(items []models.DeliveryItem) int {
	total := 0
	for _, item := range items {
		total += item.QuantityReceived
	}
	return total
}

func defaultStringPtr(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
