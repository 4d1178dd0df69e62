package services

import (
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
)

// In-memory fakes for the repository interfaces. Services take a nil
// SQLExecutor in tests; the fakes ignore it.

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(fn func(ex repositories.SQLExecutor) error) error {
	return fn(nil)
}

// --- materials ---

type fakeMaterialRepo struct {
	materials map[string]*models.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: map[string]*models.Material{}}
}

func (f *fakeMaterialRepo) Create(_ repositories.SQLExecutor, material *models.Material) error {
	cp := *material
	f.materials[material.ID] = &cp
	return nil
}

func (f *fakeMaterialRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.Material, error) {
	material, ok := f.materials[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *material
	return &cp, nil
}

func (f *fakeMaterialRepo) GetAll(category, search *string, limit int) ([]models.Material, error) {
	result := []models.Material{}
	for _, material := range f.materials {
		if category != nil && *category != "" && material.Category != *category {
			continue
		}
		if search != nil && *search != "" &&
			!strings.Contains(strings.ToLower(material.Name), strings.ToLower(*search)) {
			continue
		}
		result = append(result, *material)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeMaterialRepo) Update(_ repositories.SQLExecutor, material *models.Material) error {
	if _, ok := f.materials[material.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *material
	f.materials[material.ID] = &cp
	return nil
}

func (f *fakeMaterialRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.materials[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeMaterialRepo) AdjustQuantity(_ repositories.SQLExecutor, id string, delta int) (int, error) {
	material, ok := f.materials[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if material.Quantity+delta < 0 {
		return 0, repositories.ErrNoRowsAffected
	}
	material.Quantity += delta
	return material.Quantity, nil
}

func (f *fakeMaterialRepo) SetQuantity(_ repositories.SQLExecutor, id string, quantity int) error {
	material, ok := f.materials[id]
	if !ok {
		return repositories.ErrNotFound
	}
	material.Quantity = quantity
	return nil
}

func (f *fakeMaterialRepo) GetLowStock(limit int) ([]models.Material, error) {
	result := []models.Material{}
	for _, material := range f.materials {
		if material.Quantity <= material.MinStock {
			result = append(result, *material)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// --- tools ---

type fakeToolRepo struct {
	tools map[string]*models.Tool
}

func newFakeToolRepo() *fakeToolRepo {
	return &fakeToolRepo{tools: map[string]*models.Tool{}}
}

func (f *fakeToolRepo) Create(_ repositories.SQLExecutor, tool *models.Tool) error {
	cp := *tool
	f.tools[tool.ID] = &cp
	return nil
}

func (f *fakeToolRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.Tool, error) {
	tool, ok := f.tools[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *tool
	return &cp, nil
}

func (f *fakeToolRepo) GetAll(category, status *string, limit int) ([]models.Tool, error) {
	result := []models.Tool{}
	for _, tool := range f.tools {
		if category != nil && *category != "" && tool.Category != *category {
			continue
		}
		if status != nil && *status != "" && tool.Status != *status {
			continue
		}
		result = append(result, *tool)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeToolRepo) Update(_ repositories.SQLExecutor, tool *models.Tool) error {
	if _, ok := f.tools[tool.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *tool
	f.tools[tool.ID] = &cp
	return nil
}

func (f *fakeToolRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.tools[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.tools, id)
	return nil
}

func (f *fakeToolRepo) SetCheckedOut(_ repositories.SQLExecutor, id string, userName string) error {
	tool, ok := f.tools[id]
	if !ok {
		return repositories.ErrNotFound
	}
	tool.Status = models.ToolStatusInUse
	tool.CurrentUser = &userName
	return nil
}

func (f *fakeToolRepo) SetCheckedIn(_ repositories.SQLExecutor, id string, condition *string) error {
	tool, ok := f.tools[id]
	if !ok {
		return repositories.ErrNotFound
	}
	tool.Status = models.ToolStatusAvailable
	tool.CurrentUser = nil
	if condition != nil {
		tool.Condition = *condition
	}
	return nil
}

func (f *fakeToolRepo) SetCondition(_ repositories.SQLExecutor, id string, condition string) error {
	tool, ok := f.tools[id]
	if !ok {
		return repositories.ErrNotFound
	}
	tool.Condition = condition
	return nil
}

// --- transactions ---

type fakeTransactionRepo struct {
	transactions []models.Transaction
}

func (f *fakeTransactionRepo) Create(_ repositories.SQLExecutor, transaction *models.Transaction) error {
	f.transactions = append(f.transactions, *transaction)
	return nil
}

func (f *fakeTransactionRepo) GetAll(itemID, userID, transactionType *string, limit int) ([]models.Transaction, error) {
	result := []models.Transaction{}
	for _, transaction := range f.transactions {
		if itemID != nil && *itemID != "" && transaction.ItemID != *itemID {
			continue
		}
		if userID != nil && *userID != "" && transaction.UserID != *userID {
			continue
		}
		if transactionType != nil && *transactionType != "" && transaction.TransactionType != *transactionType {
			continue
		}
		result = append(result, transaction)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// --- stock takes ---

type fakeStockTakeRepo struct {
	stockTakes []models.StockTake
}

func (f *fakeStockTakeRepo) Create(_ repositories.SQLExecutor, stockTake *models.StockTake) error {
	f.stockTakes = append(f.stockTakes, *stockTake)
	return nil
}

func (f *fakeStockTakeRepo) GetAll(limit int) ([]models.StockTake, error) {
	if len(f.stockTakes) > limit {
		return f.stockTakes[:limit], nil
	}
	return f.stockTakes, nil
}

// --- suppliers ---

type fakeSupplierRepo struct {
	suppliers map[string]*models.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: map[string]*models.Supplier{}}
}

func (f *fakeSupplierRepo) Create(_ repositories.SQLExecutor, supplier *models.Supplier) error {
	cp := *supplier
	f.suppliers[supplier.ID] = &cp
	return nil
}

func (f *fakeSupplierRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *supplier
	return &cp, nil
}

func (f *fakeSupplierRepo) GetAll(supplierType *string, limit int) ([]models.Supplier, error) {
	result := []models.Supplier{}
	for _, supplier := range f.suppliers {
		if supplierType != nil && *supplierType != "" && supplier.Type != *supplierType {
			continue
		}
		result = append(result, *supplier)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeSupplierRepo) Update(_ repositories.SQLExecutor, supplier *models.Supplier) error {
	if _, ok := f.suppliers[supplier.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *supplier
	f.suppliers[supplier.ID] = &cp
	return nil
}

func (f *fakeSupplierRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.suppliers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.suppliers, id)
	return nil
}

func (f *fakeSupplierRepo) ReplaceProducts(_ repositories.SQLExecutor, id string, products []models.SupplierProduct, scanMethod string, scannedAt time.Time) error {
	supplier, ok := f.suppliers[id]
	if !ok {
		return repositories.ErrNotFound
	}
	supplier.Products = products
	supplier.ScanMethod = &scanMethod
	supplier.LastScanned = &scannedAt
	return nil
}

// --- deliveries ---

type fakeDeliveryRepo struct {
	deliveries map[string]*models.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: map[string]*models.Delivery{}}
}

func (f *fakeDeliveryRepo) Create(_ repositories.SQLExecutor, delivery *models.Delivery) error {
	cp := *delivery
	f.deliveries[delivery.ID] = &cp
	return nil
}

func (f *fakeDeliveryRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.Delivery, error) {
	delivery, ok := f.deliveries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *delivery
	return &cp, nil
}

func (f *fakeDeliveryRepo) GetAll(filter repositories.DeliveryFilter) ([]models.Delivery, error) {
	result := []models.Delivery{}
	for _, delivery := range f.deliveries {
		if filter.Status != nil && *filter.Status != "" && delivery.Status != *filter.Status {
			continue
		}
		result = append(result, *delivery)
		if len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (f *fakeDeliveryRepo) Update(_ repositories.SQLExecutor, delivery *models.Delivery) error {
	if _, ok := f.deliveries[delivery.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *delivery
	f.deliveries[delivery.ID] = &cp
	return nil
}

func (f *fakeDeliveryRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.deliveries[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.deliveries, id)
	return nil
}

func (f *fakeDeliveryRepo) AppendAuditEntry(_ repositories.SQLExecutor, id string, entry models.AuditEntry) error {
	delivery, ok := f.deliveries[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delivery.AuditLog = append(delivery.AuditLog, entry)
	return nil
}

func (f *fakeDeliveryRepo) GetStats(monthStart time.Time) (*repositories.DeliveryStats, error) {
	stats := &repositories.DeliveryStats{}
	for _, delivery := range f.deliveries {
		stats.Total++
		switch delivery.Status {
		case models.DeliveryPending:
			stats.Pending++
		case models.DeliveryCompleted:
			stats.Completed++
		}
		if !delivery.CreatedAt.Before(monthStart) {
			stats.Monthly++
		}
	}
	return stats, nil
}

func (f *fakeDeliveryRepo) GetRecent(limit int) ([]models.Delivery, error) {
	result := []models.Delivery{}
	for _, delivery := range f.deliveries {
		result = append(result, *delivery)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeDeliveryRepo) Search(search repositories.DeliverySearch) ([]models.Delivery, error) {
	needle := strings.ToLower(search.Query)
	matches := func(value *string) bool {
		return value != nil && strings.Contains(strings.ToLower(*value), needle)
	}
	result := []models.Delivery{}
	for _, delivery := range f.deliveries {
		matched := matches(delivery.SupplierName) || matches(delivery.DeliveryNumber) ||
			matches(delivery.TrackingNumber) || matches(delivery.DriverName) ||
			matches(delivery.ReceiverName)
		for _, item := range delivery.Items {
			if matched {
				break
			}
			matched = strings.Contains(strings.ToLower(item.ItemName), needle) ||
				matches(item.ItemCode)
		}
		for _, entry := range delivery.AuditLog {
			if matched {
				break
			}
			matched = strings.Contains(strings.ToLower(entry.Action), needle) ||
				strings.Contains(strings.ToLower(entry.UserName), needle)
		}
		if matched {
			result = append(result, *delivery)
			if len(result) == search.Limit {
				break
			}
		}
	}
	return result, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	notifications []models.Notification
}

func (f *fakeNotificationRepo) Create(_ repositories.SQLExecutor, notification *models.Notification) error {
	notification.CreatedAt = time.Now().UTC()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetRecent(limit int) ([]models.Notification, error) {
	if len(f.notifications) > limit {
		return f.notifications[:limit], nil
	}
	return f.notifications, nil
}

// --- error reports ---

type fakeErrorReportRepo struct {
	reports map[string]*models.ErrorReport
}

func newFakeErrorReportRepo() *fakeErrorReportRepo {
	return &fakeErrorReportRepo{reports: map[string]*models.ErrorReport{}}
}

func (f *fakeErrorReportRepo) Create(_ repositories.SQLExecutor, report *models.ErrorReport) error {
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeErrorReportRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.ErrorReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *report
	return &cp, nil
}

func (f *fakeErrorReportRepo) GetAll(status *string, limit int) ([]models.ErrorReport, error) {
	result := []models.ErrorReport{}
	for _, report := range f.reports {
		if status != nil && *status != "" && report.Status != *status {
			continue
		}
		result = append(result, *report)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeErrorReportRepo) Update(_ repositories.SQLExecutor, report *models.ErrorReport) error {
	if _, ok := f.reports[report.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeErrorReportRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.reports[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

// --- users ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ repositories.SQLExecutor, user *models.User) error {
	for _, existing := range f.users {
		if existing.Name == user.Name {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ repositories.SQLExecutor, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByName(_ repositories.SQLExecutor, name string) (*models.User, error) {
	for _, user := range f.users {
		if user.Name == name {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetAll(limit int) ([]models.User, error) {
	result := []models.User{}
	for _, user := range f.users {
		result = append(result, *user)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Update(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Name == user.Name {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ repositories.SQLExecutor, id string, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.LastLogin = &at
	return nil
}

func (f *fakeUserRepo) Count() (int, error) {
	return len(f.users), nil
}
