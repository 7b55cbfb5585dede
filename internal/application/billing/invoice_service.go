package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// InvoiceNotifier delivers in-app notifications to the business owner.
// Invoice operations never fail on notification errors.
type InvoiceNotifier interface {
	DispatchToOwner(ctx context.Context, tenantID uuid.UUID, kind notification.Kind, title, body string) error
}

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	itemRepo    billing.InvoiceItemRepository
	clientRepo  directory.ClientRepository
	projectRepo project.ProjectRepository
	notifier    InvoiceNotifier
}

// NewInvoiceService creates a new InvoiceService. The notifier may be nil.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	itemRepo billing.InvoiceItemRepository,
	clientRepo directory.ClientRepository,
	projectRepo project.ProjectRepository,
	notifier InvoiceNotifier,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
	}
}

// Create opens a draft invoice for a client. The number is sequential per
// business and survives deletes: it counts every invoice ever issued.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, req.ClientID); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	seq, err := s.invoiceRepo.CountForTenantAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(tenantID, req.ClientID, billing.NextInvoiceNumber(int(seq)+1))
	if err != nil {
		return nil, err
	}
	inv.ProjectID = req.ProjectID
	inv.Notes = req.Notes

	for _, line := range req.Items {
		if _, err := inv.AddItem(line.Description, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Create(ctx, tenantID, inv); err != nil {
		return nil, err
	}
	for idx := range inv.Items {
		inv.Items[idx].InvoiceID = inv.ID
		if err := s.itemRepo.Create(ctx, tenantID, &inv.Items[idx]); err != nil {
			return nil, err
		}
	}
	events.Publish(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice with its line items
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.loadWithItems(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with pagination and filters. Line items are not
// loaded on listings.
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.OrderDir = "desc"
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.ClientID != "" {
		if clientID, err := uuid.Parse(filter.ClientID); err == nil {
			f.Filters["client_id"] = clientID
		}
	}
	if filter.Search != "" {
		f.Or = shared.SearchFilter(filter.Search, "number", "notes").Or
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// AddItem appends a line to a draft invoice and updates the stored total
func (s *InvoiceService) AddItem(ctx context.Context, tenantID, invoiceID uuid.UUID, req InvoiceItemRequest) (*InvoiceResponse, error) {
	inv, err := s.loadWithItems(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := inv.AddItem(req.Description, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, tenantID, item); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, tenantID, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RemoveItem deletes a line from a draft invoice and updates the stored total
func (s *InvoiceService) RemoveItem(ctx context.Context, tenantID, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.loadWithItems(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != billing.InvoiceStatusDraft {
		return nil, shared.ErrInvalidState
	}

	kept := inv.Items[:0]
	found := false
	for _, item := range inv.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, shared.ErrNotFound
	}
	inv.Items = kept
	inv.RecomputeTotal()

	if err := s.itemRepo.DeleteForTenant(ctx, tenantID, itemID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, tenantID, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Send marks the invoice sent, starts the due clock and notifies the owner
func (s *InvoiceService) Send(ctx context.Context, tenantID, invoiceID uuid.UUID, req SendInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.loadWithItems(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Send(req.DueInDays); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, tenantID, inv); err != nil {
		return nil, err
	}
	events.Publish(ctx, inv)

	if s.notifier != nil {
		_ = s.notifier.DispatchToOwner(ctx, tenantID, notification.KindInvoiceSent,
			fmt.Sprintf("Invoice %s sent", inv.Number),
			fmt.Sprintf("Total %s", inv.Total.StringFixed(2)))
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// MarkPaid records full payment on a sent or overdue invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, tenantID, invoiceID, (*billing.Invoice).MarkPaid)
}

// MarkOverdue flags a sent invoice past its due date
func (s *InvoiceService) MarkOverdue(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, tenantID, invoiceID, (*billing.Invoice).MarkOverdue)
}

// Void cancels an unpaid invoice
func (s *InvoiceService) Void(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, tenantID, invoiceID, (*billing.Invoice).Void)
}

// Delete removes a draft invoice and its line items. Issued invoices are
// voided, never deleted.
func (s *InvoiceService) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status != billing.InvoiceStatusDraft {
		return shared.ErrInvalidState
	}

	items, err := s.itemRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.itemRepo.DeleteForTenant(ctx, tenantID, item.ID); err != nil {
			return err
		}
	}

	return s.invoiceRepo.DeleteForTenant(ctx, tenantID, invoiceID)
}

func (s *InvoiceService) transition(ctx context.Context, tenantID, invoiceID uuid.UUID, apply func(*billing.Invoice) error) (*InvoiceResponse, error) {
	inv, err := s.loadWithItems(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := apply(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, tenantID, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

func (s *InvoiceService) loadWithItems(ctx context.Context, tenantID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}
