package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates a sort field against an allowlist, falling
// back to defaultField for anything unknown.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains columns present on every business-owned table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ClientSortFields contains allowed sort and filter columns for clients
var ClientSortFields = map[string]bool{
	"name":         true,
	"company_name": true,
	"email":        true,
	"phone":        true,
	"city":         true,
	"status":       true,
	"client_id":    true,
}

// ProjectSortFields contains allowed sort and filter columns for projects
var ProjectSortFields = map[string]bool{
	"name":       true,
	"status":     true,
	"client_id":  true,
	"start_date": true,
	"end_date":   true,
	"budget":     true,
	"address":    true,
	"city":       true,
}

// MilestoneSortFields contains allowed sort and filter columns for milestones
var MilestoneSortFields = map[string]bool{
	"project_id": true,
	"name":       true,
	"status":     true,
	"due_date":   true,
}

// IssueSortFields contains allowed sort and filter columns for issues
var IssueSortFields = map[string]bool{
	"project_id":  true,
	"title":       true,
	"severity":    true,
	"status":      true,
	"assignee_id": true,
}

// CrewSortFields contains allowed sort and filter columns for crews
var CrewSortFields = map[string]bool{
	"name":      true,
	"specialty": true,
	"active":    true,
}

// CrewMemberSortFields contains allowed sort and filter columns for crew members
var CrewMemberSortFields = map[string]bool{
	"crew_id": true,
	"name":    true,
	"role":    true,
	"phone":   true,
}

// ProjectCrewSortFields contains allowed sort and filter columns for crew assignments
var ProjectCrewSortFields = map[string]bool{
	"project_id":  true,
	"crew_id":     true,
	"assigned_at": true,
}

// EquipmentSortFields contains allowed sort and filter columns for equipment
var EquipmentSortFields = map[string]bool{
	"name":          true,
	"category":      true,
	"serial_number": true,
	"status":        true,
	"purchase_cost": true,
	"hourly_rate":   true,
}

// AssignmentSortFields contains allowed sort and filter columns for equipment assignments
var AssignmentSortFields = map[string]bool{
	"equipment_id": true,
	"crew_id":      true,
	"project_id":   true,
	"assigned_at":  true,
	"returned_at":  true,
}

// MaintenanceSortFields contains allowed sort and filter columns for maintenance records
var MaintenanceSortFields = map[string]bool{
	"equipment_id": true,
	"performed_at": true,
	"cost":         true,
}

// SpecificationSortFields contains allowed sort and filter columns for equipment specifications
var SpecificationSortFields = map[string]bool{
	"equipment_id": true,
	"label":        true,
}

// DailyLogSortFields contains allowed sort and filter columns for daily logs
var DailyLogSortFields = map[string]bool{
	"project_id":   true,
	"log_date":     true,
	"weather":      true,
	"headcount":    true,
	"hours_worked": true,
}

// InvoiceSortFields contains allowed sort and filter columns for invoices
var InvoiceSortFields = map[string]bool{
	"number":     true,
	"client_id":  true,
	"project_id": true,
	"status":     true,
	"total":      true,
	"issued_at":  true,
	"due_date":   true,
}

// DocumentSortFields contains allowed sort and filter columns for documents
var DocumentSortFields = map[string]bool{
	"kind":       true,
	"file_name":  true,
	"project_id": true,
	"client_id":  true,
	"size_bytes": true,
}

// MediaSortFields contains allowed sort and filter columns for media items
var MediaSortFields = map[string]bool{
	"project_id":   true,
	"daily_log_id": true,
	"captured_at":  true,
}

// NotificationSortFields contains allowed sort and filter columns for notifications
var NotificationSortFields = map[string]bool{
	"user_id": true,
	"kind":    true,
	"read_at": true,
}
