package media

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/media"
)

// CreateDocumentRequest registers uploaded document metadata
type CreateDocumentRequest struct {
	ProjectID   *uuid.UUID         `json:"project_id"`
	ClientID    *uuid.UUID         `json:"client_id"`
	Kind        media.DocumentKind `json:"kind" binding:"omitempty,oneof=contract permit plan other"`
	FileName    string             `json:"file_name" binding:"required,max=300"`
	StorageKey  string             `json:"storage_key" binding:"required,max=500"`
	ContentType string             `json:"content_type" binding:"omitempty,max=100"`
	SizeBytes   int64              `json:"size_bytes" binding:"min=0"`
}

// DocumentListFilter holds query parameters for listing documents
type DocumentListFilter struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	Search    string `form:"search"`
	Kind      string `form:"kind"`
	ProjectID string `form:"project_id"`
}

// DocumentResponse is the API representation of a Document
type DocumentResponse struct {
	ID          uuid.UUID          `json:"id"`
	ProjectID   *uuid.UUID         `json:"project_id,omitempty"`
	ClientID    *uuid.UUID         `json:"client_id,omitempty"`
	Kind        media.DocumentKind `json:"kind"`
	FileName    string             `json:"file_name"`
	StorageKey  string             `json:"storage_key"`
	ContentType string             `json:"content_type"`
	SizeBytes   int64              `json:"size_bytes"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToDocumentResponse converts a Document to a DocumentResponse
func ToDocumentResponse(d *media.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ClientID:    d.ClientID,
		Kind:        d.Kind,
		FileName:    d.FileName,
		StorageKey:  d.StorageKey,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of Documents
func ToDocumentResponses(docs []media.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// CreateMediaItemRequest registers an uploaded photo or video
type CreateMediaItemRequest struct {
	ProjectID   *uuid.UUID `json:"project_id"`
	DailyLogID  *uuid.UUID `json:"daily_log_id"`
	FileName    string     `json:"file_name" binding:"required,max=300"`
	StorageKey  string     `json:"storage_key" binding:"required,max=500"`
	ContentType string     `json:"content_type" binding:"omitempty,max=100"`
	SizeBytes   int64      `json:"size_bytes" binding:"min=0"`
	Caption     string     `json:"caption" binding:"omitempty,max=500"`
	CapturedAt  *time.Time `json:"captured_at"`
}

// UpdateMediaItemRequest edits media metadata
type UpdateMediaItemRequest struct {
	Caption *string `json:"caption" binding:"omitempty,max=500"`
}

// MediaItemListFilter holds query parameters for listing media
type MediaItemListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// MediaItemResponse is the API representation of a MediaItem
type MediaItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	DailyLogID  *uuid.UUID `json:"daily_log_id,omitempty"`
	FileName    string     `json:"file_name"`
	StorageKey  string     `json:"storage_key"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	Caption     string     `json:"caption"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToMediaItemResponse converts a MediaItem to a MediaItemResponse
func ToMediaItemResponse(m *media.MediaItem) MediaItemResponse {
	return MediaItemResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		DailyLogID:  m.DailyLogID,
		FileName:    m.FileName,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		Caption:     m.Caption,
		CapturedAt:  m.CapturedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMediaItemResponses converts a slice of MediaItems
func ToMediaItemResponses(items []media.MediaItem) []MediaItemResponse {
	responses := make([]MediaItemResponse, len(items))
	for i := range items {
		responses[i] = ToMediaItemResponse(&items[i])
	}
	return responses
}
