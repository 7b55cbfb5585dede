package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/project"
)

// MilestoneService handles milestone operations
type MilestoneService struct {
	projectRepo   project.ProjectRepository
	milestoneRepo project.MilestoneRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(projectRepo project.ProjectRepository, milestoneRepo project.MilestoneRepository) *MilestoneService {
	return &MilestoneService{
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
	}
}

// Create adds a milestone under a project
func (s *MilestoneService) Create(ctx context.Context, tenantID, projectID uuid.UUID, req CreateMilestoneRequest) (*MilestoneResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	m, err := project.NewMilestone(tenantID, projectID, req.Title, req.DueDate)
	if err != nil {
		return nil, err
	}
	m.Description = req.Description

	if err := s.milestoneRepo.Create(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMilestoneResponse(m)
	return &response, nil
}

// ListByProject lists milestones of a project, soonest due first
func (s *MilestoneService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]MilestoneResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	return ToMilestoneResponses(milestones), nil
}

// Update updates a milestone's title, description or due date
func (s *MilestoneService) Update(ctx context.Context, tenantID, milestoneID uuid.UUID, req UpdateMilestoneRequest) (*MilestoneResponse, error) {
	m, err := s.milestoneRepo.FindByIDForTenant(ctx, tenantID, milestoneID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.DueDate != nil {
		m.DueDate = req.DueDate
	}

	if err := s.milestoneRepo.Update(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMilestoneResponse(m)
	return &response, nil
}

// Complete marks a milestone completed
func (s *MilestoneService) Complete(ctx context.Context, tenantID, milestoneID uuid.UUID) (*MilestoneResponse, error) {
	m, err := s.milestoneRepo.FindByIDForTenant(ctx, tenantID, milestoneID)
	if err != nil {
		return nil, err
	}

	if err := m.Complete(); err != nil {
		return nil, err
	}

	if err := s.milestoneRepo.Update(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMilestoneResponse(m)
	return &response, nil
}

// Delete removes a milestone
func (s *MilestoneService) Delete(ctx context.Context, tenantID, milestoneID uuid.UUID) error {
	return s.milestoneRepo.DeleteForTenant(ctx, tenantID, milestoneID)
}
