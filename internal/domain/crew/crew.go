package crew

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// Crew is a named work crew of the business.
type Crew struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;index"`
	Specialty string `gorm:"type:varchar(100)"`
	ForemanID *uuid.UUID `gorm:"type:uuid"`
	Active    bool   `gorm:"not null;default:true"`
	Notes     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Crew) TableName() string {
	return "crews"
}

// NewCrew creates a crew for the given business
func NewCrew(tenantID uuid.UUID, name, specialty string) (*Crew, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Crew name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Crew name cannot exceed 100 characters")
	}
	return &Crew{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Specialty:           specialty,
		Active:              true,
	}, nil
}

// Update updates the crew's information
func (c *Crew) Update(name, specialty string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Crew name cannot be empty")
	}
	c.Name = name
	c.Specialty = specialty
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the crew inactive without removing history
func (c *Crew) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// CrewMember is a worker assigned to a crew.
type CrewMember struct {
	shared.TenantAggregateRoot
	CrewID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"type:varchar(100);not null"`
	Role   string    `gorm:"type:varchar(100)"`
	Phone  string    `gorm:"type:varchar(50)"`
	Email  string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (CrewMember) TableName() string {
	return "crew_members"
}

// NewCrewMember adds a worker to a crew
func NewCrewMember(tenantID, crewID uuid.UUID, name, role string) (*CrewMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Member name cannot be empty")
	}
	if crewID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREW", "Member requires a crew")
	}
	return &CrewMember{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CrewID:              crewID,
		Name:                name,
		Role:                role,
	}, nil
}

// ProjectCrew links a crew to a project for a period.
type ProjectCrew struct {
	shared.TenantAggregateRoot
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index:idx_project_crew,unique,priority:1"`
	CrewID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_project_crew,unique,priority:2"`
	StartDate *time.Time
	EndDate   *time.Time
}

// TableName returns the table name for GORM
func (ProjectCrew) TableName() string {
	return "project_crews"
}

// NewProjectCrew assigns a crew to a project
func NewProjectCrew(tenantID, projectID, crewID uuid.UUID) (*ProjectCrew, error) {
	if projectID == uuid.Nil || crewID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Project and crew are both required")
	}
	return &ProjectCrew{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		CrewID:              crewID,
	}, nil
}

// CrewRepository defines the interface for crew persistence
type CrewRepository interface {
	shared.TenantRepository[Crew]

	// Search matches crew name or specialty case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Crew, error)

	// FindByIDs bulk-loads crews for denormalization lookups
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Crew, error)
}

// CrewMemberRepository defines the interface for crew member persistence
type CrewMemberRepository interface {
	shared.TenantRepository[CrewMember]

	// FindByCrew lists members of one crew
	FindByCrew(ctx context.Context, tenantID, crewID uuid.UUID) ([]CrewMember, error)
}

// ProjectCrewRepository defines the interface for project-crew assignments
type ProjectCrewRepository interface {
	shared.TenantRepository[ProjectCrew]

	// FindByProject lists crew assignments of one project
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]ProjectCrew, error)

	// FindByCrew lists project assignments of one crew
	FindByCrew(ctx context.Context, tenantID, crewID uuid.UUID) ([]ProjectCrew, error)
}
