package tenant

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackAddsTenantPredicate(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	tenantID := uuid.New()
	ctx := contextWithTenant(tenantID.String())

	mock.ExpectQuery(`SELECT \* FROM "scoped_models" WHERE "scoped_models"\."tenant_id" = \$1`).
		WithArgs(tenantID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []scopedModel
	err := db.WithContext(ctx).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackRejectsMissingTenant(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	var results []scopedModel
	err := db.WithContext(contextWithTenant("")).Find(&results).Error
	assert.ErrorIs(t, err, ErrTenantIDRequired)
}

func TestCallbackRejectsInvalidTenant(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	var results []scopedModel
	err := db.WithContext(contextWithTenant("garbage")).Find(&results).Error
	assert.ErrorIs(t, err, ErrInvalidTenantID)
}

func TestCallbackSkipsWhenPredicatePresent(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	tenantID := uuid.New()
	ctx := contextWithTenant(tenantID.String())

	// Repositories that already carry the predicate must not get a second one
	mock.ExpectQuery(`SELECT \* FROM "scoped_models" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []scopedModel
	err := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

type globalModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100"`
}

func (globalModel) TableName() string {
	return "global_models"
}

func TestCallbackSkipsModelsWithoutTenantColumn(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	// Businesses and users are global; a tenant in context must not
	// produce a predicate on a column they do not have
	mock.ExpectQuery(`SELECT \* FROM "global_models"$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	var results []globalModel
	err := db.WithContext(contextWithTenant(uuid.New().String())).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackOptionalMode(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, false)

	mock.ExpectQuery(`SELECT \* FROM "scoped_models"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []scopedModel
	err := db.WithContext(contextWithTenant("")).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
