package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
)

// GormCompanyRepository implements ledger.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GORM company repository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindForUpdate loads a company and locks its row
func (r *GormCompanyRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Company, error) {
	var model CompanyModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find company: %w", notFound(err, "company", id.String()))
	}
	return ledger.ReconstructCompany(model.ID, model.Name, model.Balance), nil
}

// Save persists the company's balance
func (r *GormCompanyRepository) Save(ctx context.Context, company *ledger.Company) error {
	model := &CompanyModel{
		ID:      company.ID(),
		Name:    company.Name(),
		Balance: company.Balance(),
	}
	if err := upsert(conn(ctx, r.db), model, "name", "balance", "updated_at"); err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}
