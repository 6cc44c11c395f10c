package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// GormCountryStatsRepository implements workforce.CountryStatsRepository using GORM
type GormCountryStatsRepository struct {
	db *gorm.DB
}

// NewGormCountryStatsRepository creates a new GORM country stats repository
func NewGormCountryStatsRepository(db *gorm.DB) *GormCountryStatsRepository {
	return &GormCountryStatsRepository{db: db}
}

// FindByCountry returns the base stats for a country code
func (r *GormCountryStatsRepository) FindByCountry(ctx context.Context, countryCode string) (*workforce.CountryStats, error) {
	var m CountryWorkerStatsModel
	if err := conn(ctx, r.db).Where("country_code = ?", countryCode).First(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to find country stats: %w", notFound(err, "country_worker_stats", countryCode))
	}
	return &workforce.CountryStats{
		CountryCode:    m.CountryCode,
		BaseSpeed:      m.BaseSpeed,
		BaseResistance: m.BaseResistance,
		BaseHourlyWage: m.BaseHourlyWage,
	}, nil
}

// GormAirportDirectory implements workforce.AirportDirectory over the airports table
type GormAirportDirectory struct {
	db *gorm.DB
}

// NewGormAirportDirectory creates a new GORM airport directory
func NewGormAirportDirectory(db *gorm.DB) *GormAirportDirectory {
	return &GormAirportDirectory{db: db}
}

// CountryOf returns the ISO country of an airport
func (r *GormAirportDirectory) CountryOf(ctx context.Context, airportIdent string) (string, error) {
	var m AirportModel
	if err := conn(ctx, r.db).Select("ident", "iso_country").Where("ident = ?", airportIdent).First(&m).Error; err != nil {
		return "", fmt.Errorf("failed to find airport: %w", notFound(err, "airport", airportIdent))
	}
	return m.IsoCountry, nil
}
