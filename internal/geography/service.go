package geography

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrRegencyNotFound  = errors.New("regency not found")
	ErrDistrictNotFound = errors.New("district not found")
)

// Lookup resolves administrative names to ids. Import mappers depend on
// this interface so row mapping stays testable without a database.
type Lookup interface {
	DistrictByName(regencyName, districtName string) (*District, error)
}

// Service answers region queries against the seeded tables.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DistrictByName resolves "regency name" + "district name" to a district,
// case-insensitively. Both names are required.
func (s *Service) DistrictByName(regencyName, districtName string) (*District, error) {
	regencyName = strings.TrimSpace(regencyName)
	districtName = strings.TrimSpace(districtName)
	if regencyName == "" {
		return nil, ErrRegencyNotFound
	}
	if districtName == "" {
		return nil, ErrDistrictNotFound
	}

	var regency Regency
	if err := s.db.Where("LOWER(name) = LOWER(?)", regencyName).First(&regency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegencyNotFound
		}
		return nil, fmt.Errorf("failed to query regency: %w", err)
	}

	var district District
	err := s.db.Where("regency_id = ? AND LOWER(name) = LOWER(?)", regency.ID, districtName).First(&district).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistrictNotFound
		}
		return nil, fmt.Errorf("failed to query district: %w", err)
	}
	district.Regency = regency
	return &district, nil
}

// Regencies returns all regencies with their districts, for form
// dropdowns.
func (s *Service) Regencies() ([]Regency, error) {
	var regencies []Regency
	if err := s.db.Order("name ASC").Find(&regencies).Error; err != nil {
		return nil, err
	}
	return regencies, nil
}

// Districts lists the districts of one regency.
func (s *Service) Districts(regencyID uint) ([]District, error) {
	var districts []District
	if err := s.db.Where("regency_id = ?", regencyID).Order("name ASC").Find(&districts).Error; err != nil {
		return nil, err
	}
	return districts, nil
}

// DistrictLabel joins regency and district names for export columns.
func (s *Service) DistrictLabel(districtID uint) (string, error) {
	var district District
	if err := s.db.Preload("Regency").First(&district, districtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDistrictNotFound
		}
		return "", err
	}
	return fmt.Sprintf("%s, %s", district.Name, district.Regency.Name), nil
}
