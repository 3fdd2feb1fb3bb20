package geography

import "time"

// Administrative regions are read-only lookups scoped to one province
// (Jawa Timur). They are seeded at startup and referenced by every report
// record; the workflow never owns or mutates them.

type Regency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}

func (Regency) TableName() string { return "geo_regencies" }

type District struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RegencyID uint      `gorm:"not null;index" json:"regency_id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Regency   Regency   `gorm:"foreignKey:RegencyID" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (District) TableName() string { return "geo_districts" }

type Village struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DistrictID uint      `gorm:"not null;index" json:"district_id"`
	Name       string    `gorm:"not null;size:100" json:"name"`
	District   District  `gorm:"foreignKey:DistrictID" json:"-"`
	CreatedAt  time.Time `json:"-"`
}

func (Village) TableName() string { return "geo_villages" }
