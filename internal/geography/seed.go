package geography

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Working area of the unit: three regencies of Jawa Timur and their
// districts. Village rows are created on demand through imports in the
// original workflow and are not part of the seed.
var seedRegencies = map[string][]string{
	"Trenggalek": {
		"Panggul", "Munjungan", "Watulimo", "Kampak", "Dongko", "Pule",
		"Karangan", "Suruh", "Gandusari", "Durenan", "Pogalan",
		"Trenggalek", "Tugu", "Bendungan",
	},
	"Tulungagung": {
		"Besuki", "Bandung", "Pakel", "Campurdarat", "Tanggunggunung",
		"Kalidawir", "Pucanglaban", "Rejotangan", "Ngunut", "Sumbergempol",
		"Boyolangu", "Tulungagung", "Kedungwaru", "Ngantru", "Karangrejo",
		"Kauman", "Gondang", "Pagerwojo", "Sendang",
	},
	"Ponorogo": {
		"Ngrayun", "Slahung", "Bungkal", "Sambit", "Sawoo", "Sooko",
		"Pudak", "Pulung", "Mlarak", "Siman", "Jetis", "Balong",
		"Kauman", "Jambon", "Badegan", "Sampung", "Sukorejo", "Ponorogo",
		"Babadan", "Jenangan", "Ngebel",
	},
}

// Seed inserts the working-area regions if the tables are empty. Safe to
// run on every startup.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Regency{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count regencies: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		total := 0
		for regencyName, districts := range seedRegencies {
			regency := Regency{Name: regencyName}
			if err := tx.Create(&regency).Error; err != nil {
				return fmt.Errorf("failed to seed regency %s: %w", regencyName, err)
			}
			for _, districtName := range districts {
				if err := tx.Create(&District{RegencyID: regency.ID, Name: districtName}).Error; err != nil {
					return fmt.Errorf("failed to seed district %s: %w", districtName, err)
				}
				total++
			}
		}
		slog.Info("geography seeded", "regencies", len(seedRegencies), "districts", total)
		return nil
	})
}
