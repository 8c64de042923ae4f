package models

import "time"

// Analytics is one calendar day's aggregated counters. Names of products
// and categories are denormalized at order time so the history keeps its
// labels after a catalog record is deleted.
type Analytics struct {
	ID         uint                 `gorm:"primaryKey;autoIncrement"                    json:"id"`
	Date       time.Time            `gorm:"uniqueIndex;not null"                        json:"date"`
	Visites    int                  `gorm:"default:0"                                   json:"visites"`
	Commandes  int                  `gorm:"default:0"                                   json:"commandes"`
	Produits   []AnalyticsProduit   `gorm:"foreignKey:AnalyticsID;constraint:OnDelete:CASCADE" json:"produits"`
	Categories []AnalyticsCategorie `gorm:"foreignKey:AnalyticsID;constraint:OnDelete:CASCADE" json:"categories"`
}

type AnalyticsProduit struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	AnalyticsID uint   `gorm:"index;not null"           json:"-"`
	ProduitID   uint   `gorm:"index"                    json:"produitId"`
	Nom         string `json:"nom"`
	Commandes   int    `gorm:"default:0"                json:"commandes"`
}

type AnalyticsCategorie struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	AnalyticsID uint   `gorm:"index;not null"           json:"-"`
	CategorieID uint   `gorm:"index"                    json:"categorieId"`
	Nom         string `json:"nom"`
	Commandes   int    `gorm:"default:0"                json:"commandes"`
}

// Day truncates an instant to its calendar day in UTC. Every bucket key
// goes through here so lookups and upserts agree on the boundary.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
