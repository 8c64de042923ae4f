package models

import "time"

const (
	PromoStockLimite = "stock-limite"
	PromoTombola     = "tombola"
)

type Promotion struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Type           string    `gorm:"not null;index"                  json:"type"`
	Nom            string    `gorm:"not null"                        json:"nom"`
	Actif          bool      `gorm:"not null;default:true;index"     json:"actif"`
	DateDebut      time.Time `gorm:"not null;index"                  json:"dateDebut"`
	DateFin        time.Time `gorm:"not null;index"                  json:"dateFin"`
	CategorieID    *uint     `gorm:"index"                           json:"categorieId"`
	Categorie      *Category `gorm:"foreignKey:CategorieID"          json:"-"`
	Gains          []string  `gorm:"serializer:json"                 json:"gains"`
	DureeAffichage int       `gorm:"default:10"                      json:"dureeAffichage"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EstActive is evaluated against the caller's clock, never persisted.
// Both window bounds are inclusive.
func (p *Promotion) EstActive(now time.Time) bool {
	return p.Actif && !now.Before(p.DateDebut) && !now.After(p.DateFin)
}

type Countdown struct {
	Jours    int `json:"jours"`
	Heures   int `json:"heures"`
	Minutes  int `json:"minutes"`
	Secondes int `json:"secondes"`
}

// TempsRestant decomposes the time left before DateFin into whole days,
// hours, minutes and seconds, truncating downward. A promotion already
// past its end has no countdown and yields nil.
func (p *Promotion) TempsRestant(now time.Time) *Countdown {
	diff := p.DateFin.Sub(now)
	if diff <= 0 {
		return nil
	}
	total := int(diff / time.Second)
	return &Countdown{
		Jours:    total / 86400,
		Heures:   (total % 86400) / 3600,
		Minutes:  (total % 3600) / 60,
		Secondes: total % 60,
	}
}
