package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/maisonrony/shop_backend/internal/slug"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type Admin struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom               string     `gorm:"not null"                 json:"nom"`
	Email             string     `gorm:"uniqueIndex;not null"     json:"email"`
	Password          string     `gorm:"not null"                 json:"-"`
	Role              string     `gorm:"not null;default:admin"   json:"role"`
	Actif             bool       `gorm:"not null;default:true"    json:"actif"`
	DerniereConnexion *time.Time `json:"derniereConnexion"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom         string    `gorm:"uniqueIndex;not null"     json:"nom"`
	Slug        string    `gorm:"uniqueIndex"              json:"slug"`
	Description string    `gorm:"default:''"               json:"description"`
	Ordre       int       `gorm:"default:0"                json:"ordre"`
	Actif       bool      `gorm:"not null;default:true"    json:"actif"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeSave keeps the slug in lockstep with the name.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = slug.Make(c.Nom)
	return nil
}

type Dimensions struct {
	Longueur *float64 `json:"longueur"`
	Largeur  *float64 `json:"largeur"`
	Hauteur  *float64 `json:"hauteur"`
}

// Formatees renders "L30 x l20 x H10 cm" from whichever sides are set,
// or "" when no dimension is known.
func (d Dimensions) Formatees() string {
	var parts []string
	if d.Longueur != nil && *d.Longueur != 0 {
		parts = append(parts, "L"+trimFloat(*d.Longueur))
	}
	if d.Largeur != nil && *d.Largeur != 0 {
		parts = append(parts, "l"+trimFloat(*d.Largeur))
	}
	if d.Hauteur != nil && *d.Hauteur != 0 {
		parts = append(parts, "H"+trimFloat(*d.Hauteur))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " x ") + " cm"
}

// Image is a catalog product photo with its sale attributes.
type Image struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"     json:"id"`
	URL         string     `gorm:"not null"                     json:"url"`
	PublicID    string     `gorm:"not null"                     json:"publicId"`
	Nom         string     `gorm:"default:''"                   json:"nom"`
	Prix        float64    `gorm:"default:0"                    json:"prix"`
	Devise      string     `gorm:"default:FCFA"                 json:"devise"`
	Description string     `gorm:"default:''"                   json:"description"`
	EnStock     bool       `gorm:"not null;default:true"        json:"enStock"`
	Quantite    int        `gorm:"default:1"                    json:"quantite"`
	Dimensions  Dimensions `gorm:"embedded;embeddedPrefix:dim_" json:"dimensions"`
	Materiau    string     `gorm:"default:''"                   json:"materiau"`
	Ordre       int        `gorm:"default:0"                    json:"ordre"`
	Actif       bool       `gorm:"not null;default:true"        json:"actif"`
	CategorieID uint       `gorm:"index;not null"               json:"categorieId"`
	Categorie   *Category  `gorm:"foreignKey:CategorieID"       json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PrixFormate renders the display price. A zero or missing price sells
// "on request" rather than for free.
func (i *Image) PrixFormate() string {
	if i.Prix == 0 {
		return "Prix sur demande"
	}
	devise := i.Devise
	if devise == "" {
		devise = "FCFA"
	}
	return formatMontant(i.Prix) + " " + devise
}

// formatMontant groups thousands with spaces the way fr-FR renders numbers.
func formatMontant(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	if strings.HasPrefix(intPart, "-") {
		b.WriteByte('-')
		intPart = intPart[1:]
	}
	n := len(intPart)
	for i, r := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
