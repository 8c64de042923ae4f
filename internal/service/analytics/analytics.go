package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maisonrony/shop_backend/internal/models"
)

// RecordVisit bumps today's visit counter in a single upsert so that
// simultaneous visitors never lose an increment.
func RecordVisit(db *gorm.DB, now time.Time) error {
	bucket := models.Analytics{Date: models.Day(now), Visites: 1}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"visites": gorm.Expr("visites + 1")}),
	}).Create(&bucket).Error
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Order carries the denormalized labels stored in the day bucket.
type Order struct {
	ProduitID    uint
	ProduitNom   string
	CategorieID  uint
	CategorieNom string
}

// RecordOrder merges one order into today's bucket: total counter plus the
// per-product and per-category rows, appending on first sight and
// incrementing on repeat. The nested merge is read-modify-write; order
// volume is low enough that a concurrent lost increment is tolerated.
func RecordOrder(db *gorm.DB, now time.Time, o Order) error {
	day := models.Day(now)

	var bucket models.Analytics
	if err := db.Where("date = ?", day).
		Attrs(models.Analytics{Date: day}).
		FirstOrCreate(&bucket).Error; err != nil {
		return fmt.Errorf("record order: bucket: %w", err)
	}

	if err := db.Model(&bucket).
		Update("commandes", gorm.Expr("commandes + 1")).Error; err != nil {
		return fmt.Errorf("record order: counter: %w", err)
	}

	var prow models.AnalyticsProduit
	err := db.Where("analytics_id = ? AND produit_id = ?", bucket.ID, o.ProduitID).First(&prow).Error
	switch {
	case err == nil:
		err = db.Model(&prow).Update("commandes", gorm.Expr("commandes + 1")).Error
	case err == gorm.ErrRecordNotFound:
		err = db.Create(&models.AnalyticsProduit{
			AnalyticsID: bucket.ID,
			ProduitID:   o.ProduitID,
			Nom:         o.ProduitNom,
			Commandes:   1,
		}).Error
	}
	if err != nil {
		return fmt.Errorf("record order: produit: %w", err)
	}

	var crow models.AnalyticsCategorie
	err = db.Where("analytics_id = ? AND categorie_id = ?", bucket.ID, o.CategorieID).First(&crow).Error
	switch {
	case err == nil:
		err = db.Model(&crow).Update("commandes", gorm.Expr("commandes + 1")).Error
	case err == gorm.ErrRecordNotFound:
		err = db.Create(&models.AnalyticsCategorie{
			AnalyticsID: bucket.ID,
			CategorieID: o.CategorieID,
			Nom:         o.CategorieNom,
			Commandes:   1,
		}).Error
	}
	if err != nil {
		return fmt.Errorf("record order: categorie: %w", err)
	}

	return nil
}

type ChartPoint struct {
	Date      string `json:"date"`
	Visites   int    `json:"visites"`
	Commandes int    `json:"commandes"`
}

type TopEntry struct {
	Nom   string `json:"nom"`
	Total int    `json:"total"`
}

type Stats struct {
	TotalVisites   int      `json:"totalVisites"`
	TotalCommandes int      `json:"totalCommandes"`
	TopProduit     TopEntry `json:"topProduit"`
	TopCategorie   TopEntry `json:"topCategorie"`
}

type Dashboard struct {
	ChartData []ChartPoint `json:"chartData"`
	Stats     Stats        `json:"stats"`
}

// BuildDashboard reads the rolling 30-day window ending today and reshapes
// it into a fixed 30-point calendar-aligned series plus window totals and
// the top product/category. Days without a bucket render as zeros; the
// series length never depends on how sparse the stored data is.
func BuildDashboard(db *gorm.DB, now time.Time) (*Dashboard, error) {
	today := models.Day(now)
	windowStart := today.AddDate(0, 0, -29)

	var buckets []models.Analytics
	if err := db.Where("date >= ?", windowStart).
		Preload("Produits").
		Preload("Categories").
		Order("date ASC").
		Find(&buckets).Error; err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	byDay := make(map[string]*models.Analytics, len(buckets))
	for i := range buckets {
		byDay[buckets[i].Date.UTC().Format("2006-01-02")] = &buckets[i]
	}

	chart := make([]ChartPoint, 0, 30)
	for i := 29; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		point := ChartPoint{Date: key}
		if b, ok := byDay[key]; ok {
			point.Visites = b.Visites
			point.Commandes = b.Commandes
		}
		chart = append(chart, point)
	}

	stats := Stats{
		TopProduit:   TopEntry{Nom: "Aucun"},
		TopCategorie: TopEntry{Nom: "Aucune"},
	}

	prodTotals := make(map[uint]*TopEntry)
	catTotals := make(map[uint]*TopEntry)
	var prodOrder, catOrder []uint

	for i := range buckets {
		b := &buckets[i]
		stats.TotalVisites += b.Visites
		stats.TotalCommandes += b.Commandes

		for _, p := range b.Produits {
			entry, ok := prodTotals[p.ProduitID]
			if !ok {
				entry = &TopEntry{Nom: p.Nom}
				prodTotals[p.ProduitID] = entry
				prodOrder = append(prodOrder, p.ProduitID)
			}
			entry.Total += p.Commandes
		}
		for _, c := range b.Categories {
			entry, ok := catTotals[c.CategorieID]
			if !ok {
				entry = &TopEntry{Nom: c.Nom}
				catTotals[c.CategorieID] = entry
				catOrder = append(catOrder, c.CategorieID)
			}
			entry.Total += c.Commandes
		}
	}

	// First-seen wins ties, scanning day-ascending.
	for _, id := range prodOrder {
		if e := prodTotals[id]; e.Total > stats.TopProduit.Total {
			stats.TopProduit = *e
		}
	}
	for _, id := range catOrder {
		if e := catTotals[id]; e.Total > stats.TopCategorie.Total {
			stats.TopCategorie = *e
		}
	}

	return &Dashboard{ChartData: chart, Stats: stats}, nil
}
