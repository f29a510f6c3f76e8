package widgets

import (
	"fmt"
	"time"

	"fitpromo/internal/models"
)

// FormatElapsed renders d as MM:SS. Minutes keep growing past 59.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ProductSummary is the collapsed label of the product picker.
func ProductSummary(products []models.Product) string {
	switch len(products) {
	case 0:
		return ""
	case 1:
		p := products[0]
		if brand := p.BrandName(); brand != "" {
			return p.Name + " · " + brand
		}
		return p.Name
	default:
		return fmt.Sprintf("%d products selected", len(products))
	}
}

// ProductSubtitle is the "brand · category" line of a product row.
func ProductSubtitle(p models.Product) string {
	brand := p.BrandName()
	if brand == "" {
		return ""
	}
	if p.Category != nil && *p.Category != "" {
		return brand + " · " + *p.Category
	}
	return brand
}

// TargetLabel names a result tab.
func TargetLabel(target *models.Target, targetID int64) string {
	if target != nil && target.Name != "" {
		return target.Name
	}
	return fmt.Sprintf("Target %d", targetID)
}
