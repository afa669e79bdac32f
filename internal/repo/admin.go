package repo

import (
	"context"
	"sort"

	"github.com/mkotelnikov/webstore/internal/models"
)

type DashboardStats struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalUsers     int64            `json:"total_users"`
	TotalProducts  int64            `json:"total_products"`
	PendingReviews int64            `json:"pending_reviews"`
	RecentOrders   []models.Order   `json:"recent_orders"`
	TopProducts    []models.Product `json:"top_products"`
}

func (r *GormRepo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := r.DB.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).
		Where("status = ?", models.ReviewStatusPending).
		Count(&stats.PendingReviews).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Items").
		Order("created_at DESC").Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("sold_count DESC").Limit(5).
		Find(&stats.TopProducts).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

type MonthlySales struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalSales float64 `json:"total_sales"`
}

type CategorySales struct {
	CategoryID uint  `json:"category_id"`
	TotalSold  int64 `json:"total_sold"`
}

type Analytics struct {
	SalesByMonth  []MonthlySales  `json:"sales_by_month"`
	TopCategories []CategorySales `json:"top_categories"`
}

func (r *GormRepo) AnalyticsReport(ctx context.Context) (*Analytics, error) {
	db := r.DB.WithContext(ctx)

	// Month extraction differs between postgres and the sqlite test
	// database, so the grouping happens here over the scanned rows.
	var orders []models.Order
	if err := db.Select("created_at", "total_amount").Find(&orders).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[[2]int]float64)
	for _, o := range orders {
		key := [2]int{o.CreatedAt.Year(), int(o.CreatedAt.Month())}
		byMonth[key] += o.TotalAmount
	}
	sales := make([]MonthlySales, 0, len(byMonth))
	for key, total := range byMonth {
		sales = append(sales, MonthlySales{Year: key[0], Month: key[1], TotalSales: total})
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Year != sales[j].Year {
			return sales[i].Year < sales[j].Year
		}
		return sales[i].Month < sales[j].Month
	})

	var categories []CategorySales
	if err := db.Raw(`
		SELECT p.category_id AS category_id, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.category_id
		ORDER BY total_sold DESC`).
		Scan(&categories).Error; err != nil {
		return nil, err
	}

	return &Analytics{SalesByMonth: sales, TopCategories: categories}, nil
}
