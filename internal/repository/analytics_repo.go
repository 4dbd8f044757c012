package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

// DailySalesData is one point of the daily sales chart
type DailySalesData struct {
	Date   string `json:"date"`
	Sales  int64  `json:"sales"`
	Profit int64  `json:"profit"`
	Count  int64  `json:"count"`
}

// TopProductData ranks products by quantity sold (from item snapshots, so
// deactivated products still show up)
type TopProductData struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

// ProductCounts for the dashboard header
type ProductCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	LowStock int64 `json:"low_stock"`
}

// ProfitLossData is the profit and loss report
type ProfitLossData struct {
	TotalRevenue int64 `json:"total_revenue"`
	GrossProfit  int64 `json:"gross_profit"`
	OtherIncome  int64 `json:"other_income"`
	Expenses     int64 `json:"expenses"`
	NetProfit    int64 `json:"net_profit"`
}

type AnalyticsRepository interface {
	GetSalesSummary(startDate, endDate time.Time) (*SaleSummary, error)
	GetDailySales(days int) ([]DailySalesData, error)
	GetTopProducts(limit int) ([]TopProductData, error)
	GetProductCounts() (*ProductCounts, error)
	GetProfitLossReport(startDate, endDate time.Time) (*ProfitLossData, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db}
}

func (r *analyticsRepo) GetSalesSummary(startDate, endDate time.Time) (*SaleSummary, error) {
	var summary SaleSummary
	err := r.db.Model(&model.Sale{}).
		Where("transaction_date BETWEEN ? AND ?", startDate, endDate).
		Select("COALESCE(SUM(total_amount), 0) as total_amount, COALESCE(SUM(total_profit), 0) as total_profit, COUNT(*) as count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetDailySales aggregates sales per calendar day for the chart. Days with
// no sales are filled with zero rows so the chart has no gaps.
func (r *analyticsRepo) GetDailySales(days int) ([]DailySalesData, error) {
	startDate := time.Now().AddDate(0, 0, -days+1)
	startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())

	var sales []model.Sale
	err := r.db.Model(&model.Sale{}).
		Select("transaction_date", "total_amount", "total_profit").
		Where("transaction_date >= ?", startDate).
		Order("transaction_date ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	daily := make(map[string]*DailySalesData, days)
	results := make([]DailySalesData, days)
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i).Format("2006-01-02")
		results[i] = DailySalesData{Date: date}
		daily[date] = &results[i]
	}

	for _, sale := range sales {
		date := sale.TransactionDate.Format("2006-01-02")
		if entry, ok := daily[date]; ok {
			entry.Sales += sale.TotalAmount
			entry.Profit += sale.TotalProfit
			entry.Count++
		}
	}

	return results, nil
}

func (r *analyticsRepo) GetTopProducts(limit int) ([]TopProductData, error) {
	var results []TopProductData
	err := r.db.Model(&model.SaleItem{}).
		Select("product_id, product_name_snapshot as product_name, COALESCE(SUM(quantity), 0) as total_sold").
		Group("product_id, product_name_snapshot").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepo) GetProductCounts() (*ProductCounts, error) {
	var counts ProductCounts

	if err := r.db.Model(&model.Product{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return nil, err
	}
	// Low stock threshold: 5 units or fewer
	err := r.db.Model(&model.Product{}).
		Where("stock <= ? AND is_active = ?", 5, true).
		Count(&counts.LowStock).Error
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

// GetProfitLossReport combines sales margins with the manual cash ledger.
// Automatic "Sales" income entries mirror the sales totals, so only the
// gross profit from sales plus other income minus expenses is reported.
func (r *analyticsRepo) GetProfitLossReport(startDate, endDate time.Time) (*ProfitLossData, error) {
	report := &ProfitLossData{}

	salesSummary, err := r.GetSalesSummary(startDate, endDate)
	if err != nil {
		return nil, err
	}
	report.TotalRevenue = salesSummary.TotalAmount
	report.GrossProfit = salesSummary.TotalProfit

	// Engine-written entries are excluded: "Sales" income mirrors revenue
	// and "Goods Purchase" expenses are already inside the margin via the
	// cost snapshots.
	err = r.db.Model(&model.CashTransaction{}).
		Where("type = ? AND category <> ? AND transaction_date BETWEEN ? AND ?",
			model.TxIncome, model.CategorySales, startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&report.OtherIncome).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.CashTransaction{}).
		Where("type = ? AND category <> ? AND transaction_date BETWEEN ? AND ?",
			model.TxExpense, model.CategoryGoodsPurchase, startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&report.Expenses).Error
	if err != nil {
		return nil, err
	}

	report.NetProfit = report.GrossProfit + report.OtherIncome - report.Expenses
	return report, nil
}
