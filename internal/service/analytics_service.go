package service

import (
	"time"

	"go-pos-backend/internal/repository"
)

// DashboardData is everything the admin dashboard renders in one call
type DashboardData struct {
	Today       *repository.SaleSummary     `json:"today"`
	Products    *repository.ProductCounts   `json:"products"`
	Chart       []repository.DailySalesData `json:"chart"`
	TopProducts []repository.TopProductData `json:"top_products"`
}

// SalesReportData is the ranged sales report
type SalesReportData struct {
	Summary *repository.SaleSummary     `json:"summary"`
	Daily   []repository.DailySalesData `json:"daily"`
}

type AnalyticsService interface {
	GetDashboard() (*DashboardData, error)
	GetSalesReport(startDate, endDate time.Time) (*SalesReportData, error)
	GetProfitLossReport(startDate, endDate time.Time) (*repository.ProfitLossData, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

func (s *analyticsService) GetDashboard() (*DashboardData, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	today, err := s.analyticsRepo.GetSalesSummary(startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	products, err := s.analyticsRepo.GetProductCounts()
	if err != nil {
		return nil, err
	}

	chart, err := s.analyticsRepo.GetDailySales(7)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(5)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Today:       today,
		Products:    products,
		Chart:       chart,
		TopProducts: topProducts,
	}, nil
}

func (s *analyticsService) GetSalesReport(startDate, endDate time.Time) (*SalesReportData, error) {
	summary, err := s.analyticsRepo.GetSalesSummary(startDate, endDate)
	if err != nil {
		return nil, err
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	daily, err := s.analyticsRepo.GetDailySales(days)
	if err != nil {
		return nil, err
	}

	return &SalesReportData{Summary: summary, Daily: daily}, nil
}

func (s *analyticsService) GetProfitLossReport(startDate, endDate time.Time) (*repository.ProfitLossData, error) {
	return s.analyticsRepo.GetProfitLossReport(startDate, endDate)
}
