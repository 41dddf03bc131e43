package services

import (
	"testing"
	"time"

	"github.com/qrdine/qrdine-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderAt(createdAt time.Time, total int64, tableID *uint, items ...models.OrderItem) models.Order {
	return models.Order{
		Model:   gorm.Model{CreatedAt: createdAt},
		TableID: tableID,
		Status:  models.StatusServed,
		Total:   total,
		Items:   items,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestAggregateWindowFiltering(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), 100, nil),
		orderAt(now.AddDate(0, 0, -8), 200, nil),
		orderAt(now.AddDate(0, 0, -40), 400, nil),
	}

	week := Aggregate(orders, RangeWeek, now)
	assert.Equal(t, 1, week.OrderCount)
	assert.Equal(t, int64(100), week.TotalRevenue)

	month := Aggregate(orders, RangeMonth, now)
	assert.Equal(t, 2, month.OrderCount)
	assert.Equal(t, int64(300), month.TotalRevenue)

	year := Aggregate(orders, RangeYear, now)
	assert.Equal(t, 3, year.OrderCount)
	assert.Equal(t, int64(700), year.TotalRevenue)
}

func TestAggregateAverageOrderValue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), 100, nil),
		orderAt(now.AddDate(0, 0, -2), 200, nil),
	}

	summary := Aggregate(orders, RangeWeek, now)
	assert.InDelta(t, 150.0, summary.AvgOrderValue, 0.001)
}

func TestAggregateGrowthPercent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("both windows populated", func(t *testing.T) {
		orders := []models.Order{
			orderAt(now.AddDate(0, 0, -1), 300, nil),
			orderAt(now.AddDate(0, 0, -10), 200, nil),
		}
		summary := Aggregate(orders, RangeWeek, now)
		assert.Equal(t, 50, summary.GrowthPercent)
	})

	t.Run("empty previous window with revenue now", func(t *testing.T) {
		orders := []models.Order{orderAt(now.AddDate(0, 0, -1), 300, nil)}
		summary := Aggregate(orders, RangeWeek, now)
		assert.Equal(t, 100, summary.GrowthPercent)
	})

	t.Run("both windows empty", func(t *testing.T) {
		summary := Aggregate(nil, RangeWeek, now)
		assert.Equal(t, 0, summary.GrowthPercent)
	})

	t.Run("revenue drop", func(t *testing.T) {
		orders := []models.Order{
			orderAt(now.AddDate(0, 0, -1), 100, nil),
			orderAt(now.AddDate(0, 0, -10), 200, nil),
		}
		summary := Aggregate(orders, RangeWeek, now)
		assert.Equal(t, -50, summary.GrowthPercent)
	})
}

func TestAggregateCategoryFallback(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), 500, nil,
			models.OrderItem{Name: "Dosa", CategoryName: "South Indian", LineTotal: 300},
			models.OrderItem{Name: "Mystery", CategoryName: "", LineTotal: 200},
		),
	}

	summary := Aggregate(orders, RangeWeek, now)
	require.Len(t, summary.CategoryBreakdown, 2)
	assert.Equal(t, "South Indian", summary.CategoryBreakdown[0].Category)
	assert.Equal(t, int64(300), summary.CategoryBreakdown[0].Revenue)
	assert.Equal(t, "Other", summary.CategoryBreakdown[1].Category)
	assert.Equal(t, int64(200), summary.CategoryBreakdown[1].Revenue)
}

func TestAggregateTablePerformanceTopTen(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	var orders []models.Order
	for i := uint(1); i <= 12; i++ {
		orders = append(orders, orderAt(now.AddDate(0, 0, -1), int64(i)*100, uintPtr(i)))
	}
	// Orders without a table never appear in table performance.
	orders = append(orders, orderAt(now.AddDate(0, 0, -1), 9999, nil))

	summary := Aggregate(orders, RangeWeek, now)
	require.Len(t, summary.TablePerformance, 10)
	assert.Equal(t, "12", summary.TablePerformance[0].TableID)
	assert.Equal(t, int64(1200), summary.TablePerformance[0].Revenue)
	assert.Equal(t, "3", summary.TablePerformance[9].TableID)
}

func TestAggregatePeakHours(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.Local)
	lunch := time.Date(2026, 3, 15, 13, 0, 0, 0, time.Local)
	orders := []models.Order{
		orderAt(lunch, 100, nil),
		orderAt(lunch.Add(10*time.Minute), 100, nil),
		orderAt(time.Date(2026, 3, 15, 20, 30, 0, 0, time.Local), 100, nil),
	}

	summary := Aggregate(orders, RangeWeek, now)
	assert.Equal(t, 2, summary.PeakHours[13])
	assert.Equal(t, 1, summary.PeakHours[20])
	assert.Equal(t, 0, summary.PeakHours[9])
}

func TestBuildReportWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.Local)
	orders := []models.Order{
		orderAt(now.Add(-2*time.Hour), 100, nil),
		orderAt(now.AddDate(0, 0, -3), 200, nil),
		orderAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local), 400, nil),
		orderAt(time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local), 800, nil),
	}

	today := BuildReport(orders, ReportToday, now)
	assert.Equal(t, 1, today.OrderCount)
	assert.Equal(t, int64(100), today.TotalRevenue)

	week := BuildReport(orders, ReportWeek, now)
	assert.Equal(t, 2, week.OrderCount)
	assert.Equal(t, int64(300), week.TotalRevenue)

	month := BuildReport(orders, ReportMonth, now)
	assert.Equal(t, 3, month.OrderCount)
	assert.Equal(t, int64(700), month.TotalRevenue)
}

func TestBuildReportWeekIncludesWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.Local)
	orders := []models.Order{orderAt(now.AddDate(0, 0, -7), 250, nil)}

	week := BuildReport(orders, ReportWeek, now)
	assert.Equal(t, 1, week.OrderCount)
	assert.Equal(t, int64(250), week.TotalRevenue)
}

func TestBuildReportPopularItems(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.Local)
	orders := []models.Order{
		orderAt(now.Add(-1*time.Hour), 900, nil,
			models.OrderItem{MenuItemID: 1, Name: "Dosa", Quantity: 2, LineTotal: 600},
			models.OrderItem{MenuItemID: 2, Name: "Chai", Quantity: 1, LineTotal: 50},
		),
		orderAt(now.Add(-2*time.Hour), 150, nil,
			models.OrderItem{MenuItemID: 2, Name: "Chai", Quantity: 3, LineTotal: 150},
		),
	}

	report := BuildReport(orders, ReportToday, now)
	require.Len(t, report.PopularItems, 2)
	assert.Equal(t, "Chai", report.PopularItems[0].Name)
	assert.Equal(t, 4, report.PopularItems[0].Count)
	assert.Equal(t, int64(200), report.PopularItems[0].Revenue)
	assert.Equal(t, "Dosa", report.PopularItems[1].Name)
}

func TestAggregateDailySeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day1 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 13, 10, 0, 0, 0, time.Local)
	orders := []models.Order{
		orderAt(day1, 100, nil),
		orderAt(day1.Add(time.Hour), 200, nil),
		orderAt(day2, 50, nil),
	}

	summary := Aggregate(orders, RangeWeek, now)
	require.Len(t, summary.DailySeries, 2)

	byLabel := make(map[string]DailyPoint)
	for _, point := range summary.DailySeries {
		byLabel[point.Label] = point
	}
	require.Contains(t, byLabel, "Mar 14")
	assert.Equal(t, int64(300), byLabel["Mar 14"].Revenue)
	assert.Equal(t, 2, byLabel["Mar 14"].Count)
	assert.Equal(t, 1, byLabel["Mar 13"].Count)
}
