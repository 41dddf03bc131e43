package services

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/qrdine/qrdine-api/models"
)

// Analytics windows for the dashboard view.
const (
	RangeWeek  = "7d"
	RangeMonth = "30d"
	RangeYear  = "year"
)

// Report windows for the printable report view.
const (
	ReportToday = "today"
	ReportWeek  = "week"
	ReportMonth = "month"
)

type DailyPoint struct {
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
	Count   int    `json:"count"`
}

type CategorySlice struct {
	Category string `json:"category"`
	Revenue  int64  `json:"revenue"`
}

type TableRevenue struct {
	TableID string `json:"tableId"`
	Revenue int64  `json:"revenue"`
}

// Summary is the dashboard rollup for one time window.
type Summary struct {
	TotalRevenue      int64           `json:"totalRevenue"`
	OrderCount        int             `json:"orderCount"`
	AvgOrderValue     float64         `json:"avgOrderValue"`
	GrowthPercent     int             `json:"growthPercent"`
	DailySeries       []DailyPoint    `json:"dailySeries"`
	CategoryBreakdown []CategorySlice `json:"categoryBreakdown"`
	TablePerformance  []TableRevenue  `json:"tablePerformance"`
	PeakHours         [24]int         `json:"peakHours"`
}

type ItemPopularity struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Revenue    int64  `json:"revenue"`
}

// Report is the today/week/month rollup behind the printable report.
type Report struct {
	TotalRevenue  int64            `json:"totalRevenue"`
	OrderCount    int              `json:"orderCount"`
	AvgOrderValue float64          `json:"avgOrderValue"`
	PopularItems  []ItemPopularity `json:"popularItems"`
}

// Aggregate derives the dashboard summary from a historical order list.
// Pure: the same orders, window and clock always yield the same output.
func Aggregate(orders []models.Order, window string, now time.Time) Summary {
	days := rangeDays(window)
	cutoff := now.AddDate(0, 0, -days)

	var current []models.Order
	for _, order := range orders {
		if !order.CreatedAt.Before(cutoff) {
			current = append(current, order)
		}
	}

	summary := Summary{OrderCount: len(current)}

	categories := make(map[string]int64)
	tables := make(map[string]int64)
	daily := make(map[string]*DailyPoint)
	var dayOrder []string

	for _, order := range current {
		summary.TotalRevenue += order.Total
		summary.PeakHours[order.CreatedAt.Local().Hour()]++

		label := dayLabel(order.CreatedAt, window)
		point, ok := daily[label]
		if !ok {
			point = &DailyPoint{Label: label}
			daily[label] = point
			dayOrder = append(dayOrder, label)
		}
		point.Revenue += order.Total
		point.Count++

		for _, item := range order.Items {
			category := item.CategoryName
			if category == "" {
				category = "Other"
			}
			categories[category] += item.LineTotal
		}

		if order.TableID != nil {
			tables[strconv.FormatUint(uint64(*order.TableID), 10)] += order.Total
		}
	}

	if summary.OrderCount > 0 {
		summary.AvgOrderValue = float64(summary.TotalRevenue) / float64(summary.OrderCount)
	}

	for _, label := range dayOrder {
		summary.DailySeries = append(summary.DailySeries, *daily[label])
	}

	for category, revenue := range categories {
		summary.CategoryBreakdown = append(summary.CategoryBreakdown, CategorySlice{Category: category, Revenue: revenue})
	}
	sort.Slice(summary.CategoryBreakdown, func(i, j int) bool {
		return summary.CategoryBreakdown[i].Revenue > summary.CategoryBreakdown[j].Revenue
	})

	for tableID, revenue := range tables {
		summary.TablePerformance = append(summary.TablePerformance, TableRevenue{TableID: tableID, Revenue: revenue})
	}
	sort.Slice(summary.TablePerformance, func(i, j int) bool {
		return summary.TablePerformance[i].Revenue > summary.TablePerformance[j].Revenue
	})
	if len(summary.TablePerformance) > 10 {
		summary.TablePerformance = summary.TablePerformance[:10]
	}

	// Growth compares against the immediately preceding window of equal
	// length. An empty previous window reads as 100% growth when the
	// current one has revenue, 0% when both are empty.
	prevCutoff := cutoff.AddDate(0, 0, -days)
	var prevRevenue int64
	for _, order := range orders {
		if !order.CreatedAt.Before(prevCutoff) && order.CreatedAt.Before(cutoff) {
			prevRevenue += order.Total
		}
	}
	summary.GrowthPercent = growthPercent(summary.TotalRevenue, prevRevenue)

	return summary
}

// BuildReport derives the printable today/week/month report.
func BuildReport(orders []models.Order, window string, now time.Time) Report {
	var included []models.Order
	for _, order := range orders {
		if inReportWindow(order.CreatedAt, window, now) {
			included = append(included, order)
		}
	}

	report := Report{OrderCount: len(included)}
	popularity := make(map[uint]*ItemPopularity)
	var itemOrder []uint

	for _, order := range included {
		report.TotalRevenue += order.Total
		for _, item := range order.Items {
			entry, ok := popularity[item.MenuItemID]
			if !ok {
				entry = &ItemPopularity{MenuItemID: item.MenuItemID, Name: item.Name}
				popularity[item.MenuItemID] = entry
				itemOrder = append(itemOrder, item.MenuItemID)
			}
			entry.Count += item.Quantity
			entry.Revenue += item.LineTotal
		}
	}

	if report.OrderCount > 0 {
		report.AvgOrderValue = float64(report.TotalRevenue) / float64(report.OrderCount)
	}

	for _, id := range itemOrder {
		report.PopularItems = append(report.PopularItems, *popularity[id])
	}
	sort.Slice(report.PopularItems, func(i, j int) bool {
		return report.PopularItems[i].Count > report.PopularItems[j].Count
	})

	return report
}

func growthPercent(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func rangeDays(window string) int {
	switch window {
	case RangeMonth:
		return 30
	case RangeYear:
		return 365
	default:
		return 7
	}
}

func dayLabel(t time.Time, window string) string {
	if window == RangeYear {
		return t.Local().Format("Jan")
	}
	return t.Local().Format("Jan 2")
}

func inReportWindow(t time.Time, window string, now time.Time) bool {
	local := t.Local()
	switch window {
	case ReportWeek:
		return !local.Before(now.AddDate(0, 0, -7))
	case ReportMonth:
		return local.Year() == now.Year() && local.Month() == now.Month()
	default: // today
		y1, m1, d1 := local.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
}
