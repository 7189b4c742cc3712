package patient

import (
	"math"
	"sort"
	"time"
)

// bedCapacity is the assumed total number of beds backing the occupancy
// rate. Fixed by the dashboard, not configurable.
const bedCapacity = 200

const isoDate = "2006-01-02"

var departmentColors = []string{
	"#2563EB", "#0891B2", "#059669", "#EA580C", "#7C3AED",
	"#DC2626", "#65A30D", "#6B7280", "#F59E0B", "#8B5CF6",
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ComputeStats derives the dashboard summary counts from the collection.
// Both DischargedToday and AdmittedToday compare the admission date to
// today; the source data model has no discharge date, and the inherited
// rule is kept as-is rather than invented around.
func ComputeStats(patients []Patient, today time.Time) DashboardStats {
	var stats DashboardStats
	stats.TotalPatients = len(patients)

	todayISO := today.Format(isoDate)
	occupied := 0
	for _, p := range patients {
		if p.Status == StatusCritical {
			stats.CriticalPatients++
		}
		if p.Status == StatusDischarged && p.AdmissionDate == todayISO {
			stats.DischargedToday++
		}
		if p.Status == StatusAdmitted && p.AdmissionDate == todayISO {
			stats.AdmittedToday++
		}
		if p.Status != StatusDischarged {
			occupied++
		}
	}
	stats.OccupancyRate = int(math.Round(float64(occupied) / bedCapacity * 100))
	return stats
}

// ComputeChartData derives both chart projections. Department colors are
// assigned by first-appearance order, cycling the palette, before the list
// is sorted descending by count. The admission trend always has exactly 7
// entries, one per trailing calendar day ending today, zero-filled.
func ComputeChartData(patients []Patient, today time.Time) ChartData {
	counts := make(map[string]int)
	var order []string
	for _, p := range patients {
		if _, seen := counts[p.Department]; !seen {
			order = append(order, p.Department)
		}
		counts[p.Department]++
	}

	deptData := make([]DepartmentCount, 0, len(order))
	for i, name := range order {
		deptData = append(deptData, DepartmentCount{
			Name:  name,
			Value: counts[name],
			Color: departmentColors[i%len(departmentColors)],
		})
	}
	sort.SliceStable(deptData, func(i, j int) bool {
		return deptData[i].Value > deptData[j].Value
	})

	byDate := make(map[string]int)
	for _, p := range patients {
		byDate[p.AdmissionDate]++
	}

	trends := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		trends = append(trends, TrendPoint{
			Name:  dayNames[day.Weekday()],
			Value: byDate[day.Format(isoDate)],
		})
	}

	return ChartData{DepartmentData: deptData, AdmissionTrends: trends}
}
