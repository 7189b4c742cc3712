package patient

// Gender of a patient as shown on the dashboard.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Status is the current care status of a patient.
type Status string

const (
	StatusAdmitted   Status = "Admitted"
	StatusStable     Status = "Stable"
	StatusCritical   Status = "Critical"
	StatusDischarged Status = "Discharged"
)

var validStatuses = map[Status]bool{
	StatusAdmitted:   true,
	StatusStable:     true,
	StatusCritical:   true,
	StatusDischarged: true,
}

var validGenders = map[Gender]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

// Patient is one hospital patient record. AdmissionDate is an ISO calendar
// date (2006-01-02) with no time-of-day component.
type Patient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           Gender `json:"gender"`
	AdmissionDate    string `json:"admission_date"`
	Condition        string `json:"condition"`
	Department       string `json:"department"`
	Status           Status `json:"status"`
	Doctor           string `json:"doctor"`
	Room             string `json:"room"`
	Insurance        string `json:"insurance"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
}

// DashboardStats are the summary counts shown on the dashboard cards.
// Always recomputed from the full collection, never updated incrementally.
type DashboardStats struct {
	TotalPatients    int `json:"total_patients"`
	CriticalPatients int `json:"critical_patients"`
	DischargedToday  int `json:"discharged_today"`
	AdmittedToday    int `json:"admitted_today"`
	OccupancyRate    int `json:"occupancy_rate"`
}

// DepartmentCount is one slice of the department distribution chart.
type DepartmentCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// TrendPoint is one day of the admission trend chart.
type TrendPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ChartData carries both chart projections. AdmissionTrends always holds
// exactly 7 entries covering the trailing 7 calendar days, oldest first.
type ChartData struct {
	DepartmentData  []DepartmentCount `json:"department_data"`
	AdmissionTrends []TrendPoint      `json:"admission_trends"`
}
