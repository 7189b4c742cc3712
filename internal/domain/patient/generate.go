package patient

import (
	"fmt"
	"time"
)

// Rand yields uniform draws in [0,1). *math/rand.Rand satisfies it, which
// keeps generation seedable in tests.
type Rand interface {
	Float64() float64
}

var conditions = []string{
	"Pneumonia", "Hypertension", "Diabetes Type 2", "Myocardial Infarction",
	"Appendicitis", "Stroke", "Kidney Stones", "Asthma", "Bronchitis",
	"Gastroenteritis", "Migraine", "Arthritis", "Fracture", "Infection",
	"Chest Pain", "Abdominal Pain", "Fever", "Dehydration",
}

var departments = []string{
	"Internal Medicine", "Cardiology", "Surgery", "Emergency",
	"Neurology", "Pediatrics", "Orthopedics", "Pulmonology",
	"Gastroenterology", "Endocrinology", "Urology", "Oncology",
}

var doctors = []string{
	"Dr. Michael Chen", "Dr. Emily Rodriguez", "Dr. David Park",
	"Dr. Lisa Wang", "Dr. James Liu", "Dr. Sarah Kim",
	"Dr. Robert Johnson", "Dr. Maria Garcia", "Dr. John Smith",
	"Dr. Jennifer Brown", "Dr. William Davis", "Dr. Amanda Wilson",
}

var insuranceProviders = []string{
	"Blue Cross Blue Shield", "Aetna", "Cigna", "United Healthcare",
	"Kaiser Permanente", "Humana", "Medicare", "Medicaid",
}

// statusWeights sum to 100.
var statusWeights = []struct {
	status Status
	weight float64
}{
	{StatusAdmitted, 40},
	{StatusStable, 35},
	{StatusCritical, 15},
	{StatusDischarged, 10},
}

// pickOne maps a uniform draw onto an index of items.
func pickOne(items []string, u float64) string {
	return items[int(u*float64(len(items)))]
}

// statusFor selects a status by cumulative-weight sampling over a uniform
// draw. Falls back to Admitted if rounding leaves no category selected.
func statusFor(u float64) Status {
	remaining := u * 100
	for _, sw := range statusWeights {
		remaining -= sw.weight
		if remaining <= 0 {
			return sw.status
		}
	}
	return StatusAdmitted
}

// roomCode synthesizes a room like "B304": wing A-F, floor 1-5, room 01-50.
func roomCode(uWing, uFloor, uRoom float64) string {
	wing := rune('A' + int(uWing*6))
	floor := 1 + int(uFloor*5)
	room := 1 + int(uRoom*50)
	return fmt.Sprintf("%c%d%02d", wing, floor, room)
}

// admissionDateFor is today minus a uniform offset of 0-29 days.
func admissionDateFor(today time.Time, u float64) string {
	daysAgo := int(u * 30)
	return today.AddDate(0, 0, -daysAgo).Format(isoDate)
}

func genderFor(g string) Gender {
	switch g {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderOther
	}
}

// Generator turns raw source users into Patient records by combining
// verbatim field copies with randomized categorical assignments.
type Generator struct {
	rnd Rand
	now func() time.Time
}

func NewGenerator(rnd Rand) *Generator {
	return &Generator{rnd: rnd, now: time.Now}
}

// SetClock overrides the time source, for deterministic tests.
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// Transform builds one Patient from one source user. The id, name, age,
// gender, email, phone and address come from the source record; the
// clinical fields are drawn from the fixed lists above. The source has no
// emergency-contact data, so a placeholder is synthesized from the id.
func (g *Generator) Transform(su SourceUser) Patient {
	return Patient{
		ID:               fmt.Sprintf("%d", su.ID),
		Name:             su.FirstName + " " + su.LastName,
		Age:              su.Age,
		Gender:           genderFor(su.Gender),
		AdmissionDate:    admissionDateFor(g.now(), g.rnd.Float64()),
		Condition:        pickOne(conditions, g.rnd.Float64()),
		Department:       pickOne(departments, g.rnd.Float64()),
		Status:           statusFor(g.rnd.Float64()),
		Doctor:           pickOne(doctors, g.rnd.Float64()),
		Room:             roomCode(g.rnd.Float64(), g.rnd.Float64(), g.rnd.Float64()),
		Insurance:        pickOne(insuranceProviders, g.rnd.Float64()),
		EmergencyContact: fmt.Sprintf("Emergency Contact %d", su.ID),
		EmergencyPhone:   su.Phone,
		Email:            su.Email,
		Address:          fmt.Sprintf("%s, %s, %s", su.Address.Address, su.Address.City, su.Address.State),
	}
}
