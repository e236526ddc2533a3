package models

// SalaryRecord is a manually entered salary for one tutor and month.
// It is kept apart from the computed estimate and never merged into it.
type SalaryRecord struct {
	TeacherID string  `json:"teacherId,omitempty" bson:"-"`
	Year      int     `json:"year" bson:"year"`
	Month     int     `json:"month" bson:"month"`
	Salary    float64 `json:"salary" bson:"salary"`
}

// FindSalary returns the record for (year, month), if any.
func FindSalary(records []SalaryRecord, year, month int) (SalaryRecord, bool) {
	for _, r := range records {
		if r.Year == year && r.Month == month {
			return r, true
		}
	}
	return SalaryRecord{}, false
}
