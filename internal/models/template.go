package models

import (
	"fmt"
	"strings"
	"time"
)

// Parity selects a weekday class for recurring lessons.
type Parity string

const (
	// ParityOdd covers Monday, Wednesday and Friday.
	ParityOdd Parity = "odd"
	// ParityEven covers Tuesday, Thursday and Saturday.
	ParityEven Parity = "even"
)

// ParseParity accepts "odd" or "even" in any case.
func ParseParity(s string) (Parity, error) {
	switch Parity(strings.ToLower(strings.TrimSpace(s))) {
	case ParityOdd:
		return ParityOdd, nil
	case ParityEven:
		return ParityEven, nil
	default:
		return "", fmt.Errorf("unknown parity %q: want odd or even", s)
	}
}

// Weekdays returns the weekdays belonging to the parity class.
func (p Parity) Weekdays() []time.Weekday {
	switch p {
	case ParityOdd:
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	case ParityEven:
		return []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}
	default:
		return nil
	}
}

// Includes reports whether d belongs to the parity class.
func (p Parity) Includes(d time.Weekday) bool {
	for _, wd := range p.Weekdays() {
		if wd == d {
			return true
		}
	}
	return false
}

// LessonSkeleton is a template entry: a lesson without a date.
type LessonSkeleton struct {
	ID          string `json:"id" bson:"id"`
	Time        string `json:"time" bson:"time"`
	Subject     string `json:"subject" bson:"subject"`
	StudentName string `json:"studentName" bson:"studentName"`
	Notes       string `json:"notes,omitempty" bson:"notes,omitempty"`
	Duration    int    `json:"duration" bson:"duration"`
	TeacherID   string `json:"teacherId,omitempty" bson:"teacherId,omitempty"`
}

// Templates holds the two template buckets of a tutor.
type Templates struct {
	Odd  []LessonSkeleton `json:"odd" bson:"odd"`
	Even []LessonSkeleton `json:"even" bson:"even"`
}

// For returns the bucket for the given parity.
func (t Templates) For(p Parity) []LessonSkeleton {
	if p == ParityEven {
		return t.Even
	}
	return t.Odd
}

// With returns a copy of t with the bucket for p replaced.
func (t Templates) With(p Parity, skeletons []LessonSkeleton) Templates {
	if p == ParityEven {
		t.Even = skeletons
	} else {
		t.Odd = skeletons
	}
	return t
}
