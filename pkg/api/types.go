// Package api defines the request and response messages of the tutorbook
// Connect services. Messages are plain structs encoded as JSON.
package api

import "encoding/json"

// Lesson is a dated lesson on a tutor's calendar.
type Lesson struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Subject       string `json:"subject"`
	StudentName   string `json:"studentName"`
	Notes         string `json:"notes,omitempty"`
	Duration      int    `json:"duration"`
	IsGroupLesson bool   `json:"isGroupLesson,omitempty"`
	GroupID       string `json:"groupId,omitempty"`
	GroupDays     []int  `json:"groupDays,omitempty"`
	TeacherID     string `json:"teacherId,omitempty"`
}

// LessonSkeleton is a dateless template entry.
type LessonSkeleton struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Subject     string `json:"subject"`
	StudentName string `json:"studentName"`
	Notes       string `json:"notes,omitempty"`
	Duration    int    `json:"duration"`
	TeacherID   string `json:"teacherId,omitempty"`
}

// Templates holds the odd (Mon/Wed/Fri) and even (Tue/Thu/Sat) buckets.
type Templates struct {
	Odd  []LessonSkeleton `json:"odd"`
	Even []LessonSkeleton `json:"even"`
}

type PricingTier struct {
	MinStudents int     `json:"minStudents"`
	MaxStudents *int    `json:"maxStudents,omitempty"`
	Price       float64 `json:"price"`
}

type SubjectPricing struct {
	Subject string        `json:"subject"`
	Tiers   []PricingTier `json:"tiers"`
}

type SalaryRecord struct {
	TeacherID string  `json:"teacherId"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Salary    float64 `json:"salary"`
}

// User is the public view of an account. Password hashes never leave the server.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Rejection reports an input record that failed validation and was not saved.
type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// RawRecords carries untyped records that the server validates one by one.
type RawRecords = []json.RawMessage

// Data sources reported by read operations.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
)
