package repository

import (
	"strconv"
	"time"

	"github.com/mmynk/tutorbook/internal/models"
)

func lessonsPrefix(tutorID string) string {
	return "lessons/" + tutorID + "/"
}

func lessonsKey(tutorID string, year int) string {
	return lessonsPrefix(tutorID) + strconv.Itoa(year)
}

func templateKey(tutorID string, parity models.Parity) string {
	return "template_" + string(parity) + "_days/" + tutorID
}

func pricingKey(tutorID string) string {
	return "teacher_pricing_" + tutorID
}

func salariesKey(tutorID string) string {
	return "salaries/" + tutorID
}

// groupByYear buckets lessons by calendar year. Undated lessons go under now's year.
func groupByYear(lessons []models.Lesson, now time.Time) map[int][]models.Lesson {
	byYear := make(map[int][]models.Lesson)
	for _, l := range lessons {
		year := now.Year()
		if day, ok := l.Day(); ok {
			year = day.Year()
		}
		byYear[year] = append(byYear[year], l)
	}
	return byYear
}
