// Package models defines the core domain models for tutorbook.
//
// # Models
//
//   - Lesson: one dated lesson logged by a tutor
//   - LessonSkeleton: a dateless lesson kept in a weekday template
//   - Templates: the odd (Mon/Wed/Fri) and even (Tue/Thu/Sat) template buckets
//   - PricingTier / SubjectPricing: tiered per-lesson fees by group size
//   - SalaryRecord: a manually entered monthly salary for one tutor
//   - User: a tutor or staff account, owning its lessons, templates and salaries
//
// # Design Principles
//
//  1. **One document per user**: lessons, templates and salaries are embedded
//     in the user and have no lifecycle of their own.
//  2. **Calendar-relative strings**: dates are "YYYY-MM-DD" and times "HH:MM",
//     exactly as they are persisted, so a record round-trips untouched.
//  3. **Avoid circular references**: relationships use ID strings.
package models
