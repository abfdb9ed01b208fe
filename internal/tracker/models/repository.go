// Package models is the tracker's storage layer
package models

import (
	"context"
	"time"
)

// Repository is everything the tracker reads from and writes to its
// database. Lookups of missing rows return an error matching
// ErrorNotFound
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserById(ctx context.Context, id int64) (*User, error)

	GetClassSession(ctx context.Context, id int64) (*ClassSession, error)
	ListStudentClassSessions(ctx context.Context, studentId int64, from, to time.Time) ([]ClassSession, error)
	ListTeacherClassSessions(ctx context.Context, teacherId int64, from, to time.Time) ([]ClassSession, error)

	IsEnrolled(ctx context.Context, studentId, courseUnitId int64) (bool, error)
	ListCourseUnits(ctx context.Context) ([]CourseUnit, error)

	HasPresence(ctx context.Context, classSessionId, studentId int64) (bool, error)

	// RecordPresence inserts the presence unless one already exists for
	// the class session and student, reporting whether it inserted
	RecordPresence(ctx context.Context, presence Presence) (bool, error)
}
