package models

import "time"

// User is an account that can log in. A user is a student, a teacher,
// both, or neither (an administrator)
type User struct {
	Id           int64
	Email        string
	Name         string
	PasswordHash string

	StudentId *int64
	TeacherId *int64
}

func (u User) IsStudent() bool {
	return u.StudentId != nil
}

func (u User) IsTeacher() bool {
	return u.TeacherId != nil
}

type ClassSession struct {
	Id             int64
	CourseUnitId   int64
	CourseUnitName string
	CourseName     string
	TeacherId      int64
	Room           string
	Summary        string
	Secret         string
	StartsAt       time.Time
	EndsAt         time.Time

	// Presences is the number of recorded presences, only filled in by
	// ListTeacherClassSessions
	Presences int

	// Marked is whether the student has a recorded presence, only
	// filled in by ListStudentClassSessions
	Marked bool
}

// IsActiveAt reports whether check-ins are accepted at `t`
func (c ClassSession) IsActiveAt(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.EndsAt)
}

type CourseUnit struct {
	Id          int64
	Name        string
	Description string
	CourseName  string
}

type Presence struct {
	ClassSessionId int64
	StudentId      int64
	RecordedBy     int64
	RecordedAt     time.Time
}
