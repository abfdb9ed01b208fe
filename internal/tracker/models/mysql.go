package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DatabaseConnection hands out the current pool, persistence.Mysql
// swaps it when it reconnects
type DatabaseConnection interface {
	GetClient() *sql.DB
}

// Mysql is the Repository backed by the schema in internal/database
type Mysql struct {
	connection DatabaseConnection
}

var _ Repository = (*Mysql)(nil)

func NewMysql(connection DatabaseConnection) *Mysql {
	return &Mysql{connection: connection}
}

func (m *Mysql) db() *sql.DB {
	return m.connection.GetClient()
}

const selectUser = `
SELECT
  users.id,
  users.email,
  users.name,
  users.password_hash,
  students.id,
  teachers.id
    FROM users
      LEFT JOIN students ON students.user_id = users.id
      LEFT JOIN teachers ON teachers.user_id = users.id
`

func scanUser(row *sql.Row) (*User, error) {
	user := User{}
	var studentId, teacherId sql.NullInt64
	if err := row.Scan(
		&user.Id,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&studentId,
		&teacherId,
	); err != nil {
		return nil, err
	}
	if studentId.Valid {
		user.StudentId = &studentId.Int64
	}
	if teacherId.Valid {
		user.TeacherId = &teacherId.Int64
	}
	return &user, nil
}

func (m *Mysql) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user *User
	if err := executeMysqlSelect(mysqlQueryInput{
		Ctx:      ctx,
		Db:       m.db(),
		Stmt:     selectUser + " WHERE users.email = ?",
		Args:     []any{email},
		FnSource: "models.Mysql.GetUserByEmail",
		ProcessRow: func(row *sql.Row) (err error) {
			user, err = scanUser(row)
			return err
		},
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *Mysql) GetUserById(ctx context.Context, id int64) (*User, error) {
	var user *User
	if err := executeMysqlSelect(mysqlQueryInput{
		Ctx:      ctx,
		Db:       m.db(),
		Stmt:     selectUser + " WHERE users.id = ?",
		Args:     []any{id},
		FnSource: "models.Mysql.GetUserById",
		ProcessRow: func(row *sql.Row) (err error) {
			user, err = scanUser(row)
			return err
		},
	}); err != nil {
		return nil, err
	}
	return user, nil
}

const selectClassSession = `
SELECT
  class_sessions.id,
  class_sessions.course_unit_id,
  course_units.name,
  courses.name,
  class_sessions.teacher_id,
  class_sessions.room,
  class_sessions.summary,
  class_sessions.secret,
  class_sessions.starts_at,
  class_sessions.ends_at
`

const fromClassSession = `
    FROM class_sessions
      JOIN course_units ON course_units.id = class_sessions.course_unit_id
      JOIN courses ON courses.id = course_units.course_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClassSession(row rowScanner, extra ...any) (*ClassSession, error) {
	classSession := ClassSession{}
	var summary sql.NullString
	dest := []any{
		&classSession.Id,
		&classSession.CourseUnitId,
		&classSession.CourseUnitName,
		&classSession.CourseName,
		&classSession.TeacherId,
		&classSession.Room,
		&summary,
		&classSession.Secret,
		&classSession.StartsAt,
		&classSession.EndsAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	classSession.Summary = summary.String
	return &classSession, nil
}

func (m *Mysql) GetClassSession(ctx context.Context, id int64) (*ClassSession, error) {
	var classSession *ClassSession
	if err := executeMysqlSelect(mysqlQueryInput{
		Ctx:      ctx,
		Db:       m.db(),
		Stmt:     selectClassSession + fromClassSession + " WHERE class_sessions.id = ?",
		Args:     []any{id},
		FnSource: "models.Mysql.GetClassSession",
		ProcessRow: func(row *sql.Row) (err error) {
			classSession, err = scanClassSession(row)
			return err
		},
	}); err != nil {
		return nil, err
	}
	return classSession, nil
}

func (m *Mysql) ListStudentClassSessions(ctx context.Context, studentId int64, from, to time.Time) ([]ClassSession, error) {
	classSessions := []ClassSession{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: selectClassSession + `,
  presences.student_id IS NOT NULL
` + fromClassSession + `
      JOIN enrolments ON enrolments.course_unit_id = class_sessions.course_unit_id
      LEFT JOIN presences ON presences.class_session_id = class_sessions.id
        AND presences.student_id = enrolments.student_id
        WHERE enrolments.student_id = ?
          AND class_sessions.starts_at >= ?
          AND class_sessions.starts_at < ?
        ORDER BY class_sessions.starts_at`,
		Args:     []any{studentId, from.UTC(), to.UTC()},
		FnSource: "models.Mysql.ListStudentClassSessions",
		ProcessRows: func(rows *sql.Rows) error {
			var marked bool
			classSession, err := scanClassSession(rows, &marked)
			if err != nil {
				return err
			}
			classSession.Marked = marked
			classSessions = append(classSessions, *classSession)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return classSessions, nil
}

func (m *Mysql) ListTeacherClassSessions(ctx context.Context, teacherId int64, from, to time.Time) ([]ClassSession, error) {
	classSessions := []ClassSession{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: selectClassSession + `,
  (SELECT COUNT(*) FROM presences WHERE presences.class_session_id = class_sessions.id)
` + fromClassSession + `
        WHERE class_sessions.teacher_id = ?
          AND class_sessions.starts_at >= ?
          AND class_sessions.starts_at < ?
        ORDER BY class_sessions.starts_at`,
		Args:     []any{teacherId, from.UTC(), to.UTC()},
		FnSource: "models.Mysql.ListTeacherClassSessions",
		ProcessRows: func(rows *sql.Rows) error {
			var presences int
			classSession, err := scanClassSession(rows, &presences)
			if err != nil {
				return err
			}
			classSession.Presences = presences
			classSessions = append(classSessions, *classSession)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return classSessions, nil
}

func (m *Mysql) IsEnrolled(ctx context.Context, studentId, courseUnitId int64) (bool, error) {
	var count int
	if err := executeMysqlSelect(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: `
SELECT COUNT(*)
  FROM enrolments
    WHERE student_id = ? AND course_unit_id = ?`,
		Args:     []any{studentId, courseUnitId},
		FnSource: "models.Mysql.IsEnrolled",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&count)
		},
	}); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Mysql) ListCourseUnits(ctx context.Context) ([]CourseUnit, error) {
	courseUnits := []CourseUnit{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: `
SELECT
  course_units.id,
  course_units.name,
  course_units.description,
  courses.name
    FROM course_units
      JOIN courses ON courses.id = course_units.course_id
    ORDER BY courses.name, course_units.name`,
		FnSource: "models.Mysql.ListCourseUnits",
		ProcessRows: func(rows *sql.Rows) error {
			courseUnit := CourseUnit{}
			var description sql.NullString
			if err := rows.Scan(
				&courseUnit.Id,
				&courseUnit.Name,
				&description,
				&courseUnit.CourseName,
			); err != nil {
				return err
			}
			courseUnit.Description = description.String
			courseUnits = append(courseUnits, courseUnit)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return courseUnits, nil
}

func (m *Mysql) HasPresence(ctx context.Context, classSessionId, studentId int64) (bool, error) {
	var count int
	if err := executeMysqlSelect(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: `
SELECT COUNT(*)
  FROM presences
    WHERE class_session_id = ? AND student_id = ?`,
		Args:     []any{classSessionId, studentId},
		FnSource: "models.Mysql.HasPresence",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&count)
		},
	}); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Mysql) RecordPresence(ctx context.Context, presence Presence) (bool, error) {
	if presence.ClassSessionId <= 0 || presence.StudentId <= 0 {
		return false, fmt.Errorf("models.Mysql.RecordPresence: %w", ErrorInvalidInput)
	}
	inserted, err := executeMysqlInsert(mysqlQueryInput{
		Ctx: ctx,
		Db:  m.db(),
		Stmt: `
INSERT INTO presences (class_session_id, student_id, recorded_by, recorded_at)
  VALUES (?, ?, ?, ?)
  ON DUPLICATE KEY UPDATE class_session_id = class_session_id`,
		Args: []any{
			presence.ClassSessionId,
			presence.StudentId,
			presence.RecordedBy,
			presence.RecordedAt.UTC(),
		},
		RowsAffected: atMostOneRowAffected,
		FnSource:     "models.Mysql.RecordPresence",
	})
	if err != nil {
		return false, err
	}
	return oneRowAffected(inserted), nil
}
