package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRoles(t *testing.T) {
	assert.Equal(t, Roles{}, DeriveRoles(nil))
	assert.Equal(t, "none", DeriveRoles(nil).String())

	both := &Session{Claims: Claims{IsStudent: true, IsTeacher: true}}
	assert.Equal(t, Roles{Student: true, Teacher: true}, DeriveRoles(both))
	assert.Equal(t, "student,teacher", both.Roles().String())

	super := &Session{Claims: Claims{IsSuper: true}}
	assert.Equal(t, Roles{Superuser: true}, DeriveRoles(super))
}
