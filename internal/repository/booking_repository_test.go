package repository

import (
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

// Two rechecks on an empty seat both pass and both insert; InnoDB
// kills one with a deadlock.  That loser must surface as ErrSeatTaken,
// not as a generic store failure.
func TestRaceErr(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock; try restarting transaction"}
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	noDefault := &mysql.MySQLError{Number: 1364, Message: "Field 'user_id' doesn't have a default value"}

	assert.True(t, raceErr(deadlock))
	assert.True(t, raceErr(dup))
	assert.True(t, raceErr(fmt.Errorf("exec insert: %w", deadlock)), "wrapped driver errors still classify")
	assert.False(t, raceErr(noDefault))
	assert.False(t, raceErr(fmt.Errorf("connection reset")))
	assert.False(t, raceErr(nil))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
