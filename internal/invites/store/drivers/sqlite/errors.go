package sqlite

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/invites/internal/invites/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapConstraint translates UNIQUE and PRIMARY KEY violations into store
// sentinels. The violated column is read from the driver message, which has
// the form "UNIQUE constraint failed: table.column".
func mapConstraint(err error) error {
	var serr *msqlite.Error
	if !errors.As(err, &serr) || serr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	msg := serr.Error()
	switch {
	case strings.Contains(msg, "invitations.email"), strings.Contains(msg, "accounts.email"):
		return store.ErrDuplicateEmail
	case strings.Contains(msg, "invitations.token"):
		return store.ErrDuplicateToken
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "PRIMARY KEY"):
		return store.ErrAlreadyExists
	}
	return err
}
