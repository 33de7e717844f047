package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"time"

	"github.com/aussiebroadwan/invites/internal/invites/domain"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc.org/sqlite connection string for a database file with
// the pragmas the store relies on applied to every pooled connection.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

// NewStoreFromDB wraps an already opened handle. Used by tests that drive the
// store through a mocked driver.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db, q: gen.New(db)}
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after a successful commit returns sql.ErrTxDone and is ignored
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }
func (s *Store) Accounts() store.Accounts       { return &accountsRepo{q: s.q} }
func (s *Store) Groups() store.Groups           { return &groupsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// utc strips the monotonic reading and location so stored timestamps sort
// lexically.
func utc(t time.Time) time.Time {
	return t.UTC().Round(0)
}

func mapInvitation(row gen.Invitation) (domain.Invitation, error) {
	groups, err := domain.ParseGroupSet(row.GroupCodes)
	if err != nil {
		return domain.Invitation{}, err
	}
	return domain.Invitation{
		ID:        row.ID,
		FirstName: row.FirstName,
		Email:     row.Email,
		Token:     row.Token,
		Groups:    groups,
		InvitedBy: mapNullString(row.InvitedBy),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func mapAccount(row gen.Account) domain.Account {
	return domain.Account{
		ID:           row.ID,
		Email:        row.Email,
		FirstName:    row.FirstName,
		Surname:      row.Surname,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapGroup(row gen.UserGroup) domain.Group {
	return domain.Group{
		ID:        row.ID,
		Code:      row.Code,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
