// Package store persists the working copy of the user collection. The whole
// collection lives under a single key and every write replaces it; the last
// writer of the key wins.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/AndiEkaNugraha/table-user-management/internal/boot"
	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

const collectionKey = "users"

type userCache struct {
	db *sqlx.DB
}

func New(config *boot.Config) (*userCache, error) {
	dbName := path.Join(config.DataDirectory, "usercache.db")
	return connect("file:" + dbName)
}

// NewInMemory opens a named throwaway cache, used by tests.
func NewInMemory(name string) (*userCache, error) {
	return connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

func connect(dsn string) (*userCache, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	cache := &userCache{db}
	if err := cache.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return cache, nil
}

func (s *userCache) createTables() error {
	_, err := s.db.Exec(`create table if not exists user_collection(
		Key       text not null primary key,
		Revision  text not null,
		UpdatedAt DATETIME not null,
		Value     text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating user_collection table: %w", err)
	}
	return nil
}

func (s *userCache) Close() error {
	return s.db.Close()
}

func (s *userCache) ReadAll() ([]model.User, error) {
	var value string
	err := s.db.Get(&value, `select Value from user_collection where Key = ?`, collectionKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorCollectionNotFound
		}
		return nil, fmt.Errorf("reading user collection: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		return nil, fmt.Errorf("unmarshalling user collection: %w", err)
	}
	return users, nil
}

func (s *userCache) WriteAll(users []model.User) error {
	if users == nil {
		users = []model.User{}
	}

	value, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshalling user collection: %w", err)
	}

	revision := model.CreateRevisionID()
	_, err = s.db.Exec(`insert into user_collection (Key, Revision, UpdatedAt, Value)
		values (?, ?, ?, ?)
		on conflict(Key) do update set
			Revision = excluded.Revision,
			UpdatedAt = excluded.UpdatedAt,
			Value = excluded.Value`,
		collectionKey, revision, time.Now().UTC(), string(value))
	if err != nil {
		return fmt.Errorf("writing user collection: %w", err)
	}

	log.Debugf("user collection written, %d users, revision %s", len(users), revision)
	return nil
}
