package store

import (
	"context"
	"database/sql"
	"sync"

	"github.com/pkg/errors"

	"github.com/kimhaegyeong/reading-tracker/config"
	"github.com/kimhaegyeong/reading-tracker/store/db"
)

// Store owns the embedded database: entity CRUD on one side and the
// read-only aggregation queries on the other. All methods are safe for
// concurrent use; multi-statement writes run in a single transaction and
// writers are serialized with dbLock.
type Store struct {
	db     *db.DB
	dbLock sync.Mutex

	BookCache    sync.Map // map[int]*model.Book
	SettingCache sync.Map // map[string]*model.Setting
}

func NewStore(db *db.DB) *Store {
	return &Store{
		db: db,
	}
}

var (
	instance     *Store
	instanceErr  error
	instanceOnce sync.Once
)

// GetInstance returns the process-wide store, opening the database and
// running schema migration on first use. Initialization is memoized under
// sync.Once so concurrent first callers block on the same init instead of
// racing into a second handle or a second round of DDL; the init error is
// memoized the same way.
func GetInstance(ctx context.Context) (*Store, error) {
	instanceOnce.Do(func() {
		database, err := db.NewDB(config.Opts.DSN)
		if err != nil {
			instanceErr = errors.Wrap(err, "failed to open database")
			return
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			instanceErr = errors.Wrap(err, "failed to migrate database")
			return
		}
		instance = NewStore(database)
	})
	return instance, instanceErr
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
