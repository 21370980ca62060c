package mongo

import "context"

var MongoTestConf = &Config{
	Host:   "localhost",
	Port:   "27018",
	DBName: "guestbook_test",
}

// StorageConnect establishes a connection to the predefined test Mongo
// instance. It returns a connected Storage object or an error if the instance
// is not reachable.
func StorageConnect(ctx context.Context) (*Storage, error) {
	db, err := New(ctx, MongoTestConf)
	if err != nil {
		return nil, ErrConnectDB
	}

	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// RestoreDB drops the guestbook collection to reset the database state.
// WARNING: Use only in tests to avoid data loss.
func RestoreDB(db *Storage) error {
	return db.coll().Drop(context.Background())
}
