package keystore

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"go.uber.org/zap"
)

var leafIndexKey = []byte("hbs/leaf-index")

// syncWrite forces every index advance to disk before it is
// acknowledged; a signature must never outlive a lost advance.
var syncWrite = &opt.WriteOptions{Sync: true}

// LevelDB persists the leaf index in a LevelDB database. Advances are
// synced writes and monotonicity is enforced at the store, so a
// restored or concurrently opened key cannot roll the index back.
type LevelDB struct {
	db  *leveldb.DB
	log *zap.Logger

	mu     sync.Mutex
	next   uint32
	loaded bool
}

// OpenLevelDB opens (or creates) the database at path. A nil logger
// disables logging.
func OpenLevelDB(path string, log *zap.Logger) (*LevelDB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	s := &LevelDB{db: db, log: log}
	if _, _, err := s.LoadIndex(); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("state store opened", zap.String("path", path), zap.Uint32("index", s.next))
	return s, nil
}

// LoadIndex reads the recorded index. ok is false when the store has
// never recorded one.
func (s *LevelDB) LoadIndex() (index uint32, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.db.Get(leafIndexKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load leaf index: %w", err)
	}
	if len(raw) != 4 {
		return 0, false, fmt.Errorf("load leaf index: %d byte record", len(raw))
	}
	s.next = binary.BigEndian.Uint32(raw)
	s.loaded = true
	return s.next, true, nil
}

// Advance durably records next as the lowest unused leaf index.
func (s *LevelDB) Advance(next uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded && next < s.next {
		s.log.Warn("rollback refused", zap.Uint32("have", s.next), zap.Uint32("got", next))
		return fmt.Errorf("%w: have %d, got %d", ErrRollback, s.next, next)
	}
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], next)
	if err := s.db.Put(leafIndexKey, raw[:], syncWrite); err != nil {
		return fmt.Errorf("persist leaf index: %w", err)
	}
	s.next = next
	s.loaded = true
	s.log.Debug("leaf index advanced", zap.Uint32("index", next))
	return nil
}

// Close releases the database.
func (s *LevelDB) Close() error {
	return s.db.Close()
}
