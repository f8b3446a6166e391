package store

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// BoltDB keeps every profile namespace of the storefront in one bbolt file,
// one bucket per namespace.
type BoltDB struct {
	db     *bbolt.DB
	mu     sync.Mutex
	spaces map[string]*watchers
}

func OpenBolt(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	return &BoltDB{db: db, spaces: make(map[string]*watchers)}, nil
}

// Namespace returns the Store for one bucket. Watchers are shared by every
// handle of the same namespace.
func (b *BoltDB) Namespace(name string) Store {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.spaces[name]
	if !ok {
		w = &watchers{}
		b.spaces[name] = w
	}
	return &boltNamespace{db: b.db, bucket: []byte(name), w: w}
}

// Namespaces lists the buckets that hold data.
func (b *BoltDB) Namespaces() ([]string, error) {
	var names []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: list namespaces")
	}
	sort.Strings(names)
	return names, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

type boltNamespace struct {
	db     *bbolt.DB
	bucket []byte
	w      *watchers
}

func (n *boltNamespace) Get(key string) ([]byte, error) {
	var out []byte
	err := n.db.View(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(n.bucket)
		if bk == nil {
			return ErrNotFound
		}
		v := bk.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "store: get %s", key)
	}
	return out, nil
}

func (n *boltNamespace) Put(key string, value []byte, origin string) error {
	err := n.db.Update(func(tx *bbolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(n.bucket)
		if err != nil {
			return err
		}
		return bk.Put([]byte(key), value)
	})
	if err != nil {
		return errors.Wrapf(err, "store: put %s", key)
	}
	n.w.notify(Change{Key: key, Origin: origin})
	return nil
}

func (n *boltNamespace) Delete(key string, origin string) error {
	err := n.db.Update(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(n.bucket)
		if bk == nil {
			return nil
		}
		return bk.Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrapf(err, "store: delete %s", key)
	}
	n.w.notify(Change{Key: key, Origin: origin})
	return nil
}

func (n *boltNamespace) Watch(fn func(Change)) func() {
	return n.w.add(fn)
}
