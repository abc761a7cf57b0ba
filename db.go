package texture16

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bodgit/texture16/texture"
)

// Cache stores previously converted textures keyed by the SHA-1 of the
// source file and the conversion options. Textures are stored zstd
// compressed.
type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

// Find returns the texture previously stored for sha and options or nil if
// there isn't one.
func (c *Cache) Find(sha, options string) (*texture.Texture, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM texture WHERE sha1 = ? AND options = ?", sha, options).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := c.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		return texture.Decode(bytes.NewReader(b))
	default:
		return nil, err
	}
}

// Store saves t for sha and options, replacing any existing entry.
func (c *Cache) Store(sha, options string, t *texture.Texture) error {
	b, err := t.MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := c.db.Exec("INSERT OR REPLACE INTO texture (sha1, options, width, height, data) VALUES (?, ?, ?, ?, ?)", sha, options, t.Width, t.Height, c.enc.EncodeAll(b, nil)); err != nil {
		return err
	}
	return nil
}

// Len returns the number of cached textures.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM texture").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached texture.
func (c *Cache) Purge() error {
	_, err := c.db.Exec("DELETE FROM texture")
	return err
}
