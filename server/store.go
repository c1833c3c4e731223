package server

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/db/dao"
	"github.com/ignisVeneficus/bistro/db/dbo"
	"github.com/ignisVeneficus/bistro/editor"
)

// Record is the committed state of one image slot.
type Record struct {
	Key      string        `json:"key"`
	Source   string        `json:"source"`
	Natural  editor.Size   `json:"natural"`
	Variants data.Variants `json:"variants"`
}

type Store interface {
	// Load returns dao.ErrDataNotFound (wrapped) for an unknown key.
	Load(ctx context.Context, key string) (Record, error)
	Save(ctx context.Context, rec Record) error
	ReplaceSource(ctx context.Context, key, source string) error
	// UpdateNatural is ignored when key no longer points at source.
	UpdateNatural(ctx context.Context, key, source string, natural editor.Size) error
}

func IsNotFound(err error) bool {
	return errors.Is(err, dao.ErrDataNotFound)
}

type DBStore struct {
	db *sql.DB
}

func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Load(ctx context.Context, key string) (Record, error) {
	iv, err := dao.GetImageViewport(s.db, ctx, key)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Key: iv.Key, Source: iv.SourceURL, Variants: iv.ToVariants()}
	if w, h, ok := iv.Natural(); ok {
		rec.Natural = editor.Size{Width: float64(w), Height: float64(h)}
	}
	return rec, nil
}

func (s *DBStore) Save(ctx context.Context, rec Record) error {
	iv := dbo.FromVariants(rec.Key, rec.Source, rec.Variants)
	iv.SetNatural(uint32(rec.Natural.Width), uint32(rec.Natural.Height))
	return dao.SaveImageViewport(s.db, ctx, iv)
}

func (s *DBStore) ReplaceSource(ctx context.Context, key, source string) error {
	return dao.ReplaceImageSource(s.db, ctx, key, source)
}

func (s *DBStore) UpdateNatural(ctx context.Context, key, source string, natural editor.Size) error {
	return dao.UpdateNaturalSize(s.db, ctx, key, source, uint32(natural.Width), uint32(natural.Height))
}
