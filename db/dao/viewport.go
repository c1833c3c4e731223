package dao

import (
	"context"
	"database/sql"

	"github.com/ignisVeneficus/bistro/db/dbo"
	"github.com/ignisVeneficus/bistro/logging"
)

const getImageSource = `SELECT s.image_key, s.source_url, s.natural_w, s.natural_h, s.updated_at FROM image_sources s WHERE s.image_key=?`
const upsertImageSource = `INSERT INTO image_sources (image_key, source_url, natural_w, natural_h) VALUES (?,?,?,?)
ON DUPLICATE KEY UPDATE source_url=VALUES(source_url), natural_w=VALUES(natural_w), natural_h=VALUES(natural_h)`
const updateNaturalSize = `UPDATE image_sources SET natural_w=?, natural_h=? WHERE image_key=? AND source_url=?`

const queryViewportRows = `SELECT v.device, v.zoom, v.pan_x, v.pan_y, v.overlay FROM image_viewports v WHERE v.image_key=? ORDER BY v.device`
const insertViewportRow = `INSERT INTO image_viewports (image_key, device, zoom, pan_x, pan_y, overlay) VALUES (?,?,?,?,?,?)`
const deleteViewportRows = `DELETE FROM image_viewports WHERE image_key=?`

func (q *Queries) GetImageSource(ctx context.Context, key string) (dbo.ImageViewport, error) {
	row := q.db.QueryRowContext(ctx, getImageSource, key)
	var iv dbo.ImageViewport
	err := row.Scan(&iv.Key, &iv.SourceURL, &iv.NaturalW, &iv.NaturalH, &iv.UpdatedAt)
	return iv, err
}

func (q *Queries) UpsertImageSource(ctx context.Context, iv dbo.ImageViewport) error {
	_, err := q.db.ExecContext(ctx, upsertImageSource, iv.Key, iv.SourceURL, iv.NaturalW, iv.NaturalH)
	return NormalizeSQLError(err)
}

// UpdateNaturalSize only touches the row while it still points at source.
func (q *Queries) UpdateNaturalSize(ctx context.Context, key, source string, w, h uint32) (bool, error) {
	res, err := q.db.ExecContext(ctx, updateNaturalSize, w, h, key, source)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (q *Queries) QueryViewportRows(ctx context.Context, key string) ([]dbo.ViewportRow, error) {
	rows, err := q.db.QueryContext(ctx, queryViewportRows, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dbo.ViewportRow, 0, 2)
	for rows.Next() {
		var r dbo.ViewportRow
		if err := rows.Scan(&r.Device, &r.Zoom, &r.PanX, &r.PanY, &r.Overlay); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) InsertViewportRow(ctx context.Context, key string, r dbo.ViewportRow) error {
	_, err := q.db.ExecContext(ctx, insertViewportRow, key, r.Device, r.Zoom, r.PanX, r.PanY, r.Overlay)
	return NormalizeSQLError(err)
}

func (q *Queries) DeleteViewportRows(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteViewportRows, key)
	return NormalizeSQLError(err)
}

//
// =========================================================
// Public API functions
// =========================================================
//

func GetImageViewport(db *sql.DB, ctx context.Context, key string) (dbo.ImageViewport, error) {
	logg := logging.Enter(ctx, "dao.viewport.get", map[string]any{"key": key})
	q := NewQueries(db)
	iv, err := q.GetImageSource(ctx, key)
	if err != nil {
		return iv, returnWrapNotFound(logg, err, "image_sources")
	}
	iv.Rows, err = q.QueryViewportRows(ctx, key)
	if err != nil {
		logging.ExitErr(logg, err)
		return iv, err
	}
	logging.Exit(logg, "ok", map[string]any{"viewport": &iv})
	return iv, nil
}

// SaveImageViewport stores the source and replaces every variant row of iv.Key.
func SaveImageViewport(db *sql.DB, ctx context.Context, iv dbo.ImageViewport) error {
	logg := logging.Enter(ctx, "dao.viewport.save", map[string]any{"viewport": &iv})
	err := inTx(db, ctx, logg, func(q *Queries) error {
		if err := q.UpsertImageSource(ctx, iv); err != nil {
			return err
		}
		if err := q.DeleteViewportRows(ctx, iv.Key); err != nil {
			return err
		}
		for _, r := range iv.Rows {
			if err := q.InsertViewportRow(ctx, iv.Key, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.ExitErr(logg, err)
		return err
	}
	logging.Exit(logg, "ok", nil)
	return nil
}

// ReplaceImageSource points key at a new source and drops its viewport rows and natural size.
func ReplaceImageSource(db *sql.DB, ctx context.Context, key, source string) error {
	return SaveImageViewport(db, ctx, dbo.ImageViewport{Key: key, SourceURL: source})
}

func UpdateNaturalSize(db *sql.DB, ctx context.Context, key, source string, w, h uint32) error {
	logg := logging.Enter(ctx, "dao.viewport.natural", map[string]any{"key": key, "width": w, "height": h})
	ok, err := NewQueries(db).UpdateNaturalSize(ctx, key, source, w, h)
	if err != nil {
		logging.ExitErr(logg, err)
		return err
	}
	if !ok {
		logging.Exit(logg, "stale", nil)
		return nil
	}
	logging.Exit(logg, "ok", nil)
	return nil
}
