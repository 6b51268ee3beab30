package repos

import "context"

// ActivityRepo appends search and product-view audit rows.
type ActivityRepo struct{ db Queryer }

func NewActivityRepo(db Queryer) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) RecordSearch(ctx context.Context, cid string, sessionNo int, ts, query string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO searches(cid, session_no, ts, query) VALUES(?, ?, ?, ?)
	`, cid, sessionNo, ts, query)
	return err
}

func (r *ActivityRepo) RecordView(ctx context.Context, cid string, sessionNo int, ts, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO viewed_products(cid, session_no, ts, pid) VALUES(?, ?, ?, ?)
	`, cid, sessionNo, ts, productID)
	return err
}

