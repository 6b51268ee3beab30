package repos

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByID(ctx context.Context, uid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `
		SELECT u.uid, u.pwd_hash, u.role, COALESCE(c.name,'') AS name
		FROM users u LEFT JOIN customers c ON c.cid = u.uid
		WHERE u.uid = ?`, uid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers WHERE LOWER(email) = LOWER(?)`, email)
	return n > 0, err
}

// Register creates a customer account under the next numeric id; the customer id equals the user id.
func (r *UserRepo) Register(ctx context.Context, name, email, hash string) (string, error) {
	var uid string
	err := WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var max sql.NullInt64
		if err := tx.GetContext(ctx, &max, `SELECT MAX(CAST(uid AS INTEGER)) FROM users`); err != nil {
			return err
		}
		uid = strconv.FormatInt(max.Int64+1, 10)
		if _, err := tx.ExecContext(ctx, `INSERT INTO users(uid,pwd_hash,role) VALUES(?,?,'customer')`, uid, hash); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO customers(cid,name,email) VALUES(?,?,?)`, uid, name, email)
		return err
	})
	return uid, err
}

// StartSession opens the next numbered session for a customer.
func (r *UserRepo) StartSession(ctx context.Context, cid, ts string) (int, error) {
	var no int
	err := WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &no, `SELECT COALESCE(MAX(session_no), 0) + 1 FROM sessions WHERE cid = ?`, cid); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO sessions(cid, session_no, start_time) VALUES(?,?,?)`, cid, no, ts)
		return err
	})
	return no, err
}

func (r *UserRepo) EndSession(ctx context.Context, cid string, no int, ts string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE sessions SET end_time = ? WHERE cid = ? AND session_no = ?`, ts, cid, no)
	return err
}

func (r *UserRepo) Session(ctx context.Context, cid string, no int) (domain.Session, error) {
	var s domain.Session
	err := r.DB.GetContext(ctx, &s, `
		SELECT cid, session_no, start_time, COALESCE(end_time,'') AS end_time
		FROM sessions WHERE cid = ? AND session_no = ?`, cid, no)
	return s, err
}

func (r *UserRepo) BindWeb(ctx context.Context, sid string, a domain.Actor) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO web_sessions(id, uid, cid, session_no, role, last_seen)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET uid=excluded.uid, cid=excluded.cid,
		  session_no=excluded.session_no, role=excluded.role, last_seen=CURRENT_TIMESTAMP`,
		sid, a.UserID, a.CustomerID, a.SessionNo, a.Role)
	return err
}

// WebActor returns the actor bound to a browser session, or nil if none.
func (r *UserRepo) WebActor(ctx context.Context, sid string) (*domain.Actor, error) {
	var a domain.Actor
	err := r.DB.GetContext(ctx, &a, `SELECT uid, cid, session_no, role FROM web_sessions WHERE id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserRepo) UnbindWeb(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = ?`, sid)
	return err
}
