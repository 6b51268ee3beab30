package repos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "storefront/internal/log"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx so a repo can run inside a transaction.
type Queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

// OpenDB opens the store on a single connection; the store has one logical writer.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS users(
  uid TEXT PRIMARY KEY,
  pwd_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('customer','sales'))
);

CREATE TABLE IF NOT EXISTS customers(
  cid TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));

-- Sessions scope carts; session_no counts up per customer from 1
CREATE TABLE IF NOT EXISTS sessions(
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  PRIMARY KEY (cid, session_no)
);

-- Browser cookie -> actor
CREATE TABLE IF NOT EXISTS web_sessions(
  id TEXT PRIMARY KEY,
  uid TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  role TEXT NOT NULL,
  last_seen TEXT
);

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  pid TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL CHECK (price >= 0),
  stock_count INTEGER NOT NULL DEFAULT 0 CHECK (stock_count >= 0),
  descr TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Carts
CREATE TABLE IF NOT EXISTS cart(
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  pid TEXT NOT NULL REFERENCES products(pid) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (cid, session_no, pid)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  ono INTEGER PRIMARY KEY,
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  odate TEXT NOT NULL,
  shipping_address TEXT NOT NULL CHECK (length(trim(shipping_address)) > 0)
);
CREATE INDEX IF NOT EXISTS idx_orders_cid   ON orders(cid);
CREATE INDEX IF NOT EXISTS idx_orders_odate ON orders(odate);

CREATE TABLE IF NOT EXISTS orderlines(
  ono INTEGER NOT NULL REFERENCES orders(ono) ON DELETE CASCADE,
  line_no INTEGER NOT NULL CHECK (line_no >= 1),
  pid TEXT NOT NULL REFERENCES products(pid),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  uprice REAL NOT NULL,
  PRIMARY KEY (ono, line_no)
);
CREATE INDEX IF NOT EXISTS idx_orderlines_pid ON orderlines(pid);

-- Number allocation outside the checkout transaction
CREATE TABLE IF NOT EXISTS counters(
  name TEXT PRIMARY KEY,
  value INTEGER NOT NULL
);
INSERT OR IGNORE INTO counters(name, value) VALUES ('order', 0);

-- Activity
CREATE TABLE IF NOT EXISTS viewed_products(
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  ts TEXT NOT NULL,
  pid TEXT NOT NULL REFERENCES products(pid)
);
CREATE INDEX IF NOT EXISTS idx_viewed_pid ON viewed_products(pid);

CREATE TABLE IF NOT EXISTS searches(
  cid TEXT NOT NULL,
  session_no INTEGER NOT NULL,
  ts TEXT NOT NULL,
  query TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty inserts the demo catalog and accounts into an empty store.
func SeedIfEmpty(db *sqlx.DB, hash func(string) (string, error)) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "seed.demo", nil)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO products(pid,name,category,price,stock_count,descr) VALUES
	  ('p1','Laptop','Electronics',999.99,10,'High-performance laptop with 16GB RAM'),
	  ('p2','Wireless Mouse','Electronics',29.99,50,'Ergonomic wireless mouse'),
	  ('p3','Mechanical Keyboard','Electronics',79.99,30,'RGB mechanical gaming keyboard'),
	  ('p4','27-inch Monitor','Electronics',299.99,15,'4K LED monitor with HDR'),
	  ('p5','Noise-Cancelling Headphones','Audio',149.99,25,'Premium wireless headphones'),
	  ('p6','HD Webcam','Electronics',89.99,20,'1080p webcam with microphone'),
	  ('p7','USB-C Cable','Accessories',9.99,100,'Fast charging USB-C cable'),
	  ('p8','LED Desk Lamp','Furniture',39.99,35,'Adjustable brightness desk lamp'),
	  ('p9','External SSD','Electronics',129.99,40,'1TB portable SSD drive'),
	  ('p10','Gaming Chair','Furniture',249.99,12,'Ergonomic gaming chair with lumbar support')`)

	type account struct {
		ID, Role, Password, Name, Email string
	}
	accounts := []account{
		{"1", "customer", "customer123", "John Doe", "john@example.com"},
		{"2", "sales", "sales456", "", ""},
		{"100", "customer", "test", "Test User", "test@example.com"},
	}
	for _, a := range accounts {
		h, err := hash(a.Password)
		if err != nil {
			return err
		}
		tx.MustExec(`INSERT INTO users(uid,pwd_hash,role) VALUES(?,?,?)`, a.ID, h, a.Role)
		if a.Role == "customer" {
			tx.MustExec(`INSERT INTO customers(cid,name,email) VALUES(?,?,?)`, a.ID, a.Name, a.Email)
		}
	}

	return tx.Commit()
}
