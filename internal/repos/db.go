package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedProducts(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS posts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS post_media(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
  file_path TEXT NOT NULL,
  media_type TEXT NOT NULL CHECK (media_type IN ('image','video'))
);
CREATE INDEX IF NOT EXISTS idx_post_media_post ON post_media(post_id);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT,
  category TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_name TEXT,
  customer_phone TEXT,
  subtotal NUMERIC,
  delivery_fee NUMERIC,
  school_amount NUMERIC,
  supplier_amount NUMERIC,
  courier_amount NUMERIC,
  total_amount NUMERIC,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','paid','failed')),
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

CREATE TABLE IF NOT EXISTS admissions(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  learner_name TEXT,
  parent_name TEXT,
  phone TEXT,
  email TEXT,
  grade TEXT,
  amount_paid TEXT,
  birth_certificate TEXT,
  parent_id_copy TEXT,
  latest_report TEXT,
  proof_of_residence TEXT,
  message TEXT,
  payment_status TEXT DEFAULT 'unpaid',
  payment_id TEXT,
  status TEXT DEFAULT 'new',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// seedProducts inserts the catalog once; the shop never mutates it.
func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting catalog products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name, description, price, image, category) VALUES
	  ('School Maths Book', 'Grade 10 Mathematics official book', 120, 'maths.jpg', 'Books'),
	  ('Physical Sciences', 'Grade 10 Physical Sciences', 135, 'phy.jpg', 'Books'),
	  ('Life Sciences', 'Biology Grade 10', 128, 'life.jpg', 'Books'),
	  ('English Handbook', 'School English guide', 95, 'eng.jpg', 'Books'),
	  ('Calculator', 'Student scientific calculator', 180, 'casio.jpg', 'Stationery'),
	  ('Maths Study Guide', 'Extra maths practice', 85, 'maths.jpg', 'Books')`)
	return tx.Commit()
}
