package repos

import (
	"unobhala/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, COALESCE(description,'') AS description, price,
	         COALESCE(image,'') AS image, COALESCE(category,'') AS category
	  FROM products WHERE id = ?
	`, id)
	return p, err
}

// Search matches the query as a substring of name, description or category.
// An empty query lists the whole catalog, newest first.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	var out []domain.Product
	if q == "" {
		err := r.db.Select(&out, `
		  SELECT id, name, COALESCE(description,'') AS description, price,
		         COALESCE(image,'') AS image, COALESCE(category,'') AS category
		  FROM products ORDER BY id DESC
		`)
		return out, err
	}
	like := "%" + q + "%"
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(description,'') AS description, price,
	         COALESCE(image,'') AS image, COALESCE(category,'') AS category
	  FROM products
	  WHERE name LIKE ? OR description LIKE ? OR category LIKE ?
	  ORDER BY id DESC
	`, like, like, like)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
