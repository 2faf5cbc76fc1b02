package repos

import (
	"unobhala/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PostRepo struct{ db *sqlx.DB }

func NewPostRepo(db *sqlx.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(title, description string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO posts(title, description) VALUES(?, ?)`, title, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *PostRepo) AddMedia(postID int64, filePath, mediaType string) error {
	_, err := r.db.Exec(`
	  INSERT INTO post_media(post_id, file_path, media_type) VALUES(?, ?, ?)
	`, postID, filePath, mediaType)
	return err
}

// PostView bundles a post with its media for the news page and dashboard.
type PostView struct {
	Post  domain.Post
	Media []domain.PostMedia
}

func (r *PostRepo) ListWithMedia() ([]PostView, error) {
	var posts []domain.Post
	if err := r.db.Select(&posts, `
	  SELECT id, title, COALESCE(description,'') AS description, created_at
	  FROM posts ORDER BY created_at DESC
	`); err != nil {
		return nil, err
	}

	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		var media []domain.PostMedia
		if err := r.db.Select(&media, `
		  SELECT id, post_id, file_path, media_type FROM post_media WHERE post_id = ?
		`, p.ID); err != nil {
			return nil, err
		}
		out = append(out, PostView{Post: p, Media: media})
	}
	return out, nil
}

// MediaPaths returns file paths for a post so the caller can remove the files
// from disk before the rows cascade away.
func (r *PostRepo) MediaPaths(postID int64) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT file_path FROM post_media WHERE post_id = ?`, postID)
	return out, err
}

// Delete removes the post; media rows cascade.
func (r *PostRepo) Delete(postID int64) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, postID)
	return err
}
