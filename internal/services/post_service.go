package services

import (
	"os"
	"path/filepath"
	"strings"

	"unobhala/internal/repos"
)

// PostService manages news posts and their media files.
type PostService struct {
	Posts     *repos.PostRepo
	UploadDir string
}

func NewPostService(posts *repos.PostRepo, uploadDir string) *PostService {
	return &PostService{Posts: posts, UploadDir: uploadDir}
}

func (s *PostService) Create(title, description string, mediaPaths []string, mediaTypes []string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrMissingFields
	}
	postID, err := s.Posts.Create(title, strings.TrimSpace(description))
	if err != nil {
		return 0, err
	}
	for i, path := range mediaPaths {
		if path == "" {
			continue
		}
		if err := s.Posts.AddMedia(postID, path, mediaTypes[i]); err != nil {
			return 0, err
		}
	}
	return postID, nil
}

func (s *PostService) List() ([]repos.PostView, error) {
	return s.Posts.ListWithMedia()
}

// Delete removes the post row (media rows cascade) and best-effort deletes
// the media files from disk.
func (s *PostService) Delete(postID int64) error {
	paths, err := s.Posts.MediaPaths(postID)
	if err != nil {
		return err
	}
	if err := s.Posts.Delete(postID); err != nil {
		return err
	}
	for _, p := range paths {
		// Stored paths look like "uploads/<name>"; files live under UploadDir.
		name := filepath.Base(p)
		_ = os.Remove(filepath.Join(s.UploadDir, name))
	}
	return nil
}
