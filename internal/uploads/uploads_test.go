package uploads_test

import (
	"testing"

	"unobhala/internal/uploads"
)

func TestAllowed(t *testing.T) {
	good := []string{"report.pdf", "photo.JPG", "clip.mp4", "pic.jpeg", "vid.webm"}
	for _, name := range good {
		if !uploads.Allowed(name) {
			t.Fatalf("%q must be allowed", name)
		}
	}
	bad := []string{"shell.php", "doc.docx", "noext", "archive.zip", "run.exe"}
	for _, name := range bad {
		if uploads.Allowed(name) {
			t.Fatalf("%q must be rejected", name)
		}
	}
}

func TestMediaType(t *testing.T) {
	if got := uploads.MediaType("clip.MOV"); got != "video" {
		t.Fatalf("mov must classify as video, got %s", got)
	}
	if got := uploads.MediaType("photo.png"); got != "image" {
		t.Fatalf("png must classify as image, got %s", got)
	}
}
