package util

import "testing"

func TestHasAllowedExtension(t *testing.T) {
	allowed := []string{".pdf", ".zip", ".c"}

	tests := []struct {
		name string
		want bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"solution.c", true},
		{"archive.zip", true},
		{"malware.exe", false},
		{"no_extension", false},
	}
	for _, tt := range tests {
		if got := HasAllowedExtension(tt.name, allowed); got != tt.want {
			t.Errorf("HasAllowedExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"/tmp/upload.zip", "upload.zip"},
		{"dir\\sub\\file.c", "file.c"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsVideoAndIsImage(t *testing.T) {
	if !IsVideo("video/mp4") || !IsVideo("application/x-mpegURL") {
		t.Error("expected video mime types to be detected")
	}
	if IsVideo("image/png") {
		t.Error("image/png should not be detected as video")
	}
	if !IsImage("image/jpeg") {
		t.Error("image/jpeg should be detected as image")
	}
	if IsImage("text/plain") {
		t.Error("text/plain should not be detected as image")
	}
}
