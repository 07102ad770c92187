package storage

import "testing"

func TestIsObjectKey(t *testing.T) {
	tests := map[string]bool{
		"machines/m_1/cover.jpg":             true,
		"https://cdn.example.com/cover.jpg":  false,
		"s3://bucket/machines/m_1/video.mp4": false,
		"":                                   false,
		"   ":                                false,
	}
	for ref, want := range tests {
		if got := IsObjectKey(ref); got != want {
			t.Errorf("IsObjectKey(%q) = %v, want %v", ref, got, want)
		}
	}
}
