package service

import (
	"strings"
	"testing"
	"time"
)

func TestExtOf(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":           "jpg",
		"clip.tar.gz":         "gz",
		"noext":               "bin",
		"weird.$%^":           "bin",
		"dir\\win.PNG":        "png",
		"long.abcdefghijklmn": "abcdefghij",
		".hidden":             "hidden",
	}

	for in, want := range cases {
		if got := extOf(in, "bin"); got != want {
			t.Errorf("extOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	a, err := objectKey("family", "a.jpg", "bin", now)
	if err != nil {
		t.Fatalf("objectKey: %v", err)
	}

	b, _ := objectKey("family", "a.jpg", "bin", now)

	if a == b {
		t.Fatalf("keys collided: %s", a)
	}

	if !strings.HasPrefix(a, "family/1700000000123-") || !strings.HasSuffix(a, ".jpg") {
		t.Fatalf("key = %s", a)
	}

	if !familyKey.MatchString(a) {
		t.Fatalf("key shape = %s", a)
	}
}

func TestKeyFromURL(t *testing.T) {
	if got := keyFromURL("http://cdn/birthday-uploads/family/1-a.jpg", "birthday-uploads"); got != "family/1-a.jpg" {
		t.Fatalf("got %q", got)
	}

	if got := keyFromURL("http://elsewhere/x.jpg", "birthday-uploads"); got != "" {
		t.Fatalf("got %q", got)
	}
}
