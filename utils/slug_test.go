package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World! Go", "hello-world-go"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"multiple   spaces\tand\nlines", "multiple-spaces-and-lines"},
		{"already-a-slug", "already-a-slug"},
		{"--dashes--everywhere--", "dashes-everywhere"},
		{"Go 1.23 发布", "go-123"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, 期望 %q", tt.title, got, tt.want)
			}
			if again := Slugify(got); again != got {
				t.Errorf("Slugify 不幂等: %q -> %q", got, again)
			}
		})
	}
}
