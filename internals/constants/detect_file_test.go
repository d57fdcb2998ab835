package constants

import "testing"

func TestDetectFileTypeFromExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.pdf", FileTypePDF},
		{"Notes.PDF", FileTypePDF},
		{"lecture.mp3", FileTypeAudio},
		{"handout.docx", FileTypeDoc},
		{"deck.pptx", FileTypeSlide},
		{"diagram.png", FileTypeImage},
		{"recording.mp4", FileTypeVideo},
		{"archive.zip", FileTypeUnknown},
		{"no-extension", FileTypeUnknown},
		{"", FileTypeUnknown},
	}
	for _, tt := range tests {
		if got := DetectFileTypeFromExt(tt.filename); got != tt.want {
			t.Errorf("DetectFileTypeFromExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
