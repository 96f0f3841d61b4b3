package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewStreamEmbed(t *testing.T) {
	streamer := Streamer{ID: 2, Name: "sgr"}
	postedAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		description string
		thumbnail   string
		wantTitle   string
		wantErr     error
	}{
		{name: "defaults title", wantTitle: "sgr is streaming"},
		{name: "trims title", title: "  Speedrun  ", wantTitle: "Speedrun"},
		{name: "https thumbnail", thumbnail: "https://example.com/a.png", wantTitle: "sgr is streaming"},
		{name: "relative thumbnail", thumbnail: "a.png", wantErr: ErrInvalidThumbnail},
		{name: "ftp thumbnail", thumbnail: "ftp://example.com/a.png", wantErr: ErrInvalidThumbnail},
		{name: "long title", title: strings.Repeat("a", MaxTitleLength+1), wantErr: ErrTitleTooLong},
		{
			name:        "long description",
			description: strings.Repeat("a", MaxDescriptionLength+1),
			wantErr:     ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, err := NewStreamEmbed(streamer, tt.title, tt.description, tt.thumbnail, postedAt)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if embed.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, embed.Title)
			}
			if !embed.PostedAt.Equal(postedAt) {
				t.Errorf("expected posted at %v, got %v", postedAt, embed.PostedAt)
			}
		})
	}
}
