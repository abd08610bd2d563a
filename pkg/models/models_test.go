package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnixTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "integer seconds",
			input: "1577836800",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "1577836800.5",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 500000000, time.UTC),
		},
		{
			name:  "zero",
			input: "0",
			want:  time.Unix(0, 0).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ut UnixTime
			if err := json.Unmarshal([]byte(tt.input), &ut); err != nil {
				t.Fatalf("Unmarshal(%q) error: %v", tt.input, err)
			}
			if !ut.Equal(tt.want) {
				t.Errorf("Unmarshal(%q) = %v, want %v", tt.input, ut.Time, tt.want)
			}
		})
	}
}

func TestUnixTime_UnmarshalJSON_Invalid(t *testing.T) {
	var ut UnixTime
	if err := json.Unmarshal([]byte(`"not-a-timestamp"`), &ut); err == nil {
		t.Error("expected error for non-numeric timestamp")
	}
}

func TestUnixTime_RoundTrip(t *testing.T) {
	ut := UnixTime{Time: time.Date(2021, 6, 15, 12, 30, 0, 0, time.UTC)}

	data, err := json.Marshal(ut)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != "1623760200" {
		t.Errorf("Marshal = %s, want 1623760200", data)
	}

	var decoded UnixTime
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !decoded.Equal(ut.Time) {
		t.Errorf("round trip = %v, want %v", decoded.Time, ut.Time)
	}
}

func TestPost_Decode(t *testing.T) {
	// Field layout as served by the PushShift submission endpoint:
	// author/subreddit fields are flattened into the record.
	raw := `{
		"id": "abc123",
		"score": 42,
		"permalink": "/r/golang/comments/abc123/generics/",
		"created_utc": 1609459200,
		"author": "gopher",
		"author_fullname": "t2_xyz",
		"subreddit": "golang",
		"subreddit_id": "t5_2rc7j",
		"title": "Generics land in Go",
		"url": "https://example.com/article",
		"full_link": "https://reddit.com/r/golang/comments/abc123/",
		"selftext": "Some body text"
	}`

	var post Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if post.ID != "abc123" {
		t.Errorf("ID = %q, want abc123", post.ID)
	}
	if post.Score != 42 {
		t.Errorf("Score = %d, want 42", post.Score)
	}
	if post.Author.Author != "gopher" {
		t.Errorf("Author = %q, want gopher", post.Author.Author)
	}
	if post.Subreddit.Subreddit != "golang" {
		t.Errorf("Subreddit = %q, want golang", post.Subreddit.Subreddit)
	}
	if post.Title != "Generics land in Go" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.ContentURL != "https://example.com/article" {
		t.Errorf("ContentURL = %q", post.ContentURL)
	}
	if post.SelfText != "Some body text" {
		t.Errorf("SelfText = %q", post.SelfText)
	}
	if got := post.Created.UTC(); !got.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Created = %v, want 2021-01-01T00:00:00Z", got)
	}
}

func TestComment_Decode(t *testing.T) {
	raw := `{
		"id": "def456",
		"score": 7,
		"created_utc": 1609459260,
		"author": "gopher",
		"subreddit": "golang",
		"subreddit_id": "t5_2rc7j",
		"body": "channels are queues",
		"parent_id": "t3_abc123"
	}`

	var comment Comment
	if err := json.Unmarshal([]byte(raw), &comment); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if comment.Body != "channels are queues" {
		t.Errorf("Body = %q", comment.Body)
	}
	if comment.ParentID != "t3_abc123" {
		t.Errorf("ParentID = %q", comment.ParentID)
	}
	if comment.Author.AuthorID != "" {
		t.Errorf("AuthorID = %q, want empty", comment.Author.AuthorID)
	}
}

func TestAttrs_PageToken(t *testing.T) {
	attrs := Attrs{Created: UnixTime{Time: time.Unix(1609459200, 0)}}
	if got := attrs.PageToken(); got != "1609459200" {
		t.Errorf("PageToken = %q, want 1609459200", got)
	}
}
