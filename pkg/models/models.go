// Package models defines the data model underlying the PushShift API.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// UnixTime is a time.Time that marshals to and from Unix seconds, the
// timestamp encoding used by PushShift (created_utc).
type UnixTime struct {
	time.Time
}

// UnmarshalJSON accepts integer or fractional Unix seconds.
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}

	sec, frac := math.Modf(seconds)
	t.Time = time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
	return nil
}

// MarshalJSON encodes the time as integer Unix seconds.
func (t UnixTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Unix())
}

// Attrs are the fields shared by posts and comments.
type Attrs struct {
	// ID uniquely identifies the content.
	ID string `json:"id"`

	// Score of this content at archival time.
	Score int `json:"score"`

	// Permalink to this content, when present.
	Permalink string `json:"permalink,omitempty"`

	// Created is when this content was created.
	Created UnixTime `json:"created_utc"`
}

// PageToken returns the opaque pagination token derived from this content.
// PushShift pages by creation time, so the token is the Unix timestamp.
func (a Attrs) PageToken() string {
	return strconv.FormatInt(a.Created.Unix(), 10)
}

// Author of a Post or Comment.
type Author struct {
	AuthorID string `json:"author_fullname,omitempty"`
	Author   string `json:"author"`
}

// Subreddit a Post or Comment belongs to.
type Subreddit struct {
	SubredditID string `json:"subreddit_id"`
	Subreddit   string `json:"subreddit"`
}

// Post is a single archived reddit submission.
type Post struct {
	Author
	Subreddit
	Attrs

	// Title of the submission.
	Title string `json:"title"`

	// ContentURL is the URL of the linked content.
	ContentURL string `json:"url"`

	// CommentURL is the URL of the comment page for this post.
	CommentURL string `json:"full_link"`

	// SelfText is the body of a self-post, empty for link posts.
	SelfText string `json:"selftext,omitempty"`
}

// Comment is a single archived comment on a reddit post.
type Comment struct {
	Author
	Subreddit
	Attrs

	// Body is the comment text.
	Body string `json:"body"`

	// ParentID identifies the post or comment this replies to.
	ParentID string `json:"parent_id"`
}
