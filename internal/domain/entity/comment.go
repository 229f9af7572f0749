package entity

import (
	"time"
)

// Comment is a top-level community comment on the site. Text is immutable
// after creation; only the author may delete it.
type Comment struct {
	ID          string     `json:"id" firestore:"id"`
	Text        string     `json:"text" firestore:"text"`
	AuthorName  string     `json:"author_name" firestore:"userName"`
	AuthorPhoto string     `json:"author_photo" firestore:"userPhoto"`
	AuthorID    string     `json:"author_id" firestore:"userId"`
	// Assigned by Firestore at write time; nil until the server timestamp
	// resolves (clients render "Just now" in the meantime).
	CreatedAt *time.Time `json:"created_at" firestore:"timestamp,serverTimestamp"`
}

// Reply lives in the replies subcollection of its parent comment. One level
// of nesting only; replies to replies do not exist.
type Reply struct {
	ID          string     `json:"id" firestore:"id"`
	CommentID   string     `json:"comment_id" firestore:"commentId"`
	Text        string     `json:"text" firestore:"text"`
	AuthorName  string     `json:"author_name" firestore:"userName"`
	AuthorPhoto string     `json:"author_photo" firestore:"userPhoto"`
	AuthorID    string     `json:"author_id" firestore:"userId"`
	CreatedAt   *time.Time `json:"created_at" firestore:"timestamp,serverTimestamp"`
}
