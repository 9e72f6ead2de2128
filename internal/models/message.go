package models

import "time"

// MessageAuthor is the denormalized author snapshot attached to every
// message for display, so rendering never needs a member lookup.
type MessageAuthor struct {
	Id      int64
	Name    string
	Surname string
}

type Message struct {
	Id        int64
	Content   string
	SentAt    time.Time
	ProjectId int64
	AuthorId  int64
	Author    MessageAuthor
	Replies   []Message
}
