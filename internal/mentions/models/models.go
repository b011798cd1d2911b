// Package models defines the domain types shared across the mentions module.
package models

import (
	"fmt"
	"time"
)

// UserID identifies a forum user. Zero is never a valid id; collaborator
// lookups use it to signal "no such user".
type UserID int64

func (id UserID) IsZero() bool { return id == 0 }

func (id UserID) String() string { return fmt.Sprintf("%d", int64(id)) }

// User carries the fields the mention pipeline needs from the host user store.
type User struct {
	ID       UserID
	Username string
	Userslug string
	Fullname string
	// ShowFullname mirrors the per-user privacy setting; when false the
	// fullname must not be exposed in search results.
	ShowFullname bool
}

// Topic carries the topic fields consulted during notification dispatch.
type Topic struct {
	ID         int64
	Title      string
	CategoryID int64
}

// Post is the unit of content the pipeline operates on. ReplyTo is the id of
// the post this one replies to, zero when it starts a thread.
type Post struct {
	ID         int64
	TopicID    int64
	CategoryID int64
	AuthorID   UserID
	ReplyTo    int64
	Content    string
}

// NotificationClassUser labels the notification target covering directly
// mentioned users. Group targets are labelled with the group name instead.
const NotificationClassUser = "user"

// Notification is the record handed to the host notification subsystem.
// ID is a composite key so repeated dispatches for the same post and class
// collapse to a single record.
type Notification struct {
	ID         string
	Type       string
	BodyShort  string
	BodyLong   string
	PostID     int64
	TopicID    int64
	From       UserID
	Path       string
	TopicTitle string
	Importance int
}

// NotificationID builds the composite record key for a post and target class.
func NotificationID(topicID, postID int64, authorID UserID, class string) string {
	return fmt.Sprintf("tid:%d:pid:%d:uid:%d:%s", topicID, postID, authorID, class)
}

// DeliveryEvent is emitted through the delivery hook after a successful push,
// carrying the final recipient list so observers can react without coupling
// to the dispatch internals.
type DeliveryEvent struct {
	ID             string    `json:"id"`
	NotificationID string    `json:"notification_id"`
	PostID         int64     `json:"post_id"`
	TopicID        int64     `json:"topic_id"`
	UserIDs        []UserID  `json:"uids"`
	At             time.Time `json:"at"`
}
