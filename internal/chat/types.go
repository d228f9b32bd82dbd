// Package chat implements the chat resolution and synchronization engine:
// thread lookup and creation, participant profile backfill, live chat-list
// and message-list subscriptions, and message append with the denormalized
// latest-message mirror.
package chat

import "time"

// Kind is the shape of a thread.
type Kind string

const (
	// KindSelf is a user's private notes-to-self channel.
	KindSelf Kind = "self"
	// KindDirect is a two-party conversation.
	KindDirect Kind = "direct"
	// KindGroup is a multi-party conversation.
	KindGroup Kind = "group"
)

// Valid reports whether k is a known thread kind.
func (k Kind) Valid() bool {
	return k == KindSelf || k == KindDirect || k == KindGroup
}

// Profile is the compact participant record embedded inside a thread.
// A placeholder profile (participant never yet authenticated) has an empty
// UID, PhotoURL and Name.
type Profile struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Name     string `json:"name"`
}

// Placeholder reports whether the participant has never been seen by the
// identity provider.
func (p Profile) Placeholder() bool { return p.UID == "" }

// User is the acting, authenticated user.
type User struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Name     string `json:"name"`
}

// LatestMessage is the denormalized mirror of the most recently appended
// message. It is a best-effort preview for list display, never a source of
// truth for message content.
type LatestMessage struct {
	Text   string    `json:"text"`
	Sender string    `json:"sender"`
	SentAt time.Time `json:"sentAt"`
}

// Thread is the canonical conversation record.
type Thread struct {
	ID                string             `json:"id"`
	Kind              Kind               `json:"kind"`
	ParticipantEmails []string           `json:"participantEmails"`
	ParticipantUIDs   []string           `json:"participantUids"`
	Synced            bool               `json:"synced"`
	Profiles          map[string]Profile `json:"profiles"`
	GroupName         string             `json:"groupName,omitempty"`
	GroupImage        string             `json:"groupImage,omitempty"`
	LatestMessage     *LatestMessage     `json:"latestMessage,omitempty"`
	LatestMessageAt   time.Time          `json:"latestMessageAt"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// Message belongs to exactly one thread.
type Message struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender string    `json:"sender"`
	SentAt time.Time `json:"sentAt"`
}

// GroupMeta is optional metadata for group creation.
type GroupMeta struct {
	Name  string
	Image string
}

// Default images used by the chat-list projection when a participant photo
// or group image is not available.
const (
	DefaultSelfPhoto  = "/img/me.png"
	DefaultAvatar     = "/img/avatar.png"
	DefaultGroupImage = "/img/group.png"
)

// ThreadSummary is the chat-list projection of a thread: the thread plus the
// display name and photo derived per kind for the viewing user.
type ThreadSummary struct {
	Thread
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}
