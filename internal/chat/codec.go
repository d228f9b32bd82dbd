package chat

import (
	"time"

	"parley/internal/docstore"
)

// localProfile embeds the acting user's full profile.
func localProfile(u User) Profile {
	return Profile{
		UID:      u.UID,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Name:     u.Name,
	}
}

// placeholderProfile embeds an email-only stub for a participant who has
// never authenticated. It is upgraded in place by SyncParticipant.
func placeholderProfile(email string) Profile {
	return Profile{Email: email}
}

func profileData(p Profile) map[string]any {
	return map[string]any{
		"uid":      p.UID,
		"email":    p.Email,
		"photoURL": p.PhotoURL,
		"name":     p.Name,
	}
}

func threadFromDoc(doc *docstore.Doc) *Thread {
	t := &Thread{
		ID:                doc.ID,
		Kind:              Kind(getString(doc.Data, "kind")),
		ParticipantEmails: getStrings(doc.Data, "participantEmails"),
		ParticipantUIDs:   getStrings(doc.Data, "participantUids"),
		Synced:            getBool(doc.Data, "synced"),
		Profiles:          map[string]Profile{},
		GroupName:         getString(doc.Data, "groupName"),
		GroupImage:        getString(doc.Data, "groupImage"),
		LatestMessageAt:   getTime(doc.Data, "latestMessageAt"),
		CreatedAt:         getTime(doc.Data, "createdAt"),
	}
	if m, ok := doc.Data["profiles"].(map[string]any); ok {
		for email, v := range m {
			t.Profiles[email] = profileFromValue(email, v)
		}
	}
	if m, ok := doc.Data["latestMessage"].(map[string]any); ok {
		t.LatestMessage = &LatestMessage{
			Text:   getString(m, "text"),
			Sender: getString(m, "sender"),
			SentAt: getTime(m, "sentAt"),
		}
	}
	return t
}

func profileFromValue(email string, v any) Profile {
	m, ok := v.(map[string]any)
	if !ok {
		return placeholderProfile(email)
	}
	p := Profile{
		UID:      getString(m, "uid"),
		Email:    getString(m, "email"),
		PhotoURL: getString(m, "photoURL"),
		Name:     getString(m, "name"),
	}
	if p.Email == "" {
		p.Email = email
	}
	return p
}

func messageFromDoc(doc *docstore.Doc) Message {
	return Message{
		ID:     doc.ID,
		Text:   getString(doc.Data, "text"),
		Sender: getString(doc.Data, "sender"),
		SentAt: getTime(doc.Data, "sentAt"),
	}
}

// Field accessors tolerant of the decoded-JSON value shapes. Timestamps are
// stored as Unix milliseconds, so they come back as float64.

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func getStrings(m map[string]any, key string) []string {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getTime(m map[string]any, key string) time.Time {
	ms, ok := m[key].(float64)
	if !ok || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms))
}
