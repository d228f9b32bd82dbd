package chat

import (
	"parley/internal/docstore"
)

// ThreadsSnapshot is one delivery of the live chat list.
type ThreadsSnapshot struct {
	Threads []ThreadSummary
	Err     error
}

// SubscribeUserThreads returns a live, latest-activity-ordered view of every
// thread containing email. Each delivery carries the full current result set
// projected to ThreadSummary. The cancel function must be invoked
// unconditionally on teardown.
func (s *Service) SubscribeUserThreads(email string) (<-chan ThreadsSnapshot, func()) {
	snaps, cancel := s.threads().Query().
		Where("participantEmails", docstore.ArrayContains, email).
		OrderBy("latestMessageAt", docstore.Desc).
		Subscribe()

	out := make(chan ThreadsSnapshot, 1)
	go func() {
		defer close(out)
		for snap := range snaps {
			cur := ThreadsSnapshot{Err: snap.Err}
			for i := range snap.Docs {
				cur.Threads = append(cur.Threads, summarize(threadFromDoc(&snap.Docs[i]), email))
			}
			sendLatest(out, cur)
		}
	}()
	return out, cancel
}

// summarize is the pure per-kind projection of a thread for the viewing
// user. It performs no I/O and is recomputed on every delivery.
func summarize(t *Thread, viewer string) ThreadSummary {
	sum := ThreadSummary{Thread: *t}
	switch t.Kind {
	case KindSelf:
		sum.DisplayName = viewer
		sum.PhotoURL = DefaultSelfPhoto
		if p, ok := t.Profiles[viewer]; ok && p.PhotoURL != "" {
			sum.PhotoURL = p.PhotoURL
		}
	case KindGroup:
		sum.DisplayName = t.GroupName
		sum.PhotoURL = t.GroupImage
		if sum.PhotoURL == "" {
			sum.PhotoURL = DefaultGroupImage
		}
	default:
		other := viewer
		for _, email := range t.ParticipantEmails {
			if email != viewer {
				other = email
				break
			}
		}
		// The other side may still be a placeholder; fall back to their
		// email and a default avatar until they first sign in.
		sum.DisplayName = other
		sum.PhotoURL = DefaultAvatar
		if p, ok := t.Profiles[other]; ok {
			if p.Name != "" {
				sum.DisplayName = p.Name
			}
			if p.PhotoURL != "" {
				sum.PhotoURL = p.PhotoURL
			}
		}
	}
	return sum
}

// sendLatest delivers with latest-wins semantics on a 1-buffered channel.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
