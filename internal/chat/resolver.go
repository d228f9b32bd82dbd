package chat

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"
	"parley/internal/docstore"
	"parley/internal/errs"
)

// ResolveOrCreate deterministically finds the existing thread for the given
// kind and participant set, or creates exactly one new thread.
//
// The lookup is a single broad query (kind plus array-contains acting email)
// scanned client-side for exact participant-set equality. The query-then-
// insert window is not transactional: two clients racing on the same
// direct/group pair can both insert. That duplicate is an accepted
// consistency trade-off, not masked here.
func (s *Service) ResolveOrCreate(ctx context.Context, kind Kind, acting User, otherEmails []string, meta *GroupMeta) (*Thread, error) {
	if acting.Email == "" {
		return nil, fmt.Errorf("%w: acting user email is required", errs.ErrInvalidArgument)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown thread kind %q", errs.ErrInvalidArgument, kind)
	}
	if kind == KindDirect && len(otherEmails) != 1 {
		return nil, fmt.Errorf("%w: direct thread needs exactly one other email, got %d", errs.ErrInvalidArgument, len(otherEmails))
	}
	if kind == KindGroup && len(otherEmails) == 0 {
		return nil, fmt.Errorf("%w: group thread needs at least one other email", errs.ErrInvalidArgument)
	}

	emails := participantSet(kind, acting.Email, otherEmails)

	docs, err := s.threads().Query().
		Where("kind", docstore.Equal, string(kind)).
		Where("participantEmails", docstore.ArrayContains, acting.Email).
		GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		t := threadFromDoc(&docs[i])
		if sameParticipants(kind, t.ParticipantEmails, emails) {
			return t, nil
		}
	}

	return s.createThread(ctx, kind, acting, emails, meta)
}

// participantSet computes the canonical target participant set: the acting
// user alone for self, creation order for direct, sorted and deduplicated
// for group.
func participantSet(kind Kind, acting string, others []string) []string {
	switch kind {
	case KindSelf:
		return []string{acting}
	case KindDirect:
		return []string{acting, others[0]}
	default:
		all := append([]string{acting}, others...)
		sort.Strings(all)
		return slices.Compact(all)
	}
}

// sameParticipants tests set equality against the canonical target. Direct
// pairs match regardless of stored order; group sets are pre-sorted on both
// sides.
func sameParticipants(kind Kind, stored, target []string) bool {
	switch kind {
	case KindSelf:
		return len(stored) == 1 && stored[0] == target[0]
	case KindDirect:
		return len(stored) == 2 && slices.Contains(stored, target[0]) && slices.Contains(stored, target[1])
	default:
		sorted := slices.Clone(stored)
		sort.Strings(sorted)
		return slices.Equal(sorted, target)
	}
}

func (s *Service) createThread(ctx context.Context, kind Kind, acting User, emails []string, meta *GroupMeta) (*Thread, error) {
	profiles := make(map[string]any, len(emails))
	for _, email := range emails {
		if email == acting.Email {
			profiles[email] = profileData(localProfile(acting))
		} else {
			profiles[email] = profileData(placeholderProfile(email))
		}
	}

	uids := []string{acting.UID}
	now := s.now().UnixMilli()
	data := map[string]any{
		"kind":              string(kind),
		"participantEmails": emails,
		"participantUids":   uids,
		"synced":            len(uids) == len(emails),
		"profiles":          profiles,
		"createdAt":         now,
		// Seed the ordering field so an empty thread still appears in the
		// latest-activity sort.
		"latestMessageAt": now,
	}
	if kind == KindGroup {
		name := "New Group"
		image := ""
		if meta != nil {
			if meta.Name != "" {
				name = meta.Name
			}
			image = meta.Image
		}
		data["groupName"] = name
		data["groupImage"] = image
	}

	id, err := s.threads().Insert(ctx, data)
	if err != nil {
		return nil, err
	}

	// Read back the stored document so the caller observes server-assigned
	// fields rather than a locally guessed shape.
	doc, err := s.threads().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("thread created",
		zap.String("id", id),
		zap.String("kind", string(kind)),
		zap.Int("participants", len(emails)),
	)
	return threadFromDoc(doc), nil
}
