package chat

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"parley/internal/docstore"
	"parley/internal/errs"
)

// SyncParticipant upgrades the caller's embedded placeholder in every thread
// that lists their email but does not yet know their UID. It runs once per
// authentication event and is idempotent: once a thread is synced it no
// longer matches the query, and re-applying the same profile is a no-op.
//
// Each thread is updated with an independent single-document merge; no
// cross-document transaction is needed.
func (s *Service) SyncParticipant(ctx context.Context, p Profile) error {
	if p.Email == "" {
		return fmt.Errorf("%w: profile email is required", errs.ErrInvalidArgument)
	}

	docs, err := s.threads().Query().
		Where("participantEmails", docstore.ArrayContains, p.Email).
		Where("synced", docstore.Equal, false).
		GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range docs {
		doc := &docs[i]
		emails := getStrings(doc.Data, "participantEmails")
		uids := getStrings(doc.Data, "participantUids")
		if p.UID != "" && !slices.Contains(uids, p.UID) {
			uids = append(uids, p.UID)
		}

		profiles := map[string]any{}
		if existing, ok := doc.Data["profiles"].(map[string]any); ok {
			for email, v := range existing {
				profiles[email] = v
			}
		}
		profiles[p.Email] = profileData(p)

		// synced is derived, never authoritative: recompute it from the two
		// arrays on every write that touches them.
		err := s.threads().Merge(ctx, doc.ID, map[string]any{
			"participantUids": uids,
			"profiles":        profiles,
			"synced":          len(uids) == len(emails),
		})
		if err != nil {
			return fmt.Errorf("sync participant %s in thread %s: %w", p.Email, doc.ID, err)
		}
	}

	if len(docs) > 0 {
		s.logger.Info("participant synced",
			zap.String("email", p.Email),
			zap.Int("threads", len(docs)),
		)
	}
	return nil
}
