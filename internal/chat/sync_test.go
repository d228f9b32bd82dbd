package chat

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"parley/internal/errs"
)

// End-to-end placeholder upgrade: Alice starts a direct chat with Bob before
// he ever signs in; Bob's first sign-in backfills his profile and completes
// the thread.
func TestSyncParticipantUpgradesPlaceholder(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	d, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Profiles[bob.Email].Placeholder() {
		t.Fatal("precondition: bob should be a placeholder")
	}

	if err := s.SyncParticipant(ctx, Profile(bob)); err != nil {
		t.Fatal(err)
	}

	got, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID {
		t.Fatalf("resolve returned a different thread after sync")
	}
	p := got.Profiles[bob.Email]
	if p.UID != bob.UID || p.Name != bob.Name || p.PhotoURL != bob.PhotoURL {
		t.Errorf("profile = %+v, want full bob profile", p)
	}
	if !got.Synced {
		t.Error("thread should be synced once every uid is known")
	}
	if len(got.ParticipantUIDs) != 2 {
		t.Errorf("participantUids = %v, want both uids", got.ParticipantUIDs)
	}
}

func TestSyncParticipantIdempotent(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	if _, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SyncParticipant(ctx, Profile(bob)); err != nil {
		t.Fatal(err)
	}
	after1, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SyncParticipant(ctx, Profile(bob)); err != nil {
		t.Fatal(err)
	}
	after2, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(after1.ParticipantUIDs, after2.ParticipantUIDs) {
		t.Errorf("participantUids changed on re-sync: %v vs %v", after1.ParticipantUIDs, after2.ParticipantUIDs)
	}
	if !reflect.DeepEqual(after1.Profiles, after2.Profiles) {
		t.Errorf("profiles changed on re-sync")
	}
	if after1.Synced != after2.Synced {
		t.Errorf("synced changed on re-sync")
	}
}

func TestSyncParticipantSpansThreads(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	carol := User{UID: "U3", Email: "c@x.com", Name: "Carol"}

	if _, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{carol.Email}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ResolveOrCreate(ctx, KindGroup, bob, []string{carol.Email, alice.Email}, nil); err != nil {
		t.Fatal(err)
	}

	if err := s.SyncParticipant(ctx, Profile(carol)); err != nil {
		t.Fatal(err)
	}

	direct, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{carol.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	group, err := s.ResolveOrCreate(ctx, KindGroup, bob, []string{alice.Email, carol.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if direct.Profiles[carol.Email].UID != carol.UID {
		t.Error("direct thread missed the upgrade")
	}
	if group.Profiles[carol.Email].UID != carol.UID {
		t.Error("group thread missed the upgrade")
	}
	// Bob created the group, so alice is still a placeholder in it.
	if group.Synced {
		t.Error("group should stay unsynced while a participant uid is unknown")
	}
	if err := s.SyncParticipant(ctx, Profile(alice)); err != nil {
		t.Fatal(err)
	}
	group, err = s.ResolveOrCreate(ctx, KindGroup, bob, []string{alice.Email, carol.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !group.Synced {
		t.Error("group should be synced once every participant has signed in")
	}
	if len(group.ParticipantUIDs) != 3 {
		t.Errorf("participantUids = %v, want 3 uids", group.ParticipantUIDs)
	}
}

func TestSyncParticipantRequiresEmail(t *testing.T) {
	s := testService(t)
	err := s.SyncParticipant(context.Background(), Profile{UID: "U9"})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}
