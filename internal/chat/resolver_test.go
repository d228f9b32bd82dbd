package chat

import (
	"context"
	"errors"
	"testing"

	"parley/internal/errs"
)

func TestResolveSelfIsIdempotent(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	first, err := s.ResolveOrCreate(ctx, KindSelf, alice, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.ResolveOrCreate(ctx, KindSelf, alice, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("self thread ids differ: %q vs %q", first.ID, second.ID)
	}
	if !first.Synced {
		t.Error("self thread should be synced at creation")
	}
}

func TestResolveDirectIsDirectionIndependent(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	fromAlice, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	fromBob, err := s.ResolveOrCreate(ctx, KindDirect, bob, []string{alice.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fromAlice.ID != fromBob.ID {
		t.Errorf("direct threads diverged: %q vs %q", fromAlice.ID, fromBob.ID)
	}
}

func TestResolveDirectSeparatePairs(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	ab, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{"b@x.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ac, err := s.ResolveOrCreate(ctx, KindDirect, alice, []string{"c@x.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ab.ID == ac.ID {
		t.Error("distinct pairs resolved to the same thread")
	}
}

func TestResolveGroupOrderIndependent(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	first, err := s.ResolveOrCreate(ctx, KindGroup, alice, []string{"c@x.com", "b@x.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.ResolveOrCreate(ctx, KindGroup, alice, []string{"b@x.com", "c@x.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("group threads diverged: %q vs %q", first.ID, second.ID)
	}

	// Stored participant set is canonicalized sorted.
	want := []string{"a@x.com", "b@x.com", "c@x.com"}
	for i, email := range want {
		if first.ParticipantEmails[i] != email {
			t.Fatalf("participantEmails = %v, want %v", first.ParticipantEmails, want)
		}
	}
}

func TestResolveGroupDefaults(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	g, err := s.ResolveOrCreate(ctx, KindGroup, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.GroupName != "New Group" {
		t.Errorf("groupName = %q, want New Group", g.GroupName)
	}

	named, err := s.ResolveOrCreate(ctx, KindGroup, alice, []string{"d@x.com"}, &GroupMeta{Name: "Trip"})
	if err != nil {
		t.Fatal(err)
	}
	if named.GroupName != "Trip" {
		t.Errorf("groupName = %q, want Trip", named.GroupName)
	}
}

func TestResolveCreatesPlaceholders(t *testing.T) {
	s := testService(t)

	d, err := s.ResolveOrCreate(context.Background(), KindDirect, alice, []string{bob.Email}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Profiles keys are exactly the participant emails.
	if len(d.Profiles) != 2 {
		t.Fatalf("profiles has %d entries, want 2", len(d.Profiles))
	}
	me := d.Profiles[alice.Email]
	if me.UID != alice.UID || me.Name != alice.Name {
		t.Errorf("acting profile = %+v, want full profile", me)
	}
	other := d.Profiles[bob.Email]
	if !other.Placeholder() {
		t.Errorf("other profile = %+v, want placeholder", other)
	}
	if other.Email != bob.Email {
		t.Errorf("placeholder email = %q, want %q", other.Email, bob.Email)
	}
	if d.Synced {
		t.Error("thread with an unseen participant must not be synced")
	}
	if len(d.ParticipantUIDs) != 1 || d.ParticipantUIDs[0] != alice.UID {
		t.Errorf("participantUids = %v, want [%s]", d.ParticipantUIDs, alice.UID)
	}
}

func TestResolveInvalidArguments(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		kind   Kind
		acting User
		others []string
	}{
		{"missing acting email", KindSelf, User{UID: "U9"}, nil},
		{"direct with no other", KindDirect, alice, nil},
		{"direct with two others", KindDirect, alice, []string{"b@x.com", "c@x.com"}},
		{"group with no others", KindGroup, alice, nil},
		{"unknown kind", Kind("broadcast"), alice, []string{"b@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ResolveOrCreate(ctx, tt.kind, tt.acting, tt.others, nil)
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
