package session

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/policy"
)

// fakeKV is an in-memory KeyValue store.
type fakeKV struct {
	values map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Get(key string) string {
	return f.values[key]
}

func (f *fakeKV) Set(key, value string) {
	f.values[key] = value
}

func (f *fakeKV) Delete(key string) {
	delete(f.values, key)
}

// fakeRevoker records DisableAutoSelect calls.
type fakeRevoker struct {
	called bool
	err    error
}

func (f *fakeRevoker) DisableAutoSelect() error {
	f.called = true
	return f.err
}

var testTable = policy.Table{
	"alice@example.com": "north",
}

func newTestStore(kv KeyValue, revoker Revoker) *Store {
	return New(kv, testTable, revoker, zap.NewNop())
}

func TestEstablish_Success(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv, nil)

	token := makeToken(`{"email":"alice@example.com","name":"Alice","picture":"https://p/a.png"}`)
	user, err := store.Establish(token)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	if user.Email != "alice@example.com" || user.Name != "Alice" || user.Branch != "north" {
		t.Errorf("unexpected user: %+v", user)
	}
	if store.User() == nil {
		t.Error("expected in-memory user to be set")
	}

	wantPersisted := map[string]string{
		"userEmail":   "alice@example.com",
		"googleToken": token,
		"branch":      "north",
		"userName":    "Alice",
		"userPicture": "https://p/a.png",
	}
	for key, want := range wantPersisted {
		if got := kv.Get(key); got != want {
			t.Errorf("kv[%q] = %q; want %q", key, got, want)
		}
	}
}

func TestEstablish_NameDefaultsToLocalPart(t *testing.T) {
	store := newTestStore(newFakeKV(), nil)

	user, err := store.Establish(makeToken(`{"email":"alice@example.com"}`))
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	if user.Name != "alice" {
		t.Errorf("Name = %q; want %q", user.Name, "alice")
	}
}

func TestEstablish_AccessDenied(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv, nil)

	_, err := store.Establish(makeToken(`{"email":"mallory@example.com"}`))
	if !errors.Is(err, policy.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if store.User() != nil {
		t.Error("expected no in-memory user after denied login")
	}
	if len(kv.values) != 0 {
		t.Errorf("expected no persisted keys, got %v", kv.values)
	}
}

func TestEstablish_DecodeFailureKeepsExistingSession(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv, nil)

	if _, err := store.Establish(makeToken(`{"email":"alice@example.com"}`)); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	_, err := store.Establish("garbage")
	if !errors.Is(err, ErrTokenDecode) {
		t.Fatalf("expected ErrTokenDecode, got %v", err)
	}
	if store.User() == nil || store.User().Email != "alice@example.com" {
		t.Error("existing session should be untouched after a decode failure")
	}
	if kv.Get("userEmail") != "alice@example.com" {
		t.Error("persisted session should be untouched after a decode failure")
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name     string
		persist  map[string]string
		wantUser bool
		wantName string
	}{
		{
			name: "full set",
			persist: map[string]string{
				"userEmail":   "alice@example.com",
				"googleToken": "tok",
				"branch":      "north",
				"userName":    "Alice",
				"userPicture": "https://p/a.png",
			},
			wantUser: true,
			wantName: "Alice",
		},
		{
			name: "missing name falls back to local part",
			persist: map[string]string{
				"userEmail":   "alice@example.com",
				"googleToken": "tok",
				"branch":      "north",
			},
			wantUser: true,
			wantName: "alice",
		},
		{
			name: "two of three required keys",
			persist: map[string]string{
				"userEmail":   "alice@example.com",
				"googleToken": "tok",
			},
			wantUser: false,
		},
		{
			name: "only optional keys",
			persist: map[string]string{
				"userName":    "Alice",
				"userPicture": "https://p/a.png",
			},
			wantUser: false,
		},
		{
			name:     "empty storage",
			persist:  map[string]string{},
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFakeKV()
			for k, v := range tt.persist {
				kv.Set(k, v)
			}
			store := newTestStore(kv, nil)

			user := store.Restore()
			if !tt.wantUser {
				if user != nil {
					t.Fatalf("expected no session, got %+v", user)
				}
				return
			}
			if user == nil {
				t.Fatal("expected a restored session")
			}
			if user.Name != tt.wantName {
				t.Errorf("Name = %q; want %q", user.Name, tt.wantName)
			}
		})
	}
}

func TestClear(t *testing.T) {
	kv := newFakeKV()
	revoker := &fakeRevoker{err: errors.New("provider unreachable")}
	store := newTestStore(kv, revoker)

	if _, err := store.Establish(makeToken(`{"email":"alice@example.com"}`)); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	store.Clear()

	if store.User() != nil {
		t.Error("expected no in-memory user after Clear")
	}
	if len(kv.values) != 0 {
		t.Errorf("expected storage to be empty, got %v", kv.values)
	}
	if !revoker.called {
		t.Error("expected auto sign-in revocation to be attempted")
	}
}

func TestEstablishDemo(t *testing.T) {
	kv := newFakeKV()
	store := newTestStore(kv, nil)

	user := store.EstablishDemo()
	if user.Branch != "test" || user.Name != "Demo User" {
		t.Errorf("unexpected demo user: %+v", user)
	}
	if kv.Get("googleToken") != "" {
		t.Error("demo login must not persist a token")
	}

	// Without a token key the demo session does not survive a restart.
	fresh := newTestStore(kv, nil)
	if fresh.Restore() != nil {
		t.Error("demo session should not be restorable")
	}
}
