package guestbook

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    [3]string // name, content, password
		wantMsg  string
		wantPass bool
	}{
		{"valid entry", [3]string{"철수", "축하해요!", "1234"}, "", true},
		{"valid long fields", [3]string{strings.Repeat("가", 10), strings.Repeat("축", 100), strings.Repeat("p", 20)}, "", true},
		{"empty name", [3]string{"", "축하해요!", "1234"}, MsgNameRequired, false},
		{"name too long", [3]string{strings.Repeat("가", 11), "축하해요!", "1234"}, MsgNameTooLong, false},
		{"empty content", [3]string{"철수", "", "1234"}, MsgContentRequired, false},
		{"content too long", [3]string{"철수", strings.Repeat("축", 101), "1234"}, MsgContentTooLong, false},
		{"password too short", [3]string{"철수", "축하해요!", "123"}, MsgPasswordTooShort, false},
		{"password too long", [3]string{"철수", "축하해요!", strings.Repeat("p", 21)}, MsgPasswordTooLong, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEntry(tc.entry[0], tc.entry[1], tc.entry[2])

			if tc.wantPass {
				if err != nil {
					t.Errorf("want valid entry, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want *ValidationError, got %v", err)
			}
			if verr.Message != tc.wantMsg {
				t.Errorf("want message %q, got %q", tc.wantMsg, verr.Message)
			}
		})
	}
}

func TestValidateEntry_FirstFailureWins(t *testing.T) {
	// Everything is wrong here; the name check must fire first.
	err := ValidateEntry("", "", "1")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if verr.Message != MsgNameRequired {
		t.Errorf("want the name check to fire first, got %q", verr.Message)
	}
}

func TestValidateEntry_CountsCharactersNotBytes(t *testing.T) {
	// 10 Hangul characters are 30 bytes but still a valid name.
	if err := ValidateEntry(strings.Repeat("축", 10), "축하해요", "1234"); err != nil {
		t.Errorf("10-character name must be valid, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantMsg  string
	}{
		{"1234", ""},
		{strings.Repeat("p", 20), ""},
		{"123", MsgPasswordTooShort},
		{"", MsgPasswordTooShort},
		{strings.Repeat("p", 21), MsgPasswordTooLong},
	}

	for _, tc := range tests {
		err := ValidatePassword(tc.password)

		if tc.wantMsg == "" {
			if err != nil {
				t.Errorf("ValidatePassword(%q): want nil, got %v", tc.password, err)
			}
			continue
		}

		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Message != tc.wantMsg {
			t.Errorf("ValidatePassword(%q): want %q, got %v", tc.password, tc.wantMsg, err)
		}
	}
}
