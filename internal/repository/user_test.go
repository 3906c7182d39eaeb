package repository

import (
	"errors"
	"testing"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrCredentialNotFound.Error() != "credential not found" {
		t.Fatalf("unexpected error message: %s", ErrCredentialNotFound.Error())
	}
	if ErrDuplicateCredential.Error() != "credential already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateCredential.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New(`Error 1062 (23000): Duplicate entry 'PASSWORD-a@b.c' for key 'uq_credentials_kind_identifier'`)) {
		t.Fatal("MySQL 1062 error should be a duplicate entry error")
	}
}
