package services

import (
	"testing"

	"defter/internal/models"
	"defter/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("volkan", "secret123", models.RoleAdmin)
		testutil.AssertNoError(t, err)
		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.PasswordHash == "secret123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dupuser", "secret123", models.RolePersonnel)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("dupuser", "other456", models.RoleObserver)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("invalid_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("roleless", "secret123", models.Role("superuser"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("loginok", "secret123", models.RolePersonnel)
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("loginok", "secret123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("wrongpw", "secret123", models.RolePersonnel)
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("wrongpw", "nope")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_user_looks_like_bad_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("ghost", "secret123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("disabled_user_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("disabled", "secret123", models.RolePersonnel)
		testutil.AssertNoError(t, err)
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}

		_, err = svc.AttemptLogin("disabled", "secret123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}
