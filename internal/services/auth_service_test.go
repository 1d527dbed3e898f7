package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/flarewatch/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAuthUserRepository struct {
	users []models.User
}

func (repo *stubAuthUserRepository) CountUsers() (int64, error) {
	return int64(len(repo.users)), nil
}

func (repo *stubAuthUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubAuthUserRepository) FindByID(userID uint) (models.User, error) {
	for _, user := range repo.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubAuthUserRepository) Create(user *models.User) error {
	user.ID = uint(len(repo.users) + 1)
	repo.users = append(repo.users, *user)
	return nil
}

func (repo *stubAuthUserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	for index := range repo.users {
		if repo.users[index].ID == userID {
			repo.users[index].PasswordHash = passwordHash
			repo.users[index].MustChangePassword = mustChangePassword
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestAuthServiceSetupOwnerOnlyOnce(t *testing.T) {
	repo := &stubAuthUserRepository{}
	service := NewAuthService(repo)

	if _, err := service.SetupOwner("owner@example.com", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	user, err := service.SetupOwner(" Owner@Example.com ", "StrongPass1")
	if err != nil {
		t.Fatalf("setup owner: %v", err)
	}
	if user.Email != "owner@example.com" || user.Role != models.RoleOwner {
		t.Fatalf("expected normalized owner account, got %+v", user)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("StrongPass1")) != nil {
		t.Fatal("expected stored bcrypt hash to match password")
	}

	if _, err := service.SetupOwner("second@example.com", "StrongPass1"); !errors.Is(err, ErrSetupAlreadyCompleted) {
		t.Fatalf("expected ErrSetupAlreadyCompleted, got %v", err)
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	repo := &stubAuthUserRepository{}
	service := NewAuthService(repo)
	if _, err := service.SetupOwner("owner@example.com", "StrongPass1"); err != nil {
		t.Fatalf("setup owner: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "OWNER@example.com", password: "StrongPass1"},
		{name: "wrong password", email: "owner@example.com", password: "WrongPass1", wantErr: ErrAuthCredentialsInvalid},
		{name: "unknown email", email: "other@example.com", password: "StrongPass1", wantErr: ErrAuthCredentialsInvalid},
		{name: "malformed email", email: "owner", password: "StrongPass1", wantErr: ErrAuthCredentialsInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			user, err := service.Authenticate(testCase.email, testCase.password)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("expected %v, got %v", testCase.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("authenticate: %v", err)
			}
			if user.ID == 0 {
				t.Fatal("expected authenticated user id")
			}
		})
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := &stubAuthUserRepository{}
	service := NewAuthService(repo)
	owner, err := service.SetupOwner("owner@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("setup owner: %v", err)
	}

	tests := []struct {
		name    string
		current string
		next    string
		wantErr error
	}{
		{name: "empty input", current: "", next: "NewPass12", wantErr: ErrPasswordChangeInvalidInput},
		{name: "wrong current password", current: "WrongPass1", next: "NewPass12", wantErr: ErrInvalidCurrentPassword},
		{name: "unchanged password", current: "StrongPass1", next: "StrongPass1", wantErr: ErrNewPasswordMustDiffer},
		{name: "weak password", current: "StrongPass1", next: "12345678", wantErr: ErrWeakPassword},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := service.ChangePassword(owner.ID, testCase.current, testCase.next)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}

	if err := service.ChangePassword(owner.ID, "StrongPass1", "NewPass12"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := service.Authenticate("owner@example.com", "NewPass12"); err != nil {
		t.Fatalf("expected new password to authenticate, got %v", err)
	}
}
