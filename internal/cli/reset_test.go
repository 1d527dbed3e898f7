package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/security"
	"github.com/terraincognita07/flarewatch/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubOwnerRepository struct {
	users          map[string]models.User
	owner          *models.User
	updatedID      uint
	updatedHash    string
	mustChangeFlag bool
}

func (stub *stubOwnerRepository) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *stubOwnerRepository) FindOwner() (models.User, error) {
	if stub.owner == nil {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return *stub.owner, nil
}

func (stub *stubOwnerRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	stub.updatedID = userID
	stub.updatedHash = passwordHash
	stub.mustChangeFlag = mustChangePassword
	return nil
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordPassesPolicy(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		t.Fatalf("expected temporary password to pass the password policy, got %v", err)
	}
	for _, char := range password {
		if !strings.ContainsRune(security.PasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func TestResetPasswordUsesOwnerByDefault(t *testing.T) {
	owner := models.User{ID: 3, Email: "owner@example.com", Role: models.RoleOwner}
	users := &stubOwnerRepository{owner: &owner}
	out := &bytes.Buffer{}

	if err := resetPassword(users, "", out); err != nil {
		t.Fatalf("resetPassword returned error: %v", err)
	}
	if users.updatedID != owner.ID || !users.mustChangeFlag {
		t.Fatalf("expected owner password update with must-change flag, got id=%d flag=%v", users.updatedID, users.mustChangeFlag)
	}

	printed := out.String()
	marker := "Temporary password: "
	start := strings.Index(printed, marker)
	if start < 0 {
		t.Fatalf("expected temporary password in output, got %q", printed)
	}
	temporary := strings.TrimSpace(strings.SplitN(printed[start+len(marker):], "\n", 2)[0])
	if bcrypt.CompareHashAndPassword([]byte(users.updatedHash), []byte(temporary)) != nil {
		t.Fatal("expected stored hash to match the printed temporary password")
	}
}

func TestResetPasswordErrors(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		users   *stubOwnerRepository
		message string
	}{
		{
			name:    "no owner yet",
			users:   &stubOwnerRepository{},
			message: "no owner account exists yet",
		},
		{
			name:    "malformed email",
			email:   "not-an-email",
			users:   &stubOwnerRepository{},
			message: `invalid email address "not-an-email"`,
		},
		{
			name:    "unknown email",
			email:   " Missing@Example.com ",
			users:   &stubOwnerRepository{users: map[string]models.User{}},
			message: "user missing@example.com not found",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := resetPassword(testCase.users, testCase.email, &bytes.Buffer{})
			if err == nil || err.Error() != testCase.message {
				t.Fatalf("expected error %q, got %v", testCase.message, err)
			}
			if testCase.users.updatedHash != "" {
				t.Fatal("expected no password update")
			}
		})
	}
}
