package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/flarewatch/internal/db"
	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/security"
	"github.com/terraincognita07/flarewatch/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// OwnerRepository is the slice of the user store the reset command needs.
type OwnerRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindOwner() (models.User, error)
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

func RunResetPasswordCommand(dbPath string, email string) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	return resetPassword(db.NewUserRepository(database), email, os.Stdout)
}

// resetPassword sets a temporary password on the owner account, or on the
// account with the given email when one is passed.
func resetPassword(users OwnerRepository, email string, out io.Writer) error {
	var (
		user models.User
		err  error
	)
	normalizedEmail := services.NormalizeAuthEmail(email)
	if strings.TrimSpace(email) != "" && normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}
	if normalizedEmail != "" {
		user, err = users.FindByNormalizedEmail(normalizedEmail)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
	} else {
		user, err = users.FindOwner()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("no owner account exists yet")
		}
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash), true); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Change it after the next login.")
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	return security.TemporaryPassword(length)
}
