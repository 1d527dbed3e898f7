package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/flarewatch/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrSetupAlreadyCompleted      = errors.New("setup already completed")
	ErrAuthSetupFailed            = errors.New("auth setup failed")
	ErrAuthLookupFailed           = errors.New("auth lookup failed")
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrInvalidCurrentPassword     = errors.New("invalid current password")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
	ErrPasswordChangeUpdateFailed = errors.New("password change update failed")
)

type AuthUserRepository interface {
	CountUsers() (int64, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) RequiresInitialSetup() (bool, error) {
	usersCount, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return usersCount == 0, nil
}

// SetupOwner creates the single owner account. It fails once any account
// exists.
func (service *AuthService) SetupOwner(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	required, err := service.RequiresInitialSetup()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthSetupFailed, err)
	}
	if !required {
		return models.User{}, ErrSetupAlreadyCompleted
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthSetupFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthSetupFailed, err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	if err := ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordChangeUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordChangeUpdateFailed, err)
	}
	return nil
}

func ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}
