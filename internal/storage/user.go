package storage

import (
	"errors"

	"github.com/s/coursehub/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SaveGoogleUser finds a user by Google ID; if found, it updates the
// profile fields, otherwise it creates a fresh USER account. The role is
// never touched here, that is managed by an admin.
func SaveGoogleUser(db *gorm.DB, info models.User) (*models.User, error) {
	var existing models.User

	result := db.Where("google_id = ?", info.GoogleID).First(&existing)

	if result.Error == nil {
		// --- CASE 1: USER FOUND (UPDATE) ---
		updates := map[string]interface{}{
			"email": info.Email,
			"name":  info.Name,
			"image": info.Image,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil

	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		// --- CASE 2: USER NOT FOUND (CREATE) ---
		info.Role = models.RoleUser
		if err := db.Create(&info).Error; err != nil {
			return nil, err
		}
		return &info, nil
	}

	// --- CASE 3: DATABASE ERROR ---
	return nil, result.Error
}

// RegisterUser creates a credential account with a bcrypt-hashed password.
// A duplicate email surfaces as ErrEmailTaken.
func RegisterUser(db *gorm.DB, name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks email+password against the stored hash.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// OAuth-only accounts have no password hash to compare against.
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func ChangePassword(db *gorm.DB, userID uint, current, next string) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return err
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password", string(hash)).Error
}
