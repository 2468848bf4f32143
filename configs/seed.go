package configs

import (
	"errors"

	"littlelemon/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial manager account when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set. No-op if the account already exists.
func SeedAdmin(cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var exist entity.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&exist).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hashed),
		FirstName: "Admin",
		Role:      entity.RoleManager,
	}).Error
}
