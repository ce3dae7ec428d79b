package utils

import (
  "context"
  "fmt"
  "strings"
  "golang.org/x/crypto/bcrypt"
  "github.com/yungbote/gadgetvault-backend/internal/repos"
  "github.com/yungbote/gadgetvault-backend/internal/types"
)

const minPasswordLength = 8

func NormalizeEmail(email string) string {
  return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeUserFields(user *types.User) {
  if user == nil {
    return
  }
  user.Email = NormalizeEmail(user.Email)
  user.FirstName = strings.TrimSpace(user.FirstName)
  user.LastName = strings.TrimSpace(user.LastName)
}

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with registration")
  }
  if user.Email == "" {
    return fmt.Errorf("An email is required to register")
  }
  if len(user.Password) < minPasswordLength {
    return fmt.Errorf("Password must be at least %d characters", minPasswordLength)
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("Failed to check user email: %w", err)
  }
  if emailExists {
    return fmt.Errorf("Email is already registered")
  }
  return nil
}

func HashPassword(user *types.User) error {
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password: %w", err)
  }
  user.Password = string(hashed)
  return nil
}
