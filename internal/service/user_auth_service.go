package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jemo-market/api/internal/cache"
	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserAuthService marketplace user authentication
type UserAuthService struct {
	cfg        *config.Config
	userRepo   repository.UserRepository
	vendorRepo repository.VendorProfileRepository
	agencyRepo repository.AgencyProfileRepository
}

// NewUserAuthService creates the user auth service
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, vendorRepo repository.VendorProfileRepository, agencyRepo repository.AgencyProfileRepository) *UserAuthService {
	return &UserAuthService{
		cfg:        cfg,
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
		agencyRepo: agencyRepo,
	}
}

// UserJWTClaims user JWT claims
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateUserJWT issues a user token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.UserJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Phone:        user.Phone,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT validates and decodes a user token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if parsed, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return parsed, nil
	}
	return nil, errors.New("invalid token")
}

// RegisterInput registration request
type RegisterInput struct {
	Phone          string
	Password       string
	DisplayName    string
	Role           string
	City           string
	ShopName       string   // vendor role
	CoverageCities []string // rider / agency roles
}

// Register creates a user account, plus the role profile where applicable.
// The phone number is stored normalized; a duplicate registers a conflict.
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	switch role {
	case constants.RoleCustomer, constants.RoleVendor, constants.RoleRider, constants.RoleAgency:
	case "":
		role = constants.RoleCustomer
	default:
		return nil, "", time.Time{}, ErrValidation
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	existing, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &models.User{
		Phone:        phone,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         role,
		City:         strings.TrimSpace(input.City),
		Status:       constants.UserStatusActive,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		switch role {
		case constants.RoleVendor:
			shopName := strings.TrimSpace(input.ShopName)
			if shopName == "" {
				shopName = user.DisplayName
			}
			profile := &models.VendorProfile{
				UserID:    user.ID,
				ShopName:  shopName,
				City:      user.City,
				KycStatus: constants.KycStatusPending,
			}
			return s.vendorRepo.WithTx(tx).Create(profile)
		case constants.RoleRider, constants.RoleAgency:
			profile := &models.AgencyProfile{
				UserID:         user.ID,
				Name:           user.DisplayName,
				CoverageCities: input.CoverageCities,
				KycStatus:      constants.KycStatusPending,
			}
			return s.agencyRepo.WithTx(tx).Create(profile)
		}
		return nil
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, token, expiresAt, nil
}

// Login authenticates a phone+password pair and issues a token
func (s *UserAuthService) Login(phone, password string) (*models.User, string, time.Time, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByPhone(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// UpgradeRoleInput role upgrade request
type UpgradeRoleInput struct {
	UserID         uint
	Role           string
	ShopName       string   // vendor role
	CoverageCities []string // rider / agency roles
}

// UpgradeRole turns a customer into a vendor or rider/agency, creating the
// role profile with KYC pending. A fresh token carries the new role.
func (s *UserAuthService) UpgradeRole(input UpgradeRoleInput) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrNotFound
	}
	if user.Role != constants.RoleCustomer {
		return nil, "", time.Time{}, ErrConflict
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	switch role {
	case constants.RoleVendor, constants.RoleRider, constants.RoleAgency:
	default:
		return nil, "", time.Time{}, ErrValidation
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		user.Role = role
		if err := s.userRepo.WithTx(tx).Update(user); err != nil {
			return err
		}
		switch role {
		case constants.RoleVendor:
			shopName := strings.TrimSpace(input.ShopName)
			if shopName == "" {
				shopName = user.DisplayName
			}
			profile := &models.VendorProfile{
				UserID:    user.ID,
				ShopName:  shopName,
				City:      user.City,
				KycStatus: constants.KycStatusPending,
			}
			return s.vendorRepo.WithTx(tx).Create(profile)
		default:
			profile := &models.AgencyProfile{
				UserID:         user.ID,
				Name:           user.DisplayName,
				CoverageCities: input.CoverageCities,
				KycStatus:      constants.KycStatusPending,
			}
			return s.agencyRepo.WithTx(tx).Create(profile)
		}
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, token, expiresAt, nil
}

// GetProfile loads a user by id
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile updates mutable profile fields
func (s *UserAuthService) UpdateProfile(userID uint, displayName, city string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if displayName = strings.TrimSpace(displayName); displayName != "" {
		user.DisplayName = displayName
	}
	if city = strings.TrimSpace(city); city != "" {
		user.City = city
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates a user password and revokes outstanding tokens
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}
