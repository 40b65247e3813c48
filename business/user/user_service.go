package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"
	"ozeanLicht/pkg/metrics"
	"ozeanLicht/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
	ErrInvalidOrExpired   = errors.New("invalid or expired url")
	ErrMagicLinkUsed      = errors.New("magic link has already been used")
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id string, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, message string) error
}

// TokenRepository keeps sessions and burned magic link nonces
type TokenRepository interface {
	StoreToken(ctx context.Context, data domain.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
	ConsumeNonce(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

type OrderLinker interface {
	AutoLinkOnLogin(ctx context.Context, user domain.User) domain.LinkResult
}

type userService struct {
	userRepo                UserRepository
	tokenRepo               TokenRepository
	notifRepo               NotificationRepository
	orderLinker             OrderLinker
	jwtManager              *utils.JWTManager
	magicLinks              *utils.MagicLinkSigner
	validate                *validator.Validate
	appEmailVerificationKey string
	appDeploymentUrl        string
	now                     func() time.Time
}

const (
	verificationCodeTTL = 5 * time.Minute
	magicLinkTTL        = 15 * time.Minute

	SubjectRegisterAccount   = "Activate Your Account!"
	EmailBodyRegisterAccount = `Hello %v, activate your account by opening the link below</br></br>%v</br>note: the link is only valid for %v minutes`

	SubjectMagicLink   = "Your sign-in link"
	EmailBodyMagicLink = `Hello, sign in to Ozean Licht by opening the link below</br></br>%v</br>note: the link works once and is only valid for %v minutes`
)

func NewUserService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	notifRepo NotificationRepository,
	orderLinker OrderLinker,
	jwtManager *utils.JWTManager,
	validate *validator.Validate,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		tokenRepo:               tokenRepo,
		notifRepo:               notifRepo,
		orderLinker:             orderLinker,
		jwtManager:              jwtManager,
		magicLinks:              utils.NewMagicLinkSigner(appEmailVerificationKey, magicLinkTTL),
		validate:                validate,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        strings.TrimRight(appDeploymentUrl, "/"),
		now:                     time.Now,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, ErrInvalidEmail
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("Failed to check existing email", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   strings.TrimSpace(user.FullName),
		Email:      email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       domain.RoleCustomer,
	}

	// a concurrent signup with the same email surfaces here as ErrEmailExists
	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	code, err := s.encryptCode(newUser.Email, s.now().Add(verificationCodeTTL))
	if err != nil {
		logger.Error("Failed to build verification code", err)
	} else {
		activationLink := s.appDeploymentUrl + "/api/auth/verify-email/" + url.PathEscape(code)
		body := fmt.Sprintf(EmailBodyRegisterAccount, newUser.FullName, activationLink, int(verificationCodeTTL.Minutes()))
		if err := s.notifRepo.SendEmail(ctx, newUser.FullName, newUser.Email, SubjectRegisterAccount, body); err != nil {
			logger.Warn("Failed to send verification email", "email", newUser.Email, "error", err)
		}
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCode string) error {
	parts, err := s.decryptCode(verificationCode, 2)
	if err != nil {
		logger.Error("Verifying email error", err)
		return ErrInvalidOrExpired
	}

	user, err := s.userRepo.FindByEmail(ctx, parts[0])
	if err != nil {
		logger.Error("Verifying email error", err)
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrInvalidOrExpired
		}
		return errors.New("failed to get user by email")
	}

	if user.IsVerified {
		logger.Warn("Email verified already", "user_id", user.ID)
		return ErrInvalidOrExpired
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
		logger.Error("Verify email err", err)
		return err
	}

	return nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResult{}, ErrInvalidCredentials
		}
		logger.Error("Failed to find user for login", err)
		return domain.AuthResult{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Warn("User password incorrect", "user_id", user.ID)
		return domain.AuthResult{}, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return domain.AuthResult{}, ErrEmailNotVerified
	}

	result, err := s.signIn(ctx, user, ipAddress, userAgent)
	if err != nil {
		return domain.AuthResult{}, err
	}

	metrics.Logins.WithLabelValues("password").Inc()
	return result, nil
}

// RequestMagicLink emails a one-time sign-in link. The account itself is
// created when the link is used.
func (s *userService) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}

	token, err := s.magicLinks.Sign(email, s.now())
	if err != nil {
		logger.Error("Failed to build magic link", err)
		return errors.New("failed to build magic link")
	}

	query := url.Values{}
	query.Set("token", token)
	if redirect := SafeRedirect(redirectTo); redirect != "" {
		query.Set("redirect_to", redirect)
	}
	link := s.appDeploymentUrl + "/api/auth/callback?" + query.Encode()

	body := fmt.Sprintf(EmailBodyMagicLink, link, int(magicLinkTTL.Minutes()))
	if err := s.notifRepo.SendEmail(ctx, "", email, SubjectMagicLink, body); err != nil {
		logger.Error("Failed to send magic link", "email", email, "error", err)
		return errors.New("failed to send magic link")
	}

	metrics.MagicLinksSent.Inc()
	return nil
}

func (s *userService) VerifyMagicLink(ctx context.Context, token, ipAddress, userAgent string) (domain.AuthResult, error) {
	claims, err := s.magicLinks.Parse(token, s.now())
	if err != nil {
		logger.Warn("Rejected magic link", "error", err)
		return domain.AuthResult{}, ErrInvalidOrExpired
	}

	email := strings.ToLower(claims.Email)
	fresh, err := s.tokenRepo.ConsumeNonce(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now()))
	if err != nil {
		logger.Error("Failed to consume magic link nonce", err)
		return domain.AuthResult{}, err
	}
	if !fresh {
		return domain.AuthResult{}, ErrMagicLinkUsed
	}

	user, created, err := s.findOrCreateVerified(ctx, email)
	if err != nil {
		return domain.AuthResult{}, err
	}

	result, err := s.signIn(ctx, user, ipAddress, userAgent)
	if err != nil {
		return domain.AuthResult{}, err
	}
	result.NewUser = created

	metrics.Logins.WithLabelValues("magic_link").Inc()
	return result, nil
}

func (s *userService) findOrCreateVerified(ctx context.Context, email string) (domain.User, bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if !user.IsVerified {
			if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
				logger.Error("Failed to mark magic link user verified", err)
				return domain.User{}, false, err
			}
			user.IsVerified = true
		}
		return user, false, nil
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("Failed to find magic link user", err)
		return domain.User{}, false, err
	}

	user = domain.User{
		Email:      email,
		IsVerified: true,
		Role:       domain.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			user, err = s.userRepo.FindByEmail(ctx, email)
			return user, false, err
		}
		logger.Error("Failed to create magic link user", err)
		return domain.User{}, false, err
	}

	logger.Info("Created account from magic link", "user_id", user.ID)
	return user, true, nil
}

// signIn issues a session for an authenticated user and attaches any orders
// bought with the same email.
func (s *userService) signIn(ctx context.Context, user domain.User, ipAddress, userAgent string) (domain.AuthResult, error) {
	token, err := s.jwtManager.GenerateJWT(user.ID, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return domain.AuthResult{}, errors.New("failed to generate token")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.jwtManager.TTL())

	err = s.tokenRepo.StoreToken(ctx, domain.TokenData{
		UserID:    user.ID,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}, s.jwtManager.TTL())
	if err != nil {
		logger.Error("Failed to store session", err)
		return domain.AuthResult{}, errors.New("failed to store session")
	}

	linked := s.orderLinker.AutoLinkOnLogin(ctx, user)

	user.Password = ""
	return domain.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Linked:    linked,
	}, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID, token string) error {
	if err := s.tokenRepo.DeleteToken(ctx, userID, token); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// encryptCode joins email and expiry with "|" and seals them with AES-CBC.
func (s *userService) encryptCode(email string, expAt time.Time) (string, error) {
	fields := []string{email, strconv.FormatInt(expAt.Unix(), 10)}

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(strings.Join(fields, "|")), []byte(s.appEmailVerificationKey))
	if err != nil {
		return "", err
	}

	return goshortcute.StringtoBase64Encode(encrypted), nil
}

// decryptCode reverses encryptCode and rejects codes that are malformed or
// past their expiry.
func (s *userService) decryptCode(code string, fieldCount int) (parts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			parts, err = nil, fmt.Errorf("malformed code: %v", r)
		}
	}()

	if code == "" {
		return nil, errors.New("empty code")
	}

	plain, err := goshortcute.AESCBCDecrypt([]byte(goshortcute.StringtoBase64Decode(code)), []byte(s.appEmailVerificationKey))
	if err != nil {
		return nil, err
	}

	parts = strings.Split(plain, "|")
	if len(parts) != fieldCount || parts[0] == "" {
		return nil, errors.New("unexpected code layout")
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, err
	}

	if s.now().After(time.Unix(ts, 0)) {
		return nil, errors.New("code expired")
	}

	return parts, nil
}

// SafeRedirect keeps only same-site relative paths.
func SafeRedirect(redirectTo string) string {
	redirectTo = strings.TrimSpace(redirectTo)
	if !strings.HasPrefix(redirectTo, "/") || strings.HasPrefix(redirectTo, "//") || strings.Contains(redirectTo, "\\") {
		return ""
	}

	return redirectTo
}
