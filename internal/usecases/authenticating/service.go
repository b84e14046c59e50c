package authenticating

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/infrastructure/repository"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, session domain.Session, request *domain.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, session domain.Session, userID int) error
	ChangePassword(ctx context.Context, session domain.Session, userID int, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, session domain.Session, targetUserID int) (string, error)
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterUser cria um usuário ativo com perfil de visualização
func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" || strings.TrimSpace(user.FullName) == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome completo e senha são obrigatórios")
	}

	user.Email = handleEmail(user.Email)
	user.FullName = strings.TrimSpace(user.FullName)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar email no cadastro")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	if err := s.ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.RoleID = domain.RoleViewer
	user.Active = true

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar usuário")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	created.PasswordHash = ""
	return created, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	token, err := s.login(ctx, email, password)
	metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
	return token, err
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsCredentialsError(err):
		return "rejected"
	default:
		return "error"
	}
}

func (s *Service) login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := generateJWT(user, s.cfg.SecretKey, s.tokenTTL())
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.cfg.Auth.TokenTTL
}

func generateJWT(user *domain.User, secretKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		UserID:       user.ID,
		UserFullName: user.FullName,
		UserEmail:    user.Email,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao buscar perfil")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ListUser(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUser(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar usuários")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar usuários")
	}

	return users, nil
}

// UpdateUser altera nome, perfil e status de um usuário. Apenas administradores.
func (s *Service) UpdateUser(ctx context.Context, session domain.Session, request *domain.UpdateUserRequest) (*domain.User, error) {
	if !session.IsAdmin() {
		return nil, NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, session.UserID, "Apenas administradores podem alterar usuários")
	}

	if request.ID == 0 {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID do usuário é obrigatório")
	}

	if request.RoleID != nil && !domain.IsValidRole(*request.RoleID) {
		return nil, NewUserAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, request.ID, "Perfil deve ser admin, agent ou viewer")
	}

	user, err := s.userRepo.GetUserByID(ctx, request.ID)
	if err != nil {
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Erro ao consultar usuário no banco de dados")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, request.ID, "Usuário não encontrado")
	}

	if request.FullName != nil && strings.TrimSpace(*request.FullName) != "" {
		user.FullName = strings.TrimSpace(*request.FullName)
	}

	if request.Active != nil {
		user.Active = *request.Active
	}

	if request.RoleID != nil {
		user.RoleID = *request.RoleID
	}

	// O hash atual não é regravado
	user.PasswordHash = ""

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, request.ID, "Usuário não encontrado")
		}
		logrus.WithError(err).WithField("user_id", request.ID).Error("Erro ao atualizar usuário")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Erro ao atualizar usuário")
	}

	return user, nil
}

// DeleteUser faz a exclusão lógica. O administrador não pode excluir a própria conta.
func (s *Service) DeleteUser(ctx context.Context, session domain.Session, userID int) error {
	if !session.IsAdmin() {
		return NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, session.UserID, "Apenas administradores podem excluir usuários")
	}

	if session.UserID == userID {
		return NewUserAuthError(ErrCannotDeleteSelf, apiErrors.ErrCannotDeleteSelf, userID, "Não é possível excluir o próprio usuário")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	now := time.Now()
	user.Deleted = true
	user.DeletedAt = &now
	user.Active = false
	user.PasswordHash = ""

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao excluir usuário")
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao excluir usuário")
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "by": session.UserID}).Info("Usuário excluído")

	return nil
}

// ChangePassword permite que um usuário altere a própria senha
func (s *Service) ChangePassword(ctx context.Context, session domain.Session, userID int, currentPassword, newPassword string) error {
	if session.UserID != userID {
		return NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, userID, "Só é possível alterar a própria senha")
	}

	if currentPassword == "" || newPassword == "" {
		return NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, userID, "Senha atual e nova senha são obrigatórias")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, userID, "Nova senha deve ser diferente da atual")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return NewUserAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, userID, err.Error())
	}

	return s.storePassword(ctx, user, newPassword)
}

// ResetPassword gera uma senha forte para o usuário alvo. Apenas administradores.
func (s *Service) ResetPassword(ctx context.Context, session domain.Session, targetUserID int) (string, error) {
	if !session.IsAdmin() {
		return "", NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, session.UserID, "Apenas administradores podem gerar novas senhas")
	}

	target, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return "", NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao consultar usuário no banco de dados")
	}
	if target == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, targetUserID, "Usuário não encontrado")
	}

	newPassword, err := generateStrongPassword(12)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar senha")
	}

	if err := s.storePassword(ctx, target, newPassword); err != nil {
		return "", err
	}

	return newPassword, nil
}

func (s *Service) storePassword(ctx context.Context, user *domain.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Erro ao gravar senha")
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, user.ID, "Erro ao atualizar senha")
	}

	return nil
}

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// generateStrongPassword gera uma senha com pelo menos um caractere de cada grupo
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	groups := []string{lowerChars, upperChars, numberChars, specialChars}
	allChars := strings.Join(groups, "")

	password := make([]byte, length)
	for i := range password {
		charset := allChars
		if i < len(groups) {
			charset = groups[i]
		}
		char, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = char
	}

	// Embaralha para os grupos obrigatórios não ficarem no início
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// ValidatePasswordStrength exige 8 caracteres com maiúscula, minúscula, número e caractere especial
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	case !hasLower:
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	case !hasNumber:
		return errors.New("a senha deve conter pelo menos um número")
	case !hasSpecial:
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}
