package service

import (
	"context"
	"errors"
	"time"

	"almacen/internal/apierror"
	"almacen/internal/config"
	"almacen/internal/dto"
	"almacen/internal/middleware"
	"almacen/internal/model"
	"almacen/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*dto.OperatorResponse, error)
	ListOperators(ctx context.Context, includeInactive bool) ([]dto.OperatorResponse, error)
	UpdateOperator(ctx context.Context, id uuid.UUID, req dto.UpdateOperatorRequest) (*dto.OperatorResponse, error)
	DeactivateOperator(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.OperatorRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.OperatorRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func mapOperator(o model.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:       o.ID.String(),
		Username: o.Username,
		Name:     o.Name,
		Email:    o.Email,
		Role:     o.Role,
		Active:   o.Active,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierror.Validation("Credenciales invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Validation("Credenciales invalidas")
	}

	accessToken, err := s.generateToken(op, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(op, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapOperator(*op),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Validation("Refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Validation("Token mal formado")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, apierror.Validation("Token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apierror.Validation("Token mal formado")
	}

	op, err := s.repo.FindByID(ctx, uid)
	if err != nil || !op.Active {
		return nil, apierror.Validation("Operador inactivo o inexistente")
	}

	accessToken, err := s.generateToken(op, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(op, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapOperator(*op),
	}, nil
}

func (s *authService) generateToken(op *model.Operator, ttl time.Duration) (string, error) {
	claims := middleware.JWTClaims{
		UserID:   op.ID.String(),
		Username: op.Username,
		Role:     op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*dto.OperatorResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apierror.Conflict("Ya existe un operador con ese username")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	op := &model.Operator{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, op); err != nil {
		return nil, err
	}
	resp := mapOperator(*op)
	return &resp, nil
}

func (s *authService) ListOperators(ctx context.Context, includeInactive bool) ([]dto.OperatorResponse, error) {
	list, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	result := make([]dto.OperatorResponse, 0, len(list))
	for _, op := range list {
		result = append(result, mapOperator(op))
	}
	return result, nil
}

func (s *authService) UpdateOperator(ctx context.Context, id uuid.UUID, req dto.UpdateOperatorRequest) (*dto.OperatorResponse, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Operador no encontrado")
		}
		return nil, err
	}

	if req.Name != nil {
		op.Name = *req.Name
	}
	if req.Email != nil {
		op.Email = req.Email
	}
	if req.Role != nil {
		op.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		op.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}
	resp := mapOperator(*op)
	return &resp, nil
}

func (s *authService) DeactivateOperator(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Operador no encontrado")
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
