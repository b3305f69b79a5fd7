package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	logger       *slog.Logger
}

func NewService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	return &service{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !emp.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(emp)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.logger.Info("employee logged in",
		slog.String("employee_id", emp.ID),
		slog.String("role", string(emp.Role)),
	)
	return auth.LoginResponse{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Email:        emp.Email,
		FullName:     emp.FullName(),
		Role:         string(emp.Role),
		IsFirstLogin: emp.IsFirstLogin,
		TokenPair:    pair,
	}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}

	employeeID, err := s.jwtService.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	if !emp.IsActive {
		return auth.TokenPair{}, auth.ErrAccountInactive
	}

	// Rotate: the old refresh token dies with the new pair.
	s.jwtService.RevokeToken(refreshToken)
	return s.issueTokens(emp)
}

func (s *service) Logout(_ context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.UpdatePassword(ctx, emp.ID, string(hash), false); err != nil {
		return err
	}

	s.logger.Info("password changed", slog.String("employee_id", emp.ID))
	return nil
}

func (s *service) issueTokens(emp employee.Employee) (auth.TokenPair, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}
