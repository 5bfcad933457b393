package service

import (
	"context"
	"errors"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/config"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.WorkerRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.WorkerRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	worker, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.buildLoginResponse(worker)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	wid, err := uuid.Parse(claims.WorkerID)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	worker, err := s.repo.FindByID(ctx, wid)
	if err != nil || !worker.IsActive {
		return nil, errors.New("worker not found or inactive")
	}

	return s.buildLoginResponse(worker)
}

func (s *authService) buildLoginResponse(worker *model.Worker) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(worker, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(worker, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Worker:       workerToResponse(worker),
	}, nil
}

func (s *authService) generateToken(worker *model.Worker, duration time.Duration) (string, error) {
	branches := make([]middleware.BranchRole, 0, len(worker.Assignments))
	for _, a := range worker.Assignments {
		if !a.IsActive {
			continue
		}
		branches = append(branches, middleware.BranchRole{BranchID: a.BranchID.String(), Role: a.Role})
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		WorkerID: worker.ID.String(),
		Username: worker.Username,
		IsOwner:  worker.IsOwner,
		IsAdmin:  worker.IsAdmin,
		Branches: branches,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func workerToResponse(w *model.Worker) dto.WorkerResponse {
	assignments := make([]dto.RoleAssignmentResponse, 0, len(w.Assignments))
	for _, a := range w.Assignments {
		resp := dto.RoleAssignmentResponse{
			BranchID: a.BranchID.String(),
			Role:     a.Role,
			IsActive: a.IsActive,
		}
		if a.Branch != nil {
			resp.Branch = a.Branch.Name
		}
		assignments = append(assignments, resp)
	}
	return dto.WorkerResponse{
		ID:            w.ID.String(),
		Username:      w.Username,
		Name:          w.Name,
		Email:         w.Email,
		ImgURL:        w.ImgURL,
		IsOwner:       w.IsOwner,
		IsAdmin:       w.IsAdmin,
		CurrentStatus: w.CurrentStatus,
		IsActive:      w.IsActive,
		Assignments:   assignments,
	}
}
