package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eduexamine/eduexamine/config"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

// BulkRegisterError carries per-row failures for a bulk student
// upload; no rows are inserted when it is returned.
type BulkRegisterError struct {
	Rows []dto.BulkRowError
}

func (e *BulkRegisterError) Error() string {
	return fmt.Sprintf("bulk registration rejected: %d invalid rows", len(e.Rows))
}

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RegisterInstitute(req dto.InstituteRegisterRequest) (*model.Institute, error)
	RegisterStudent(req dto.StudentRegisterRequest) (*model.Student, error)
	BulkRegisterStudents(req dto.BulkRegisterRequest) (int, error)
	Refresh(req dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	Logout(req dto.LogoutRequest) error
}

type authService struct {
	db            *gorm.DB
	cfg           *config.Config
	tokenService  TokenService
	instituteRepo repository.InstituteRepository
	studentRepo   repository.StudentRepository
	branchRepo    repository.BranchRepository
}

func NewAuthService(
	db *gorm.DB,
	cfg *config.Config,
	tokenService TokenService,
	instituteRepo repository.InstituteRepository,
	studentRepo repository.StudentRepository,
	branchRepo repository.BranchRepository,
) AuthService {
	return &authService{
		db:            db,
		cfg:           cfg,
		tokenService:  tokenService,
		instituteRepo: instituteRepo,
		studentRepo:   studentRepo,
		branchRepo:    branchRepo,
	}
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login authenticates either role. A student account that has been
// disabled by its institute cannot log in.
func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var (
		userID uint
		info   dto.UserInfo
		hash   string
	)
	switch req.Role {
	case dto.RoleInstitute:
		institute, err := s.instituteRepo.FindByEmail(email)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		userID = institute.ID
		hash = institute.PasswordHash
		info = dto.UserInfo{
			ID:    institute.ID,
			Name:  institute.Name,
			Email: institute.Email,
			Role:  dto.RoleInstitute,
		}
	case dto.RoleStudent:
		student, err := s.studentRepo.FindByEmailWithRelations(email)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if !student.IsEnabled {
			return nil, ErrInvalidCredentials
		}
		userID = student.ID
		hash = student.PasswordHash
		info = dto.UserInfo{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
			Role:  dto.RoleStudent,
		}
		info.InstituteName = student.Institute.Name
		info.BranchName = student.Branch.Name
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	if !passwordMatches(hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokenService.GenerateAccessToken(userID, info.Email, info.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken(userID, info.Email, info.Role)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("userID", userID).Str("role", info.Role).Msg("User logged in")
	return &dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         info,
	}, nil
}

func (s *authService) RegisterInstitute(req dto.InstituteRegisterRequest) (*model.Institute, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.instituteRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	institute := &model.Institute{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Address:      req.Address,
	}
	if err := s.instituteRepo.Create(institute); err != nil {
		return nil, err
	}
	log.Info().Uint("instituteID", institute.ID).Msg("Institute registered")
	return institute, nil
}

func (s *authService) RegisterStudent(req dto.StudentRegisterRequest) (*model.Student, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.studentRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if _, err := s.instituteRepo.FindByID(req.InstituteID); err != nil {
		return nil, ErrNotFound
	}
	if req.BranchID == 0 {
		return nil, fmt.Errorf("%w: branch is required", ErrValidation)
	}
	branch, err := s.branchRepo.FindByInstitute(req.InstituteID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, b := range branch {
		if b.ID == req.BranchID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: branch does not belong to institute", ErrValidation)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	student := &model.Student{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		InstituteID:  req.InstituteID,
		BranchID:     req.BranchID,
		IsEnabled:    true,
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, err
	}
	log.Info().Uint("studentID", student.ID).Uint("instituteID", req.InstituteID).Msg("Student registered")
	return student, nil
}

// BulkRegisterStudents validates every row before touching the
// database; any invalid row rejects the whole batch. Valid batches
// are inserted atomically.
func (s *authService) BulkRegisterStudents(req dto.BulkRegisterRequest) (int, error) {
	if _, err := s.instituteRepo.FindByID(req.InstituteID); err != nil {
		return 0, ErrNotFound
	}
	if len(req.Students) == 0 {
		return 0, fmt.Errorf("%w: no students provided", ErrValidation)
	}

	branches, err := s.branchRepo.FindByInstitute(req.InstituteID)
	if err != nil {
		return 0, err
	}
	branchByName := make(map[string]uint, len(branches))
	for _, b := range branches {
		branchByName[strings.ToLower(b.Name)] = b.ID
	}

	var rowErrors []dto.BulkRowError
	seen := make(map[string]bool, len(req.Students))
	students := make([]model.Student, 0, len(req.Students))
	for _, entry := range req.Students {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		switch {
		case entry.Name == "" || email == "" || entry.Password == "":
			rowErrors = append(rowErrors, dto.BulkRowError{Email: email, Reason: "name, email and password are required"})
			continue
		case seen[email]:
			rowErrors = append(rowErrors, dto.BulkRowError{Email: email, Reason: "duplicate email in upload"})
			continue
		}
		seen[email] = true

		taken, err := s.studentRepo.ExistsByEmail(email)
		if err != nil {
			return 0, err
		}
		if taken {
			rowErrors = append(rowErrors, dto.BulkRowError{Email: email, Reason: "email already registered"})
			continue
		}

		branchID, ok := branchByName[strings.ToLower(strings.TrimSpace(entry.Branch))]
		if !ok {
			rowErrors = append(rowErrors, dto.BulkRowError{Email: email, Reason: fmt.Sprintf("unknown branch %q", entry.Branch)})
			continue
		}

		hash, err := s.hashPassword(entry.Password)
		if err != nil {
			return 0, err
		}
		students = append(students, model.Student{
			Name:         entry.Name,
			Email:        email,
			PasswordHash: hash,
			InstituteID:  req.InstituteID,
			BranchID:     branchID,
			IsEnabled:    true,
		})
	}
	if len(rowErrors) > 0 {
		return 0, &BulkRegisterError{Rows: rowErrors}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&students).Error
	})
	if err != nil {
		return 0, err
	}
	log.Info().Int("count", len(students)).Uint("instituteID", req.InstituteID).Msg("Bulk student registration completed")
	return len(students), nil
}

func (s *authService) Refresh(req dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := s.tokenService.VerifyRefreshToken(req.RefreshToken, req.UserType)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.tokenService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshTokenResponse{Token: accessToken}, nil
}

func (s *authService) Logout(req dto.LogoutRequest) error {
	return s.tokenService.InvalidateRefreshToken(req.RefreshToken, req.UserType)
}
