package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/model"
)

// Domain Errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// UserStore is the teacher profile persistence boundary.
type UserStore interface {
	GetByAuthID(ctx context.Context, authID string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}

// UserService manages teacher profiles. Profiles are created on first write
// after authentication and keyed by the identity provider's id.
type UserService struct {
	users   UserStore
	catalog ReferenceCatalog
	log     zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, catalog ReferenceCatalog, log zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		catalog: catalog,
		log:     log.With().Str("component", "user_service").Logger(),
	}
}

// GetProfile retrieves the caller's profile.
func (s *UserService) GetProfile(ctx context.Context, authID string) (*model.User, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// CheckProfile reports whether the caller's profile exists and has both
// required fields (name and subject). An incomplete or missing profile is a
// normal answer, not an error.
func (s *UserService) CheckProfile(ctx context.Context, authID string) (*model.ProfileCheck, error) {
	user, err := s.GetProfile(ctx, authID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return &model.ProfileCheck{Complete: false, Message: "Profile not found"}, nil
		}
		return nil, err
	}
	return &model.ProfileCheck{Complete: user.Complete(), User: user}, nil
}

// UpdateProfile creates or updates the caller's profile. The subject input
// may be a catalog id (strict lookup) or a free-text name; an unknown name
// is created in the catalog on the fly.
func (s *UserService) UpdateProfile(ctx context.Context, identity Identity, req model.UpdateProfileRequest) (*model.User, error) {
	subjectRef, err := s.resolveSubject(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByAuthID(ctx, identity.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		user = &model.User{
			AuthID:    identity.ID,
			Email:     identity.Email,
			Name:      req.Name,
			Institute: req.Institute,
			Subject:   subjectRef,
			Place:     req.Place,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		return user, nil
	}

	user.Email = identity.Email
	user.Name = req.Name
	if req.Institute != nil {
		user.Institute = req.Institute
	}
	if req.Place != nil {
		user.Place = req.Place
	}
	if subjectRef != nil {
		user.Subject = subjectRef
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// resolveSubject turns the subject input into a catalog snapshot. An id must
// resolve; a name is found case-insensitively or lazily created.
func (s *UserService) resolveSubject(ctx context.Context, input *string) (*model.NamedRef, error) {
	if isBlank(input) {
		return nil, nil
	}

	if id, err := uuid.Parse(*input); err == nil {
		subject, err := s.catalog.SubjectByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrSubjectNotFound
			}
			return nil, fmt.Errorf("lookup subject: %w", err)
		}
		return &model.NamedRef{ID: subject.ID, Name: subject.Name}, nil
	}

	subject, err := s.catalog.SubjectByName(ctx, *input)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lookup subject: %w", err)
		}
		subject = &model.Subject{Name: *input}
		if err := s.catalog.CreateSubject(ctx, subject); err != nil {
			return nil, fmt.Errorf("create subject: %w", err)
		}
		s.log.Info().Str("subject", subject.Name).Msg("Created new subject")
	}
	return &model.NamedRef{ID: subject.ID, Name: subject.Name}, nil
}
