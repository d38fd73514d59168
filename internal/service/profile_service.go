package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/storage"
)

type profileService struct {
	profiles repository.ProfileRepo
	files    *storage.FileStore
}

func NewProfileService(profiles repository.ProfileRepo, files *storage.FileStore) ProfileService {
	return &profileService{profiles: profiles, files: files}
}

func (s *profileService) Get(ctx context.Context, actor auth.Context) (*domain.Profile, error) {
	if err := gate(actor, false); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, actor.UserID)
}

// Update renames the actor's own profile. Callers should refresh their
// auth context afterwards.
func (s *profileService) Update(ctx context.Context, actor auth.Context, name string) error {
	if err := gate(actor, false); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	profile, err := s.profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	profile.Name = strings.TrimSpace(name)
	profile.UpdatedAt = time.Now().UTC()
	return s.profiles.Update(ctx, profile)
}

// UploadAvatar stores the image and points the profile at it, returning
// the new reference.
func (s *profileService) UploadAvatar(ctx context.Context, actor auth.Context, fileName string, content io.Reader) (string, error) {
	if err := gate(actor, false); err != nil {
		return "", err
	}
	profile, err := s.profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return "", err
	}

	ref, err := s.files.Save(fileName, content)
	if err != nil {
		return "", err
	}
	previous := profile.AvatarRef
	profile.AvatarRef = ref
	profile.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Update(ctx, profile); err != nil {
		_ = s.files.Delete(ref)
		return "", err
	}
	if previous != "" {
		_ = s.files.Delete(previous)
	}
	return ref, nil
}
