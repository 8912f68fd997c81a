package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"learnhub/backend/apperr"
	"learnhub/backend/auth"
	"learnhub/backend/models"
	"learnhub/backend/storage"
	"learnhub/backend/utils"
)

type ProfileInput struct {
	DisplayName string  `json:"display_name" validate:"required,max=50"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
}

type ProfileService struct {
	repos    *Repos
	store    storage.ObjectStore
	maxBytes int64
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewProfileService(repos *Repos, store storage.ObjectStore, maxAvatarBytes int64, log *zap.SugaredLogger) *ProfileService {
	return &ProfileService{
		repos:    repos,
		store:    store,
		maxBytes: maxAvatarBytes,
		log:      log.Named("profile"),
		now:      time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context, caller auth.Caller) (*models.User, error) {
	if err := auth.RequireUser(caller); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.GetByID(ctx, caller.UserID)
	return user, logFailure(s.log, "load profile", err)
}

func (s *ProfileService) Update(ctx context.Context, caller auth.Caller, in ProfileInput) (*models.User, error) {
	if err := auth.RequireUser(caller); err != nil {
		return nil, err
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Bio = blankToNil(in.Bio)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.repos.Users.UpdateProfile(ctx, caller.UserID, in.DisplayName, in.Bio); err != nil {
		return nil, logFailure(s.log, "update profile", err)
	}
	return s.Get(ctx, caller)
}

// UploadAvatar validates and normalises the image, stores it under the
// caller's folder and points the profile at it. The URL carries a timestamp
// so clients drop their cached copy.
func (s *ProfileService) UploadAvatar(ctx context.Context, caller auth.Caller, data []byte) (*models.User, error) {
	if err := auth.RequireUser(caller); err != nil {
		return nil, err
	}
	avatar, err := storage.PrepareAvatar(data, s.maxBytes)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, apperr.Persistence("upload avatar", fmt.Errorf("no object store configured"))
	}

	path := fmt.Sprintf("%s/avatar.%s", caller.UserID, avatar.Ext)
	publicURL, err := s.store.Put(ctx, path, avatar.ContentType, avatar.Data)
	if err != nil {
		return nil, logFailure(s.log, "upload avatar", apperr.Persistence("upload avatar", err))
	}

	url := fmt.Sprintf("%s?t=%d", publicURL, s.now().UnixMilli())
	if err := s.repos.Users.SetAvatarURL(ctx, caller.UserID, url); err != nil {
		return nil, logFailure(s.log, "save avatar url", err)
	}
	return s.Get(ctx, caller)
}
