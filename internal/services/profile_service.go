package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KingCuz/GrindLink/internal/apperrors"
	"github.com/KingCuz/GrindLink/internal/models"
	"github.com/KingCuz/GrindLink/internal/store"
	"github.com/KingCuz/GrindLink/internal/websocket"
)

// ProfileInput is the caller-supplied part of a new user profile.
type ProfileInput struct {
	Username string   `json:"username"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

// ProfileServiceProvider defines the interface for user profile services.
type ProfileServiceProvider interface {
	CreateProfile(ctx context.Context, input ProfileInput) (models.UserProfile, error)
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// ProfileService provides business logic for user profile records.
type ProfileService struct {
	store      store.Store
	pub        Publisher
	collection string
}

// NewProfileService creates a new ProfileService.
func NewProfileService(st store.Store, pub Publisher, namespace string) *ProfileService {
	return &ProfileService{
		store:      st,
		pub:        pub,
		collection: namespace + "/users",
	}
}

// CreateProfile validates the input, persists the record and broadcasts it.
func (s *ProfileService) CreateProfile(ctx context.Context, input ProfileInput) (models.UserProfile, error) {
	if input.Username == "" {
		return models.UserProfile{}, apperrors.NewValidationError("Username is required.")
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	profile := models.UserProfile{
		Username:  input.Username,
		Bio:       input.Bio,
		Skills:    skills,
		CreatedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return models.UserProfile{}, err
	}

	id, err := s.store.Put(ctx, s.collection, profile.CreatedAt, body)
	if err != nil {
		return models.UserProfile{}, &apperrors.StorageError{Op: "put", Err: err}
	}
	profile.ID = id

	s.pub.Publish(websocket.EventNewUser, profile)
	return profile, nil
}

// ListProfiles returns all user profiles, newest first.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	docs, err := s.store.List(ctx, s.collection)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "list", Err: err}
	}

	profiles := make([]models.UserProfile, 0, len(docs))
	for _, doc := range docs {
		var profile models.UserProfile
		if err := json.Unmarshal(doc.Body, &profile); err != nil {
			return nil, &apperrors.StorageError{Op: "list", Err: err}
		}
		profile.ID = doc.ID
		profile.CreatedAt = doc.CreatedAt
		if profile.Skills == nil {
			profile.Skills = []string{}
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
