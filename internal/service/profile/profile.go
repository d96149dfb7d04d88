// internal/service/profile/profile_service.go
package profile

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/docstore"
	"crm-service/internal/domain/identity"
	"crm-service/internal/domain/profile"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/partition"

	"go.uber.org/zap"
)

// ProfileService reads and writes the per-identity profile document. The
// document id is derived with the same sanitizer that names customer
// partitions, so one identity key always reaches one profile. Guests have
// no profile and always get the defaults.
type ProfileService struct {
	store  docstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewProfileService(store docstore.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the identity's profile, defaulting missing documents and
// drifted fields. A missing profile is not an error.
func (s *ProfileService) Get(ctx context.Context, id identity.Identity) (*profile.Profile, error) {
	if !id.Authenticated() {
		return defaultProfile(), nil
	}

	doc, err := s.store.GetOne(ctx, partition.ProfilePartition, partition.Sanitize(id.Key))
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return defaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return normalize(doc), nil
}

// Update merges the supplied fields onto the stored profile and stamps
// updatedAt. Guests cannot update a profile.
func (s *ProfileService) Update(ctx context.Context, id identity.Identity, req *profile.UpdateProfileRequest) (*profile.Profile, error) {
	if !id.Authenticated() {
		return nil, xerrors.ErrUnauthorized
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.Language != nil {
		current.Language = profile.NormalizeLanguage(*req.Language)
	}
	current.UpdatedAt = s.now().UnixMilli()

	docID := partition.Sanitize(id.Key)
	doc := map[string]interface{}{
		"firstName": current.FirstName,
		"lastName":  current.LastName,
		"language":  string(current.Language),
		"updatedAt": current.UpdatedAt,
	}
	if err := s.store.Put(ctx, partition.ProfilePartition, docID, doc); err != nil {
		s.logger.Error("failed to save profile",
			zap.String("profile_id", docID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("profile_id", docID))
	return current, nil
}

func defaultProfile() *profile.Profile {
	return &profile.Profile{Language: profile.DefaultLanguage}
}

// normalize defaults a raw profile document; like customer normalization
// it is total over arbitrary shapes.
func normalize(doc map[string]interface{}) *profile.Profile {
	p := defaultProfile()
	if v, ok := doc["firstName"].(string); ok {
		p.FirstName = v
	}
	if v, ok := doc["lastName"].(string); ok {
		p.LastName = v
	}
	if v, ok := doc["language"].(string); ok {
		p.Language = profile.NormalizeLanguage(v)
	}
	if v, ok := doc["updatedAt"].(float64); ok {
		p.UpdatedAt = int64(v)
	} else if v, ok := doc["updatedAt"].(int64); ok {
		p.UpdatedAt = v
	}
	return p
}
