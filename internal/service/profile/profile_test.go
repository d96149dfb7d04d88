// internal/service/profile/profile_test.go
package profile

import (
	"context"
	"testing"

	"crm-service/internal/domain/docstore"
	"crm-service/internal/domain/identity"
	"crm-service/internal/domain/profile"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	docs map[string]map[string]interface{} // partition + "/" + id
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]map[string]interface{})}
}

func (f *fakeStore) Insert(_ context.Context, _ string, _ map[string]interface{}) (string, error) {
	panic("not used")
}

func (f *fakeStore) Put(_ context.Context, partition, id string, doc map[string]interface{}) error {
	f.docs[partition+"/"+id] = doc
	return nil
}

func (f *fakeStore) ListAll(_ context.Context, _ string) ([]docstore.Document, error) {
	panic("not used")
}

func (f *fakeStore) GetOne(_ context.Context, partition, id string) (map[string]interface{}, error) {
	doc, ok := f.docs[partition+"/"+id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return doc, nil
}

func (f *fakeStore) MergeUpdate(_ context.Context, _, _ string, _ map[string]interface{}) error {
	panic("not used")
}

func (f *fakeStore) Delete(_ context.Context, _, _ string) error {
	panic("not used")
}

func TestGetMissingProfileReturnsDefaults(t *testing.T) {
	svc := NewProfileService(newFakeStore(), zap.NewNop())

	p, err := svc.Get(context.Background(), identity.User("u1", "u1@example.com", nil))
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultLanguage, p.Language)
	assert.Empty(t, p.FirstName)
}

func TestGuestGetsDefaultsWithoutStoreAccess(t *testing.T) {
	svc := NewProfileService(newFakeStore(), zap.NewNop())

	p, err := svc.Get(context.Background(), identity.Guest())
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultLanguage, p.Language)
}

func TestGuestCannotUpdate(t *testing.T) {
	svc := NewProfileService(newFakeStore(), zap.NewNop())

	name := "Ana"
	_, err := svc.Update(context.Background(), identity.Guest(), &profile.UpdateProfileRequest{FirstName: &name})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestUpdateRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := NewProfileService(store, zap.NewNop())
	id := identity.User("user+1@example.com", "user+1@example.com", nil)

	first, lang := "Ana", "en"
	updated, err := svc.Update(context.Background(), id, &profile.UpdateProfileRequest{
		FirstName: &first,
		Language:  &lang,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, profile.LanguageEnglish, updated.Language)
	assert.NotZero(t, updated.UpdatedAt)

	// Document id is the sanitized identity key.
	_, ok := store.docs["profiles/user_1_example_com"]
	assert.True(t, ok)

	// Partial update leaves other fields untouched.
	last := "Li"
	updated, err = svc.Update(context.Background(), id, &profile.UpdateProfileRequest{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, "Li", updated.LastName)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "AL", got.Initials())
}
