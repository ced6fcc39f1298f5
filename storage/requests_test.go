package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFileStore(t *testing.T) (*FileRequestStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.json")
	return NewFileRequestStore(path, zap.NewNop()), path
}

func TestFileStoreAddAssignsIDAndDefaultStatus(t *testing.T) {
	s, _ := newFileStore(t)

	req := &models.Request{Kind: models.RequestKindPartner, TargetID: 1, UserID: 2, UserName: "김철수"}
	require.NoError(t, s.Add(req))

	assert.Equal(t, uint(1), req.ID)
	assert.Equal(t, "pending", req.Status)
	assert.False(t, req.CreatedAt.IsZero())

	second := &models.Request{Kind: models.RequestKindContent, TargetID: 9, UserID: 2}
	require.NoError(t, s.Add(second))
	assert.Equal(t, uint(2), second.ID)
}

func TestFileStoreSurvivesReload(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindPartner, TargetID: 3, UserID: 1}))
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindPartner, TargetID: 3, UserID: 1}))

	reloaded := NewFileRequestStore(path, zap.NewNop())
	items, err := reloaded.List(RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// IDs keep counting after reload.
	next := &models.Request{Kind: models.RequestKindPartner, TargetID: 3, UserID: 1}
	require.NoError(t, reloaded.Add(next))
	assert.Equal(t, uint(3), next.ID)
}

func TestFileStoreCorruptBlobStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileRequestStore(path, zap.NewNop())
	items, err := s.List(RequestFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	// Store stays usable after the reset.
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindPartner, TargetID: 1, UserID: 1}))
}

func TestFileStoreUpdateStatusIdempotent(t *testing.T) {
	s, _ := newFileStore(t)
	req := &models.Request{Kind: models.RequestKindPartner, TargetID: 1, UserID: 1}
	require.NoError(t, s.Add(req))

	first, err := s.UpdateStatus(req.ID, "approved")
	require.NoError(t, err)
	second, err := s.UpdateStatus(req.ID, "approved")
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	items, _ := s.List(RequestFilter{})
	assert.Len(t, items, 1, "no duplicate side effects")
}

func TestFileStoreListFilters(t *testing.T) {
	s, _ := newFileStore(t)
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindPartner, TargetID: 1, UserID: 10}))
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindPartner, TargetID: 2, UserID: 10}))
	require.NoError(t, s.Add(&models.Request{Kind: models.RequestKindContent, TargetID: 1, UserID: 11}))

	byTarget, err := s.List(RequestFilter{Kind: models.RequestKindPartner, TargetID: 1})
	require.NoError(t, err)
	require.Len(t, byTarget, 1)
	assert.Equal(t, uint(1), byTarget[0].TargetID)

	byUser, err := s.List(RequestFilter{UserID: 10})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestFileStoreUpdateAndDelete(t *testing.T) {
	s, _ := newFileStore(t)
	req := &models.Request{Kind: models.RequestKindContent, TargetID: 4, UserID: 1}
	require.NoError(t, s.Add(req))

	updated, err := s.Update(req.ID, map[string]interface{}{
		"status":         "paid",
		"payment_status": "paid",
		"payment_amount": 30000.0,
		"payment_method": "Credit Card",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	assert.Equal(t, 30000.0, updated.PaymentAmount)

	require.NoError(t, s.Delete(req.ID))
	_, err = s.Get(req.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.ErrorIs(t, s.Delete(req.ID), ErrRequestNotFound)
}
