package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "steppingstones/internal/domain/submission"
)

type stubLister struct {
	subs []domain.Submission
	err  error
}

func (s *stubLister) ListAll(context.Context) ([]domain.Submission, error) {
	return s.subs, s.err
}

func TestListSubmissions(t *testing.T) {
	store := &stubLister{subs: []domain.Submission{
		{ID: "a", Status: domain.StatusNew},
		{ID: "b", Status: domain.StatusContacted},
		{ID: "c", Status: domain.StatusConverted},
		{ID: "d", Status: domain.StatusNew},
	}}

	result, err := ExecuteListSubmissions(context.Background(), ListSubmissionsDeps{Store: store})
	require.NoError(t, err)
	assert.Len(t, result.Submissions, 4)
	assert.Equal(t, domain.Stats{Total: 4, New: 2, Contacted: 1, Converted: 1}, result.Stats)
}

func TestListSubmissionsEmpty(t *testing.T) {
	result, err := ExecuteListSubmissions(context.Background(), ListSubmissionsDeps{Store: &stubLister{}})
	require.NoError(t, err)
	assert.Empty(t, result.Submissions)
	assert.Equal(t, domain.Stats{}, result.Stats)
}

func TestListSubmissionsError(t *testing.T) {
	store := &stubLister{err: errors.New("backend down")}
	_, err := ExecuteListSubmissions(context.Background(), ListSubmissionsDeps{Store: store})
	assert.Error(t, err)
}
