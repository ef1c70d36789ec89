package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailforge/mailforge/internal/domain"
	domainmocks "github.com/mailforge/mailforge/internal/domain/mocks"
	"github.com/mailforge/mailforge/internal/service"
	"github.com/mailforge/mailforge/pkg/logger"
)

func setupCampaignServiceTest(t *testing.T) (*service.CampaignService, *domainmocks.MockCampaignRepository, *logger.TestLogger) {
	ctrl := gomock.NewController(t)
	repo := domainmocks.NewMockCampaignRepository(ctrl)
	log := logger.NewTestLogger(t)
	return service.NewCampaignService(repo, log), repo, log
}

func TestCampaignService_CreateCampaign(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		campaign := &domain.Campaign{Name: "Spring"}
		repo.EXPECT().CreateCampaign(gomock.Any(), campaign).DoAndReturn(func(_ context.Context, c *domain.Campaign) error {
			c.ID = 7
			return nil
		})

		require.NoError(t, svc.CreateCampaign(context.Background(), campaign))
		assert.Equal(t, int64(7), campaign.ID)
		assert.False(t, campaign.CreatedAt.IsZero())
	})

	t.Run("Blank name", func(t *testing.T) {
		svc, _, _ := setupCampaignServiceTest(t)
		err := svc.CreateCampaign(context.Background(), &domain.Campaign{Name: " "})
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Contains(t, err.Error(), "campaign_name is required")
	})

	t.Run("Repository error", func(t *testing.T) {
		svc, repo, log := setupCampaignServiceTest(t)
		repo.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := svc.CreateCampaign(context.Background(), &domain.Campaign{Name: "Spring"})
		require.Error(t, err)
		assert.True(t, log.Contains("Failed to create campaign"))
	})
}

func TestCampaignService_UpdateCampaign(t *testing.T) {
	t.Run("Not found passes through", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		notFound := &domain.ErrCampaignNotFound{Message: "Campaign not found"}
		repo.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any()).Return(notFound)

		err := svc.UpdateCampaign(context.Background(), &domain.Campaign{ID: 3, Name: "Renamed"})
		assert.Same(t, notFound, err)
	})

	t.Run("Success sets updated_at", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		repo.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any()).Return(nil)

		campaign := &domain.Campaign{ID: 3, Name: "Renamed"}
		require.NoError(t, svc.UpdateCampaign(context.Background(), campaign))
		assert.False(t, campaign.UpdatedAt.IsZero())
	})
}

func TestCampaignService_DeleteCampaign(t *testing.T) {
	svc, repo, _ := setupCampaignServiceTest(t)
	repo.EXPECT().DeleteCampaign(gomock.Any(), int64(3)).Return(nil)
	assert.NoError(t, svc.DeleteCampaign(context.Background(), 3))

	repo.EXPECT().DeleteCampaign(gomock.Any(), int64(4)).Return(errors.New("locked"))
	err := svc.DeleteCampaign(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete campaign")
}

func TestCampaignService_AddRecipients(t *testing.T) {
	ctx := context.Background()

	t.Run("Deduplicates within the batch", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		repo.EXPECT().GetCampaignByID(gomock.Any(), int64(1)).Return(&domain.Campaign{ID: 1, Name: "Spring"}, nil)
		repo.EXPECT().AddRecipients(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, recipients []*domain.Recipient) (int, error) {
			require.Len(t, recipients, 3)
			assert.Equal(t, "a@example.com", recipients[0].EmailAddress)
			assert.Equal(t, "Alice B", recipients[0].Name)
			assert.Equal(t, "b@example.com", recipients[1].EmailAddress)
			assert.Equal(t, "A@example.com", recipients[2].EmailAddress)
			assert.Equal(t, "Upper", recipients[2].Name)
			for _, r := range recipients {
				assert.Equal(t, int64(1), r.CampaignID)
				assert.False(t, r.AddedAt.IsZero())
			}
			return 2, nil
		})

		result, err := svc.AddRecipients(ctx, 1, []*domain.Recipient{
			{EmailAddress: "a@example.com", Name: "Alice"},
			{EmailAddress: "b@example.com"},
			{EmailAddress: "A@example.com", Name: "Upper"},
			{EmailAddress: "a@example.com", Name: "Alice B"},
		})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Processed)
		assert.Equal(t, 2, result.Created)
	})

	t.Run("Unknown campaign", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		repo.EXPECT().GetCampaignByID(gomock.Any(), int64(9)).Return(nil, &domain.ErrCampaignNotFound{Message: "Campaign not found"})

		_, err := svc.AddRecipients(ctx, 9, []*domain.Recipient{{EmailAddress: "a@example.com"}})
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestCampaignService_Recipients(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		expected := []*domain.Recipient{{EmailAddress: "a@example.com", CampaignID: 1}}
		repo.EXPECT().GetCampaignByID(gomock.Any(), int64(1)).Return(&domain.Campaign{ID: 1}, nil)
		repo.EXPECT().ListRecipients(gomock.Any(), int64(1)).Return(expected, nil)

		got, err := svc.ListRecipients(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("Update trims input", func(t *testing.T) {
		svc, repo, _ := setupCampaignServiceTest(t)
		repo.EXPECT().UpdateRecipientName(gomock.Any(), int64(1), "a@example.com", "Alice").
			Return(&domain.Recipient{EmailAddress: "a@example.com", CampaignID: 1, Name: "Alice"}, nil)

		r, err := svc.UpdateRecipient(ctx, 1, " a@example.com ", " Alice ")
		require.NoError(t, err)
		assert.Equal(t, "Alice", r.Name)
	})

	t.Run("Delete not found", func(t *testing.T) {
		svc, repo, log := setupCampaignServiceTest(t)
		repo.EXPECT().DeleteRecipient(gomock.Any(), int64(1), "x@example.com").Return(&domain.ErrRecipientNotFound{Message: "Email not found"})

		err := svc.DeleteRecipient(ctx, 1, "x@example.com")
		require.Error(t, err)
		assert.Equal(t, "Email not found", err.Error())
		assert.Empty(t, log.Lines())
	})
}
