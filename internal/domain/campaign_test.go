package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCampaignRequest_Validate(t *testing.T) {
	campaign, err := (&CreateCampaignRequest{CampaignName: "  Spring sale "}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "Spring sale", campaign.Name)

	_, err = (&CreateCampaignRequest{CampaignName: "   "}).Validate()
	require.Error(t, err)
	assert.Equal(t, "validation error: Please enter a campaign name", err.Error())
}

func TestUpdateCampaignRequest_Validate(t *testing.T) {
	campaign, err := (&UpdateCampaignRequest{CampaignID: 3, CampaignName: "New"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, int64(3), campaign.ID)

	_, err = (&UpdateCampaignRequest{CampaignName: "New"}).Validate()
	assert.True(t, IsValidationError(err))
}

func TestRecipient(t *testing.T) {
	r := &Recipient{EmailAddress: "ada@example.com", CampaignID: 1}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "Valued Customer", r.DisplayName())

	r.Name = "Ada"
	assert.Equal(t, "Ada", r.DisplayName())

	assert.Error(t, (&Recipient{EmailAddress: "not-an-email", CampaignID: 1}).Validate())
	assert.Error(t, (&Recipient{EmailAddress: "ada@example.com"}).Validate())
}

func TestAddRecipientsRequest_Validate(t *testing.T) {
	t.Run("trims and skips blank rows", func(t *testing.T) {
		req := &AddRecipientsRequest{
			CampaignID: 7,
			Recipients: []RecipientInput{
				{EmailAddress: " ada@example.com ", Name: " Ada "},
				{EmailAddress: ""},
				{EmailAddress: "bob@example.com"},
			},
		}
		recipients, err := req.Validate()
		require.NoError(t, err)
		require.Len(t, recipients, 2)
		assert.Equal(t, "ada@example.com", recipients[0].EmailAddress)
		assert.Equal(t, "Ada", recipients[0].Name)
		assert.Equal(t, int64(7), recipients[1].CampaignID)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		req := &AddRecipientsRequest{CampaignID: 7, Recipients: []RecipientInput{{EmailAddress: "nope"}}}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "recipients[0]")
	})

	t.Run("requires at least one address", func(t *testing.T) {
		_, err := (&AddRecipientsRequest{CampaignID: 7, Recipients: []RecipientInput{{Name: "x"}}}).Validate()
		assert.True(t, IsValidationError(err))
		_, err = (&AddRecipientsRequest{Recipients: []RecipientInput{{EmailAddress: "a@b.co"}}}).Validate()
		assert.True(t, IsValidationError(err))
	})
}

func TestListRecipientsRequest_FromURLParams(t *testing.T) {
	var req ListRecipientsRequest
	require.NoError(t, req.FromURLParams(url.Values{"campaign_id": {"9"}}))
	assert.Equal(t, int64(9), req.CampaignID)
	assert.Error(t, (&ListRecipientsRequest{}).FromURLParams(url.Values{}))
}

func TestRecipientRequests_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateRecipientRequest{CampaignID: 1, EmailAddress: "a@b.co", Name: "A"}).Validate())
	assert.Error(t, (&UpdateRecipientRequest{CampaignID: 1}).Validate())
	assert.NoError(t, (&DeleteRecipientRequest{CampaignID: 1, EmailAddress: "a@b.co"}).Validate())
	assert.Error(t, (&DeleteRecipientRequest{EmailAddress: "a@b.co"}).Validate())
}

func TestSendCampaignRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SendCampaignRequest{CampaignID: 1, TemplateID: 2}).Validate())

	err := (&SendCampaignRequest{TemplateID: 2}).Validate()
	assert.Equal(t, "validation error: Campaign ID is required.", err.Error())

	err = (&SendCampaignRequest{CampaignID: 1}).Validate()
	assert.Equal(t, "validation error: Template ID is required.", err.Error())

	assert.Equal(t, "No emails found for the given campaign.", (&ErrNoRecipients{CampaignID: 1}).Error())
}
