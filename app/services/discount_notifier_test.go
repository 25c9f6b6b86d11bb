package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

func newNotifierFixture(users []models.User, products ...*models.Product) (*DiscountNotifier, *mockMailer) {
	mailer := &mockMailer{failFor: map[string]bool{}}
	notifier := NewDiscountNotifier(newMockProductRepo(products...), &mockUserRepo{users: users}, mailer)
	notifier.now = func() time.Time { return checkoutInstant }
	return notifier, mailer
}

func TestActiveDealsFiltersByWindow(t *testing.T) {
	live := saleProduct("p-live", "50.00", 10)

	expired := saleProduct("p-expired", "20.00", 25)
	past := checkoutInstant.Add(-48 * time.Hour)
	expired.SaleEndDate = &past

	notifier, _ := newNotifierFixture(nil, live, expired, plainProduct("p-plain", "4.50"))

	deals, quotes, err := notifier.ActiveDeals(context.Background())
	require.NoError(t, err)
	require.Len(t, deals, 1, "flagged but out-of-window products are not deals")
	assert.Equal(t, "p-live", deals[0].ID)
	assert.True(t, quotes[0].EffectivePrice.Equal(decimal.RequireFromString("45.00")))
}

func TestBroadcastSendsToSubscribersOnly(t *testing.T) {
	users := []models.User{
		{ID: "u-1", Email: "sub1@example.com", SubscribedToDeals: true},
		{ID: "u-2", Email: "sub2@example.com", SubscribedToDeals: true},
		{ID: "u-3", Email: "nosub@example.com", SubscribedToDeals: false},
	}
	notifier, mailer := newNotifierFixture(users, saleProduct("p-1", "50.00", 10))

	sent, err := notifier.Broadcast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"sub1@example.com", "sub2@example.com"}, mailer.sentTo)
	assert.Contains(t, mailer.lastMsg, "Heirloom Tomatoes")
}

func TestBroadcastSkipsFailedRecipient(t *testing.T) {
	users := []models.User{
		{ID: "u-1", Email: "dead@example.com", SubscribedToDeals: true},
		{ID: "u-2", Email: "ok@example.com", SubscribedToDeals: true},
	}
	notifier, mailer := newNotifierFixture(users, saleProduct("p-1", "50.00", 10))
	mailer.failFor["dead@example.com"] = true

	sent, err := notifier.Broadcast(context.Background())
	require.NoError(t, err, "one bad mailbox must not fail the run")
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"ok@example.com"}, mailer.sentTo)
}

func TestBroadcastNoActiveDeals(t *testing.T) {
	users := []models.User{{ID: "u-1", Email: "sub@example.com", SubscribedToDeals: true}}
	notifier, mailer := newNotifierFixture(users, plainProduct("p-1", "4.50"))

	sent, err := notifier.Broadcast(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, mailer.sentTo)
}

func TestBuildDiscountEmailBody(t *testing.T) {
	deals := []models.Product{{Name: "Golden Beets"}}
	quotes := []calc.PriceQuote{{
		IsDiscountActive: true,
		OriginalPrice:    decimal.RequireFromString("6.00"),
		EffectivePrice:   decimal.RequireFromString("4.50"),
		DiscountPercent:  decimal.NewFromInt(25),
	}}

	body := BuildDiscountEmailBody(deals, quotes)
	assert.Contains(t, body, "Golden Beets")
	assert.Contains(t, body, "$6.00")
	assert.Contains(t, body, "$4.50")
	assert.Contains(t, body, "25%")
}
