package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/leekchan/accounting"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

// DiscountNotifier emails subscribed customers about products whose
// discounts are active right now.
type DiscountNotifier struct {
	productRepo repositories.ProductRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	mailer      MailSender
	now         func() time.Time
}

func NewDiscountNotifier(productRepo repositories.ProductRepositoryImpl, userRepo repositories.UserRepositoryImpl, mailer MailSender) *DiscountNotifier {
	return &DiscountNotifier{
		productRepo: productRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

// ActiveDeals returns the products whose discount the price engine considers
// active at the evaluation instant. The repository pre-filter (sale flag,
// positive percent) is not enough on its own because of sale windows.
func (n *DiscountNotifier) ActiveDeals(ctx context.Context) ([]models.Product, []calc.PriceQuote, error) {
	candidates, err := n.productRepo.GetOnSale(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sale products: %w", err)
	}

	now := n.now()
	var deals []models.Product
	var quotes []calc.PriceQuote
	for _, p := range candidates {
		quote := calc.EffectivePrice(p.Pricing(), now)
		if !quote.IsDiscountActive {
			continue
		}
		deals = append(deals, p)
		quotes = append(quotes, quote)
	}

	return deals, quotes, nil
}

// Broadcast sends the current deals to every subscribed user. A failed
// recipient is logged and skipped; one bad mailbox must not stop the run.
// Returns how many emails went out.
func (n *DiscountNotifier) Broadcast(ctx context.Context) (int, error) {
	deals, quotes, err := n.ActiveDeals(ctx)
	if err != nil {
		return 0, err
	}
	if len(deals) == 0 {
		log.Println("DiscountNotifier: no active deals, nothing to send")
		return 0, nil
	}

	subscribers, err := n.userRepo.FindDealSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		log.Println("DiscountNotifier: no subscribed users")
		return 0, nil
	}

	body := BuildDiscountEmailBody(deals, quotes)
	subject := fmt.Sprintf("%d fresh deals from our farms", len(deals))

	sent := 0
	for _, user := range subscribers {
		if err := n.mailer.SendHTMLEmail(user.Email, subject, body); err != nil {
			log.Printf("DiscountNotifier: failed to send to %s: %v", user.Email, err)
			continue
		}
		sent++
	}

	log.Printf("DiscountNotifier: sent %d/%d deal emails (%d products)", sent, len(subscribers), len(deals))
	return sent, nil
}

// BuildDiscountEmailBody renders the deal list as a simple HTML email.
func BuildDiscountEmailBody(deals []models.Product, quotes []calc.PriceQuote) string {
	ac := accounting.Accounting{Symbol: "$", Precision: 2}

	var rows strings.Builder
	for i, p := range deals {
		quote := quotes[i]
		rows.WriteString(fmt.Sprintf(`
                <tr>
                    <td style="padding:8px;border-bottom:1px solid #eee;">%s</td>
                    <td style="padding:8px;border-bottom:1px solid #eee;text-decoration:line-through;color:#999;">%s</td>
                    <td style="padding:8px;border-bottom:1px solid #eee;font-weight:bold;color:#2e7d32;">%s</td>
                    <td style="padding:8px;border-bottom:1px solid #eee;">%s%%</td>
                </tr>`,
			p.Name,
			ac.FormatMoneyDecimal(quote.OriginalPrice),
			ac.FormatMoneyDecimal(quote.EffectivePrice),
			quote.DiscountPercent.StringFixed(0),
		))
	}

	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Fresh deals from our farms</title>
        </head>
        <body style="font-family: Arial, sans-serif; color: #333;">
            <div style="max-width:600px;margin:20px auto;padding:20px;border:1px solid #ddd;border-radius:5px;">
                <h2 style="text-align:center;">This week's farm deals</h2>
                <p>These products are on sale right now:</p>
                <table style="width:100%%;border-collapse:collapse;">
                    <tr>
                        <th style="text-align:left;padding:8px;">Product</th>
                        <th style="text-align:left;padding:8px;">Was</th>
                        <th style="text-align:left;padding:8px;">Now</th>
                        <th style="text-align:left;padding:8px;">Off</th>
                    </tr>%s
                </table>
                <p style="font-size:0.8em;color:#777;margin-top:20px;">You receive this email because you subscribed to deal notifications. Unsubscribe from your account settings.</p>
            </div>
        </body>
        </html>
    `, rows.String())
}
