// Package notify delivers deal notifications to external targets.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // cheapest third of the band
	colorYellow = 0xF1C40F // middle third
	colorOrange = 0xE67E22 // upper third

	// Discord caps embeds per message.
	maxEmbeds = 10
)

// Notifier delivers a ranked deal list to an external target.
type Notifier interface {
	SendDeals(ctx context.Context, query string, deals []domain.Deal) error
}

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
	minPerTB   float64
	maxPerTB   float64
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithBand sets the price-per-TB band used for embed coloring.
func WithBand(minPerTB, maxPerTB float64) DiscordOption {
	return func(d *DiscordNotifier) {
		d.minPerTB = minPerTB
		d.maxPerTB = maxPerTB
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title  string              `json:"title"`
	URL    string              `json:"url,omitempty"`
	Color  int                 `json:"color"`
	Fields []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendDeals sends the ranked deals as a single message with one embed per
// deal, capped at Discord's embed limit.
func (d *DiscordNotifier) SendDeals(
	ctx context.Context,
	query string,
	deals []domain.Deal,
) error {
	if len(deals) == 0 {
		return nil
	}
	if len(deals) > maxEmbeds {
		deals = deals[:maxEmbeds]
	}

	payload := discordWebhookPayload{
		Content: fmt.Sprintf("Found %d deals for `%s`", len(deals), query),
		Embeds:  make([]discordEmbed, 0, len(deals)),
	}
	for i := range deals {
		payload.Embeds = append(payload.Embeds, d.buildEmbed(&deals[i]))
	}

	return d.post(ctx, payload)
}

func (d *DiscordNotifier) buildEmbed(deal *domain.Deal) discordEmbed {
	return discordEmbed{
		Title: deal.Title,
		URL:   deal.ItemURL,
		Color: d.embedColor(deal.PricePerTB),
		Fields: []discordEmbedField{
			{Name: "Price/TB", Value: fmt.Sprintf("$%.2f", deal.PricePerTB), Inline: true},
			{Name: "Price", Value: fmt.Sprintf("$%.2f", deal.Price), Inline: true},
			{Name: "Capacity", Value: fmt.Sprintf("%.2f TB", deal.CapacityTB), Inline: true},
		},
	}
}

func (d *DiscordNotifier) embedColor(pricePerTB float64) int {
	if d.maxPerTB <= d.minPerTB {
		return colorGreen
	}
	span := d.maxPerTB - d.minPerTB
	switch {
	case pricePerTB <= d.minPerTB+span/3:
		return colorGreen
	case pricePerTB <= d.minPerTB+2*span/3:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, b)
	}
	return nil
}
