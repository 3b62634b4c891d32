// Package telegram provides a client for sending dashboard digests via the
// Telegram Bot API.
// It formats a snapshot summary into a MarkdownV2 message and handles
// delivery with retry logic.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/lookingglass/internal/views"
)

// sender is the part of *tgbotapi.BotAPI the client uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return newClient(bot, chatIDInt, maxRetries, retryDelayBase), nil
}

func newClient(bot sender, chatID int64, maxRetries int, retryDelayBase time.Duration) *Client {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}
	return &Client{
		bot:            bot,
		chatID:         chatID,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}
}

// Send sends the digest as one message
func (c *Client) Send(d Digest) error {
	msg := tgbotapi.NewMessage(c.chatID, formatMessage(d))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i < c.maxRetries-1 {
			time.Sleep(c.retryDelayBase * time.Duration(i+1))
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats a digest into a MarkdownV2 message
func formatMessage(d Digest) string {
	var b strings.Builder

	b.WriteString("🔭 *Looking Glass Digest*\n")
	fmt.Fprintf(&b, "📅 %s\n\n", escapeMarkdownV2(d.GeneratedAt.Format("2006-01-02 15:04:05")))

	if d.OverallProbability != nil {
		fmt.Fprintf(&b, "🎯 %s over %s: *%s*\n",
			escapeMarkdownV2(d.Category),
			escapeMarkdownV2(fmt.Sprintf("%dd", d.Timeframe)),
			escapeMarkdownV2(fmt.Sprintf("%.1f%%", *d.OverallProbability*100)))
	}
	if d.TotalEvents > 0 {
		fmt.Fprintf(&b, "🗓 Events: %d\n", d.TotalEvents)
	}

	if len(d.Regions) > 0 {
		b.WriteString("\n*Hottest regions*\n")
		for i, r := range d.Regions {
			fmt.Fprintf(&b, "%d\\. %s: %s \\(%d points, %s\\)\n",
				i+1,
				escapeMarkdownV2(r.Region),
				escapeMarkdownV2(fmt.Sprintf("%.2f", r.AvgIntensity)),
				r.Count,
				views.IntensityLevel(r.AvgIntensity))
		}
	}

	if len(d.Clusters) > 0 {
		b.WriteString("\n*Fastest growing narratives*\n")
		for i, c := range d.Clusters {
			direction := "📈"
			if c.GrowthRate < 0 {
				direction = "📉"
			}
			fmt.Fprintf(&b, "%d\\. %s %s growth %s, sentiment %s, %d narratives\n",
				i+1,
				direction,
				escapeMarkdownV2(c.Theme),
				escapeMarkdownV2(fmt.Sprintf("%+.2f", c.GrowthRate)),
				escapeMarkdownV2(fmt.Sprintf("%+.2f", c.Sentiment)),
				c.Narratives)
		}
	}

	if d.Error != "" {
		fmt.Fprintf(&b, "\n⚠️ %s\n", escapeMarkdownV2(d.Error))
	}

	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
