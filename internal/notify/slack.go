package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lunchmate/internal/booking"
)

// Notifier posts Block Kit messages to a Slack incoming webhook. A zero
// webhook URL makes every send a no-op so callers never have to branch
// on whether notifications are configured.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n.webhookURL != ""
}

type block struct {
	Type     string `json:"type"`
	Text     *text  `json:"text,omitempty"`
	Fields   []text `json:"fields,omitempty"`
	Elements []text `json:"elements,omitempty"`
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type attachment struct {
	Color  string  `json:"color"`
	Blocks []block `json:"blocks"`
}

type payload struct {
	Blocks      []block      `json:"blocks,omitempty"`
	Attachments []attachment `json:"attachments,omitempty"`
}

// SendSelection announces the chosen restaurant for the upcoming lunch.
// Returns false when the webhook is unset or the post did not succeed.
func (n *Notifier) SendSelection(ctx context.Context, name, address, dateStr, timeStr string, partySize int, phone string) bool {
	if !n.Enabled() {
		return false
	}

	fields := []text{
		{Type: "mrkdwn", Text: "*식당:*\n" + name},
		{Type: "mrkdwn", Text: "*주소:*\n" + address},
		{Type: "mrkdwn", Text: "*날짜:*\n" + dateStr},
		{Type: "mrkdwn", Text: "*시간:*\n" + timeStr},
		{Type: "mrkdwn", Text: fmt.Sprintf("*인원:*\n%d명", partySize)},
	}
	if phone != "" {
		fields = append(fields, text{Type: "mrkdwn", Text: "*전화:*\n" + phone})
	}

	return n.post(ctx, payload{
		Blocks: []block{
			{Type: "header", Text: &text{Type: "plain_text", Text: "🍽️ 부서점심 식당 선택 완료"}},
			{Type: "section", Fields: fields},
		},
	})
}

// SendReservationResult posts the outcome of a reservation attempt.
func (n *Notifier) SendReservationResult(ctx context.Context, result booking.Result) bool {
	if !n.Enabled() {
		return false
	}

	emoji, color, verdict := "❌", "#ff0000", "실패"
	if result.Status == booking.StatusSuccess {
		emoji, color, verdict = "✅", "#36a64f", "완료"
	}

	blocks := []block{
		{Type: "header", Text: &text{Type: "plain_text", Text: fmt.Sprintf("%s 부서점심 예약 %s", emoji, verdict)}},
		{Type: "section", Fields: []text{
			{Type: "mrkdwn", Text: "*식당:*\n" + result.RestaurantName},
			{Type: "mrkdwn", Text: "*날짜:*\n" + result.Date},
			{Type: "mrkdwn", Text: "*시간:*\n" + result.Time},
			{Type: "mrkdwn", Text: fmt.Sprintf("*인원:*\n%d명", result.PartySize)},
		}},
	}
	if result.ReservationNumber != "" {
		blocks = append(blocks, block{
			Type: "section",
			Text: &text{Type: "mrkdwn", Text: "*예약번호:* `" + result.ReservationNumber + "`"},
		})
	}
	if result.Message != "" {
		blocks = append(blocks, block{
			Type:     "context",
			Elements: []text{{Type: "mrkdwn", Text: result.Message}},
		})
	}

	return n.post(ctx, payload{
		Attachments: []attachment{{Color: color, Blocks: blocks}},
	})
}

func (n *Notifier) post(ctx context.Context, p payload) bool {
	body, err := json.Marshal(p)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
