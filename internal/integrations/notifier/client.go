package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
// С пустым baseURL уведомления не отправляются
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled возвращает true, если адрес сервиса уведомлений задан
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// NotifyBookingConfirmed отправляет уведомление об оплаченном бронировании
func (c *Client) NotifyBookingConfirmed(ctx context.Context, booking domain.Booking) error {
	if !c.Enabled() {
		c.log.Info("NotifyBookingConfirmed: notifier disabled, skipping booking=%s", booking.Reference)
		return nil
	}

	body, err := json.Marshal(FromBooking(booking))
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", booking.Reference)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("NotifyBookingConfirmed: notification sent for booking=%s", booking.Reference)
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", ErrRejected, errResp.Message)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
