// Package services содержит логику отправки уведомлений об обновлениях
// каталога в Telegram-канал. Сервис потребляет сообщения из очереди
// и транслирует их в вызовы Bot API.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/online-cinema/internal/lib/sl"
	"github.com/magabrotheeeer/online-cinema/internal/lib/telegram"
	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// Messenger описывает интерфейс канала отправки уведомлений.
type Messenger interface {
	SendMessage(ctx context.Context, text string, markup *telegram.ReplyMarkup) error
	SendPhoto(ctx context.Context, photoURL string) error
}

// SenderService отправляет уведомления об обновлениях фильмов.
type SenderService struct {
	messenger Messenger
	watchURL  string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
// watchURL — базовый адрес плеера для кнопки под сообщением.
func NewSenderService(messenger Messenger, watchURL string, log *slog.Logger) *SenderService {
	return &SenderService{
		messenger: messenger,
		watchURL:  watchURL,
		log:       log,
	}
}

// SendMovieUpdateNotification разбирает сообщение очереди и отправляет
// в канал постер фильма и анонс с кнопкой перехода к просмотру.
func (s *SenderService) SendMovieUpdateNotification(body []byte) error {
	var message models.MovieUpdateInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx := context.Background()

	if message.Poster != "" {
		if err := s.messenger.SendPhoto(ctx, message.Poster); err != nil {
			s.log.Error("failed to send poster", sl.Err(err))
			return err
		}
	}

	text := fmt.Sprintf("<b>%s</b>\n\n%s\n\n", message.Title, message.Description)

	var markup *telegram.ReplyMarkup
	if s.watchURL != "" {
		markup = &telegram.ReplyMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{
				{
					{
						Text: "🍿 Перейти к просмотру",
						URL:  strings.TrimRight(s.watchURL, "/") + "/movie/" + message.Slug,
					},
				},
			},
		}
	}

	if err := s.messenger.SendMessage(ctx, text, markup); err != nil {
		s.log.Error("failed to send message", sl.Err(err))
		return err
	}

	s.log.Info("movie update notification sent", slog.String("slug", message.Slug))
	return nil
}
