package notify

import (
	"encoding/json"
	"fmt"

	"lendit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// botAPI is the slice of the telegram client the notifier needs.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier relays booking events to a telegram chat.
type TelegramNotifier struct {
	bot    botAPI
	chatID int64
	log    zerolog.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramNotifier{
		bot:    botAPI,
		chatID: chatID,
		log:    logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Subscribe attaches the notifier to booking lifecycle events.
func (n *TelegramNotifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handleEvent)
	bus.Subscribe(events.EventBookingApproved, n.handleEvent)
	bus.Subscribe(events.EventBookingRejected, n.handleEvent)
}

func (n *TelegramNotifier) handleEvent(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.log.Error().Err(err).Str("event", event.Type).Msg("decode event payload")
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatMessage(event.Type, payload))
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error().Err(err).Str("event", event.Type).Int64("booking_id", payload.BookingID).Msg("send notification")
		return err
	}
	return nil
}

func formatMessage(eventType string, p events.BookingEventPayload) string {
	switch eventType {
	case events.EventBookingCreated:
		return fmt.Sprintf(`🆕 Новое бронирование:

🏷 Вещь: %s
📅 Период: %s — %s
👤 Арендатор: %d
🆔 ID заявки: %d`,
			p.ItemName,
			p.Start.Format("02.01.2006 15:04"),
			p.End.Format("02.01.2006 15:04"),
			p.BookerID,
			p.BookingID)
	case events.EventBookingApproved:
		return fmt.Sprintf("✅ Бронирование №%d (%s) подтверждено владельцем", p.BookingID, p.ItemName)
	case events.EventBookingRejected:
		return fmt.Sprintf("❌ Бронирование №%d (%s) отклонено владельцем", p.BookingID, p.ItemName)
	default:
		return fmt.Sprintf("Событие %s по бронированию №%d", eventType, p.BookingID)
	}
}
