package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salescrm/internal/models"
)

// TelegramNotifier posts pipeline events to a single admin chat. Optional:
// when no bot token is configured the whole integration stays off.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, adminChatID int64) (*TelegramNotifier, error) {
	if botToken == "" || adminChatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: adminChatID}, nil
}

func (t *TelegramNotifier) send(text string) {
	if t == nil || t.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}

func (t *TelegramNotifier) LeadConverted(lead *models.Lead, customer *models.Customer) {
	t.send(fmt.Sprintf("Lead <b>%s</b> (#%d) converted to customer #%d", lead.CompanyName, lead.ID, customer.ID))
}

func (t *TelegramNotifier) LeadsAssigned(employee *models.User, count int) {
	t.send(fmt.Sprintf("%d lead(s) assigned to <b>%s</b>", count, employee.Name))
}
