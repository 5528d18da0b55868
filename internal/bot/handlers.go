package bot

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
	"github.com/rauanseidaly/habittrackerbot/internal/repo"
	"github.com/rauanseidaly/habittrackerbot/internal/tracker"
)

const contactsURL = "https://www.linkedin.com/in/rauan-seidaly-3b32b4328/"

type Handler struct {
	api *tgbotapi.BotAPI
	log *slog.Logger

	users  repo.UserStore
	ledger *tracker.Ledger
	query  *tracker.Query
}

func NewHandler(api *tgbotapi.BotAPI, log *slog.Logger, users repo.UserStore, ledger *tracker.Ledger, query *tracker.Query) *Handler {
	return &Handler{api: api, log: log, users: users, ledger: ledger, query: query}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.HandleCallback(ctx, upd.CallbackQuery)
		return
	}

	if upd.Message == nil || upd.Message.From == nil {
		return
	}

	msg := upd.Message
	// работаем только в личке
	if !msg.Chat.IsPrivate() {
		return
	}

	if err := h.users.EnsureUser(ctx, msg.From.ID, displayName(msg.From)); err != nil {
		h.log.Error("ensure user", "user_id", msg.From.ID, "err", err)
		return
	}

	if msg.IsCommand() && msg.Command() == "start" {
		h.sendMainMenu(msg.Chat.ID)
		return
	}

	h.reply(msg.Chat.ID, "Пока что я этого не умею. Нажми то, что есть в меню, пожалуйста.")
}

func (h *Handler) HandleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// обязательно отвечаем Telegram
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))

	if q.Message == nil || q.From == nil {
		return
	}
	chatID := q.Message.Chat.ID

	switch q.Data {
	case "about_bot":
		h.reply(chatID, "Данный бот создан для записи ежедневных привычек.")

	case "habit":
		h.sendHabitMenu(chatID)

	case "profile":
		h.showProfile(ctx, chatID, q.From.ID)

	case "top":
		h.showTop(ctx, chatID)

	default:
		if habit, ok := domain.ParseHabit(q.Data); ok {
			h.recordHabit(ctx, chatID, q.From, habit)
		}
	}
}

func (h *Handler) recordHabit(ctx context.Context, chatID int64, from *tgbotapi.User, habit domain.Habit) {
	// Buttons survive in old chats, so the user may tap one without ever
	// having sent /start to this instance. Register first; the ledger
	// treats an unknown user as a caller bug.
	if err := h.users.EnsureUser(ctx, from.ID, displayName(from)); err != nil {
		h.log.Error("ensure user", "user_id", from.ID, "err", err)
		return
	}

	res, err := h.ledger.Record(ctx, from.ID, habit)
	if err != nil {
		h.log.Error("record habit", "user_id", from.ID, "habit", habit, "err", err)
		h.reply(chatID, "❌ Не получилось записать привычку, попробуй ещё раз.")
		return
	}

	switch res {
	case tracker.Credited:
		h.reply(chatID, "Отлично! Ты выполнил «"+habitLabel(habit)+"» сегодня! ✅")
	case tracker.AlreadyCredited:
		h.reply(chatID, "Ты уже выполнил «"+habitLabel(habit)+"» сегодня. Попробуй завтра! ❌")
	}
}

func (h *Handler) showProfile(ctx context.Context, chatID int64, userID int64) {
	u, err := h.query.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.reply(chatID, "Профиль не найден.")
			return
		}
		h.log.Error("profile", "user_id", userID, "err", err)
		h.reply(chatID, "❌ Не удалось получить профиль (БД)")
		return
	}
	h.reply(chatID, formatProfile(u))
}

func (h *Handler) showTop(ctx context.Context, chatID int64) {
	top, err := h.query.Leaderboard(ctx)
	if err != nil {
		h.log.Error("leaderboard", "err", err)
		h.reply(chatID, "❌ Не удалось получить топ участников (БД)")
		return
	}
	if len(top) == 0 {
		h.reply(chatID, "Топ участников пока пуст.")
		return
	}
	h.reply(chatID, formatTop(top))
}

func (h *Handler) sendMainMenu(chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Информация о боте?", "about_bot"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Привычки", "habit"),
			tgbotapi.NewInlineKeyboardButtonData("Топ участников", "top"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Профиль", "profile"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonURL("Контакты", contactsURL),
		},
	)

	msg := tgbotapi.NewMessage(chatID, "Добро пожаловать! Выбери, что нажать:")
	msg.ReplyMarkup = kb
	_, _ = h.api.Send(msg)
}

func (h *Handler) sendHabitMenu(chatID int64) {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(domain.Habits))
	for _, habit := range domain.Habits {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(habitLabel(habit), string(habit)))
	}

	msg := tgbotapi.NewMessage(chatID, "Какую привычку ты уже выполнил?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	_, _ = h.api.Send(msg)
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = h.api.Send(msg)
}

// displayName is best effort: username when set, first name otherwise.
func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
