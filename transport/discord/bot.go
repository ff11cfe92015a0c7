package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	logger  *slog.Logger
	session *discordgo.Session
	handler *Handler
}

// NewBot - creates a gateway session for token, it does not connect yet.
func NewBot(logger *slog.Logger, token string, handler *Handler) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		logger:  logger.With("component", "discord_bot"),
		session: session,
		handler: handler,
	}

	session.AddHandler(bot.onMessageCreate)

	return bot, nil
}

// Start - connects to the gateway and serves messages until ctx is done.
func (that *Bot) Start(ctx context.Context) error {
	if err := that.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	that.logger.InfoContext(ctx, "connected to discord")

	<-ctx.Done()

	if err := that.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}

	return nil
}

func (that *Bot) onMessageCreate(session *discordgo.Session, event *discordgo.MessageCreate) {
	if event.Author == nil || (session.State.User != nil && event.Author.ID == session.State.User.ID) {
		return
	}

	if err := that.handler.Handle(context.Background(), session, event.Message); err != nil {
		that.logger.Error("failed to handle message", "channel", event.ChannelID, "error", err)
	}
}
