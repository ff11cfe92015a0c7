package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type messageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type uGame interface {
	StartGame(ctx context.Context, name1, piece1, name2, piece2 string) (entity.Snapshot, error)
	PlaceMove(ctx context.Context, mover, positionText string) (entity.Snapshot, error)
	QuitGame(ctx context.Context, requester string) (entity.Player, entity.Player, error)
	Board(ctx context.Context, player string) (entity.Snapshot, error)
}

type factService interface {
	GetFact(ctx context.Context, character string) (string, error)
}

type command func(ctx context.Context, message *discordgo.Message, args []string) string

// Handler - turns chat messages into game and fact commands.
type Handler struct {
	logger *slog.Logger
	uGame  uGame
	facts  factService
	prefix string

	gameCommands map[string]command
}

func NewHandler(logger *slog.Logger, prefix string, uGame uGame, facts factService) *Handler {
	handler := &Handler{
		logger: logger.With("component", "discord"),
		uGame:  uGame,
		facts:  facts,
		prefix: prefix,

		gameCommands: make(map[string]command),
	}

	handler.gameCommands["start"] = handler.handleStart
	handler.gameCommands["put"] = handler.handlePut
	handler.gameCommands["quit"] = handler.handleQuit
	handler.gameCommands["board"] = handler.handleBoard
	handler.gameCommands["help"] = handler.handleHelp

	return handler
}

// Handle - answers message in its channel. Messages that are not commands, and
// anything written by a bot, are left alone.
func (that *Handler) Handle(ctx context.Context, sender messageSender, message *discordgo.Message) error {
	reply, ok := that.Reply(ctx, message)
	if !ok {
		return nil
	}

	if _, err := sender.ChannelMessageSend(message.ChannelID, reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}

// Reply - the text the bot answers message with, false when it stays quiet.
func (that *Handler) Reply(ctx context.Context, message *discordgo.Message) (string, bool) {
	if message.Author == nil || message.Author.Bot {
		return "", false
	}

	content, found := strings.CutPrefix(strings.TrimSpace(message.Content), that.prefix)
	if !found {
		return "", false
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", false
	}

	switch fields[0] {
	case "t3":
		if len(fields) == 1 {
			return that.handleHelp(ctx, message, nil), true
		}

		handler, ok := that.gameCommands[fields[1]]
		if !ok {
			return msgUnknownCommand, true
		}

		return handler(ctx, message, fields[2:]), true
	case "fact":
		return that.handleFact(ctx, message, fields[1:]), true
	default:
		return "", false
	}
}

func (that *Handler) handleStart(ctx context.Context, message *discordgo.Message, args []string) string {
	if len(args) != 3 {
		return that.usage("t3 start <piece> <@opponent> <piece>")
	}

	opponent := resolveName(args[1], message.Mentions)

	snapshot, err := that.uGame.StartGame(ctx, message.Author.Username, args[0], opponent, args[2])
	if err != nil {
		return that.rejection(ctx, "start", err)
	}

	return renderStarted(snapshot)
}

func (that *Handler) handlePut(ctx context.Context, message *discordgo.Message, args []string) string {
	if len(args) != 1 {
		return that.usage("t3 put <position>")
	}

	snapshot, err := that.uGame.PlaceMove(ctx, message.Author.Username, args[0])
	if err != nil {
		return that.rejection(ctx, "put", err)
	}

	return renderOutcome(snapshot)
}

func (that *Handler) handleQuit(ctx context.Context, message *discordgo.Message, _ []string) string {
	player1, player2, err := that.uGame.QuitGame(ctx, message.Author.Username)
	if err != nil {
		return that.rejection(ctx, "quit", err)
	}

	return renderQuit(player1, player2)
}

func (that *Handler) handleBoard(ctx context.Context, message *discordgo.Message, _ []string) string {
	snapshot, err := that.uGame.Board(ctx, message.Author.Username)
	if err != nil {
		return that.rejection(ctx, "board", err)
	}

	return renderOutcome(snapshot)
}

func (that *Handler) handleHelp(_ context.Context, _ *discordgo.Message, _ []string) string {
	return renderHelp(that.prefix)
}

func (that *Handler) handleFact(ctx context.Context, message *discordgo.Message, args []string) string {
	if len(args) != 1 {
		return that.usage("fact <who>")
	}

	fact, err := that.facts.GetFact(ctx, resolveName(args[0], message.Mentions))
	if err != nil {
		return that.rejection(ctx, "fact", err)
	}

	return fact
}

func (that *Handler) usage(syntax string) string {
	return "Usage: `" + that.prefix + syntax + "`"
}

func (that *Handler) rejection(ctx context.Context, verb string, err error) string {
	text, expected := renderRejection(err)
	if !expected {
		that.logger.ErrorContext(ctx, "command failed", "command", verb, "error", err)
	}

	return text
}

// resolveName - plain name for a command argument. <@id> and <@!id> become the
// username of the mentioned user, a leading @ is dropped.
func resolveName(arg string, mentions []*discordgo.User) string {
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		id := strings.TrimPrefix(strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">"), "!")
		for _, user := range mentions {
			if user != nil && user.ID == id {
				return user.Username
			}
		}

		return id
	}

	return strings.TrimPrefix(arg, "@")
}
