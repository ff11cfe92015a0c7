package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	message, _ := args.Get(0).(*discordgo.Message)
	return message, args.Error(1)
}

type mockFacts struct {
	mock.Mock
}

func (m *mockFacts) GetFact(ctx context.Context, character string) (string, error) {
	args := m.Called(ctx, character)
	return args.String(0), args.Error(1)
}

var (
	alice = &discordgo.User{ID: "1", Username: "alice"}
	bob   = &discordgo.User{ID: "2", Username: "bob"}
)

func newTestHandler(facts factService) *Handler {
	registry := repository.NewGameRegistry(repository.WithGameFactory(func(player1, player2 *entity.Player) *entity.Game {
		return entity.NewGameWithFirstMover(player1, player2, entity.TurnPlayer1)
	}))
	logger := suite.NewLogger()

	return NewHandler(logger, "~", usecase.NewGameManager(logger, registry), facts)
}

func message(author *discordgo.User, content string, mentions ...*discordgo.User) *discordgo.Message {
	return &discordgo.Message{
		ChannelID: "chan",
		Author:    author,
		Content:   content,
		Mentions:  mentions,
	}
}

func TestHandler_Reply_Game(t *testing.T) {
	ctx := context.Background()

	t.Run("Start with a mention", func(t *testing.T) {
		// Given: a fresh handler
		handler := newTestHandler(nil)

		// When: alice challenges bob by mention
		reply, ok := handler.Reply(ctx, message(alice, "~t3 start X <@!2> O", bob))

		// Then: bob is resolved by username and alice moves first
		require.True(t, ok)
		assert.Contains(t, reply, "alice (X) and bob (O)")
		assert.Contains(t, reply, "0 | 1 | 2")
		assert.Contains(t, reply, "alice, you are up first!")
	})

	t.Run("Play to a win", func(t *testing.T) {
		handler := newTestHandler(nil)
		_, ok := handler.Reply(ctx, message(alice, "~t3 start X @bob O"))
		require.True(t, ok)

		reply, _ := handler.Reply(ctx, message(alice, "~t3 put 0"))
		assert.Contains(t, reply, "X | ⭐ | ⭐")
		assert.Contains(t, reply, "bob, it's your turn!")

		for _, move := range []struct {
			author *discordgo.User
			pos    string
		}{{bob, "1"}, {alice, "3"}, {bob, "2"}} {
			_, ok = handler.Reply(ctx, message(move.author, "~t3 put "+move.pos))
			require.True(t, ok)
		}

		// When: alice completes the left column
		reply, _ = handler.Reply(ctx, message(alice, "~t3 put 6"))

		// Then: the win is announced and the game is gone
		assert.Contains(t, reply, "alice has won!")

		reply, _ = handler.Reply(ctx, message(bob, "~t3 board"))
		assert.Equal(t, msgNotInGame, reply)
	})

	t.Run("Rejections", func(t *testing.T) {
		handler := newTestHandler(nil)
		_, _ = handler.Reply(ctx, message(alice, "~t3 start X bob O"))

		reply, _ := handler.Reply(ctx, message(bob, "~t3 put 4"))
		assert.Equal(t, "It's not your turn!", reply)

		reply, _ = handler.Reply(ctx, message(alice, "~t3 put 9"))
		assert.Contains(t, reply, "That's not a position!")

		_, _ = handler.Reply(ctx, message(alice, "~t3 put 4"))
		reply, _ = handler.Reply(ctx, message(bob, "~t3 put 4"))
		assert.Equal(t, "That cell is already taken!", reply)

		reply, _ = handler.Reply(ctx, message(&discordgo.User{ID: "3", Username: "carol"}, "~t3 start X bob O"))
		assert.Equal(t, "bob is already in a game!", reply)
	})

	t.Run("Quit", func(t *testing.T) {
		handler := newTestHandler(nil)
		_, _ = handler.Reply(ctx, message(alice, "~t3 start X bob O"))

		reply, _ := handler.Reply(ctx, message(bob, "~t3 quit"))
		assert.Equal(t, "The game between alice and bob has ended early!", reply)

		reply, _ = handler.Reply(ctx, message(alice, "~t3 quit"))
		assert.Equal(t, msgNotInGame, reply)
	})

	t.Run("Same player twice", func(t *testing.T) {
		handler := newTestHandler(nil)

		reply, _ := handler.Reply(ctx, message(alice, "~t3 start X alice O"))

		assert.Contains(t, reply, "two different players")
	})

	t.Run("Usage and unknown verbs", func(t *testing.T) {
		handler := newTestHandler(nil)

		reply, _ := handler.Reply(ctx, message(alice, "~t3 start X"))
		assert.Equal(t, "Usage: `~t3 start <piece> <@opponent> <piece>`", reply)

		reply, _ = handler.Reply(ctx, message(alice, "~t3 put"))
		assert.Equal(t, "Usage: `~t3 put <position>`", reply)

		reply, _ = handler.Reply(ctx, message(alice, "~t3 dance"))
		assert.Equal(t, msgUnknownCommand, reply)

		reply, _ = handler.Reply(ctx, message(alice, "~t3 help"))
		assert.Contains(t, reply, "3 | 4 | 5")
	})

	t.Run("Ignored messages", func(t *testing.T) {
		handler := newTestHandler(nil)

		for _, msg := range []*discordgo.Message{
			message(alice, "hello there"),
			message(alice, "~dance"),
			message(alice, "~"),
			message(&discordgo.User{ID: "9", Username: "robot", Bot: true}, "~t3 help"),
			{ChannelID: "chan", Content: "~t3 help"},
		} {
			_, ok := handler.Reply(ctx, msg)
			assert.False(t, ok, msg.Content)
		}
	})
}

func TestHandler_Reply_Fact(t *testing.T) {
	ctx := context.Background()

	t.Run("Fact by mention", func(t *testing.T) {
		facts := &mockFacts{}
		facts.On("GetFact", ctx, "bob").Return("bob likes crabs", nil)
		handler := newTestHandler(facts)

		reply, ok := handler.Reply(ctx, message(alice, "~fact <@2>", bob))

		require.True(t, ok)
		assert.Equal(t, "bob likes crabs", reply)
		facts.AssertExpectations(t)
	})

	t.Run("Unknown character", func(t *testing.T) {
		facts := &mockFacts{}
		facts.On("GetFact", ctx, "nobody").
			Return("", apperror.NewPlayerError("nobody", apperror.ErrFactNotFound))
		handler := newTestHandler(facts)

		reply, _ := handler.Reply(ctx, message(alice, "~fact nobody"))

		assert.Equal(t, msgUnknownFact, reply)
	})

	t.Run("Storage failure", func(t *testing.T) {
		facts := &mockFacts{}
		facts.On("GetFact", ctx, "bob").Return("", errors.New("connection refused"))
		handler := newTestHandler(facts)

		reply, _ := handler.Reply(ctx, message(alice, "~fact bob"))

		assert.Equal(t, msgFailure, reply)
	})

	t.Run("Missing argument", func(t *testing.T) {
		handler := newTestHandler(&mockFacts{})

		reply, _ := handler.Reply(ctx, message(alice, "~fact"))

		assert.Equal(t, "Usage: `~fact <who>`", reply)
	})
}

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the reply to the channel", func(t *testing.T) {
		sender := &mockSender{}
		sender.On("ChannelMessageSend", "chan", msgUnknownCommand).Return(&discordgo.Message{}, nil)
		handler := newTestHandler(nil)

		err := handler.Handle(ctx, sender, message(alice, "~t3 dance"))

		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("Send failure", func(t *testing.T) {
		sender := &mockSender{}
		sender.On("ChannelMessageSend", "chan", msgUnknownCommand).Return(nil, errors.New("rate limited"))
		handler := newTestHandler(nil)

		err := handler.Handle(ctx, sender, message(alice, "~t3 dance"))

		require.Error(t, err)
	})

	t.Run("Quiet on bot messages", func(t *testing.T) {
		sender := &mockSender{}
		handler := newTestHandler(nil)

		err := handler.Handle(ctx, sender, message(&discordgo.User{ID: "9", Bot: true}, "~t3 help"))

		require.NoError(t, err)
		sender.AssertNotCalled(t, "ChannelMessageSend", mock.Anything, mock.Anything)
	})
}

func TestResolveName(t *testing.T) {
	mentions := []*discordgo.User{alice, bob}

	tests := []struct {
		arg  string
		want string
	}{
		{"<@1>", "alice"},
		{"<@!2>", "bob"},
		{"<@77>", "77"},
		{"@carol", "carol"},
		{"dave", "dave"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveName(tt.arg, mentions), tt.arg)
	}
}
