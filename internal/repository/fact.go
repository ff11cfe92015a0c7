package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const factKeyPrefix = "facts:"

type FactRepository interface {
	Add(ctx context.Context, character string, facts ...string) error
	GetRandom(ctx context.Context, character string) (string, error)
}

type dbFact struct {
	client *redis.Client
}

func NewFactRepository(client *redis.Client) FactRepository {
	return &dbFact{
		client: client,
	}
}

func (that *dbFact) Add(ctx context.Context, character string, facts ...string) error {
	if len(facts) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(facts))
	for _, fact := range facts {
		members = append(members, fact)
	}

	if err := that.client.SAdd(ctx, factKeyPrefix+character, members...).Err(); err != nil {
		return fmt.Errorf("failed to add facts: %w", err)
	}

	return nil
}

func (that *dbFact) GetRandom(ctx context.Context, character string) (string, error) {
	fact, err := that.client.SRandMember(ctx, factKeyPrefix+character).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperror.NewPlayerError(character, apperror.ErrFactNotFound)
	}

	if err != nil {
		return "", fmt.Errorf("failed to get fact: %w", err)
	}

	return fact, nil
}
