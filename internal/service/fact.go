package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

var (
	ErrFactsDirMissing = errors.New("facts dir does not exist")

	characterPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

type FactService interface {
	GetFact(ctx context.Context, character string) (string, error)
}

type factRepo interface {
	GetRandom(ctx context.Context, character string) (string, error)
}

type factSource interface {
	Characters(ctx context.Context) ([]string, error)
	List(ctx context.Context, character string) ([]string, error)
}

type factSink interface {
	Add(ctx context.Context, character string, facts ...string) error
}

type factService struct {
	logger *slog.Logger
	facts  factRepo
}

func NewFactService(logger *slog.Logger, facts factRepo) FactService {
	return &factService{
		logger: logger.With("component", "facts"),
		facts:  facts,
	}
}

// GetFact - a random fact about character.
func (that *factService) GetFact(ctx context.Context, character string) (string, error) {
	name, err := NormalizeCharacter(character)
	if err != nil {
		return "", err
	}

	fact, err := that.facts.GetRandom(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to get fact: %w", err)
	}

	that.logger.Debug("fact served", "character", name)

	return fact, nil
}

// NormalizeCharacter - lower-cases the name and rejects anything that is not a plain
// identifier, so a character can never point outside the facts storage.
func NormalizeCharacter(character string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(character))
	if !characterPattern.MatchString(name) {
		return "", apperror.NewPlayerError(character, apperror.ErrFactNotFound)
	}

	return name, nil
}

// ImportFacts - copies every character from src into dst, returns how many were copied.
func ImportFacts(ctx context.Context, src factSource, dst factSink) (int, error) {
	characters, err := src.Characters(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list characters: %w", err)
	}

	imported := 0
	for _, character := range characters {
		name, err := NormalizeCharacter(character)
		if err != nil {
			continue
		}

		facts, err := src.List(ctx, character)
		if errors.Is(err, apperror.ErrFactNotFound) {
			continue
		}

		if err != nil {
			return imported, fmt.Errorf("failed to read facts for %s: %w", character, err)
		}

		if err = dst.Add(ctx, name, facts...); err != nil {
			return imported, fmt.Errorf("failed to store facts for %s: %w", character, err)
		}

		imported++
	}

	return imported, nil
}

// CheckDir - reports whether the facts directory exists.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return fmt.Errorf("%w: %s", ErrFactsDirMissing, dir)
	}

	if err != nil {
		return fmt.Errorf("failed to stat facts dir: %w", err)
	}

	return nil
}
