package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const factFileExt = ".facts"

// FactFileRepository - facts stored as <dir>/<character>.facts, one fact per line.
type FactFileRepository struct {
	dir string
}

func NewFactFileRepository(dir string) *FactFileRepository {
	return &FactFileRepository{dir: dir}
}

func (that *FactFileRepository) GetRandom(ctx context.Context, character string) (string, error) {
	facts, err := that.List(ctx, character)
	if err != nil {
		return "", err
	}

	return facts[rand.Intn(len(facts))], nil //nolint: gosec // it's ok
}

// List - every non-empty line of the character's file.
func (that *FactFileRepository) List(_ context.Context, character string) ([]string, error) {
	content, err := os.ReadFile(filepath.Join(that.dir, character+factFileExt))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.NewPlayerError(character, apperror.ErrFactNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read facts: %w", err)
	}

	var facts []string
	for _, line := range strings.Split(string(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			facts = append(facts, line)
		}
	}

	if len(facts) == 0 {
		return nil, apperror.NewPlayerError(character, apperror.ErrFactNotFound)
	}

	return facts, nil
}

// Characters - names of all fact files in the directory, sorted.
func (that *FactFileRepository) Characters(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(that.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read facts dir: %w", err)
	}

	characters := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, factFileExt) {
			continue
		}
		characters = append(characters, strings.TrimSuffix(name, factFileExt))
	}

	sort.Strings(characters)

	return characters, nil
}
