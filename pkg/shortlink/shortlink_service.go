package shortlink

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"crypto/rand"
	"errors"

	"gorm.io/gorm"
)

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	tokenLength   = 6

	// 62^6 tokens make collisions rare; the retry bound keeps a burst
	// of bad luck from looping forever.
	maxTokenAttempts = 5
)

type (
	ShortLinkService interface {
		GetOrCreate(ctx context.Context, recipeID, fullLink string) (string, error)
		Resolve(ctx context.Context, token string) (string, error)
	}

	shortLinkService struct {
		shortLinkRepository ShortLinkRepository
		recipeRepository    recipe.RecipeRepository
	}
)

func NewShortLinkService(shortLinkRepository ShortLinkRepository, recipeRepository recipe.RecipeRepository) ShortLinkService {
	return &shortLinkService{
		shortLinkRepository: shortLinkRepository,
		recipeRepository:    recipeRepository,
	}
}

// GetOrCreate returns the token already stored for (recipe, full link),
// minting a fresh one only when no such pair exists.
func (s *shortLinkService) GetOrCreate(ctx context.Context, recipeID, fullLink string) (string, error) {
	found, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	existing, err := s.shortLinkRepository.GetByRecipeAndLink(ctx, recipeID, fullLink)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := generateToken()
		if err != nil {
			return "", err
		}

		if _, err := s.shortLinkRepository.GetByToken(ctx, token); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}

		link := &entities.ShortLink{
			Token:    token,
			RecipeID: found.ID,
			FullLink: fullLink,
		}
		if err := s.shortLinkRepository.CreateShortLink(ctx, link); err != nil {
			// Lost a race on the token unique index, try another one.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return "", err
		}
		return token, nil
	}

	return "", domain.ErrTokenSpaceExhausted
}

func (s *shortLinkService) Resolve(ctx context.Context, token string) (string, error) {
	link, err := s.shortLinkRepository.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrLinkNotFound
		}
		return "", err
	}
	return link.FullLink, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := make([]byte, tokenLength)
	for i, b := range buf {
		token[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(token), nil
}
