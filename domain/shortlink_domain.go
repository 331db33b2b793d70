package domain

import (
	"errors"
)

var (
	MessageSuccessGetLink = "success get short link"
	MessageFailedGetLink  = "failed to get short link"

	ErrLinkNotFound        = errors.New("short link not found")
	ErrTokenSpaceExhausted = errors.New("could not generate a unique short link token")
)

type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
