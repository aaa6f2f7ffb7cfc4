package auth

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// persistingSource wraps a refreshing token source and writes every new
// token back to the store, so a refreshed access token survives the process.
type persistingSource struct {
	mu    sync.Mutex
	inner oauth2.TokenSource
	store *TokenStore
	last  *oauth2.Token
}

// NewTokenSource returns a token source that refreshes through cfg and
// persists refreshed tokens to store.
func NewTokenSource(ctx context.Context, cfg *oauth2.Config, store *TokenStore, token *oauth2.Token) oauth2.TokenSource {
	return &persistingSource{
		inner: cfg.TokenSource(ctx, token),
		store: store,
		last:  token,
	}
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.inner.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := s.store.Save(token); err != nil {
			return nil, err
		}
		s.last = token
	}
	return token, nil
}
