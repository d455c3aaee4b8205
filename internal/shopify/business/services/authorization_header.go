package services

import (
	"net/http"
)

type AuthEngine interface {
	GetAccessToken() string
	SetAuth(request *http.Request)
}

// TokenAuth authenticates requests with the shop access token header.
type TokenAuth struct {
	accessToken string
}

func (t *TokenAuth) GetAccessToken() string {
	return t.accessToken
}

func (t *TokenAuth) SetAuth(request *http.Request) {
	request.Header.Set("X-Shopify-Access-Token", t.accessToken)
}

func NewTokenAuth(accessToken string) *TokenAuth {
	if accessToken == "" {
		return nil
	}
	return &TokenAuth{accessToken: accessToken}
}
