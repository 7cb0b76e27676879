package client

import (
	"net/http"
)

type Client struct {
	Sessions SessionService
	Pages    PageService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Sessions: NewSessionService(opts...),
		Pages:    NewPageService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
