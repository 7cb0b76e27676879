package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tzuratlink/pagelink/pkg/tagging"
)

type Page = tagging.Page
type PageBox = tagging.PageBox

type PageService struct {
	Options []RequestOption
}

func NewPageService(opts ...RequestOption) PageService {
	return PageService{
		Options: opts,
	}
}

func (r *PageService) Get(ctx context.Context, pageID string) (*tagging.Page, error) {
	c := newRequestConfig(r.Options...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/api/pages/"+pageID, nil)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var page tagging.Page

	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}

	return &page, nil
}
