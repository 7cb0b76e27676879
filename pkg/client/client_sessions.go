package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tzuratlink/pagelink/pkg/sse"
	"github.com/tzuratlink/pagelink/pkg/tagging"
)

var _ tagging.Service = (*SessionService)(nil)

type StartRequest = tagging.StartRequest
type StageEvent = tagging.StageEvent
type RunResult = tagging.RunResult

type SessionDocument = tagging.SessionDocument
type Fixes = tagging.Fixes

type SessionService struct {
	Options []RequestOption
}

func NewSessionService(opts ...RequestOption) SessionService {
	return SessionService{
		Options: opts,
	}
}

func (r *SessionService) Start(ctx context.Context, input tagging.StartRequest) (*tagging.RunResult, error) {
	c := newRequestConfig(r.Options...)

	var data bytes.Buffer

	if err := json.NewEncoder(&data).Encode(input); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/api/sessions/start", &data)
	req.Header.Set("Content-Type", "application/json")

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

	var result tagging.RunResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// StartStream starts a run and yields one StageEvent per completed pipeline
// stage, then a terminal event carrying the run result. A pipeline-reported
// or transport failure ends the sequence with an error; records that fail to
// decode are dropped without ending it.
func (r *SessionService) StartStream(ctx context.Context, input tagging.StartRequest) iter.Seq2[*tagging.StageEvent, error] {
	return func(yield func(*tagging.StageEvent, error) bool) {
		c := newRequestConfig(r.Options...)

		var data bytes.Buffer

		if err := json.NewEncoder(&data).Encode(input); err != nil {
			yield(nil, err)
			return
		}

		req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/api/sessions/start/stream", &data)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		resp, err := c.Client.Do(req)

		if err != nil {
			yield(nil, err)
			return
		}

		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield(nil, convertError(resp))
			return
		}

		decoder := sse.NewDecoder(resp.Body)

		for {
			data, err := decoder.Next()

			if err == io.EOF {
				return
			}

			if err != nil {
				yield(nil, err)
				return
			}

			var frame streamFrame

			if err := json.Unmarshal(data, &frame); err != nil {
				slog.Debug("dropping undecodable stream record", "error", err)
				continue
			}

			switch frame.Status {
			case "error":
				message := frame.Error

				if message == "" {
					message = "pipeline run failed"
				}

				yield(nil, errors.New(message))
				return

			case "complete":
				event := &tagging.StageEvent{
					Result: &tagging.RunResult{
						SessionID: frame.SessionID,

						NeedsHumanReview: frame.NeedsHumanReview,
						ValidationFlags:  frame.ValidationFlags,

						PersistedPageID: frame.PersistedPageID,
					},
				}

				yield(event, nil)
				return
			}

			if frame.Stage == "" {
				continue
			}

			if !yield(&tagging.StageEvent{Stage: frame.Stage}, nil) {
				return
			}
		}
	}
}

func (r *SessionService) Get(ctx context.Context, sessionID string) (*tagging.SessionDocument, error) {
	c := newRequestConfig(r.Options...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/api/sessions/"+sessionID, nil)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, tagging.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var doc tagging.SessionDocument

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *SessionService) ApplyFixes(ctx context.Context, sessionID string, fixes tagging.Fixes) error {
	c := newRequestConfig(r.Options...)

	var data bytes.Buffer

	if err := json.NewEncoder(&data).Encode(fixes); err != nil {
		return err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/api/sessions/"+sessionID+"/apply_fixes", &data)
	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return convertError(resp)
	}

	return nil
}

func (r *SessionService) Finalize(ctx context.Context, sessionID string) (string, error) {
	c := newRequestConfig(r.Options...)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/api/sessions/"+sessionID+"/finalize", nil)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", convertError(resp)
	}

	var result struct {
		PersistedPageID string `json:"persisted_page_id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.PersistedPageID, nil
}

type streamFrame struct {
	Stage  tagging.Stage `json:"stage"`
	Status string        `json:"status"`
	Error  string        `json:"error"`

	SessionID        string   `json:"session_id"`
	NeedsHumanReview bool     `json:"needs_human_review"`
	ValidationFlags  []string `json:"validation_flags"`
	PersistedPageID  string   `json:"persisted_page_id"`
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		return errors.New(text)
	}

	return errors.New(resp.Status)
}
