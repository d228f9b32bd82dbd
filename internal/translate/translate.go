// Package translate provides message-text translation: a remote
// generative-model API with an on-device model as fallback. It is a
// stateless request/response utility; callers transform text before
// sending or copying, nothing here touches chat state.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result is a completed translation and the model that produced it.
type Result struct {
	Text  string `json:"translated"`
	Model string `json:"model"`
}

// Translator translates text between language codes (e.g. "eng_Latn").
type Translator interface {
	Translate(ctx context.Context, text, src, tgt string) (*Result, error)
}

// Remote calls a hosted generative-model API with a translation prompt and
// expects the bare translated text back.
type Remote struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (r *Remote) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	prompt := fmt.Sprintf("Translate this text from %s to %s.\nReturn ONLY the translated result, no explanation.\n%q", src, tgt, text)

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", r.Endpoint, r.Model, r.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("remote translate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote translate: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote translate: read body: %w", err)
	}
	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("remote translate: decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("remote translate: empty response")
	}
	translated := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if translated == "" {
		return nil, fmt.Errorf("remote translate: empty translation")
	}
	return &Result{Text: translated, Model: "remote"}, nil
}

func (r *Remote) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Local calls an on-device translation model served over HTTP on localhost.
type Local struct {
	Endpoint string
	Client   *http.Client
}

type localRequest struct {
	Text string `json:"text"`
	Src  string `json:"src"`
	Tgt  string `json:"tgt"`
}

type localResponse struct {
	Translated string `json:"translated"`
}

func (l *Local) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	body, err := json.Marshal(localRequest{Text: text, Src: src, Tgt: tgt})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("local translate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("local translate: status %d", resp.StatusCode)
	}
	var out localResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("local translate: decode: %w", err)
	}
	if out.Translated == "" {
		return nil, fmt.Errorf("local translate: empty translation")
	}
	return &Result{Text: out.Translated, Model: "local"}, nil
}

// Fallback tries the primary translator and falls back to the secondary when
// the primary fails, mirroring the remote-then-on-device chain.
type Fallback struct {
	Primary   Translator
	Secondary Translator
	Logger    *zap.Logger
}

func (f *Fallback) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	res, err := f.Primary.Translate(ctx, text, src, tgt)
	if err == nil {
		return res, nil
	}
	if f.Logger != nil {
		f.Logger.Warn("primary translator failed, falling back", zap.Error(err))
	}
	return f.Secondary.Translate(ctx, text, src, tgt)
}
