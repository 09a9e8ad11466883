// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StartVideo submits a predictLongRunning job and returns its operation handle.
func (g *Gemini) StartVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error) {
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}
	if req.Resolution == "" {
		req.Resolution = "720p"
	}

	body := videoRequest{
		Instances: []videoInstance{{Prompt: req.Prompt}},
		Parameters: videoParameters{
			AspectRatio: req.AspectRatio,
			Resolution:  req.Resolution,
			SampleCount: 1,
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:predictLongRunning", g.opts.BaseURL, g.opts.VideoModel)

	var op videoOperation
	if err := g.doJSON(ctx, http.MethodPost, url, body, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("gemini video: operation has no name")
	}
	return op.toOperation(), nil
}

// VideoStatus fetches the current state of a video operation.
func (g *Gemini) VideoStatus(ctx context.Context, name string) (*VideoOperation, error) {
	url := fmt.Sprintf("%s/v1beta/%s", g.opts.BaseURL, strings.TrimPrefix(name, "/"))

	var op videoOperation
	if err := g.doJSON(ctx, http.MethodGet, url, nil, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		op.Name = name
	}
	return op.toOperation(), nil
}

// DownloadVideo fetches a finished video. The file URI requires the same API
// key as every other call, so the download happens server-side.
func (g *Gemini) DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini video download request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.opts.APIKey)

	resp, err := g.download.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini video download: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apiError(resp.StatusCode, body)
	}
	return resp.Body, nil
}

// --- Veo long-running operation types ---

type videoInstance struct {
	Prompt string `json:"prompt"`
}

type videoParameters struct {
	AspectRatio string `json:"aspectRatio"`
	Resolution  string `json:"resolution"`
	SampleCount int    `json:"sampleCount"`
}

type videoRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type videoOperation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

func (op videoOperation) toOperation() *VideoOperation {
	out := &VideoOperation{Name: op.Name, Done: op.Done}
	if op.Error != nil {
		out.Error = op.Error.Message
		if out.Error == "" {
			out.Error = fmt.Sprintf("operation failed with code %d", op.Error.Code)
		}
	}
	if op.Response != nil {
		for _, s := range op.Response.GenerateVideoResponse.GeneratedSamples {
			if s.Video.URI != "" {
				out.VideoURI = s.Video.URI
				break
			}
		}
	}
	return out
}
