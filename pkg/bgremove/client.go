// Package bgremove talks to the background removal service: a submit/poll
// HTTP API backed by a segmentation model. The raster is uploaded as PNG,
// the job is polled until it settles, and the matte result is decoded back
// into a raster with a transparent background.
package bgremove

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/blang/semver"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/codec"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/config"
)

// ErrRemovalFailed reports that the service could not process the image.
var ErrRemovalFailed = errors.New("bgremove: removal failed")

// ErrModelIncompatible reports a service model older than the configured
// minimum version.
var ErrModelIncompatible = errors.New("bgremove: model version incompatible")

// Job statuses reported by the service.
const (
	statusQueued     = "queued"
	statusProcessing = "processing"
	statusSucceeded  = "succeeded"
	statusFailed     = "failed"
)

// ProgressFunc receives stage updates while a removal runs. current and
// total describe progress within the stage; total is 0 when the stage has
// no measurable extent.
type ProgressFunc func(stage string, current, total int)

type jobResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
	Error    string `json:"error,omitempty"`
}

type modelResponse struct {
	Version string `json:"version"`
}

// Client is a background removal service client.
type Client struct {
	cfg        config.Config
	minVersion semver.Version
	httpClient *http.Client
}

// New builds a client from cfg. The configuration must pass Validate and
// carry a parseable minimum model version.
func New(cfg config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bgremove: %w", err)
	}
	min, err := semver.Parse(cfg.MinModelVersion)
	if err != nil {
		return nil, fmt.Errorf("bgremove: invalid minimum model version %q: %w", cfg.MinModelVersion, err)
	}
	return &Client{
		cfg:        cfg,
		minVersion: min,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// CheckModel fetches the service's model version and verifies it meets the
// configured minimum.
func (c *Client) CheckModel(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BGRemoveURL+"/v1/model", nil)
	if err != nil {
		return fmt.Errorf("bgremove: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: model check status %d: %s", ErrRemovalFailed, resp.StatusCode, body)
	}

	var mr modelResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	got, err := semver.Parse(mr.Version)
	if err != nil {
		return fmt.Errorf("%w: unparseable model version %q", ErrModelIncompatible, mr.Version)
	}
	if got.LT(c.minVersion) {
		return fmt.Errorf("%w: have %s, need >= %s", ErrModelIncompatible, got, c.minVersion)
	}
	c.debugf("model version %s ok (minimum %s)", got, c.minVersion)
	return nil
}

// Remove uploads img, waits for the segmentation job to finish, and
// returns the raster with its background cleared to transparent. progress
// may be nil.
func (c *Client) Remove(ctx context.Context, img *image.NRGBA, progress ProgressFunc) (*image.NRGBA, error) {
	if progress == nil {
		progress = func(string, int, int) {}
	}

	progress("checking model", 0, 0)
	if err := c.CheckModel(ctx); err != nil {
		return nil, err
	}

	progress("uploading", 0, 0)
	job, err := c.submit(ctx, img)
	if err != nil {
		return nil, err
	}
	c.debugf("job %s submitted", job.ID)

	job, err = c.wait(ctx, job.ID, progress)
	if err != nil {
		return nil, err
	}

	progress("downloading", 0, 0)
	return c.fetchResult(ctx, job.ID)
}

func (c *Client) submit(ctx context.Context, img *image.NRGBA) (*jobResponse, error) {
	payload, err := codec.Encode(img, codec.FormatPNG, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BGRemoveURL+"/v1/jobs", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("bgremove: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: submit status %d: %s", ErrRemovalFailed, resp.StatusCode, body)
	}

	var job jobResponse
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("%w: submit returned no job id", ErrRemovalFailed)
	}
	return &job, nil
}

// wait polls the job until it succeeds, fails, or the configured maximum
// wait elapses.
func (c *Client) wait(ctx context.Context, jobID string, progress ProgressFunc) (*jobResponse, error) {
	deadline := time.Now().Add(c.cfg.MaxWait)
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("%w: timed out after %v", ErrRemovalFailed, c.cfg.MaxWait)
			}
			job, err := c.poll(ctx, jobID)
			if err != nil {
				return nil, err
			}
			c.debugf("job %s status %s (%d/%d)", jobID, job.Status, job.Progress, job.Total)
			switch job.Status {
			case statusSucceeded:
				return job, nil
			case statusFailed:
				if job.Error != "" {
					return nil, fmt.Errorf("%w: %s", ErrRemovalFailed, job.Error)
				}
				return nil, ErrRemovalFailed
			case statusQueued, statusProcessing:
				progress("processing", job.Progress, job.Total)
			default:
				return nil, fmt.Errorf("%w: unknown job status %q", ErrRemovalFailed, job.Status)
			}
		}
	}
}

func (c *Client) poll(ctx context.Context, jobID string) (*jobResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BGRemoveURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("bgremove: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: poll status %d: %s", ErrRemovalFailed, resp.StatusCode, body)
	}

	var job jobResponse
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	return &job, nil
}

func (c *Client) fetchResult(ctx context.Context, jobID string) (*image.NRGBA, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BGRemoveURL+"/v1/jobs/"+jobID+"/result", nil)
	if err != nil {
		return nil, fmt.Errorf("bgremove: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: result status %d: %s", ErrRemovalFailed, resp.StatusCode, body)
	}

	out, _, err := codec.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemovalFailed, err)
	}
	return out, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.BGRemoveToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.BGRemoveToken)
	}
}

func (c *Client) debugf(format string, args ...any) {
	if c.cfg.Debug {
		log.Printf("bgremove: "+format, args...)
	}
}
