package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireai/resume-intake/internal/common"
	"github.com/hireai/resume-intake/internal/llm"
)

// ExtractFields implements llm.FieldExtractor over an OpenAI-compatible
// chat/completions endpoint. One synchronous request per call, deterministic
// sampling, JSON response mode requested as a first line of defense before
// the brace-span recovery. Failures carry typed codes: transport/status
// problems are SERVICE_ERROR, unparseable or non-conformant content is
// SCHEMA_PARSE_ERROR. The caller owns the fallback decision.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.CandidateFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"filename", req.FilenameHint,
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.CandidateFields{}, raw, common.NewAppError(common.CodeServiceError, "extraction service call failed", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.CandidateFields{}, raw, common.NewAppError(common.CodeServiceError, "decode extraction response", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.CandidateFields{}, raw, common.NewAppError(common.CodeServiceError, "no choices in extraction response", nil)
	}

	content, err := llm.RecoverJSONObject(cc.Choices[0].Message.Content)
	if err != nil {
		c.log.Error("llm.extract.recover_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.CandidateFields{}, raw, common.NewAppError(common.CodeSchemaParse, "response content is not a JSON object", err)
	}

	if err := llm.ValidateCandidateJSON(content); err != nil {
		// lenient pass: fill markers, coerce shapes, then re-validate
		cleaned, touched, sErr := llm.SanitizeFields(content)
		if sErr != nil {
			c.log.Error("llm.extract.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.CandidateFields{}, content, common.NewAppError(common.CodeSchemaParse, "sanitize failed", sErr)
		}
		if vErr := llm.ValidateCandidateJSON(cleaned); vErr != nil {
			c.log.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", vErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.CandidateFields{}, content, vErr
		}
		c.log.Warn("llm.extract.lenient_sanitize_applied",
			"req_id", rid, "touched", touched,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		content = cleaned
	}

	var out llm.CandidateFields
	if err := json.Unmarshal(content, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.CandidateFields{}, content, common.NewAppError(common.CodeSchemaParse, "unmarshal fields", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"has_name", out.FullName != nil,
		"has_email", out.Email != nil,
		"skills", len(out.Skills),
		"experience", len(out.Experience),
		"education", len(out.Education),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("llm.http.response_body_close_error", "error", err)
		}
	}(resp.Body)

	raw, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, fmt.Errorf("extraction service status %d: %s", resp.StatusCode, string(raw))
	}
	if readErr != nil {
		c.log.Warn("llm.http.response_body_read_error", "error", readErr, "raw_bytes", len(raw))
		return raw, fmt.Errorf("read extraction response: %w", readErr)
	}
	return raw, nil
}
