// Package request is the pipeline between the UI and the Conduit API.
// Each exported method is one remote capability: it builds a single HTTP
// request from the viewer snapshot it was given, performs it once with
// no retries, decodes the body through the decoder package, and maps
// every failure path into a request.Error. Callers see exactly one
// terminal outcome per invocation.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"conduit-tui/internal/entity"
)

// DefaultTimeout bounds every request; a request that exceeds it counts
// as a network failure, not a server error.
const DefaultTimeout = 5 * time.Second

type Client struct {
	apiRoot string
	http    *http.Client
	log     *slog.Logger
}

func New(apiRoot string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiRoot: strings.TrimRight(apiRoot, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope wraps a request payload under its resource-named root key,
// e.g. {"article": {...}}.
type envelope map[string]any

// do performs one request and applies the response decision tree:
// transport failure -> network error; non-2xx -> the flattened server
// error payload (or a data error if that payload itself is malformed);
// 2xx -> the raw body, which the caller decodes as its operation's DTO.
func (c *Client) do(ctx context.Context, method, path string, creds *entity.Credentials, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, dataError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiRoot+"/"+path, reader)
	if err != nil {
		return nil, networkError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		req.Header.Set("Authorization", "Token "+creds.AuthToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	messages, err := decodeServerErrors(raw)
	if err != nil {
		c.log.Debug("undecodable error payload", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return nil, dataError(err)
	}
	return nil, validationError(messages)
}

// decodeServerErrors flattens {"errors": {"<field>": ["<msg>", ...]}}
// into one "<field> <msg1>, <msg2>" line per field. The payload is
// walked token by token because encoding/json maps would shuffle the
// field order, and the order is displayed as received.
func decodeServerErrors(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var messages []string
	seenErrors := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in error payload", tok)
		}

		if key != "errors" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		seenErrors = true
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			field, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected field token %v in error payload", tok)
			}
			var fieldMessages []string
			if err := dec.Decode(&fieldMessages); err != nil {
				return nil, err
			}
			messages = append(messages, field+" "+strings.Join(fieldMessages, ", "))
		}
		// consume the closing '}' of the errors object
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	}

	if !seenErrors {
		return nil, fmt.Errorf("error payload has no errors object")
	}
	return messages, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q in error payload, got %v", want, tok)
	}
	return nil
}

// decodeBody unmarshals a success body into the operation's root DTO.
// Shape mismatches are decode failures, indistinguishable to the user
// from any other client/server contract breach.
func decodeBody[T any](raw []byte) (T, error) {
	var dto T
	if err := json.Unmarshal(raw, &dto); err != nil {
		var zero T
		return zero, dataError(err)
	}
	return dto, nil
}

func escape(s string) string {
	return url.PathEscape(s)
}
