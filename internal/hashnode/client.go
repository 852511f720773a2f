package hashnode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogpulse/notifier/pkg/metrics"
)

// ErrPostNotFound means the content source could not resolve the post id:
// either the post does not exist or the query came back with a GraphQL error.
var ErrPostNotFound = errors.New("post not found")

// Post is the internal projection of a Hashnode post. Only the fields the
// notification email needs survive the boundary.
type Post struct {
	ID            string
	Title         string
	Slug          string
	Brief         string
	CoverImageURL string
}

const postByIDQuery = `query Post($id: ID!) {
  post(id: $id) {
    id
    title
    slug
    brief
    coverImage { url }
  }
}`

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// postNode mirrors the provider's wire shape. Schema drift stays inside this
// file; callers only ever see Post.
type postNode struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Brief      string `json:"brief"`
	CoverImage *struct {
		URL string `json:"url"`
	} `json:"coverImage"`
}

type postByIDResponse struct {
	Data struct {
		Post *postNode `json:"post"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchPostByID resolves a post id to its display metadata with a single
// query. A GraphQL-level error or a null post maps to ErrPostNotFound;
// transport failures come back as-is. Either way the caller treats the event
// as unprocessable, there is no retry here.
func (c *Client) FetchPostByID(ctx context.Context, id string) (Post, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     postByIDQuery,
		Variables: map[string]any{"id": id},
	})
	if err != nil {
		return Post{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Post{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("hashnode", "post_by_id").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("hashnode", "post_by_id").Inc()
		return Post{}, fmt.Errorf("hashnode query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrorsTotal.WithLabelValues("hashnode", "post_by_id").Inc()
		return Post{}, fmt.Errorf("hashnode query: unexpected status %d", resp.StatusCode)
	}

	var out postByIDResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("hashnode", "post_by_id").Inc()
		return Post{}, fmt.Errorf("hashnode query: decode: %w", err)
	}

	if len(out.Errors) > 0 {
		return Post{}, fmt.Errorf("%w: %s", ErrPostNotFound, out.Errors[0].Message)
	}
	if out.Data.Post == nil {
		return Post{}, fmt.Errorf("%w: id %s", ErrPostNotFound, id)
	}
	return toPost(*out.Data.Post), nil
}

func toPost(n postNode) Post {
	p := Post{
		ID:    n.ID,
		Title: n.Title,
		Slug:  n.Slug,
		Brief: n.Brief,
	}
	if n.CoverImage != nil {
		p.CoverImageURL = n.CoverImage.URL
	}
	return p
}
