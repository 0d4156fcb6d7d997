// Package mapservice provides a read-only HTTP client for map-service
// feature layers: schema describe and paged feature query against the
// layer's REST endpoint.
package mapservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	geoerrors "github.com/geosync/geosync/internal/errors"
	"github.com/geosync/geosync/pkg/types"
)

// DefaultPageSize is the number of features requested per query page.
const DefaultPageSize = 1000

// Client issues requests to map-service layer endpoints.
type Client struct {
	httpClient *http.Client
	pageSize   int
}

// NewClient creates a client with the given request timeout. A zero
// timeout disables the client-side deadline.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   DefaultPageSize,
	}
}

// WithPageSize overrides the query page size. Values below 1 keep the
// default.
func (c *Client) WithPageSize(n int) *Client {
	if n > 0 {
		c.pageSize = n
	}
	return c
}

// Layer binds the client to a single layer endpoint.
func (c *Client) Layer(layerURL string) *Layer {
	return &Layer{client: c, url: strings.TrimRight(layerURL, "/")}
}

// Layer is a read-only view of one map-service feature layer.
type Layer struct {
	client *Client
	url    string
}

// URL returns the layer endpoint.
func (l *Layer) URL() string {
	return l.url
}

// Describe fetches the layer metadata and returns its structural snapshot.
func (l *Layer) Describe(ctx context.Context) (*types.SchemaDescription, error) {
	var info layerInfoJSON
	if err := l.client.getJSON(ctx, l.url, url.Values{"f": {"json"}}, &info); err != nil {
		return nil, geoerrors.NewSourceError(geoerrors.CodeDescribeFailed,
			fmt.Sprintf("describe %s", l.url), err)
	}
	if info.Error != nil {
		return nil, geoerrors.NewSourceError(geoerrors.CodeDescribeFailed,
			fmt.Sprintf("describe %s: service error %d: %s", l.url, info.Error.Code, info.Error.Message), nil)
	}

	return &types.SchemaDescription{
		GeometryType: geometryTypeFromService(info.GeometryType),
		WKID:         info.wkid(),
		Fields:       fieldsFromService(info.Fields),
	}, nil
}

// Query fetches features matching the attribute filter, paging through
// the layer until the service stops reporting a transfer-limit overflow.
// An empty filter fetches all rows; the always-false filter "1=2" yields
// a schema-only set with zero rows.
func (l *Layer) Query(ctx context.Context, where string) (*types.FeatureSet, error) {
	if where == "" {
		where = "1=1"
	}

	var out *types.FeatureSet
	offset := 0
	for {
		params := url.Values{
			"f":                 {"json"},
			"where":             {where},
			"outFields":         {"*"},
			"returnGeometry":    {"true"},
			"resultOffset":      {strconv.Itoa(offset)},
			"resultRecordCount": {strconv.Itoa(l.client.pageSize)},
		}

		var page queryJSON
		if err := l.client.getJSON(ctx, l.url+"/query", params, &page); err != nil {
			return nil, geoerrors.NewSourceError(geoerrors.CodeExportFailed,
				fmt.Sprintf("query %s where %q", l.url, where), err)
		}
		if page.Error != nil {
			return nil, geoerrors.NewSourceError(geoerrors.CodeExportFailed,
				fmt.Sprintf("query %s: service error %d: %s", l.url, page.Error.Code, page.Error.Message), nil)
		}

		if out == nil {
			out = &types.FeatureSet{
				GeometryType: geometryTypeFromService(page.GeometryType),
				WKID:         page.SpatialReference.wkid(),
				Fields:       fieldsFromService(page.Fields),
				Features:     []types.Feature{},
			}
		}
		for _, f := range page.Features {
			out.Features = append(out.Features, types.Feature{
				Attributes: f.Attributes,
				Geometry:   f.Geometry.toGeometry(out.GeometryType),
			})
		}

		if !page.ExceededTransferLimit || len(page.Features) == 0 {
			return out, nil
		}
		offset += len(page.Features)
	}
}

// getJSON issues a GET and decodes the JSON response body into dst.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("mapservice: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mapservice: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mapservice: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("mapservice: decode response: %w", err)
	}
	return nil
}
