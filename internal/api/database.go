package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// maxPageSize is the largest page_size Notion accepts.
const maxPageSize = 100

// Sort orders query results by a property or timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	Sorts       []Sort  `json:"sorts,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// QueryResponse is one page of query results.
type QueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Database is a Notion database with its property schema.
type Database struct {
	ID             string                    `json:"id"`
	URL            string                    `json:"url"`
	Title          []RichText                `json:"title"`
	LastEditedTime string                    `json:"last_edited_time"`
	Properties     map[string]PropertySchema `json:"properties"`
}

// PropertySchema describes one column of a database.
type PropertySchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// PlainTitle returns the database title as plain text.
func (d Database) PlainTitle() string {
	return PlainText(d.Title)
}

// QueryDatabase fetches a single page of results.
func (c *Client) QueryDatabase(databaseID string, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"
	if err := c.do(http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryAll runs a filtered query and follows next_cursor until the results
// are exhausted or limit pages have been collected. A limit of 0 means no cap.
func (c *Client) QueryAll(databaseID string, filter *Filter, sorts []Sort, limit int) ([]Page, error) {
	var pages []Page
	req := QueryRequest{Filter: filter, Sorts: sorts, PageSize: maxPageSize}
	for {
		if limit > 0 && limit-len(pages) < maxPageSize {
			req.PageSize = limit - len(pages)
		}
		resp, err := c.QueryDatabase(databaseID, req)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)

		if limit > 0 && len(pages) >= limit {
			return pages[:limit], nil
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return pages, nil
		}
		req.StartCursor = *resp.NextCursor
	}
}

// RetrieveDatabase fetches a database's title and schema.
func (c *Client) RetrieveDatabase(databaseID string) (*Database, error) {
	var db Database
	if err := c.do(http.MethodGet, "/v1/databases/"+url.PathEscape(databaseID), nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

type searchRequest struct {
	Query       string       `json:"query,omitempty"`
	Filter      searchFilter `json:"filter"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchResponse struct {
	Results    []Database `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor"`
}

// SearchDatabases lists the databases shared with the integration whose
// title matches query. An empty query lists all of them.
func (c *Client) SearchDatabases(query string) ([]Database, error) {
	var dbs []Database
	req := searchRequest{
		Query:    query,
		Filter:   searchFilter{Property: "object", Value: "database"},
		PageSize: maxPageSize,
	}
	for {
		var resp searchResponse
		if err := c.do(http.MethodPost, "/v1/search", req, &resp); err != nil {
			return nil, err
		}
		dbs = append(dbs, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return dbs, nil
		}
		req.StartCursor = *resp.NextCursor
	}
}

// NormalizeID formats a Notion ID (with or without dashes, or a full page
// URL) as a dashed UUID. It reports false if s doesn't contain one.
func NormalizeID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexAny(s, "/-"); i >= 0 && len(s)-i-1 == 32 {
		s = s[i+1:]
	}
	hex := strings.ReplaceAll(s, "-", "")
	if len(hex) != 32 {
		return "", false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	hex = strings.ToLower(hex)
	return fmt.Sprintf("%s-%s-%s-%s-%s", hex[0:8], hex[8:12], hex[12:16], hex[16:20], hex[20:]), true
}
