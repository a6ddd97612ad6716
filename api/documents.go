package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// DocumentsResponse is the response from listing documents.
type DocumentsResponse struct {
	Documents []core.Document `json:"documents"`
	Total     int             `json:"total"`
}

// ListDocuments returns the documents visible to the current user.
func (c *Client) ListDocuments(ctx context.Context) ([]core.Document, error) {
	const key = "/documents"
	if v, ok := c.cachedGet(key); ok {
		if docs, ok := v.([]core.Document); ok {
			return docs, nil
		}
	}

	var resp DocumentsResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupDocuments, key, resp.Documents)
	return resp.Documents, nil
}

// UploadDocument submits a file as multipart form data, optionally
// associated with a room. Chunking and indexing happen backend-side;
// the returned document carries the initial processing status.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader, roomID string) (*core.Document, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if roomID != "" {
		if err := writer.WriteField("chat_room_id", roomID); err != nil {
			return nil, fmt.Errorf("write room field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuthHeaders(req)

	var doc core.Document
	if err := c.send(req, &doc); err != nil {
		return nil, err
	}
	c.invalidate(groupDocuments)
	return &doc, nil
}

// LinkDocument associates an existing document with a chat room.
func (c *Client) LinkDocument(ctx context.Context, documentID, roomID string) error {
	body := struct {
		RoomID string `json:"chat_room_id"`
	}{RoomID: roomID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/documents/%s/link", documentID), body, nil); err != nil {
		return err
	}
	c.invalidate(groupDocuments)
	return nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	if err := c.do(ctx, http.MethodDelete, "/documents/"+documentID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupDocuments)
	return nil
}
