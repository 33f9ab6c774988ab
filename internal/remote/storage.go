package remote

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) bucket() string {
	if c.cfg.AvatarBucket == "" {
		return "avatars"
	}
	return c.cfg.AvatarBucket
}

// UploadAvatar stores data at path in the avatar bucket, overwriting an existing object.
func (c *Client) UploadAvatar(ctx context.Context, path string, data []byte, contentType string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(data).
		Post(fmt.Sprintf("%s/%s/%s", storagePath, c.bucket(), strings.TrimPrefix(path, "/")))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}
	return nil
}

// AvatarURL returns the public URL of an object in the avatar bucket.
func (c *Client) AvatarURL(path string) string {
	return fmt.Sprintf("%s%s/public/%s/%s",
		strings.TrimSuffix(c.cfg.URL, "/"), storagePath, c.bucket(), strings.TrimPrefix(path, "/"))
}
