// Package storage uploads asset images and invoices to object
// storage. Objects are keyed by asset code, so re-registering the
// same code overwrites the previous file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

var ErrUpload = errors.New("object storage upload failed")

const (
	imageKeyPrefix   = "assets_photos"
	invoiceKeyPrefix = "assets_invoices"
)

type Client struct {
	images   *oss.Bucket
	invoices *oss.Bucket
	endpoint string
}

// New connects to the object store and binds the image and invoice
// buckets.
func New(endpoint, accessKeyID, accessKeySecret, imageBucket, invoiceBucket string) (*Client, error) {
	if endpoint == "" || accessKeyID == "" || accessKeySecret == "" {
		return nil, fmt.Errorf("missing object storage configuration (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET)")
	}

	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	images, err := client.Bucket(imageBucket)
	if err != nil {
		return nil, fmt.Errorf("bind image bucket: %w", err)
	}
	invoices, err := client.Bucket(invoiceBucket)
	if err != nil {
		return nil, fmt.Errorf("bind invoice bucket: %w", err)
	}

	return &Client{images: images, invoices: invoices, endpoint: endpoint}, nil
}

// UploadImage stores an asset photo under assets_photos/<code> and
// returns its public URL.
func (c *Client) UploadImage(ctx context.Context, assetCode string, r io.Reader, contentType string) (string, error) {
	return c.put(ctx, c.images, ImageKey(assetCode), r, contentType)
}

// UploadInvoice stores an invoice under assets_invoices/<code> and
// returns its public URL.
func (c *Client) UploadInvoice(ctx context.Context, assetCode string, r io.Reader, contentType string) (string, error) {
	return c.put(ctx, c.invoices, InvoiceKey(assetCode), r, contentType)
}

func (c *Client) put(ctx context.Context, bucket *oss.Bucket, key string, r io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if err := bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return c.publicURL(bucket.BucketName, key), nil
}

// publicURL builds the virtual-host style URL for an object.
func (c *Client) publicURL(bucket, key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, host, key)
}

func ImageKey(assetCode string) string {
	return imageKeyPrefix + "/" + assetCode
}

func InvoiceKey(assetCode string) string {
	return invoiceKeyPrefix + "/" + assetCode
}
