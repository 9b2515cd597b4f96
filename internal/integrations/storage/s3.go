// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package storage uploads style preview images to an S3-compatible bucket.

The client uses path-style addressing and static credentials, which works
against AWS, MinIO, Ceph and Cloudflare R2 alike. Objects are written with a
public-read ACL and served from the configured public URL.
*/
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/slug"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// objectPrefix groups every preview under one folder of the bucket.
const objectPrefix = "styles"

// extensions maps the accepted image MIME types to object key extensions.
var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Options configures a [Client].
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string

	// PublicURL is the CDN or custom domain serving the bucket. When empty,
	// path-style URLs on Endpoint are returned.
	PublicURL string
}

// Client uploads preview images to a single bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// New creates a storage client. It returns (nil, nil) when the endpoint,
// credentials or bucket are missing, so the API can start without storage.
func New(options Options) (*Client, error) {
	if options.Endpoint == "" || options.AccessKey == "" || options.SecretKey == "" || options.Bucket == "" {
		return nil, nil
	}

	endpoint := strings.TrimRight(options.Endpoint, "/")

	client := s3.New(s3.Options{
		Region:       options.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        client,
		bucket:    options.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(options.PublicURL, "/"),
	}, nil
}

/*
UploadDataURL decodes a base64 image data URL and stores it.

Description: The object key is styles/<name>-<uuid>.<ext>, where name is
slugified and the extension follows the MIME type of the data URL.

Parameters:
  - context: context.Context
  - name: string (style key or name)
  - dataURL: string (data:image/<type>;base64,<payload>)

Returns:
  - string: Public URL of the stored object
  - error: VALIDATION_ERROR for a malformed image, otherwise the S3 error
*/
func (client *Client) UploadDataURL(context context.Context, name, dataURL string) (string, error) {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := ObjectKey(name, contentType)

	_, err = client.s3.PutObject(context, &s3.PutObjectInput{
		Bucket:        aws.String(client.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", client.bucket, key, err)
	}

	return client.FileURL(key), nil
}

// DeleteURL removes the object behind a URL returned by [Client.UploadDataURL].
// URLs that do not point into the bucket are ignored.
func (client *Client) DeleteURL(context context.Context, url string) error {
	key, ok := client.ObjectKeyFromURL(url)
	if !ok {
		return nil
	}

	_, err := client.s3.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(client.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", client.bucket, key, err)
	}
	return nil
}

// ObjectKeyFromURL reverses [Client.FileURL].
func (client *Client) ObjectKeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, client.FileURL(""))
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// FileURL returns the public URL of an object key.
func (client *Client) FileURL(key string) string {
	if client.publicURL != "" {
		return client.publicURL + "/" + key
	}
	return client.endpoint + "/" + client.bucket + "/" + key
}

// ObjectKey builds the object key for a preview of the given MIME type.
func ObjectKey(name, contentType string) string {
	base := slug.From(name)
	if base == "" {
		base = "style"
	}
	return fmt.Sprintf("%s/%s-%s.%s", objectPrefix, base, uuid.New(), extensions[contentType])
}

// ParseDataURL splits a base64 image data URL into its MIME type and bytes.
func ParseDataURL(dataURL string) (string, []byte, error) {
	header, encoded, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, apperr.ValidationError("Preview image must be a base64 data URL")
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if _, ok := extensions[contentType]; !ok {
		return "", nil, apperr.ValidationError("Unsupported preview image type: " + contentType)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		return "", nil, apperr.ValidationError("Preview image is not valid base64")
	}

	return contentType, data, nil
}
