package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	store.Put("reports/a.pdf", []byte("pdf-bytes"), "application/pdf")

	obj, err := store.Get(context.Background(), "reports/a.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Fatalf("body mismatch: %q", data)
	}
	if obj.Size != int64(len("pdf-bytes")) {
		t.Fatalf("size mismatch: %d", obj.Size)
	}
	if obj.ContentType != "application/pdf" {
		t.Fatalf("content type mismatch: %q", obj.ContentType)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemory()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, interfaces.ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
}

type stubS3Client struct {
	out *s3.GetObjectOutput
	err error

	gotBucket string
	gotKey    string
}

func (c *stubS3Client) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.gotBucket = aws.ToString(params.Bucket)
	c.gotKey = aws.ToString(params.Key)
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func TestS3StoreGet(t *testing.T) {
	client := &stubS3Client{
		out: &s3.GetObjectOutput{
			Body:          io.NopCloser(bytes.NewReader([]byte("blob"))),
			ContentLength: aws.Int64(4),
			ContentType:   aws.String("application/pdf"),
		},
	}
	store := NewS3WithClient(client, "magazine")

	obj, err := store.Get(context.Background(), "issues/2026-01.pdf")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer obj.Body.Close()

	if client.gotBucket != "magazine" || client.gotKey != "issues/2026-01.pdf" {
		t.Fatalf("request mismatch: bucket=%q key=%q", client.gotBucket, client.gotKey)
	}
	if obj.Size != 4 || obj.ContentType != "application/pdf" {
		t.Fatalf("metadata mismatch: %+v", obj)
	}
}

func TestS3StoreMapsNoSuchKey(t *testing.T) {
	client := &stubS3Client{err: &types.NoSuchKey{}}
	store := NewS3WithClient(client, "magazine")

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, interfaces.ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestS3StoreWrapsOtherErrors(t *testing.T) {
	client := &stubS3Client{err: errors.New("connection reset")}
	store := NewS3WithClient(client, "magazine")

	_, err := store.Get(context.Background(), "issues/a.pdf")
	if err == nil || errors.Is(err, interfaces.ErrBlobNotFound) {
		t.Fatalf("transport failures must not map to not-found, got %v", err)
	}
}
