package util

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DocumentStore uploads prescription documents to a MinIO bucket and serves
// them through a public base URL.
type DocumentStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewDocumentStore creates a MinIO-backed document store and ensures the
// bucket exists. endpoint is host:port, e.g. "127.0.0.1:9000".
func NewDocumentStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, publicBase string) (*DocumentStore, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &DocumentStore{client: c, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

var nonSafeObjectChars = regexp.MustCompile(`[^a-z0-9\-_.]+`)

func sanitizeObjectName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = nonSafeObjectChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	if name == "" {
		name = "file"
	}
	return name
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UploadDocument stores a multipart file under a randomized key prefixed with
// the owner id and returns the object key plus public URL.
func (s *DocumentStore) UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, ownerID uint) (key string, publicURL string, err error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, f); err != nil {
		return "", "", err
	}

	base := sanitizeObjectName(strings.TrimSuffix(fileHeader.Filename, path.Ext(fileHeader.Filename)))
	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".bin"
	}
	key = fmt.Sprintf("patient-%d/%s-%s%s", ownerID, base, randomHex(4), ext)

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", "", err
	}

	u, err := url.Parse(s.publicBase)
	if err != nil {
		return key, "", nil
	}
	u.Path = path.Join(u.Path, s.bucket, key)
	return key, u.String(), nil
}

// DeleteDocument removes an object by key.
func (s *DocumentStore) DeleteDocument(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
