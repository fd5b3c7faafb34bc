// Package storage uploads product images to a MinIO bucket. A nil
// *Uploader is valid; the upload route reports it as unavailable.
package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Uploader struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// Connect builds the MinIO client from the environment and makes sure
// the bucket exists. Returns nil when MINIO_ENDPOINT is unset or the
// server is unreachable.
func Connect(ctx context.Context) *Uploader {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️  MINIO_ENDPOINT not set, image upload disabled")
		return nil
	}

	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Println("⚠️  MinIO unreachable, image upload disabled:", err)
		return nil
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "product-images"
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Println("⚠️  MinIO bucket check failed, image upload disabled:", err)
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️  MinIO bucket creation failed, image upload disabled:", err)
			return nil
		}
		log.Println("🪣 Bucket created:", bucket)
	}

	log.Println("✅ MinIO connected:", endpoint)
	return &Uploader{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}
}

// Upload stores one multipart file under a collision-free name and
// returns its public URL.
func (u *Uploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if u == nil {
		return "", fmt.Errorf("object storage not configured")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.NewString() + filepath.Ext(file.Filename)

	_, err = u.client.PutObject(ctx, u.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, objectName), nil
}
