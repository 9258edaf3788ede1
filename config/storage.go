package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage is the S3-compatible object store client. Blobs live in a single
// bucket; the database only ever stores object keys.
var Storage *minio.Client

// StorageBucket returns the configured bucket name.
func StorageBucket() string {
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "submeet-files"
	}
	return bucket
}

// StorageURLExpiry returns the lifetime of presigned download URLs.
func StorageURLExpiry() time.Duration {
	seconds, _ := strconv.Atoi(os.Getenv("STORAGE_URL_EXPIRY"))
	if seconds <= 0 {
		seconds = 3600
	}
	return time.Duration(seconds) * time.Second
}

// InitStorage connects to the object store (MinIO, R2 or any S3-compatible
// endpoint) and makes sure the bucket exists.
func InitStorage() {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	useSSL := os.Getenv("STORAGE_USE_SSL") != "false"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("Failed to connect to object storage:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bucket := StorageBucket()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Fatal("Failed to check storage bucket:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("Failed to create storage bucket:", err)
		}
		log.Printf("Created storage bucket %s", bucket)
	}

	Storage = client
	log.Println("Object storage connected successfully")
}
