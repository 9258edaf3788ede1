package main

import (
	"context"
	"log"
	"strconv"
	"strings"
	"submeet-api/config"
	"submeet-api/models"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
)

// Verifies that the object store bucket exists and that every stored file
// row still has a matching object. Run after restoring a database dump or
// migrating buckets.
func main() {
	log.Println("🗂  Starting storage bucket provisioning...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	config.InitDB()
	config.InitStorage()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var files []models.SubmissionFile
	if err := config.DB.Find(&files).Error; err != nil {
		log.Fatal("Failed to fetch submission files:", err)
	}

	bucket := config.StorageBucket()

	var (
		checked int
		missing []string
	)

	for _, file := range files {
		checked++
		_, err := config.Storage.StatObject(ctx, bucket, file.StoredPath, minio.StatObjectOptions{})
		if err == nil {
			continue
		}
		log.Printf("❌ missing object for file_id=%d: %s", file.FileID, file.StoredPath)
		missing = append(missing, "file_id="+strconv.Itoa(file.FileID))
	}

	if len(missing) > 0 {
		log.Fatalf("completed with errors. checked: %d, missing: %s", checked, strings.Join(missing, ", "))
	}

	log.Printf("🎉 Bucket %s verified, %d object(s) present", bucket, checked)
}
