package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"SadaaFM/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var minioClient *minio.Client

// InitMinio initializes the MinIO client and ensures the ringtone bucket exists.
func InitMinio(cfg *config.Config) error {
	log.Printf("Connecting to MinIO at %s, bucket %s", cfg.MinioEndpoint, cfg.MinioBucket)

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		log.Printf("Created bucket: %s", cfg.MinioBucket)
	}

	minioClient = client
	log.Println("MinIO client initialized successfully.")
	return nil
}

// GetMinioClient returns the MinIO client instance. Nil when InitMinio
// failed or was never called; handlers must check.
func GetMinioClient() *minio.Client {
	return minioClient
}

// PutRingtone uploads a ringtone clip and returns its object key.
func PutRingtone(ctx context.Context, bucket, objectName string, r io.Reader, size int64, contentType string) error {
	if minioClient == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	_, err := minioClient.PutObject(ctx, bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload ringtone object %s: %w", objectName, err)
	}
	return nil
}

// ListRingtones prints the objects under prefix, used by the minio CLI command.
func ListRingtones(ctx context.Context, bucket, prefix string) error {
	if minioClient == nil {
		return fmt.Errorf("MinIO client not initialized")
	}

	var count int
	var total int64
	for object := range minioClient.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects: %w", object.Err)
		}
		fmt.Printf("%-60s %10d  %s\n", object.Key, object.Size, object.LastModified.Format(time.RFC3339))
		count++
		total += object.Size
	}

	fmt.Printf("%d objects, %d bytes total\n", count, total)
	return nil
}
