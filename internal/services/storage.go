package services

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/config"
)

// StorageService mirrors the local asset tree into a MinIO bucket for
// offsite backups. The live site always serves from local disk; the bucket
// is recovery material only.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &StorageService{
		client: client,
		bucket: cfg.MinIOBucket,
	}, nil
}

// BackupTree walks root and uploads every regular file under the given
// object prefix, preserving the relative layout. Returns the number of
// files uploaded.
func (s *StorageService) BackupTree(ctx context.Context, root, prefix string) (int, error) {
	uploaded := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		objectName := filepath.ToSlash(filepath.Join(prefix, rel))
		if _, err := s.client.FPutObject(ctx, s.bucket, objectName, path, minio.PutObjectOptions{}); err != nil {
			return err
		}

		logrus.Debugf("Backed up %s", objectName)
		uploaded++
		return nil
	})

	return uploaded, err
}
