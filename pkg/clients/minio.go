package clients

import (
	"context"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient создаёт клиента S3-совместимого хранилища продуктов.
func NewMinIOClient(cfg *cfg.MinIOCfg) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}

// EnsureBucket создаёт бакет, если его ещё нет. Возвращает true, если бакет был создан.
func EnsureBucket(ctx context.Context, client *minio.Client, bucketName string) (bool, error) {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	if exists {
		return false, nil
	}

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}
