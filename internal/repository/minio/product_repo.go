package minio

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/repository/minio/converter"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const (
	productsPrefix    = "products/"
	productObjectExt  = ".json"
	objectContentType = "application/json"
)

// ProductRepo хранит каждый продукт отдельным JSON-объектом products/<id>.json.
type ProductRepo struct {
	mc   *minio.Client
	conv converter.ProductObjectConverter
	cfg  *cfg.MinIOCfg
}

func NewProductRepo(mc *minio.Client, conv converter.ProductObjectConverter, cfg *cfg.MinIOCfg) *ProductRepo {
	return &ProductRepo{
		mc:   mc,
		conv: conv,
		cfg:  cfg,
	}
}

// GetAll читает все объекты с префиксом products/ и возвращает продукты, упорядоченные по id.
func (p *ProductRepo) GetAll(ctx context.Context) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0)

	for object := range p.mc.ListObjects(ctx, p.cfg.BucketName, minio.ListObjectsOptions{Prefix: productsPrefix}) {
		if object.Err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), object.Err)
		}

		if _, ok := productIDFromKey(object.Key); !ok {
			continue
		}

		product, err := p.load(ctx, object.Key)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if product != nil {
			result = append(result, product)
		}
	}

	slices.SortFunc(result, func(a, b *domain.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result, nil
}

// GetByID возвращает продукт или (nil, nil), если объекта нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := p.load(ctx, productKey(id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return product, nil
}

// Save перезаписывает объект продукта целиком.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(p.conv.ToObjectModel(product))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = p.mc.PutObject(ctx, p.cfg.BucketName, productKey(product.ID), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: objectContentType})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// load читает и разбирает объект. Отсутствующий объект даёт (nil, nil).
func (p *ProductRepo) load(ctx context.Context, key string) (*domain.Product, error) {
	object, err := p.mc.GetObject(ctx, p.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var model converter.ProductObjectModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("object %s: %w", key, err)
	}

	return p.conv.ToEntity(&model)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func productKey(id int64) string {
	return productsPrefix + strconv.FormatInt(id, 10) + productObjectExt
}

// productIDFromKey разбирает ключ вида products/<id>.json.
func productIDFromKey(key string) (int64, bool) {
	name, ok := strings.CutPrefix(key, productsPrefix)
	if !ok {
		return 0, false
	}

	name, ok = strings.CutSuffix(name, productObjectExt)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(name, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

