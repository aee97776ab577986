package evidencestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"expense-claims-backend/config"
)

// ErrObjectExists - вложение с таким именем уже сохранено для заявки,
// перезапись запрещена
var ErrObjectExists = errors.New("объект уже существует")

type Provider interface {
	Write(ctx context.Context, claimID, fileName string, body []byte) error
	Delete(ctx context.Context, claimID, fileName string) error
	Read(ctx context.Context, claimID, fileName string) ([]byte, error)
	List(ctx context.Context, claimID string) ([]string, error)
	EnsureBucket(ctx context.Context) error
}

func NewInstance(s3client *minio.Client) Provider {
	return &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) getObjectName(claimID, fileName string) string {
	return fmt.Sprintf("%s/%s", claimID, fileName)
}

func (i impl) EnsureBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Write(ctx context.Context, claimID, fileName string, body []byte) error {
	bucketName := config.Conf.S3.BucketName
	objectName := i.getObjectName(claimID, fileName)
	_, err := i.s3client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err == nil {
		return ErrObjectExists
	}
	errResp := minio.ToErrorResponse(err)
	if errResp.Code != "NoSuchKey" {
		return errors.Wrap(err, "ошибка проверки существования объекта")
	}
	reader := bytes.NewReader(body)
	_, err = i.s3client.PutObject(ctx, bucketName, objectName, reader, int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return errors.Wrap(err, "ошибка записи объекта")
	}
	return nil
}

func (i impl) Delete(ctx context.Context, claimID, fileName string) error {
	bucketName := config.Conf.S3.BucketName
	objectName := i.getObjectName(claimID, fileName)
	err := i.s3client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления объекта")
	}
	return nil
}

func (i impl) Read(ctx context.Context, claimID, fileName string) ([]byte, error) {
	bucketName := config.Conf.S3.BucketName
	objectName := i.getObjectName(claimID, fileName)
	object, err := i.s3client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения объекта")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения объекта")
	}
	return body, nil
}

func (i impl) List(ctx context.Context, claimID string) ([]string, error) {
	bucketName := config.Conf.S3.BucketName
	prefix := claimID + "/"
	names := []string{}
	for object := range i.s3client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, errors.Wrap(object.Err, "ошибка получения списка объектов")
		}
		names = append(names, strings.TrimPrefix(object.Key, prefix))
	}
	return names, nil
}
